package gamejolt

// File flattens the game server descriptor into a ResolvedFile.
func (gs *GameServer) File() *ResolvedFile {
	f := &ResolvedFile{DownloadUrl: gs.Url}

	if b := gs.Build; b != nil {
		if pf := b.PrimaryFile; pf != nil {
			f.Filename = pf.Filename
			f.Filesize, _ = pf.Filesize.Int()
		}
		f.BuildId = b.Id
		f.Type = b.Type
		f.AddedOn = b.Added()
		f.UpdatedOn = b.Updated()
		f.Platforms = b.Platforms()
		f.Width = b.EmbedWidth
		f.Height = b.EmbedHeight
	}

	if g := gs.Game; g != nil {
		f.GameId = g.Id
		f.Title = g.Title
	}

	if gs.JavaArchive.Truthy() {
		f.Applet = &Applet{
			Archive:  gs.JavaArchive.String(),
			Codebase: gs.JavaCodebase.String(),
		}
		if gs.Build != nil {
			f.Applet.Class = gs.Build.JavaClass
		}
	}

	return f
}
