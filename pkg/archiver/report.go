package archiver

import (
	"fmt"
	"io"

	"github.com/dustin/go-humanize"
	"github.com/joltarchive/joltarchive/pkg/cheerpj"
	"github.com/joltarchive/joltarchive/pkg/gamejolt"
)

const timeLayout = "2006-01-02 15:04:05"

func (a *Archiver) printGame(g *gamejolt.Game) {
	a.printf("Description: %s\n", g.Microdata.Description)
	if r := g.Microdata.Rating; r != nil {
		a.printf("\nRatings: %.2f/1.0 (%d ratings)\n", r.Value, r.Count)
	}
	a.printf("Stats: %d views, %d downloads, %d plays\n", g.Views, g.Downloads, g.Plays)
}

func (a *Archiver) printBuild(b *gamejolt.Build) {
	a.printf("\nBuild ID: %d\n", b.Id)
	if pf := b.PrimaryFile; pf != nil {
		size, _ := pf.Filesize.Int()
		if size < 0 {
			size = 0
		}
		a.printf("File: %s (%s)\n", pf.Filename, humanize.IBytes(uint64(size)))
	}
	a.printf("Type: %s\n", b.Type)
	if p := b.Platforms(); p != 0 {
		a.printf("Platforms: %s\n", p)
	}
	if t := b.Added(); !t.IsZero() {
		a.printf("Added: %s\n", t.Format(timeLayout))
	}
}

// applet is a line of the Java class report.
type applet struct {
	filename string
	class    string
	archive  string
	codebase string
	width    int
	height   int
}

func newApplet(f *gamejolt.ResolvedFile) applet {
	ap := applet{
		filename: f.Filename,
		class:    f.Applet.Class,
		archive:  f.Applet.Archive,
		codebase: f.Applet.Codebase,
		width:    f.Width,
		height:   f.Height,
	}
	if ap.width <= 0 {
		ap.width = cheerpj.DefaultWidth
	}
	if ap.height <= 0 {
		ap.height = cheerpj.DefaultHeight
	}
	return ap
}

func (ap applet) print(w io.Writer) {
	_, _ = fmt.Fprintf(w, "File: %s\nClass: %s\nArchive: %s\nCodebase: %s\nDimensions: %dx%d\n---\n",
		ap.filename, ap.class, ap.archive, ap.codebase, ap.width, ap.height)
}
