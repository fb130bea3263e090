package gamejolt

import (
	"encoding/json"
	"time"
)

// Game is what the overview API tells about a game.
type Game struct {
	Id        int64     `json:"-"`
	Microdata Microdata `json:"microdata"`
	Views     int64     `json:"profileCount"`
	Downloads int64     `json:"downloadCount"`
	Plays     int64     `json:"playCount"`
	Builds    []Build   `json:"builds"`

	// Raw is the whole payload as received.
	Raw json.RawMessage `json:"-"`
}

type Microdata struct {
	Name        string  `json:"name"`
	Url         string  `json:"url"`
	Description string  `json:"description"`
	Rating      *Rating `json:"aggregateRating,omitempty"`
}

type Rating struct {
	Value float64 `json:"ratingValue"`
	Count int64   `json:"ratingCount"`
}

func (g *Game) Title() string { return g.Microdata.Name }

// Build is a single downloadable release of a game.
type Build struct {
	Id          int64        `json:"id"`
	Type        string       `json:"type"`
	OsWindows   Value        `json:"os_windows"`
	OsMac       Value        `json:"os_mac"`
	OsLinux     Value        `json:"os_linux"`
	OsOther     Value        `json:"os_other"`
	AddedOn     int64        `json:"added_on"`
	UpdatedOn   int64        `json:"updated_on"`
	EmbedWidth  int          `json:"embed_width,omitempty"`
	EmbedHeight int          `json:"embed_height,omitempty"`
	JavaClass   string       `json:"java_class_name,omitempty"`
	PrimaryFile *PrimaryFile `json:"primary_file,omitempty"`
}

type PrimaryFile struct {
	Filename string `json:"filename"`
	Filesize Value  `json:"filesize"`
}

// Platforms collects the OS flags into a set.
func (b *Build) Platforms() (p Platform) {
	if b.OsWindows.Truthy() {
		p |= Windows
	}
	if b.OsMac.Truthy() {
		p |= Mac
	}
	if b.OsLinux.Truthy() {
		p |= Linux
	}
	if b.OsOther.Truthy() {
		p |= Other
	}
	return
}

func (b *Build) Added() time.Time   { return millis(b.AddedOn) }
func (b *Build) Updated() time.Time { return millis(b.UpdatedOn) }

func millis(ms int64) time.Time {
	if ms == 0 {
		return time.Time{}
	}
	return time.UnixMilli(ms)
}

// GameServer is the descriptor of a build file behind a download token.
type GameServer struct {
	Url          string    `json:"url"`
	Build        *Build    `json:"build,omitempty"`
	Game         *GameInfo `json:"game,omitempty"`
	JavaArchive  Value     `json:"javaArchive"`
	JavaCodebase Value     `json:"javaCodebase"`
}

type GameInfo struct {
	Id    int64  `json:"id"`
	Title string `json:"title"`
}

// ResolvedFile is all that is known about a downloadable build file.
type ResolvedFile struct {
	DownloadUrl string
	Filename    string
	// 0 when unknown
	Filesize int64

	BuildId   int64
	Type      string
	AddedOn   time.Time
	UpdatedOn time.Time
	Platforms Platform
	// 0 when not set
	Width  int
	Height int

	GameId int64
	Title  string

	Applet *Applet
}

// Applet holds the fields needed to run a Java applet build.
type Applet struct {
	Archive  string
	Codebase string
	Class    string
}

// IsJar tells if the file is a Java archive.
func (f *ResolvedFile) IsJar() bool { return isJar(f.Filename) }

// HasAppletClass is true when the file can be run as an applet.
func (f *ResolvedFile) HasAppletClass() bool { return f.Applet != nil && f.Applet.Class != "" }
