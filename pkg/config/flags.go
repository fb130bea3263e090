package config

import (
	"errors"
	"time"

	"github.com/spf13/pflag"
)

var (
	ErrNoGame      = errors.New("one of --game-id or --url is required")
	ErrTooManyGame = errors.New("--game-id and --url are mutually exclusive")
)

// Flags are the command line options.
type Flags struct {
	ConfigPath string

	GameId int64
	Url    string

	Output      string
	DownloadDir string
	Verbose     bool
	JavaClass   bool
	NoDownload  bool
	CheerpJ     bool

	NoColor     bool
	Timeout     time.Duration
	MetricsFile string
}

func (f *Flags) WithFlags(fs *pflag.FlagSet) *Flags {
	fs.Int64VarP(&f.GameId, "game-id", "g", 0, "Game Jolt game ID")
	fs.StringVarP(&f.Url, "url", "u", "", "Game Jolt game URL")
	fs.StringVarP(&f.Output, "output", "o", "", "Output file path (for single file downloads)")
	fs.StringVarP(&f.DownloadDir, "download-dir", "d", "downloads", "Directory to store downloads")
	fs.BoolVarP(&f.Verbose, "verbose", "v", false, "Enable verbose output")
	fs.BoolVarP(&f.JavaClass, "java-class", "j", false, "Print Java class information")
	fs.BoolVarP(&f.NoDownload, "no-download", "n", false, "Don't download files, just print info")
	fs.BoolVarP(&f.CheerpJ, "cheerpj", "c", false, "Generate CheerpJ HTML file for running Java applets in modern browsers")
	fs.StringVar(&f.ConfigPath, "config", "", "Set custom configuration file path")
	fs.BoolVar(&f.NoColor, "no-color", false, "Disable colored logs")
	fs.DurationVar(&f.Timeout, "timeout", 0, "API request timeout, 0 is no limit")
	fs.StringVar(&f.MetricsFile, "metrics-file", "", "Write run stats into a Prometheus textfile")
	return f
}

// Validate checks that the game is given exactly once.
func (f *Flags) Validate(fs *pflag.FlagSet) error {
	id, url := fs.Changed("game-id"), fs.Changed("url")
	switch {
	case id && url:
		return ErrTooManyGame
	case !id && !url:
		return ErrNoGame
	}
	return nil
}

// Apply puts explicitly set flags over the loaded config.
func (f *Flags) Apply(fs *pflag.FlagSet, c *Config) {
	if fs.Changed("download-dir") || c.Storage.DownloadDir == "" {
		c.Storage.DownloadDir = f.DownloadDir
	}
	if fs.Changed("timeout") {
		c.Http.Timeout = f.Timeout
	}
	if fs.Changed("metrics-file") {
		c.Monitoring.MetricsFile = f.MetricsFile
	}
	if f.Verbose {
		c.Log.Debug = true
	}
	if f.NoColor {
		c.Log.NoColor = true
	}
}
