package config

import "time"

// Config holds everything the archiver may be tuned with.
// The values come from config.yaml, then JOLTARCHIVE_ env vars, then CLI flags.
type Config struct {
	Api        Api
	Http       Http
	Storage    Storage
	Monitoring Monitoring
	Log        Log
}

// Api contains upstream endpoint templates.
type Api struct {
	// site root, used for referers and URL checks
	Site string `default:"https://gamejolt.com"`
	// a domain the game page URLs should belong to
	Domain     string `default:"gamejolt.com"`
	Overview   string `default:"https://gamejolt.com/site-api/web/discover/games/overview/%d?ignore"`
	Build      string `default:"https://gamejolt.com/site-api/web/discover/games/builds/get-download-url/%d"`
	Gameserver string `default:"https://gamejolt.net/site-api/gameserver/%s"`
}

type Http struct {
	// 0 means no limit
	Timeout time.Duration
	// chrome or firefox
	Browser        string `default:"chrome"`
	AcceptLanguage string `default:"en-GB,en;q=0.5"`
	// overrides the browser default
	UserAgent string
}

type Storage struct {
	DownloadDir string `default:"downloads"`
	// read chunk size for file transfers
	BufferSize int `default:"8192"`
	// how often the transfer progress is redrawn
	ProgressInterval time.Duration `default:"250ms"`
	// skips the download dir lock
	NoLock bool
}

type Monitoring struct {
	// a Prometheus textfile to write the run stats into
	MetricsFile string
}

type Log struct {
	Debug   bool
	NoColor bool
	// JSON lines instead of the console format
	Json bool
}
