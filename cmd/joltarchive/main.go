package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/joltarchive/joltarchive/pkg/archiver"
	"github.com/joltarchive/joltarchive/pkg/config"
	"github.com/joltarchive/joltarchive/pkg/downloader"
	"github.com/joltarchive/joltarchive/pkg/gamejolt"
	"github.com/joltarchive/joltarchive/pkg/logger"
	"github.com/joltarchive/joltarchive/pkg/monitoring"
	"github.com/joltarchive/joltarchive/pkg/network/browser"
	jos "github.com/joltarchive/joltarchive/pkg/os"
	flag "github.com/spf13/pflag"
)

var Version = "?"

const (
	exitOk = iota
	exitFail
	exitUsage
)

func main() {
	ctx, cancel := jos.WithTermination(context.Background())
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr, nil)
	cancel()
	os.Exit(code)
}

// run is the whole program, rt replaces the network when set.
func run(ctx context.Context, args []string, stdout, stderr io.Writer, rt http.RoundTripper) int {
	fs := flag.NewFlagSet("joltarchive", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		_, _ = fmt.Fprintf(stderr, "GameJolt Archiver - Download games from GameJolt\n\nUsage of joltarchive:\n")
		fs.PrintDefaults()
	}
	flags := new(config.Flags).WithFlags(fs)
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitOk
		}
		return exitUsage
	}
	if err := flags.Validate(fs); err != nil {
		_, _ = fmt.Fprintf(stderr, "error: %v\n", err)
		fs.Usage()
		return exitUsage
	}

	conf, err := config.Load(flags.ConfigPath)
	if err != nil {
		_, _ = fmt.Fprintf(stderr, "error: config: %v\n", err)
		return exitUsage
	}
	flags.Apply(fs, conf)

	log := newLogger(conf.Log, stderr)
	log.Debug().Msgf("version %s", Version)
	if log.IsDebug() {
		log.Debug().Msgf("config: %+v", *conf)
	}

	id, err := gameId(flags, conf.Api.Domain)
	if err != nil {
		log.Debug().Err(err).Msg("bad game")
		if flags.Url != "" {
			_, _ = fmt.Fprintf(stdout, "Could not extract game ID from URL: %s\n", flags.Url)
		} else {
			_, _ = fmt.Fprintf(stdout, "Invalid game ID: %d\n", flags.GameId)
		}
		return exitFail
	}

	session, err := newSession(conf, rt)
	if err != nil {
		log.Error().Err(err).Msg("browser session")
		return exitFail
	}
	defer session.Close()

	metrics := monitoring.New(conf.Monitoring, "stats", log)
	api := gamejolt.NewApi(session, conf.Api, conf.Http.Timeout, log)
	dl := downloader.New(conf.Storage.DownloadDir, session.HTTPClient(), downloader.Options{
		Header:     session.Header(http.Header{"Accept": {"*/*"}, "Referer": {conf.Api.Site}}),
		BufferSize: conf.Storage.BufferSize,
		Interval:   conf.Storage.ProgressInterval,
		Progress:   func(r downloader.Request) downloader.Progress { return downloader.NewBar(stdout, r.Filename) },
		Log:        log,
	})

	opts := archiver.Options{
		Output:    flags.Output,
		Download:  !flags.NoDownload,
		JavaClass: flags.JavaClass,
		CheerpJ:   flags.CheerpJ,
		Verbose:   flags.Verbose,
	}
	if !conf.Storage.NoLock {
		opts.LockDir = conf.Storage.DownloadDir
	}

	_, err = archiver.New(api, dl, stdout, opts, log, metrics).ProcessGame(ctx, id)

	if e := metrics.Write(); e != nil {
		log.Warn().Err(e).Msg("stats")
	}
	// a game that can't be fetched is reported, not fatal
	if errors.Is(err, archiver.ErrBusy) {
		_, _ = fmt.Fprintf(stderr, "error: %v\n", err)
		return exitFail
	}
	return exitOk
}

func gameId(flags *config.Flags, domain string) (int64, error) {
	if flags.Url != "" {
		return gamejolt.GameIdFromUrl(flags.Url, domain)
	}
	return gamejolt.GameId(flags.GameId)
}

func newLogger(conf config.Log, w io.Writer) *logger.Logger {
	if conf.Json {
		return logger.New(w, conf.Debug)
	}
	return logger.NewConsole(w, conf.Debug, "arch", conf.NoColor)
}

func newSession(conf *config.Config, rt http.RoundTripper) (*browser.Session, error) {
	profile, err := browser.ProfileByName(conf.Http.Browser)
	if err != nil {
		return nil, err
	}
	options := []browser.Option{
		browser.WithProfile(profile),
		browser.WithAcceptLanguage(conf.Http.AcceptLanguage),
		browser.WithOrigin(conf.Api.Site),
	}
	if conf.Http.UserAgent != "" {
		options = append(options, browser.WithUserAgent(conf.Http.UserAgent))
	}
	if rt != nil {
		options = append(options, browser.WithTransport(rt))
	}
	return browser.New(options...)
}
