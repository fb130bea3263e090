// Package archiver walks the builds of a game, fetches the Java archives
// among them and makes the runner pages for applets.
package archiver

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"

	"github.com/joltarchive/joltarchive/pkg/cheerpj"
	"github.com/joltarchive/joltarchive/pkg/config"
	"github.com/joltarchive/joltarchive/pkg/downloader"
	"github.com/joltarchive/joltarchive/pkg/gamejolt"
	"github.com/joltarchive/joltarchive/pkg/logger"
	"github.com/joltarchive/joltarchive/pkg/monitoring"
	"github.com/joltarchive/joltarchive/pkg/os"
)

var ErrBusy = errors.New("the download dir is used by another run")

// Api is the part of the site API the archiver uses.
type Api interface {
	Game(ctx context.Context, id int64) (*gamejolt.Game, error)
	ResolveBuild(ctx context.Context, buildId, gameId int64) (*gamejolt.ResolvedFile, error)
}

type Downloader interface {
	Download(ctx context.Context, req downloader.Request) downloader.Outcome
}

// Emitter writes an applet runner page into dir.
type Emitter func(file *gamejolt.ResolvedFile, dir string, title string) (string, error)

type Options struct {
	// Output is an explicit path for the downloaded file.
	Output    string
	Download  bool
	JavaClass bool
	CheerpJ   bool
	Verbose   bool
	// LockDir is guarded against other runs while downloading, none if empty.
	LockDir string
}

type Archiver struct {
	api     Api
	dl      Downloader
	emit    Emitter
	out     io.Writer
	opts    Options
	log     *logger.Logger
	metrics *monitoring.Monitoring
}

// Summary counts what happened to a game.
type Summary struct {
	Builds   int
	Resolved int
	Skipped  int
	Jars     int
	Ok       int
	Cached   int
	Failed   int
	Bytes    int64
	Pages    int
}

// New makes an archiver printing its report into out.
// The log and metrics params are optional.
func New(api Api, dl Downloader, out io.Writer, opts Options, log *logger.Logger, metrics *monitoring.Monitoring) *Archiver {
	if log == nil {
		log = logger.Nop()
	}
	if metrics == nil {
		metrics = monitoring.New(config.Monitoring{}, "archiver", log)
	}
	return &Archiver{api: api, dl: dl, emit: cheerpj.Emit, out: out, opts: opts, log: log, metrics: metrics}
}

// WithEmitter replaces the runner page writer.
func (a *Archiver) WithEmitter(e Emitter) *Archiver { a.emit = e; return a }

// ProcessGame prints the game info and archives its builds.
// Only a failure to get the game itself is returned as an error,
// the failed builds are reported and counted in the summary.
func (a *Archiver) ProcessGame(ctx context.Context, id int64) (Summary, error) {
	var s Summary

	if a.opts.Download && a.opts.LockDir != "" {
		unlock, err := a.lock()
		if err != nil {
			return s, err
		}
		defer unlock()
	}

	game, err := a.api.Game(ctx, id)
	if err != nil {
		a.log.Error().Err(err).Msgf("[arch] game %v", id)
		a.printf("Failed to retrieve game with ID %d\n", id)
		return s, err
	}
	a.metrics.Game()

	title := game.Title()
	a.printf("\nGame: %s (ID: %d)\n", title, id)
	a.printf("URL: %s\n", game.Microdata.Url)
	if a.opts.Verbose {
		a.printGame(game)
	}

	if len(game.Builds) == 0 {
		a.printf("No builds found for this game.\n")
		return s, nil
	}

	var applets []applet
	for i := range game.Builds {
		if ctx.Err() != nil {
			return s, ctx.Err()
		}
		build := &game.Builds[i]
		s.Builds++
		if a.opts.Verbose {
			a.printBuild(build)
		}

		file, err := a.api.ResolveBuild(ctx, build.Id, id)
		if err != nil {
			s.Skipped++
			a.metrics.Build(false)
			a.log.Warn().Err(err).Msgf("[arch] build %v skipped", build.Id)
			a.printf("Skipping build %d: %v\n", build.Id, err)
			continue
		}
		s.Resolved++
		a.metrics.Build(true)

		if file.HasAppletClass() && (a.opts.JavaClass || a.opts.CheerpJ) {
			applets = append(applets, newApplet(file))
		}

		if !a.opts.Download || !file.IsJar() {
			continue
		}
		s.Jars++
		if a.opts.Verbose {
			a.printf("JAR file detected: %s\n", file.Filename)
		}
		path, ok := a.download(ctx, file, title, &s)
		if ok && a.opts.CheerpJ && file.HasAppletClass() {
			a.page(file, filepath.Dir(path), title, &s)
		}
	}

	if a.opts.JavaClass && len(applets) > 0 {
		a.printf("\nJava Class Information:\n")
		for _, ap := range applets {
			ap.print(a.out)
		}
	}

	if a.opts.Download {
		if s.Jars == 0 {
			a.printf("No JAR files found for this game.\n")
		} else {
			a.printf("%d JAR %s found.\n", s.Jars, plural(s.Jars, "file", "files"))
		}
	}
	a.log.Info().Msgf("[arch] game %v done: %+v", id, s)
	return s, nil
}

func (a *Archiver) download(ctx context.Context, file *gamejolt.ResolvedFile, title string, s *Summary) (string, bool) {
	out := a.dl.Download(ctx, downloader.Request{
		Url:      file.DownloadUrl,
		Filename: file.Filename,
		Title:    title,
		Output:   a.opts.Output,
	})
	switch {
	case !out.Ok:
		s.Failed++
		a.metrics.Transfer(monitoring.Failed, out.Bytes)
		a.printf("%s\n", out.Message())
		return "", false
	case out.Cached:
		s.Cached++
		a.metrics.Transfer(monitoring.Cached, 0)
		a.printf("File already exists: %s\n", out.Path)
	default:
		s.Ok++
		s.Bytes += out.Bytes
		a.metrics.Transfer(monitoring.Ok, out.Bytes)
		a.printf("Downloaded to: %s\n", out.Path)
	}
	return out.Path, true
}

func (a *Archiver) page(file *gamejolt.ResolvedFile, dir string, title string, s *Summary) {
	path, err := a.emit(file, dir, title)
	if err != nil {
		a.log.Error().Err(err).Msgf("[arch] no runner page for build %v", file.BuildId)
		a.printf("%v\n", err)
		return
	}
	s.Pages++
	a.metrics.Page()
	a.printf("Created CheerpJ HTML file: %s\n", path)
}

func (a *Archiver) lock() (func(), error) {
	l, err := os.NewDirLock(a.opts.LockDir)
	if err != nil {
		return nil, err
	}
	ok, err := l.TryLock()
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("%w: %v", ErrBusy, l.Path())
	}
	a.log.Debug().Msgf("[arch] locked %v", l.Path())
	return func() {
		if err := l.Unlock(); err != nil {
			a.log.Warn().Err(err).Msgf("[arch] unlock %v", l.Path())
		}
	}, nil
}

func (a *Archiver) printf(format string, args ...any) { _, _ = fmt.Fprintf(a.out, format, args...) }

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
