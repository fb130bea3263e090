package downloader

import (
	"context"
	"fmt"
	"net/http"
	"path/filepath"
	"time"

	"github.com/gofrs/uuid"
	"github.com/joltarchive/joltarchive/pkg/logger"
	"github.com/joltarchive/joltarchive/pkg/os"
)

// Request is a single file to put on disk.
type Request struct {
	Url      string
	Filename string
	// Title names the default subdir of the download root.
	Title string
	// Output is an explicit file path overriding the default one.
	Output string
}

// Outcome is how a transfer ended.
type Outcome struct {
	Ok   bool
	Path string
	// Cached is set when the file was already there.
	Cached bool
	// Bytes actually transferred
	Bytes int64
	Err   error
}

// Message is the final path or the error text.
func (o Outcome) Message() string {
	if o.Ok {
		return o.Path
	}
	if o.Err != nil {
		return o.Err.Error()
	}
	return "unknown error"
}

// client fetches url into the file at dest reporting the progress.
type client interface {
	Request(ctx context.Context, dest string, url string, progress Progress) (int64, error)
}

type Downloader struct {
	backend client
	root    string
	log     *logger.Logger
	// new builds a progress reporter for a transfer
	progress func(Request) Progress
}

type Options struct {
	Header     http.Header
	BufferSize int
	// how often the progress is polled
	Interval time.Duration
	Progress func(Request) Progress
	Log      *logger.Logger
}

// New makes a downloader putting files under the root dir.
// The hc param is the HTTP client used for the transfers.
func New(root string, hc *http.Client, opts Options) *Downloader {
	if opts.Log == nil {
		opts.Log = logger.Nop()
	}
	if opts.Progress == nil {
		opts.Progress = func(Request) Progress { return NoProgress{} }
	}
	return &Downloader{
		backend:  NewGrabBackend(hc, opts.Header, opts.BufferSize, opts.Interval),
		root:     root,
		log:      opts.Log,
		progress: opts.Progress,
	}
}

// Destination returns the path the requested file will be saved to.
func (d *Downloader) Destination(req Request) (string, error) {
	if req.Output != "" {
		return req.Output, nil
	}
	name := filepath.Base(filepath.Clean("/" + req.Filename))
	if name == "/" || name == "." || name == "" {
		return "", fmt.Errorf("bad file name %q", req.Filename)
	}
	return filepath.Join(d.root, SafeName(req.Title), name), nil
}

// Download saves the file from the request URL.
// Already existing files are never downloaded again.
// The file is written under a temporary name first, so that
// an interrupted transfer doesn't leave a file that looks complete.
func (d *Downloader) Download(ctx context.Context, req Request) Outcome {
	dest, err := d.Destination(req)
	if err != nil {
		return d.fail(req, dest, err)
	}

	if os.Exists(dest) {
		d.log.Info().Msgf("[dl] file already exists: %v", dest)
		return Outcome{Ok: true, Path: dest, Cached: true}
	}

	if err = os.MakeParentDir(dest); err != nil {
		return d.fail(req, dest, err)
	}

	id, err := uuid.NewV4()
	if err != nil {
		return d.fail(req, dest, err)
	}
	part := fmt.Sprintf("%s.%s.part", dest, id)

	d.log.Debug().Msgf("[dl] <<< %v -> %v", req.Url, part)
	n, err := d.backend.Request(ctx, part, req.Url, d.progress(req))
	if err != nil {
		if e := os.Remove(part); e != nil && !os.IsNotExist(e) {
			d.log.Warn().Err(e).Msgf("[dl] couldn't remove a partial file %v", part)
		}
		return d.fail(req, dest, err)
	}

	if err = os.Rename(part, dest); err != nil {
		_ = os.Remove(part)
		return d.fail(req, dest, err)
	}

	d.log.Info().Msgf("[dl] saved %v (%v bytes)", dest, n)
	return Outcome{Ok: true, Path: dest, Bytes: n}
}

func (d *Downloader) fail(req Request, dest string, err error) Outcome {
	te := &TransferError{Url: req.Url, Path: dest, Err: err}
	d.log.Error().Err(err).Msgf("[dl] download of %v failed", req.Url)
	return Outcome{Path: dest, Err: te}
}
