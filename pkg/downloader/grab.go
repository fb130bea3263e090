package downloader

import (
	"context"
	"net/http"
	"time"

	"github.com/cavaliercoder/grab"
)

const (
	DefaultBufferSize = 8192
	DefaultInterval   = 250 * time.Millisecond
)

// GrabBackend streams files with the grab library.
type GrabBackend struct {
	client     *grab.Client
	header     http.Header
	bufferSize int
	interval   time.Duration
}

func NewGrabBackend(hc *http.Client, header http.Header, bufferSize int, interval time.Duration) GrabBackend {
	if bufferSize <= 0 {
		bufferSize = DefaultBufferSize
	}
	if interval <= 0 {
		interval = DefaultInterval
	}
	c := grab.NewClient()
	if hc != nil {
		c.HTTPClient = hc
	}
	// grab puts its own agent otherwise
	c.UserAgent = header.Get("User-Agent")
	return GrabBackend{client: c, header: header, bufferSize: bufferSize, interval: interval}
}

func (g GrabBackend) Request(ctx context.Context, dest string, url string, progress Progress) (int64, error) {
	req, err := grab.NewRequest(dest, url)
	if err != nil {
		return 0, err
	}
	req = req.WithContext(ctx)
	req.HTTPRequest.Header = g.header.Clone()
	if req.HTTPRequest.Header == nil {
		req.HTTPRequest.Header = http.Header{}
	}
	req.BufferSize = g.bufferSize
	req.NoResume = true
	req.IgnoreRemoteTime = true

	// returns after the response headers, the body goes in the background
	resp := g.client.Do(req)
	if resp.IsComplete() && resp.Err() != nil {
		return 0, resp.Err()
	}
	progress.Start(resp.Size())

	t := time.NewTicker(g.interval)
	defer t.Stop()

Loop:
	for {
		select {
		case <-t.C:
			progress.Update(resp.BytesComplete(), resp.Size())
		case <-resp.Done:
			break Loop
		}
	}

	if err := resp.Err(); err != nil {
		progress.Fail(err)
		return resp.BytesComplete(), err
	}
	progress.Finish(resp.BytesComplete(), resp.Size())
	return resp.BytesComplete(), nil
}
