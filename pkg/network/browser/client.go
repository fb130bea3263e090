package browser

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/cookiejar"

	utls "github.com/refraction-networking/utls"
	"golang.org/x/net/publicsuffix"
)

// Client is what the archiver needs from the network.
// Headers are given per call and never stick between calls.
type Client interface {
	Get(ctx context.Context, url string, header http.Header) (*http.Response, error)
	Post(ctx context.Context, url string, body []byte, header http.Header) (*http.Response, error)
}

// Session is a Client that looks like a browser tab to the server.
// It keeps cookies and connections between calls.
type Session struct {
	client *http.Client
	base   http.Header
}

func New(options ...Option) (*Session, error) {
	opts := Options{Profile: Chrome}
	opts.override(options...)

	rt := opts.Transport
	if rt == nil {
		rt = newTransport(opts.Profile.Hello, &utls.Config{RootCAs: opts.RootCAs})
	}

	jar, err := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
	if err != nil {
		return nil, err
	}

	base := opts.Profile.Header.Clone()
	if base == nil {
		base = http.Header{}
	}
	ua := opts.Profile.UserAgent
	if opts.UserAgent != "" {
		ua = opts.UserAgent
	}
	if ua != "" {
		base.Set("User-Agent", ua)
	}
	if opts.AcceptLanguage != "" {
		base.Set("Accept-Language", opts.AcceptLanguage)
	}
	if opts.Origin != "" {
		base.Set("Origin", opts.Origin)
	}

	return &Session{
		client: &http.Client{Transport: decoder{next: rt}, Jar: jar},
		base:   base,
	}, nil
}

// Header returns a fresh set of browser headers with extra on top.
func (s *Session) Header(extra http.Header) http.Header {
	h := s.base.Clone()
	for k, v := range extra {
		h[http.CanonicalHeaderKey(k)] = append([]string(nil), v...)
	}
	return h
}

// HTTPClient exposes the underlying client for the code
// that drives requests on its own (file transfers).
func (s *Session) HTTPClient() *http.Client { return s.client }

func (s *Session) Get(ctx context.Context, url string, header http.Header) (*http.Response, error) {
	return s.do(ctx, http.MethodGet, url, nil, header)
}

func (s *Session) Post(ctx context.Context, url string, body []byte, header http.Header) (*http.Response, error) {
	return s.do(ctx, http.MethodPost, url, body, header)
}

func (s *Session) do(ctx context.Context, method, url string, body []byte, header http.Header) (*http.Response, error) {
	var r io.Reader
	if body != nil {
		r = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, url, r)
	if err != nil {
		return nil, err
	}
	req.Header = s.Header(header)
	return s.client.Do(req)
}

func (s *Session) Close() { s.client.CloseIdleConnections() }
