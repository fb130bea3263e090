package gamejolt

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/joltarchive/joltarchive/pkg/config"
)

var testConf = config.Api{
	Site:       "https://gamejolt.com",
	Domain:     "gamejolt.com",
	Overview:   "https://gamejolt.com/site-api/web/discover/games/overview/%d?ignore",
	Build:      "https://gamejolt.com/site-api/web/discover/games/builds/get-download-url/%d",
	Gameserver: "https://gamejolt.net/site-api/gameserver/%s",
}

type call struct {
	method string
	url    string
	body   string
	header http.Header
}

type reply struct {
	status int
	body   string
	err    error
}

// fakeClient answers with canned replies by URL.
type fakeClient struct {
	replies map[string]reply
	calls   []call
}

func (f *fakeClient) Get(_ context.Context, url string, h http.Header) (*http.Response, error) {
	return f.answer(http.MethodGet, url, nil, h)
}

func (f *fakeClient) Post(_ context.Context, url string, body []byte, h http.Header) (*http.Response, error) {
	return f.answer(http.MethodPost, url, body, h)
}

func (f *fakeClient) answer(method, url string, body []byte, h http.Header) (*http.Response, error) {
	f.calls = append(f.calls, call{method: method, url: url, body: string(body), header: h})
	r, ok := f.replies[url]
	if !ok {
		return nil, errors.New("connection refused")
	}
	if r.err != nil {
		return nil, r.err
	}
	status := r.status
	if status == 0 {
		status = http.StatusOK
	}
	return &http.Response{
		StatusCode: status,
		Status:     http.StatusText(status),
		Body:       io.NopCloser(strings.NewReader(r.body)),
		Header:     http.Header{},
	}, nil
}
