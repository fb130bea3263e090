package downloader

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

type recorder struct {
	mu       sync.Mutex
	started  bool
	initial  int64
	total    int64
	done     int64
	finished bool
	failed   error
}

func (r *recorder) Start(total int64) {
	r.mu.Lock()
	r.started, r.initial, r.total = true, total, total
	r.mu.Unlock()
}
func (r *recorder) Update(done, total int64) {
	r.mu.Lock()
	r.done, r.total = done, total
	r.mu.Unlock()
}
func (r *recorder) Finish(done, total int64) {
	r.mu.Lock()
	r.done, r.total, r.finished = done, total, true
	r.mu.Unlock()
}
func (r *recorder) Fail(err error) {
	r.mu.Lock()
	r.failed = err
	r.mu.Unlock()
}

func newServer(t *testing.T, gets *int32, data []byte, chunked bool) *httptest.Server {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			atomic.AddInt32(gets, 1)
		}
		if r.URL.Path == "/missing.jar" {
			http.NotFound(w, r)
			return
		}
		if r.Header.Get("Referer") != "https://gamejolt.com" {
			w.WriteHeader(http.StatusForbidden)
			return
		}
		if chunked {
			half := len(data) / 2
			_, _ = w.Write(data[:half])
			w.(http.Flusher).Flush()
			_, _ = w.Write(data[half:])
			return
		}
		http.ServeContent(w, r, "game.jar", time.Time{}, bytes.NewReader(data))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func newDownloader(root string, rec *recorder) *Downloader {
	return New(root, &http.Client{}, Options{
		Header:   http.Header{"Referer": {"https://gamejolt.com"}, "Accept": {"*/*"}, "User-Agent": {"test"}},
		Progress: func(Request) Progress { return rec },
	})
}

func TestDownload(t *testing.T) {
	var gets int32
	data := bytes.Repeat([]byte("jar!"), 10000)
	srv := newServer(t, &gets, data, false)

	root := filepath.Join(t.TempDir(), "downloads")
	rec := &recorder{}
	d := newDownloader(root, rec)

	out := d.Download(context.Background(), Request{Url: srv.URL + "/game.jar", Filename: "game.jar", Title: "My Game!"})
	if !out.Ok {
		t.Fatalf("download failed: %v", out.Message())
	}

	want := filepath.Join(root, "My_Game_", "game.jar")
	if out.Path != want {
		t.Errorf("expected path %v, got %v", want, out.Path)
	}
	got, err := os.ReadFile(out.Path)
	if err != nil || !bytes.Equal(got, data) {
		t.Errorf("file content mismatch (%v)", err)
	}
	if out.Bytes != int64(len(data)) {
		t.Errorf("expected %v bytes, got %v", len(data), out.Bytes)
	}
	if !rec.started || !rec.finished || rec.total != int64(len(data)) || rec.done != int64(len(data)) {
		t.Errorf("wrong progress %+v", rec)
	}
	assertNoParts(t, filepath.Dir(want))
}

func TestDownloadIsIdempotent(t *testing.T) {
	var gets int32
	srv := newServer(t, &gets, []byte("0123456789"), false)
	d := newDownloader(t.TempDir(), &recorder{})
	req := Request{Url: srv.URL + "/game.jar", Filename: "game.jar", Title: "Game"}

	first := d.Download(context.Background(), req)
	second := d.Download(context.Background(), req)

	if !first.Ok || first.Cached {
		t.Errorf("first download should transfer the file: %+v", first)
	}
	if !second.Ok || !second.Cached || second.Path != first.Path {
		t.Errorf("second download should be skipped: %+v", second)
	}
	if n := atomic.LoadInt32(&gets); n != 1 {
		t.Errorf("expected a single request, got %v", n)
	}
}

func TestDownloadWithoutContentLength(t *testing.T) {
	var gets int32
	data := bytes.Repeat([]byte("x"), 4096)
	srv := newServer(t, &gets, data, true)
	rec := &recorder{}
	d := newDownloader(t.TempDir(), rec)

	out := d.Download(context.Background(), Request{Url: srv.URL + "/game.jar", Filename: "game.jar", Title: "Game"})
	if !out.Ok {
		t.Fatalf("download failed: %v", out.Message())
	}
	if rec.initial > 0 {
		t.Errorf("size should be unknown, got %v", rec.initial)
	}
	if info, err := os.Stat(out.Path); err != nil || info.Size() != int64(len(data)) {
		t.Errorf("wrong file %v %v", info, err)
	}
}

func TestDownloadFailure(t *testing.T) {
	var gets int32
	srv := newServer(t, &gets, nil, false)
	root := t.TempDir()
	d := newDownloader(root, &recorder{})

	out := d.Download(context.Background(), Request{Url: srv.URL + "/missing.jar", Filename: "missing.jar", Title: "Game"})
	if out.Ok {
		t.Fatalf("expected a failure")
	}
	var te *TransferError
	if !errors.As(out.Err, &te) {
		t.Errorf("expected a transfer error, got %v", out.Err)
	}
	if !strings.HasPrefix(out.Message(), "error downloading file") {
		t.Errorf("unexpected message %v", out.Message())
	}
	if _, err := os.Stat(out.Path); !os.IsNotExist(err) {
		t.Errorf("nothing should be left at %v", out.Path)
	}
	assertNoParts(t, filepath.Join(root, "Game"))

	// a rerun must try again, not take a broken file for a done one
	out = d.Download(context.Background(), Request{Url: srv.URL + "/missing.jar", Filename: "missing.jar", Title: "Game"})
	if out.Ok || atomic.LoadInt32(&gets) != 2 {
		t.Errorf("the failed download should be retried")
	}
}

func TestDownloadOutputOverride(t *testing.T) {
	var gets int32
	srv := newServer(t, &gets, []byte("data"), false)
	dir := t.TempDir()
	custom := filepath.Join(dir, "a", "b", "custom.jar")
	d := newDownloader(filepath.Join(dir, "downloads"), &recorder{})

	out := d.Download(context.Background(), Request{Url: srv.URL + "/game.jar", Filename: "game.jar", Title: "Game", Output: custom})
	if !out.Ok || out.Path != custom {
		t.Fatalf("expected %v, got %+v", custom, out)
	}
	if _, err := os.Stat(filepath.Join(dir, "downloads")); !os.IsNotExist(err) {
		t.Errorf("the default dir should not be made with an override")
	}
}

func TestDownloadUnreachableDestination(t *testing.T) {
	var gets int32
	srv := newServer(t, &gets, []byte("data"), false)
	file := filepath.Join(t.TempDir(), "file")
	if err := os.WriteFile(file, nil, 0644); err != nil {
		t.Fatal(err)
	}
	d := newDownloader(t.TempDir(), &recorder{})

	out := d.Download(context.Background(), Request{Url: srv.URL + "/game.jar", Filename: "game.jar", Output: filepath.Join(file, "game.jar")})
	if out.Ok || out.Cached {
		t.Errorf("a path under a file can't be taken for a done download: %+v", out)
	}
	var te *TransferError
	if !errors.As(out.Err, &te) {
		t.Errorf("expected a transfer error, got %v", out.Err)
	}
}

func TestDestination(t *testing.T) {
	d := New("downloads", nil, Options{})
	tests := []struct {
		req  Request
		path string
		err  bool
	}{
		{req: Request{Filename: "game.jar", Title: "My Game"}, path: filepath.Join("downloads", "My_Game", "game.jar")},
		{req: Request{Filename: "../../etc/passwd", Title: "x"}, path: filepath.Join("downloads", "x", "passwd")},
		{req: Request{Filename: "", Title: "x"}, err: true},
		{req: Request{Filename: "a.jar", Output: "/tmp/z.jar"}, path: "/tmp/z.jar"},
	}
	for _, test := range tests {
		path, err := d.Destination(test.req)
		if test.err {
			if err == nil {
				t.Errorf("%+v: expected error", test.req)
			}
			continue
		}
		if err != nil || path != test.path {
			t.Errorf("%+v: expected %v, got %v %v", test.req, test.path, path, err)
		}
	}
}

func TestSafeName(t *testing.T) {
	tests := map[string]string{
		"My Game":              "My_Game",
		"My Game!":             "My_Game_",
		"  padded  ":           "padded",
		"a/b\\c:d":             "a_b_c_d",
		"Déjà Vu":              "D_j__Vu",
		"keep-dash_underscore": "keep-dash_underscore",
		"tab\there":            "tab_here",
		"..":                   "__",
		"":                     "_",
		"   ":                  "_",
	}
	for in, want := range tests {
		if got := SafeName(in); got != want {
			t.Errorf("%q: expected %q, got %q", in, want, got)
		}
	}
}

func TestSafeNameIsPathSegment(t *testing.T) {
	for _, in := range []string{"a/b", "../..", "x\x00y", "日本語", "C:\\games", " . "} {
		got := SafeName(in)
		if got == "" || strings.ContainsAny(got, "/\\. \x00") {
			t.Errorf("%q gave an unsafe segment %q", in, got)
		}
		for _, r := range got {
			if !(r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9' || r == '-' || r == '_') {
				t.Errorf("%q: unexpected rune %q in %q", in, r, got)
			}
		}
	}
}

func assertNoParts(t *testing.T, dir string) {
	t.Helper()
	parts, _ := filepath.Glob(filepath.Join(dir, "*.part"))
	if len(parts) > 0 {
		t.Errorf("partial files left: %v", parts)
	}
}
