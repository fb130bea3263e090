package gamejolt

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/joltarchive/joltarchive/pkg/config"
	"github.com/joltarchive/joltarchive/pkg/logger"
	"github.com/joltarchive/joltarchive/pkg/network/browser"
)

const maxBody = 16 << 20

// Api talks to the Game Jolt site API.
type Api struct {
	client  browser.Client
	conf    config.Api
	timeout time.Duration
	log     *logger.Logger
}

func NewApi(client browser.Client, conf config.Api, timeout time.Duration, log *logger.Logger) *Api {
	if log == nil {
		log = logger.Nop()
	}
	return &Api{client: client, conf: conf, timeout: timeout, log: log}
}

// Game fetches the game overview with the list of its builds.
func (a *Api) Game(ctx context.Context, id int64) (*Game, error) {
	u := fmt.Sprintf(a.conf.Overview, id)
	h := http.Header{
		"Accept":           {"application/json, text/plain, */*"},
		"Referer":          {fmt.Sprintf("%s/games/game/%d", a.conf.Site, id)},
		"X-Requested-With": {"XMLHttpRequest"},
	}

	payload, err := a.call(ctx, "game overview", http.MethodGet, u, nil, h)
	if err != nil {
		return nil, err
	}

	var game Game
	if err = json.Unmarshal(payload, &game); err != nil {
		return nil, &FetchError{Op: "game overview", Url: u, Err: err}
	}
	game.Id = id
	game.Raw = payload
	return &game, nil
}

// ResolveBuild gets the file descriptor of a build.
// It asks the site for a download URL with a one-time token in it and
// then exchanges that token with the game server for the file info.
// The game id is needed for the referer the site expects.
func (a *Api) ResolveBuild(ctx context.Context, buildId, gameId int64) (*ResolvedFile, error) {
	link, err := a.downloadUrl(ctx, buildId, gameId)
	if err != nil {
		return nil, err
	}

	token, ok := TokenFromUrl(link)
	if !ok {
		return nil, &FetchError{Op: "build download url", Url: link, Err: ErrNoToken}
	}

	gs, err := a.gameServer(ctx, token, gameId)
	if err != nil {
		return nil, err
	}
	return gs.File(), nil
}

func (a *Api) downloadUrl(ctx context.Context, buildId, gameId int64) (string, error) {
	u := fmt.Sprintf(a.conf.Build, buildId)
	h := http.Header{
		"Accept":       {"image/webp,*/*"},
		"Content-Type": {"application/json"},
		"Referer":      {fmt.Sprintf("%s/games/%d", a.conf.Site, gameId)},
	}
	if site, err := url.Parse(a.conf.Site); err == nil && site.Host != "" {
		h.Set("Alt-Used", site.Host)
	}

	payload, err := a.call(ctx, "build download url", http.MethodPost, u, []byte("{}"), h)
	if err != nil {
		return "", err
	}

	var out struct {
		Url string `json:"url"`
	}
	if err = json.Unmarshal(payload, &out); err != nil {
		return "", &FetchError{Op: "build download url", Url: u, Err: err}
	}
	if out.Url == "" {
		return "", &FetchError{Op: "build download url", Url: u, Err: ErrNoUrl}
	}
	return out.Url, nil
}

func (a *Api) gameServer(ctx context.Context, token string, gameId int64) (*GameServer, error) {
	u := fmt.Sprintf(a.conf.Gameserver, url.PathEscape(token))
	h := http.Header{
		"Accept":           {"application/json, text/plain, */*"},
		"Referer":          {fmt.Sprintf("%s/games/%d", a.conf.Site, gameId)},
		"X-Requested-With": {"XMLHttpRequest"},
	}

	payload, err := a.call(ctx, "gameserver", http.MethodGet, u, nil, h)
	if err != nil {
		return nil, err
	}

	var gs GameServer
	if err = json.Unmarshal(payload, &gs); err != nil {
		return nil, &FetchError{Op: "gameserver", Url: u, Err: err}
	}
	return &gs, nil
}

// call makes an API request and returns the unwrapped response payload.
func (a *Api) call(ctx context.Context, op, method, u string, body []byte, h http.Header) (json.RawMessage, error) {
	if a.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.timeout)
		defer cancel()
	}

	var resp *http.Response
	var err error
	if method == http.MethodPost {
		resp, err = a.client.Post(ctx, u, body, h)
	} else {
		resp, err = a.client.Get(ctx, u, h)
	}
	if err != nil {
		return nil, &FetchError{Op: op, Url: u, Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &FetchError{Op: op, Url: u, Err: &StatusError{Code: resp.StatusCode, Status: resp.Status}}
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		return nil, &FetchError{Op: op, Url: u, Err: err}
	}

	var envelope struct {
		Payload json.RawMessage `json:"payload"`
	}
	if err = json.Unmarshal(data, &envelope); err != nil {
		return nil, &FetchError{Op: op, Url: u, Err: fmt.Errorf("malformed json: %w", err)}
	}
	a.log.Debug().Str("op", op).RawJSON("response", data).Msgf("[api] %v", u)

	if len(envelope.Payload) == 0 || string(envelope.Payload) == "null" {
		return nil, &FetchError{Op: op, Url: u, Err: ErrNoPayload}
	}
	return envelope.Payload, nil
}

// TokenFromUrl takes the download token out of a URL.
// Usually it's a plain query param, but the site may also hand out
// bare token links like https://gamejolt.net/?token=XYZ, for those
// the query is scanned by hand as it may not be well-formed.
func TokenFromUrl(raw string) (string, bool) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", false
	}
	if token := u.Query().Get("token"); token != "" {
		return token, true
	}
	if strings.EqualFold(u.Hostname(), "gamejolt.net") && (u.Path == "" || u.Path == "/") {
		return scanToken(u.RawQuery)
	}
	return "", false
}

func scanToken(query string) (string, bool) {
	for _, pair := range strings.FieldsFunc(query, func(r rune) bool { return r == '&' || r == ';' }) {
		k, v, _ := strings.Cut(pair, "=")
		if k != "token" {
			continue
		}
		if uv, err := url.QueryUnescape(v); err == nil {
			v = uv
		}
		if v != "" {
			return v, true
		}
	}
	return "", false
}
