package gamejolt

import (
	"net/url"
	"regexp"
	"strconv"
	"strings"
)

const Domain = "gamejolt.com"

var gamePathId = regexp.MustCompile(`/games/[^/]+/(\d+)/?`)

// GameIdFromUrl extracts the game id from a game page URL like
// https://gamejolt.com/games/some-slug/12345.
// The domain param is the site domain the URL host should belong to.
func GameIdFromUrl(raw string, domain string) (int64, error) {
	if domain == "" {
		domain = Domain
	}
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return 0, &ResolutionError{Input: raw, Err: err}
	}

	if !isHostOf(u.Hostname(), domain) {
		return 0, &ResolutionError{Input: raw, Err: ErrBadHost}
	}

	path := strings.Split(strings.Trim(u.Path, "/"), "/")
	if len(path) < 3 || path[0] != "games" {
		return 0, &ResolutionError{Input: raw, Err: ErrBadPath}
	}

	if last := path[len(path)-1]; isDigits(last) {
		if id, err := strconv.ParseInt(last, 10, 64); err == nil && id > 0 {
			return id, nil
		}
	}

	if m := gamePathId.FindStringSubmatch(u.Path); m != nil {
		if id, err := strconv.ParseInt(m[1], 10, 64); err == nil && id > 0 {
			return id, nil
		}
	}

	return 0, &ResolutionError{Input: raw, Err: ErrNoId}
}

// GameId checks a directly given game id.
func GameId(id int64) (int64, error) {
	if id <= 0 {
		return 0, &ResolutionError{Input: strconv.FormatInt(id, 10), Err: ErrBadId}
	}
	return id, nil
}

func isHostOf(host, domain string) bool {
	host = strings.ToLower(strings.TrimSuffix(host, "."))
	domain = strings.ToLower(domain)
	return host == domain || strings.HasSuffix(host, "."+domain)
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func isJar(name string) bool { return strings.HasSuffix(strings.ToLower(name), ".jar") }
