package browser

import (
	"fmt"
	"net/http"
	"strings"

	utls "github.com/refraction-networking/utls"
)

// Profile is a browser the client pretends to be:
// its TLS ClientHello and the headers it sends with every request.
type Profile struct {
	Name      string
	Hello     utls.ClientHelloID
	UserAgent string
	Header    http.Header
}

var Chrome = Profile{
	Name:      "chrome",
	Hello:     utls.HelloChrome_Auto,
	UserAgent: "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0.0.0 Safari/537.36",
	Header: http.Header{
		"Accept-Encoding":    {"gzip, deflate, br"},
		"Sec-Ch-Ua":          {`"Chromium";v="124", "Google Chrome";v="124", "Not-A.Brand";v="99"`},
		"Sec-Ch-Ua-Mobile":   {"?0"},
		"Sec-Ch-Ua-Platform": {`"Windows"`},
		"Sec-Fetch-Dest":     {"empty"},
		"Sec-Fetch-Mode":     {"cors"},
		"Sec-Fetch-Site":     {"same-origin"},
		"Pragma":             {"no-cache"},
		"Cache-Control":      {"no-cache"},
		"Dnt":                {"1"},
	},
}

var Firefox = Profile{
	Name:      "firefox",
	Hello:     utls.HelloFirefox_Auto,
	UserAgent: "Mozilla/5.0 (Windows NT 10.0; Win64; x64; rv:125.0) Gecko/20100101 Firefox/125.0",
	Header: http.Header{
		"Accept-Encoding": {"gzip, deflate, br"},
		"Sec-Fetch-Dest":  {"empty"},
		"Sec-Fetch-Mode":  {"cors"},
		"Sec-Fetch-Site":  {"same-origin"},
		"Pragma":          {"no-cache"},
		"Cache-Control":   {"no-cache"},
		"Dnt":             {"1"},
		"Te":              {"trailers"},
	},
}

var profiles = map[string]Profile{
	Chrome.Name:  Chrome,
	Firefox.Name: Firefox,
}

func ProfileByName(name string) (Profile, error) {
	if name == "" {
		return Chrome, nil
	}
	if p, ok := profiles[strings.ToLower(name)]; ok {
		return p, nil
	}
	return Profile{}, fmt.Errorf("unknown browser profile %q", name)
}
