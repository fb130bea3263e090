package browser

import (
	"crypto/x509"
	"net/http"
)

type (
	Options struct {
		Profile        Profile
		UserAgent      string
		AcceptLanguage string
		// Origin is sent with every request, as a page script would do.
		Origin string
		// a custom cert pool, nil is the system one
		RootCAs *x509.CertPool
		// a transport to use instead of the browser-like one
		Transport http.RoundTripper
	}
	Option func(*Options)
)

func (o *Options) override(options ...Option) {
	for _, opt := range options {
		opt(o)
	}
}

func WithProfile(p Profile) Option              { return func(o *Options) { o.Profile = p } }
func WithUserAgent(ua string) Option            { return func(o *Options) { o.UserAgent = ua } }
func WithAcceptLanguage(lang string) Option     { return func(o *Options) { o.AcceptLanguage = lang } }
func WithOrigin(origin string) Option           { return func(o *Options) { o.Origin = origin } }
func WithRootCAs(pool *x509.CertPool) Option    { return func(o *Options) { o.RootCAs = pool } }
func WithTransport(rt http.RoundTripper) Option { return func(o *Options) { o.Transport = rt } }
