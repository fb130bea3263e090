package browser

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	utls "github.com/refraction-networking/utls"
	"golang.org/x/net/http2"
)

// transport is an http.RoundTripper that opens TLS connections with
// a browser ClientHello and then speaks whatever protocol was negotiated
// through ALPN, h2 or http/1.1.
type transport struct {
	hello  utls.ClientHelloID
	tls    *utls.Config
	dialer net.Dialer

	h1 *http.Transport
	h2 *http2.Transport

	mu sync.Mutex
	// negotiated protocol per host:port
	protos map[string]string
	h2s    map[string]*http2.ClientConn
	// fresh http/1.1 connections waiting to be picked up by h1
	parked map[string]net.Conn
}

var errUnexpectedH2 = errors.New("server negotiated h2 on an http/1.1 connection")

func newTransport(hello utls.ClientHelloID, conf *utls.Config) *transport {
	t := &transport{
		hello:  hello,
		tls:    conf,
		dialer: net.Dialer{Timeout: 30 * time.Second, KeepAlive: 30 * time.Second},
		h2:     &http2.Transport{},
		protos: map[string]string{},
		h2s:    map[string]*http2.ClientConn{},
		parked: map[string]net.Conn{},
	}
	t.h1 = &http.Transport{
		DialContext:         t.dialer.DialContext,
		DialTLSContext:      t.dialH1,
		MaxIdleConns:        10,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 10 * time.Second,
	}
	return t
}

func (t *transport) RoundTrip(req *http.Request) (*http.Response, error) {
	if req.URL.Scheme != "https" {
		return t.h1.RoundTrip(req)
	}

	addr := address(req)

	t.mu.Lock()
	proto := t.protos[addr]
	cc := t.h2s[addr]
	if cc != nil && !cc.CanTakeNewRequest() {
		delete(t.h2s, addr)
		cc = nil
	}
	t.mu.Unlock()

	if proto == "http/1.1" {
		return t.h1.RoundTrip(req)
	}
	if cc != nil {
		return cc.RoundTrip(req)
	}

	conn, err := t.dial(req.Context(), addr)
	if err != nil {
		return nil, err
	}

	if conn.ConnectionState().NegotiatedProtocol == http2.NextProtoTLS {
		cc, err := t.h2.NewClientConn(conn)
		if err != nil {
			_ = conn.Close()
			return nil, err
		}
		t.mu.Lock()
		t.protos[addr] = http2.NextProtoTLS
		t.h2s[addr] = cc
		t.mu.Unlock()
		return cc.RoundTrip(req)
	}

	t.mu.Lock()
	t.protos[addr] = "http/1.1"
	t.parked[addr] = conn
	t.mu.Unlock()
	return t.h1.RoundTrip(req)
}

func (t *transport) dial(ctx context.Context, addr string) (*utls.UConn, error) {
	raw, err := t.dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		return nil, err
	}
	host, _, err := net.SplitHostPort(addr)
	if err != nil {
		_ = raw.Close()
		return nil, err
	}

	conf := t.tls.Clone()
	conf.ServerName = host
	conn := utls.UClient(raw, conf, t.hello)
	if err = conn.HandshakeContext(ctx); err != nil {
		_ = raw.Close()
		return nil, fmt.Errorf("tls handshake with %v: %w", addr, err)
	}
	return conn, nil
}

// dialH1 is used by the http/1.1 transport for TLS connections,
// taking a parked one first.
func (t *transport) dialH1(ctx context.Context, _, addr string) (net.Conn, error) {
	t.mu.Lock()
	conn, ok := t.parked[addr]
	delete(t.parked, addr)
	t.mu.Unlock()
	if ok {
		return conn, nil
	}

	c, err := t.dial(ctx, addr)
	if err != nil {
		return nil, err
	}
	if c.ConnectionState().NegotiatedProtocol == http2.NextProtoTLS {
		_ = c.Close()
		return nil, errUnexpectedH2
	}
	return c, nil
}

func (t *transport) CloseIdleConnections() {
	t.mu.Lock()
	defer t.mu.Unlock()
	for addr, cc := range t.h2s {
		_ = cc.Close()
		delete(t.h2s, addr)
	}
	for addr, c := range t.parked {
		_ = c.Close()
		delete(t.parked, addr)
	}
	t.h1.CloseIdleConnections()
}

func address(req *http.Request) string {
	port := req.URL.Port()
	if port == "" {
		port = "443"
		if req.URL.Scheme == "http" {
			port = "80"
		}
	}
	return net.JoinHostPort(req.URL.Hostname(), port)
}
