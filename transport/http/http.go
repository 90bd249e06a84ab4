// Copyright 2026 The Netloc Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

/*
Package http implements a transport opening HTTP clients pinned to an
endpoint.
*/
package http

import (
	"context"
	"crypto/tls"
	"net"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/netloc/netloc-go/model"
	"github.com/netloc/netloc-go/transport"
	"github.com/netloc/netloc-go/transport/tcp"
)

// defaults
const (
	defaultTimeout   = time.Second * 5 // timeout for http requests
	defaultProbePath = "/"
)

// RequestCallbackFn receives the initialized probe request before it is sent
// over the wire. This allows one to plug in additional headers or do other
// customization.
type RequestCallbackFn func(*http.Request)

// Conn is an *http.Client whose requests all go to one endpoint.
type Conn struct {
	*http.Client

	// BaseURL is the scheme and authority of the endpoint, e.g.
	// "https://[::1]:8443".
	BaseURL string
}

// Close closes idle connections held by the client.
func (c *Conn) Close() error {
	c.Client.CloseIdleConnections()
	return nil
}

// Transport opens one pinned *http.Client per Connect call and sends a probe
// request through it before returning.
type Transport struct {
	timeout     time.Duration
	probePath   string
	tlsConfig   *tls.Config
	dialer      *net.Dialer
	reqCallback RequestCallbackFn
	logger      zerolog.Logger
}

// TransportOption sets a parameter for the HTTP Transport.
type TransportOption func(t *Transport)

// Timeout sets the maximum duration of requests made by returned clients.
func Timeout(duration time.Duration) TransportOption {
	return func(t *Transport) { t.timeout = duration }
}

// ProbePath sets the path requested by Connect. The default is "/".
func ProbePath(path string) TransportOption {
	return func(t *Transport) { t.probePath = path }
}

// TLSConfig sets the base TLS configuration for endpoints tagged with TLS.
// Unless it names a server, the host passed to Connect is used.
func TLSConfig(c *tls.Config) TransportOption {
	return func(t *Transport) { t.tlsConfig = c }
}

// RequestCallback registers a callback function to adjust the probe request.
func RequestCallback(rc RequestCallbackFn) TransportOption {
	return func(t *Transport) { t.reqCallback = rc }
}

// Logger sets the logger used to report unexpected probe responses.
func Logger(logger zerolog.Logger) TransportOption {
	return func(t *Transport) { t.logger = logger }
}

// NewTransport returns a new HTTP transport.
func NewTransport(opts ...TransportOption) *Transport {
	t := &Transport{
		timeout:   defaultTimeout,
		probePath: defaultProbePath,
		dialer:    &net.Dialer{},
		logger:    zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// BaseURL returns the scheme and authority Connect uses for e.
func BaseURL(e model.Endpoint) string {
	if e.IsTLS() {
		return "https://" + e.HostPort()
	}
	return "http://" + e.HostPort()
}

// Connect implements transport.Transport. The returned connection is a
// *Conn. Any HTTP response to the probe counts as connected. A non-empty
// host is sent as the Host header and used as TLS server name.
func (t *Transport) Connect(ctx context.Context, e model.Endpoint, host string) (transport.Connection, error) {
	addr := e.HostPort()
	rt := &http.Transport{
		DialContext: func(ctx context.Context, network, _ string) (net.Conn, error) {
			return t.dialer.DialContext(ctx, network, addr)
		},
		ForceAttemptHTTP2: true,
	}
	if e.IsTLS() {
		rt.TLSClientConfig = tcp.ClientConfig(t.tlsConfig, host)
	}
	conn := &Conn{
		Client:  &http.Client{Transport: rt, Timeout: t.timeout},
		BaseURL: BaseURL(e),
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, conn.BaseURL+t.probePath, nil)
	if err != nil {
		return nil, err
	}
	if host != "" {
		req.Host = host
	}
	if t.reqCallback != nil {
		t.reqCallback(req)
	}

	resp, err := conn.Do(req)
	if err != nil {
		rt.CloseIdleConnections()
		return nil, err
	}
	resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		t.logger.Debug().
			Stringer("endpoint", e).
			Int("status", resp.StatusCode).
			Msg("probe returned non-success status")
	}
	return conn, nil
}
