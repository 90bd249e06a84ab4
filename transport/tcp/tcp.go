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
Package tcp implements a transport opening plain TCP connections, or TLS
connections for endpoints tagged with TLS.
*/
package tcp

import (
	"context"
	"crypto/tls"
	"net"

	"github.com/netloc/netloc-go/model"
	"github.com/netloc/netloc-go/transport"
)

// Conn is a connection to an endpoint.
type Conn struct {
	net.Conn
	endpoint model.Endpoint
}

// Endpoint returns the endpoint the connection was opened to.
func (c *Conn) Endpoint() model.Endpoint { return c.endpoint }

// Transport dials endpoints with a net.Dialer.
type Transport struct {
	dialer    *net.Dialer
	tlsConfig *tls.Config
}

// TransportOption sets a parameter for the Transport.
type TransportOption func(t *Transport)

// Dialer sets the dialer used to open connections.
func Dialer(d *net.Dialer) TransportOption {
	return func(t *Transport) {
		if d != nil {
			t.dialer = d
		}
	}
}

// TLSConfig sets the base TLS configuration for endpoints tagged with TLS.
// Unless it names a server, the host passed to Connect is used.
func TLSConfig(c *tls.Config) TransportOption {
	return func(t *Transport) {
		t.tlsConfig = c
	}
}

// NewTransport returns a new TCP transport.
func NewTransport(options ...TransportOption) *Transport {
	t := &Transport{
		dialer: &net.Dialer{},
	}
	for _, option := range options {
		option(t)
	}
	return t
}

// Connect implements transport.Transport. The returned connection is a *Conn.
func (t *Transport) Connect(ctx context.Context, e model.Endpoint, host string) (transport.Connection, error) {
	conn, err := t.dialer.DialContext(ctx, "tcp", e.HostPort())
	if err != nil {
		return nil, err
	}
	if !e.IsTLS() {
		return &Conn{Conn: conn, endpoint: e}, nil
	}

	tlsConn := tls.Client(conn, ClientConfig(t.tlsConfig, host))
	if err = tlsConn.HandshakeContext(ctx); err != nil {
		_ = conn.Close()
		return nil, err
	}
	return &Conn{Conn: tlsConn, endpoint: e}, nil
}

// ClientConfig returns a copy of base, or an empty configuration, with the
// server name defaulting to host.
func ClientConfig(base *tls.Config, host string) *tls.Config {
	var c *tls.Config
	if base != nil {
		c = base.Clone()
	} else {
		c = &tls.Config{}
	}
	if c.ServerName == "" {
		c.ServerName = host
	}
	return c
}
