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
Package amqp implements a transport opening RabbitMQ connections.
*/
package amqp

import (
	"context"
	"crypto/tls"
	"net"
	"net/url"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog"

	"github.com/netloc/netloc-go/model"
	"github.com/netloc/netloc-go/transport"
	"github.com/netloc/netloc-go/transport/internal/await"
	"github.com/netloc/netloc-go/transport/tcp"
)

// Transport dials one *amqp.Connection per Connect call.
type Transport struct {
	config    amqp.Config
	tlsConfig *tls.Config
	user      *url.Userinfo
	vhost     string
	dialer    *net.Dialer
	logger    zerolog.Logger
}

// TransportOption sets a parameter for the Transport.
type TransportOption func(t *Transport)

// Logger sets the logger used to report errors closing abandoned
// connections.
func Logger(logger zerolog.Logger) TransportOption {
	return func(t *Transport) {
		t.logger = logger
	}
}

// Config sets the base connection configuration. Its Dial and
// TLSClientConfig fields are replaced on every Connect.
func Config(c amqp.Config) TransportOption {
	return func(t *Transport) {
		t.config = c
	}
}

// TLSConfig sets the base TLS configuration for endpoints tagged with TLS.
// Unless it names a server, the host passed to Connect is used.
func TLSConfig(c *tls.Config) TransportOption {
	return func(t *Transport) {
		t.tlsConfig = c
	}
}

// Credentials sets the user and password to authenticate with. Without
// them the broker default guest account is used.
func Credentials(user, password string) TransportOption {
	return func(t *Transport) {
		t.user = url.UserPassword(user, password)
	}
}

// Vhost sets the virtual host to open. The default is "/".
func Vhost(vhost string) TransportOption {
	return func(t *Transport) {
		t.vhost = vhost
	}
}

// Dialer sets the dialer used to open the underlying TCP connection.
func Dialer(d *net.Dialer) TransportOption {
	return func(t *Transport) {
		if d != nil {
			t.dialer = d
		}
	}
}

// NewTransport returns a new AMQP transport.
func NewTransport(options ...TransportOption) *Transport {
	t := &Transport{
		config: amqp.Config{Properties: amqp.NewConnectionProperties()},
		dialer: &net.Dialer{},
		logger: zerolog.Nop(),
	}
	for _, option := range options {
		option(t)
	}
	return t
}

// URL returns the AMQP URI Connect dials for e: amqps for endpoints tagged
// with TLS and amqp otherwise.
func (t *Transport) URL(e model.Endpoint) string {
	u := url.URL{
		Scheme: "amqp",
		User:   t.user,
		Host:   e.HostPort(),
		Path:   "/" + t.vhost,
	}
	if e.IsTLS() {
		u.Scheme = "amqps"
	}
	return u.String()
}

// Connect implements transport.Transport. The returned connection is an
// *amqp.Connection.
func (t *Transport) Connect(ctx context.Context, e model.Endpoint, host string) (transport.Connection, error) {
	config := t.config
	config.TLSClientConfig = nil
	if e.IsTLS() {
		config.TLSClientConfig = tcp.ClientConfig(t.tlsConfig, host)
	}
	config.Dial = func(network, addr string) (net.Conn, error) {
		return t.dialer.DialContext(ctx, network, addr)
	}

	address := t.URL(e)
	logger := t.logger.With().Stringer("endpoint", e).Logger()
	return await.Connect(ctx, logger, func() (transport.Connection, error) {
		conn, err := amqp.DialConfig(address, config)
		if err != nil {
			return nil, err
		}
		return conn, nil
	})
}
