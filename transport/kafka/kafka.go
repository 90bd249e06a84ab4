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
Package kafka implements a transport opening Kafka broker clients.
*/
package kafka

import (
	"context"
	"crypto/tls"
	"time"

	"github.com/IBM/sarama"
	"github.com/rs/zerolog"

	"github.com/netloc/netloc-go/model"
	"github.com/netloc/netloc-go/transport"
	"github.com/netloc/netloc-go/transport/internal/await"
	"github.com/netloc/netloc-go/transport/tcp"
)

// ClientFactory creates a sarama client for the given bootstrap brokers.
type ClientFactory func(addrs []string, config *sarama.Config) (sarama.Client, error)

// Transport bootstraps one sarama.Client per Connect call, using the chosen
// endpoint as the only seed broker.
type Transport struct {
	config    *sarama.Config
	tlsConfig *tls.Config
	newClient ClientFactory
	logger    zerolog.Logger
}

// TransportOption sets a parameter for the Transport.
type TransportOption func(t *Transport)

// Logger sets the logger used to report errors closing abandoned clients.
func Logger(logger zerolog.Logger) TransportOption {
	return func(t *Transport) {
		t.logger = logger
	}
}

// Config sets the base sarama configuration. Its Net.TLS settings are
// replaced on every Connect according to the endpoint.
func Config(c *sarama.Config) TransportOption {
	return func(t *Transport) {
		if c != nil {
			t.config = c
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

// Client sets the factory used to create clients.
func Client(f ClientFactory) TransportOption {
	return func(t *Transport) {
		if f != nil {
			t.newClient = f
		}
	}
}

// NewTransport returns a new Kafka transport.
func NewTransport(options ...TransportOption) *Transport {
	t := &Transport{
		config:    sarama.NewConfig(),
		newClient: sarama.NewClient,
		logger:    zerolog.Nop(),
	}
	for _, option := range options {
		option(t)
	}
	return t
}

// Connect implements transport.Transport. The returned connection is a
// sarama.Client.
func (t *Transport) Connect(ctx context.Context, e model.Endpoint, host string) (transport.Connection, error) {
	config := *t.config
	config.Net.TLS.Enable = e.IsTLS()
	config.Net.TLS.Config = nil
	if e.IsTLS() {
		config.Net.TLS.Config = tcp.ClientConfig(t.tlsConfig, host)
	}
	if deadline, ok := ctx.Deadline(); ok {
		config.Net.DialTimeout = time.Until(deadline)
	}

	logger := t.logger.With().Stringer("endpoint", e).Logger()
	return await.Connect(ctx, logger, func() (transport.Connection, error) {
		client, err := t.newClient([]string{e.HostPort()}, &config)
		if err != nil {
			return nil, err
		}
		return client, nil
	})
}
