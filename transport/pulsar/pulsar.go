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
Package pulsar implements a transport opening Pulsar clients.
*/
package pulsar

import (
	"context"
	"time"

	"github.com/apache/pulsar-client-go/pulsar"
	"github.com/rs/zerolog"

	"github.com/netloc/netloc-go/model"
	"github.com/netloc/netloc-go/transport"
	"github.com/netloc/netloc-go/transport/internal/await"
)

// defaultTopic is looked up on every Connect to confirm the broker answers.
const defaultTopic = "netloc"

// ClientFactory creates a pulsar client.
type ClientFactory func(options pulsar.ClientOptions) (pulsar.Client, error)

// Conn is a pulsar.Client satisfying transport.Connection.
type Conn struct {
	pulsar.Client
}

// Close closes the underlying client.
func (c *Conn) Close() error {
	c.Client.Close()
	return nil
}

// Transport creates one pulsar.Client per Connect call.
type Transport struct {
	options   pulsar.ClientOptions
	topic     string
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

// Topic sets the topic whose partitions are looked up to confirm the
// connection.
func Topic(topic string) TransportOption {
	return func(t *Transport) {
		if topic != "" {
			t.topic = topic
		}
	}
}

// ClientOptions sets the base client options. URL and timeouts are replaced
// on every Connect.
func ClientOptions(o pulsar.ClientOptions) TransportOption {
	return func(t *Transport) {
		t.options = o
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

// NewTransport returns a new Pulsar transport.
func NewTransport(options ...TransportOption) *Transport {
	t := &Transport{
		topic:     defaultTopic,
		newClient: pulsar.NewClient,
		logger:    zerolog.Nop(),
	}
	for _, option := range options {
		option(t)
	}
	return t
}

// URL returns the service URL Connect uses for e.
func URL(e model.Endpoint) string {
	if e.IsTLS() {
		return "pulsar+ssl://" + e.HostPort()
	}
	return "pulsar://" + e.HostPort()
}

// Connect implements transport.Transport. The returned connection is a
// *Conn. The pulsar client validates certificates against the endpoint
// address, so host is not used.
func (t *Transport) Connect(ctx context.Context, e model.Endpoint, _ string) (transport.Connection, error) {
	options := t.options
	options.URL = URL(e)
	if deadline, ok := ctx.Deadline(); ok {
		timeout := time.Until(deadline)
		options.ConnectionTimeout = timeout
		options.OperationTimeout = timeout
	}

	logger := t.logger.With().Stringer("endpoint", e).Logger()
	return await.Connect(ctx, logger, func() (transport.Connection, error) {
		client, err := t.newClient(options)
		if err != nil {
			return nil, err
		}
		// client creation is lazy; a lookup forces a broker round trip
		if _, err = client.TopicPartitions(t.topic); err != nil {
			client.Close()
			return nil, err
		}
		return &Conn{Client: client}, nil
	})
}
