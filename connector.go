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
Package netloc resolves symbolic host and service names into canonical
endpoints and connects to one of them through a pluggable transport.
*/
package netloc

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/netloc/netloc-go/model"
	"github.com/netloc/netloc-go/resolver/system"
	"github.com/netloc/netloc-go/transport"
)

// Connector picks one endpoint for a host and service pair and hands it to
// its transport.
type Connector struct {
	options ConnectorOptions
}

// NewConnector returns a new Connector connecting through t.
func NewConnector(t transport.Transport, options ...ConnectorOption) (*Connector, error) {
	if t == nil {
		return nil, ErrInvalidTransport
	}

	// set default connector options
	opts := &ConnectorOptions{
		transport: t,
		resolver:  system.NewResolver(),
		random:    SeededRandom{},
		logger:    zerolog.Nop(),
	}

	// process functional options
	for _, option := range options {
		if err := option(opts); err != nil {
			return nil, err
		}
	}

	return &Connector{options: *opts}, nil
}

// Pick resolves host and service and returns one of the candidates chosen
// uniformly at random, with its TLS flag set to useTLS. Resolver errors are
// returned unchanged.
func (c *Connector) Pick(ctx context.Context, host, service string, useTLS bool) (model.Endpoint, error) {
	candidates, err := c.options.resolver.ResolveTCPEndpoint(ctx, host, service)
	if err != nil {
		return model.Endpoint{}, err
	}
	if len(candidates) == 0 {
		return model.Endpoint{}, ErrNoCandidates
	}

	e := candidates[c.options.random.Intn(len(candidates))].WithTLS(useTLS)
	c.options.logger.Debug().
		Str("host", host).
		Str("service", service).
		Int("candidates", len(candidates)).
		Stringer("endpoint", e).
		Msg("picked endpoint")
	return e, nil
}

// Connect resolves host and service, picks one endpoint and connects to it.
// The host is passed on to the transport for TLS server name purposes.
// Cancelling ctx aborts whichever of the two stages is running; neither
// stage is retried.
func (c *Connector) Connect(ctx context.Context, host, service string, useTLS bool) (transport.Connection, error) {
	e, err := c.Pick(ctx, host, service, useTLS)
	if err != nil {
		return nil, err
	}
	if err = ctx.Err(); err != nil {
		return nil, err
	}
	return c.options.transport.Connect(ctx, e, host)
}

// ConnectAsync runs Connect in its own goroutine and returns a handle to its
// result. Cancelling the handle cancels the outstanding stage.
func (c *Connector) ConnectAsync(ctx context.Context, host, service string, useTLS bool) *Future {
	ctx, cancel := context.WithCancel(ctx)
	f := &Future{
		cancel: cancel,
		done:   make(chan struct{}),
	}
	go func() {
		defer cancel()
		f.conn, f.err = c.Connect(ctx, host, service, useTLS)
		close(f.done)
	}()
	return f
}
