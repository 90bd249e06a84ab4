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

package netloc

import (
	"errors"

	"github.com/rs/zerolog"

	"github.com/netloc/netloc-go/resolver"
	"github.com/netloc/netloc-go/transport"
)

// Connector Option Errors
var (
	ErrInvalidTransport = errors.New("requires valid transport")
	ErrInvalidResolver  = errors.New("requires valid resolver")
	ErrInvalidRandom    = errors.New("requires valid random source")
)

// ErrNoCandidates is returned when a resolver reports success without any
// endpoint.
var ErrNoCandidates = errors.New("resolver returned no candidate endpoints")

// ConnectorOption allows for functional options to adjust behavior of the
// Connector to be created with NewConnector().
type ConnectorOption func(o *ConnectorOptions) error

// ConnectorOptions for a Connector instance.
type ConnectorOptions struct {
	transport transport.Transport
	resolver  resolver.Resolver
	random    Random
	logger    zerolog.Logger
}

// WithResolver sets the resolver used to find candidate endpoints. The
// default resolver asks the platform resolver.
func WithResolver(r resolver.Resolver) ConnectorOption {
	return func(o *ConnectorOptions) error {
		if r == nil {
			return ErrInvalidResolver
		}
		o.resolver = r
		return nil
	}
}

// WithRandom sets the source used to pick among candidate endpoints. The
// source must be safe for concurrent use.
func WithRandom(r Random) ConnectorOption {
	return func(o *ConnectorOptions) error {
		if r == nil {
			return ErrInvalidRandom
		}
		o.random = r
		return nil
	}
}

// WithLogger sets the logger receiving debug output about picked endpoints.
func WithLogger(logger zerolog.Logger) ConnectorOption {
	return func(o *ConnectorOptions) error {
		o.logger = logger
		return nil
	}
}
