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
Package resolver holds the Resolver interface which is used by the
Connector to turn a host and service name into candidate endpoints.

Subpackages of package resolver contain the supported resolver
implementations.
*/
package resolver

import (
	"context"

	"github.com/netloc/netloc-go/model"
)

// Resolver maps a host and service pair to every TCP endpoint it names.
// Implementations should never return an empty slice without an error.
type Resolver interface {
	ResolveTCPEndpoint(ctx context.Context, host, service string) ([]model.Endpoint, error)
}

// Func adapts an ordinary function to the Resolver interface.
type Func func(ctx context.Context, host, service string) ([]model.Endpoint, error)

// ResolveTCPEndpoint calls f(ctx, host, service).
func (f Func) ResolveTCPEndpoint(ctx context.Context, host, service string) ([]model.Endpoint, error) {
	return f(ctx, host, service)
}
