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
Package transport holds the Transport interface which is used by the
Connector to establish a connection to one concrete endpoint.

Subpackages of package transport contain the supported transport
implementations.
*/
package transport

import (
	"context"

	"github.com/netloc/netloc-go/model"
)

// Connection is a live connection handle. Its lifecycle belongs to the
// caller once a Transport returns it.
type Connection interface {
	Close() error // Close the connection
}

// Transport connects to a single endpoint. The host is the name the endpoint
// was resolved from and is used as the TLS server name when e.IsTLS().
type Transport interface {
	Connect(ctx context.Context, e model.Endpoint, host string) (Connection, error)
}

// Func adapts an ordinary function to the Transport interface.
type Func func(ctx context.Context, e model.Endpoint, host string) (Connection, error)

// Connect calls f(ctx, e, host).
func (f Func) Connect(ctx context.Context, e model.Endpoint, host string) (Connection, error) {
	return f(ctx, e, host)
}
