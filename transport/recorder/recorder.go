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
Package recorder implements a transport that records Connect calls without
opening any connection. It is useful for dry runs and for testing.
*/
package recorder

import (
	"context"
	"sync"

	"github.com/netloc/netloc-go/model"
	"github.com/netloc/netloc-go/transport"
)

// Call holds the arguments of one Connect call.
type Call struct {
	Endpoint model.Endpoint
	Host     string
}

// Conn is the connection returned by the recording Transport.
type Conn struct {
	Call

	mtx    sync.Mutex
	closed bool
}

// Close marks the connection closed.
func (c *Conn) Close() error {
	c.mtx.Lock()
	c.closed = true
	c.mtx.Unlock()
	return nil
}

// Closed reports whether Close was called.
func (c *Conn) Closed() bool {
	c.mtx.Lock()
	defer c.mtx.Unlock()
	return c.closed
}

// Transport records Connect calls.
type Transport struct {
	mtx   sync.Mutex
	calls []Call
	err   error
}

// NewTransport returns a new recording transport.
func NewTransport() *Transport {
	return &Transport{}
}

// FailWith makes subsequent Connect calls return err. A nil err restores
// success.
func (t *Transport) FailWith(err error) {
	t.mtx.Lock()
	t.err = err
	t.mtx.Unlock()
}

// Connect records the call and returns a *Conn, or the configured error.
// Calls made with a done context are not recorded.
func (t *Transport) Connect(ctx context.Context, e model.Endpoint, host string) (transport.Connection, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	call := Call{Endpoint: e, Host: host}

	t.mtx.Lock()
	defer t.mtx.Unlock()
	t.calls = append(t.calls, call)
	if t.err != nil {
		return nil, t.err
	}
	return &Conn{Call: call}, nil
}

// Flush returns all recorded calls and clears its internal call storage.
func (t *Transport) Flush() []Call {
	t.mtx.Lock()
	calls := t.calls
	t.calls = nil
	t.mtx.Unlock()
	return calls
}
