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
	"context"

	"github.com/netloc/netloc-go/transport"
)

// Future is the pending result of ConnectAsync.
type Future struct {
	cancel context.CancelFunc
	done   chan struct{}
	conn   transport.Connection
	err    error
}

// Done is closed once the result is available.
func (f *Future) Done() <-chan struct{} { return f.done }

// Wait blocks until the result is available and returns it.
func (f *Future) Wait() (transport.Connection, error) {
	<-f.done
	return f.conn, f.err
}

// Cancel aborts the pending resolution or connection attempt. It has no
// effect once the result is available.
func (f *Future) Cancel() { f.cancel() }
