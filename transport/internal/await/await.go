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
Package await bounds blocking client constructors by a context.
*/
package await

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/netloc/netloc-go/transport"
)

type result struct {
	conn transport.Connection
	err  error
}

// Connect runs connect in its own goroutine and returns its result, or the
// context error if ctx is done first. A connection that completes after ctx
// is done is closed, and a failure to close it is logged.
func Connect(ctx context.Context, logger zerolog.Logger, connect func() (transport.Connection, error)) (transport.Connection, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	resC := make(chan result, 1)
	go func() {
		conn, err := connect()
		resC <- result{conn, err}
	}()

	select {
	case res := <-resC:
		return res.conn, res.err
	case <-ctx.Done():
		go func() {
			res := <-resC
			if res.err != nil || res.conn == nil {
				return
			}
			if err := res.conn.Close(); err != nil {
				logger.Warn().Err(err).Msg("failed to close abandoned connection")
			}
		}()
		return nil, ctx.Err()
	}
}
