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
Package log implements a transport decorator logging every Connect call.
*/
package log

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/netloc/netloc-go/model"
	"github.com/netloc/netloc-go/transport"
)

// Transport logs the outcome of each Connect call of the wrapped transport.
type Transport struct {
	next   transport.Transport
	logger zerolog.Logger
}

// NewTransport returns a logging transport wrapping next.
func NewTransport(next transport.Transport, logger zerolog.Logger) *Transport {
	return &Transport{next: next, logger: logger}
}

// Connect implements transport.Transport. Successful connections are logged
// at info level, failures at warn level.
func (t *Transport) Connect(ctx context.Context, e model.Endpoint, host string) (transport.Connection, error) {
	start := time.Now()
	conn, err := t.next.Connect(ctx, e, host)

	var ev *zerolog.Event
	if err != nil {
		ev = t.logger.Warn().Err(err)
	} else {
		ev = t.logger.Info()
	}
	ev.Stringer("endpoint", e).
		Str("host", host).
		Bool("tls", e.IsTLS()).
		Dur("duration", time.Since(start)).
		Msg("connect")

	return conn, err
}
