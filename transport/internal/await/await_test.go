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

package await

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/netloc/netloc-go/transport"
)

type closer struct {
	closed chan struct{}
}

func (c *closer) Close() error {
	close(c.closed)
	return nil
}

func TestConnectReturnsResult(t *testing.T) {
	want := &closer{closed: make(chan struct{})}
	have, err := Connect(context.Background(), zerolog.Nop(), func() (transport.Connection, error) {
		return want, nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %+v", err)
	}
	if have != want {
		t.Errorf("want %v, have %v", want, have)
	}

	connErr := errors.New("refused")
	_, err = Connect(context.Background(), zerolog.Nop(), func() (transport.Connection, error) {
		return nil, connErr
	})
	if want, have := connErr, err; want != have {
		t.Errorf("want %v, have %v", want, have)
	}
}

func TestConnectClosesAbandoned(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	release := make(chan struct{})
	late := &closer{closed: make(chan struct{})}

	go func() {
		time.Sleep(10 * time.Millisecond)
		cancel()
	}()

	_, err := Connect(ctx, zerolog.Nop(), func() (transport.Connection, error) {
		<-release
		return late, nil
	})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("want %v, have %v", context.Canceled, err)
	}

	close(release)
	select {
	case <-late.closed:
	case <-time.After(time.Second):
		t.Fatal("abandoned connection was not closed")
	}
}

func TestConnectDoneContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	called := false
	_, err := Connect(ctx, zerolog.Nop(), func() (transport.Connection, error) {
		called = true
		return nil, nil
	})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("want %v, have %v", context.Canceled, err)
	}
	if called {
		t.Errorf("connect must not run with a done context")
	}
}
