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

package recorder

import (
	"context"
	"errors"
	"testing"

	"github.com/netloc/netloc-go/model"
)

func TestConnectRecords(t *testing.T) {
	rec := NewTransport()
	e, _ := model.ParseEndpoint("10.0.0.1:4500:tls")

	conn, err := rec.Connect(context.Background(), e, "db.example")
	if err != nil {
		t.Fatalf("unexpected error: %+v", err)
	}
	if len(rec.calls) != 1 {
		t.Fatalf("Call Count want 1, have %d", len(rec.calls))
	}
	if want, have := (Call{Endpoint: e, Host: "db.example"}), conn.(*Conn).Call; want != have {
		t.Errorf("want %+v, have %+v", want, have)
	}

	if err = conn.Close(); err != nil {
		t.Errorf("unexpected error: %+v", err)
	}
	if !conn.(*Conn).Closed() {
		t.Errorf("connection should be closed")
	}
}

func TestFlush(t *testing.T) {
	rec := NewTransport()
	e, _ := model.ParseEndpoint("10.0.0.1:4500")

	_, _ = rec.Connect(context.Background(), e, "")
	_, _ = rec.Connect(context.Background(), e.WithTLS(true), "")

	calls := rec.Flush()
	if want, have := 2, len(calls); want != have {
		t.Fatalf("Call Count want %d, have %d", want, have)
	}
	if want, have := true, calls[1].Endpoint.IsTLS(); want != have {
		t.Errorf("IsTLS want %t, have %t", want, have)
	}
	if len(rec.calls) != 0 {
		t.Fatalf("Call Count want 0, have %d", len(rec.calls))
	}
}

func TestFailWith(t *testing.T) {
	rec := NewTransport()
	e, _ := model.ParseEndpoint("10.0.0.1:4500")
	refused := errors.New("connection refused")

	rec.FailWith(refused)
	conn, err := rec.Connect(context.Background(), e, "")
	if want, have := refused, err; want != have {
		t.Errorf("want %v, have %v", want, have)
	}
	if conn != nil {
		t.Errorf("want no connection, have %v", conn)
	}
	if len(rec.calls) != 1 {
		t.Errorf("failed calls should be recorded, have %d", len(rec.calls))
	}

	rec.FailWith(nil)
	if _, err = rec.Connect(context.Background(), e, ""); err != nil {
		t.Errorf("unexpected error: %+v", err)
	}
}

func TestConnectCancelled(t *testing.T) {
	rec := NewTransport()
	e, _ := model.ParseEndpoint("10.0.0.1:4500")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := rec.Connect(ctx, e, ""); err != context.Canceled {
		t.Errorf("want %v, have %v", context.Canceled, err)
	}
	if len(rec.calls) != 0 {
		t.Errorf("cancelled calls should not be recorded, have %d", len(rec.calls))
	}
}
