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

package endpointpb_test

import (
	"encoding/hex"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"google.golang.org/protobuf/encoding/protowire"

	"github.com/netloc/netloc-go/model"
	"github.com/netloc/netloc-go/proto/endpointpb"
)

var addressComparer = cmp.Comparer(func(a, b model.Address) bool { return a == b })

func mustParseEndpointList(t *testing.T, s string) []model.Endpoint {
	t.Helper()
	endpoints, err := model.ParseEndpointList(s)
	if err != nil {
		t.Fatalf("unexpected error: %+v", err)
	}
	return endpoints
}

func TestMarshalEndpointWireFormat(t *testing.T) {
	for _, c := range []struct {
		in  string
		out string
	}{
		// ip(1) 4 bytes, port(2) 80
		{"1.2.3.4:80", "0a040102030410" + "50"},
		// ip(1) 4 bytes, port(2) 4500 varint, flags(3) 1
		{"10.0.0.1:4500:tls", "0a040a000001" + "109423" + "1801"},
		// ip(1) 16 bytes, port(2) 4800 varint
		{"[::1]:4800", "0a1000000000000000000000000000000001" + "10c025"},
	} {
		e, err := model.ParseEndpoint(c.in)
		if err != nil {
			t.Fatalf("unexpected error: %+v", err)
		}
		if want, have := c.out, hex.EncodeToString(endpointpb.MarshalEndpoint(e)); want != have {
			t.Errorf("%q want %s, have %s", c.in, want, have)
		}
	}
}

func TestEndpointRoundTrip(t *testing.T) {
	for _, e := range mustParseEndpointList(t, "1.2.3.4:80,10.0.0.1:4500:tls,[::1]:4800,[2001:db8::1]:0:tls,[::ffff:10.0.0.1]:1") {
		have, err := endpointpb.UnmarshalEndpoint(endpointpb.MarshalEndpoint(e))
		if err != nil {
			t.Fatalf("%s: unexpected error: %+v", e, err)
		}
		if want := e; want != have {
			t.Errorf("want %s, have %s", want, have)
		}
	}
}

func TestListRoundTrip(t *testing.T) {
	want := mustParseEndpointList(t, "[::1]:3,1.2.3.4:1,1.2.3.4:1:tls")

	b, err := endpointpb.ListSerializer{}.Serialize(want)
	if err != nil {
		t.Fatalf("unexpected error: %+v", err)
	}
	have, err := endpointpb.UnmarshalList(b)
	if err != nil {
		t.Fatalf("unexpected error: %+v", err)
	}
	if diff := cmp.Diff(want, have, addressComparer); diff != "" {
		t.Errorf("list round trip mismatch (-want +have):\n%s", diff)
	}

	if have, err = endpointpb.UnmarshalList(nil); err != nil || len(have) != 0 {
		t.Errorf("empty list want no endpoints, have %v, %v", have, err)
	}
}

func TestUnmarshalSkipsUnknownFields(t *testing.T) {
	b := protowire.AppendTag(nil, 9, protowire.BytesType)
	b = protowire.AppendString(b, "zone-a")
	b = endpointpb.AppendEndpoint(b, model.NewEndpoint(model.AddressFromIPv4(0x0a000001), 4500, model.Flags{TLS: true}))
	b = protowire.AppendTag(b, 10, protowire.Fixed64Type)
	b = protowire.AppendFixed64(b, 42)

	e, err := endpointpb.UnmarshalEndpoint(b)
	if err != nil {
		t.Fatalf("unexpected error: %+v", err)
	}
	if want, have := "10.0.0.1:4500:tls", e.String(); want != have {
		t.Errorf("want %q, have %q", want, have)
	}
}

func TestUnmarshalMalformed(t *testing.T) {
	ipField := func(ip []byte) []byte {
		b := protowire.AppendTag(nil, 1, protowire.BytesType)
		return protowire.AppendBytes(b, ip)
	}
	portField := func(v uint64) []byte {
		b := protowire.AppendTag(nil, 2, protowire.VarintType)
		return protowire.AppendVarint(b, v)
	}

	for name, b := range map[string][]byte{
		"missing ip":     portField(80),
		"short ip":       ipField([]byte{1, 2, 3}),
		"port too large": append(ipField([]byte{1, 2, 3, 4}), portField(65536)...),
		"truncated":      ipField([]byte{1, 2, 3, 4})[:4],
		"bad tag":        {0xff},
	} {
		if _, err := endpointpb.UnmarshalEndpoint(b); !errors.Is(err, endpointpb.ErrMalformed) {
			t.Errorf("%s: want %v, have %v", name, endpointpb.ErrMalformed, err)
		}
	}

	list := endpointpb.MarshalList(mustParseEndpointList(t, "1.2.3.4:1"))
	list = protowire.AppendTag(list, 1, protowire.BytesType)
	list = protowire.AppendBytes(list, ipField([]byte{1}))
	endpoints, err := endpointpb.UnmarshalList(list)
	if !errors.Is(err, endpointpb.ErrMalformed) {
		t.Errorf("want %v, have %v", endpointpb.ErrMalformed, err)
	}
	if endpoints != nil {
		t.Errorf("want no endpoints, have %v", endpoints)
	}
}

func TestListSerializerContentType(t *testing.T) {
	if want, have := "application/x-protobuf", (endpointpb.ListSerializer{}).ContentType(); want != have {
		t.Errorf("want %q, have %q", want, have)
	}
}
