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
Package endpointpb encodes endpoints in the protocol buffers wire format.

An endpoint is encoded as the message

	message Endpoint {
	  bytes  ip    = 1; // 4 bytes for IPv4, 16 bytes for IPv6
	  uint32 port  = 2;
	  uint32 flags = 3; // model.FlagTLS, ...
	}

and a list of endpoints as

	message EndpointList {
	  repeated Endpoint endpoints = 1;
	}

Unknown fields are skipped when decoding.
*/
package endpointpb

import (
	"encoding/binary"
	"math"

	"github.com/pkg/errors"
	"google.golang.org/protobuf/encoding/protowire"

	"github.com/netloc/netloc-go/model"
)

const (
	fieldIP    protowire.Number = 1
	fieldPort  protowire.Number = 2
	fieldFlags protowire.Number = 3

	fieldEndpoints protowire.Number = 1
)

// ErrMalformed is returned when decoding data that is not a valid endpoint
// message.
var ErrMalformed = errors.New("malformed endpoint message")

// AppendEndpoint appends the encoding of e to b.
func AppendEndpoint(b []byte, e model.Endpoint) []byte {
	ip := e.IP.As16()
	b = protowire.AppendTag(b, fieldIP, protowire.BytesType)
	if e.IP.IsV6() {
		b = protowire.AppendBytes(b, ip[:])
	} else {
		b = protowire.AppendBytes(b, ip[:4])
	}
	if e.Port != 0 {
		b = protowire.AppendTag(b, fieldPort, protowire.VarintType)
		b = protowire.AppendVarint(b, uint64(e.Port))
	}
	if bits := e.Flags.Bits(); bits != 0 {
		b = protowire.AppendTag(b, fieldFlags, protowire.VarintType)
		b = protowire.AppendVarint(b, uint64(bits))
	}
	return b
}

// MarshalEndpoint returns the encoding of e.
func MarshalEndpoint(e model.Endpoint) []byte {
	return AppendEndpoint(nil, e)
}

// UnmarshalEndpoint decodes a single endpoint message.
func UnmarshalEndpoint(b []byte) (model.Endpoint, error) {
	var (
		e     model.Endpoint
		hasIP bool
	)
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return model.Endpoint{}, malformed(protowire.ParseError(n))
		}
		b = b[n:]

		switch {
		case num == fieldIP && typ == protowire.BytesType:
			v, n := protowire.ConsumeBytes(b)
			if n < 0 {
				return model.Endpoint{}, malformed(protowire.ParseError(n))
			}
			ip, err := decodeIP(v)
			if err != nil {
				return model.Endpoint{}, err
			}
			e.IP, hasIP = ip, true
			b = b[n:]
		case num == fieldPort && typ == protowire.VarintType:
			v, n := protowire.ConsumeVarint(b)
			if n < 0 {
				return model.Endpoint{}, malformed(protowire.ParseError(n))
			}
			if v > math.MaxUint16 {
				return model.Endpoint{}, errors.Wrapf(ErrMalformed, "port %d out of range", v)
			}
			e.Port = uint16(v)
			b = b[n:]
		case num == fieldFlags && typ == protowire.VarintType:
			v, n := protowire.ConsumeVarint(b)
			if n < 0 {
				return model.Endpoint{}, malformed(protowire.ParseError(n))
			}
			e.Flags = model.FlagsFromBits(uint32(v))
			b = b[n:]
		default:
			n := protowire.ConsumeFieldValue(num, typ, b)
			if n < 0 {
				return model.Endpoint{}, malformed(protowire.ParseError(n))
			}
			b = b[n:]
		}
	}
	if !hasIP {
		return model.Endpoint{}, errors.Wrap(ErrMalformed, "missing ip")
	}
	return e, nil
}

// MarshalList returns the encoding of endpoints as an endpoint list message.
func MarshalList(endpoints []model.Endpoint) []byte {
	var (
		b   []byte
		msg []byte
	)
	for _, e := range endpoints {
		msg = AppendEndpoint(msg[:0], e)
		b = protowire.AppendTag(b, fieldEndpoints, protowire.BytesType)
		b = protowire.AppendBytes(b, msg)
	}
	return b
}

// UnmarshalList decodes an endpoint list message, keeping the order of the
// encoded endpoints. Any malformed element fails the whole call.
func UnmarshalList(b []byte) ([]model.Endpoint, error) {
	var endpoints []model.Endpoint
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return nil, malformed(protowire.ParseError(n))
		}
		b = b[n:]

		if num != fieldEndpoints || typ != protowire.BytesType {
			n = protowire.ConsumeFieldValue(num, typ, b)
			if n < 0 {
				return nil, malformed(protowire.ParseError(n))
			}
			b = b[n:]
			continue
		}

		v, n := protowire.ConsumeBytes(b)
		if n < 0 {
			return nil, malformed(protowire.ParseError(n))
		}
		e, err := UnmarshalEndpoint(v)
		if err != nil {
			return nil, errors.Wrapf(err, "endpoint %d", len(endpoints))
		}
		endpoints = append(endpoints, e)
		b = b[n:]
	}
	return endpoints, nil
}

// ListSerializer implements the protobuf encoding of endpoint lists.
type ListSerializer struct{}

// Serialize returns the endpoint list message for endpoints.
func (ListSerializer) Serialize(endpoints []model.Endpoint) ([]byte, error) {
	return MarshalList(endpoints), nil
}

// ContentType returns the ContentType needed for this encoding.
func (ListSerializer) ContentType() string {
	return "application/x-protobuf"
}

func decodeIP(v []byte) (model.Address, error) {
	switch len(v) {
	case 4:
		return model.AddressFromIPv4(binary.BigEndian.Uint32(v)), nil
	case 16:
		var b [16]byte
		copy(b[:], v)
		return model.AddressFromIPv6(b), nil
	default:
		return model.Address{}, errors.Wrapf(ErrMalformed, "ip of %d bytes", len(v))
	}
}

func malformed(err error) error {
	return errors.Wrapf(ErrMalformed, "%v", err)
}
