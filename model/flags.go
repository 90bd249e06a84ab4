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

package model

// Flags holds the named capabilities of an Endpoint.
//
// New capabilities are added as new fields and as new bits in the Bits
// encoding. Bits already assigned never move.
type Flags struct {
	// TLS requires the connection to the endpoint to be encrypted.
	TLS bool `json:"tls,omitempty"`
}

// Bit positions of Flags in their integer encoding.
const (
	FlagTLS uint32 = 1 << iota
)

// FlagsFromBits decodes flags from their integer encoding. Unknown bits are
// ignored.
func FlagsFromBits(bits uint32) Flags {
	return Flags{
		TLS: bits&FlagTLS != 0,
	}
}

// Bits returns the integer encoding of f.
func (f Flags) Bits() uint32 {
	var bits uint32
	if f.TLS {
		bits |= FlagTLS
	}
	return bits
}

// Compare orders flags field by field with unset before set.
func (f Flags) Compare(g Flags) int {
	return compareBool(f.TLS, g.TLS)
}

func compareBool(a, b bool) int {
	switch {
	case a == b:
		return 0
	case b:
		return -1
	default:
		return 1
	}
}
