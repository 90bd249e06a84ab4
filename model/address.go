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

import (
	"bytes"
	"encoding/binary"
	"net"
	"net/netip"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// ErrInvalidAddressText is returned when unmarshalling malformed address text.
var ErrInvalidAddressText = errors.New("invalid address text")

// Address holds an IPv4 or an IPv6 host address.
//
// IPv4 addresses keep their 32-bit value big-endian in the first four bytes
// of the store, the remaining twelve bytes are always zero. IPv4 addresses
// order before IPv6 addresses; within a family addresses order by their raw
// bytes. The zero value is the IPv4 address 0.0.0.0, which is not valid.
type Address struct {
	store [16]byte
	v6    bool
}

// AddressFromIPv4 returns the IPv4 address with host value v.
func AddressFromIPv4(v uint32) Address {
	var a Address
	binary.BigEndian.PutUint32(a.store[:4], v)
	return a
}

// AddressFromIPv6 returns the IPv6 address made of the 16 bytes b.
func AddressFromIPv6(b [16]byte) Address {
	return Address{store: b, v6: true}
}

// AddressFromIP converts a net.IP. Following the net package, any ip for
// which To4 is non-nil becomes an IPv4 address. It reports false when ip has
// neither length.
func AddressFromIP(ip net.IP) (Address, bool) {
	if v4 := ip.To4(); v4 != nil {
		return AddressFromIPv4(binary.BigEndian.Uint32(v4)), true
	}
	if len(ip) != net.IPv6len {
		return Address{}, false
	}
	var b [16]byte
	copy(b[:], ip)
	return AddressFromIPv6(b), true
}

// IP returns a as a net.IP.
func (a Address) IP() net.IP {
	if a.v6 {
		ip := make(net.IP, net.IPv6len)
		copy(ip, a.store[:])
		return ip
	}
	return net.IPv4(a.store[0], a.store[1], a.store[2], a.store[3])
}

// ParseAddress parses a dotted-quad IPv4 or colon-hex IPv6 literal. Literals
// written in IPv6 notation stay IPv6, including IPv4-mapped ones. It reports
// false for anything else, zoned addresses included.
func ParseAddress(s string) (Address, bool) {
	ip, err := netip.ParseAddr(s)
	if err != nil || ip.Zone() != "" {
		return Address{}, false
	}
	if ip.Is4() {
		b := ip.As4()
		return AddressFromIPv4(binary.BigEndian.Uint32(b[:])), true
	}
	return AddressFromIPv6(ip.As16()), true
}

// IsV6 reports whether a is an IPv6 address.
func (a Address) IsV6() bool { return a.v6 }

// IsV4 reports whether a is an IPv4 address.
func (a Address) IsV4() bool { return !a.v6 }

// ToV4 returns the IPv4 host value. The result is meaningless for IPv6
// addresses.
func (a Address) ToV4() uint32 {
	return binary.BigEndian.Uint32(a.store[:4])
}

// As16 returns the raw address store.
func (a Address) As16() [16]byte { return a.store }

// IsValid reports whether any significant byte of a is non-zero.
func (a Address) IsValid() bool {
	if !a.v6 {
		return a.ToV4() != 0
	}
	for _, b := range a.store {
		if b > 0 {
			return true
		}
	}
	return false
}

// Compare returns -1, 0 or +1 depending on whether a sorts before, equal to
// or after b.
func (a Address) Compare(b Address) int {
	if a.v6 != b.v6 {
		if a.v6 {
			return 1
		}
		return -1
	}
	return bytes.Compare(a.store[:], b.store[:])
}

// Less reports whether a sorts before b.
func (a Address) Less(b Address) bool { return a.Compare(b) < 0 }

// String returns the dotted-quad form of an IPv4 address or the RFC 5952
// canonical form of an IPv6 address.
func (a Address) String() string {
	if a.v6 {
		return netip.AddrFrom16(a.store).String()
	}
	return formatIPv4(a.ToV4())
}

// MarshalText implements encoding.TextMarshaler.
func (a Address) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (a *Address) UnmarshalText(text []byte) error {
	parsed, ok := ParseAddress(string(text))
	if !ok {
		return errors.Wrapf(ErrInvalidAddressText, "parse address %q", text)
	}
	*a = parsed
	return nil
}

// FormatAddresses joins the text form of addrs with single spaces.
func FormatAddresses(addrs []Address) string {
	var sb strings.Builder
	for i, a := range addrs {
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(a.String())
	}
	return sb.String()
}

// FormatIPv4s joins raw IPv4 host values in dotted-quad form with single
// spaces.
func FormatIPv4s(ips []uint32) string {
	var sb strings.Builder
	for i, ip := range ips {
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(formatIPv4(ip))
	}
	return sb.String()
}

func formatIPv4(ip uint32) string {
	b := make([]byte, 0, len("255.255.255.255"))
	b = strconv.AppendUint(b, uint64(ip>>24), 10)
	b = append(b, '.')
	b = strconv.AppendUint(b, uint64((ip>>16)&0xff), 10)
	b = append(b, '.')
	b = strconv.AppendUint(b, uint64((ip>>8)&0xff), 10)
	b = append(b, '.')
	b = strconv.AppendUint(b, uint64(ip&0xff), 10)
	return string(b)
}
