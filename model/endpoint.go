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
	"net"
	"slices"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// ErrInvalidEndpointText is the cause of every endpoint parse failure.
var ErrInvalidEndpointText = errors.New("invalid endpoint text")

const tlsSuffix = ":tls"

// Endpoint holds an address, a port and the flags of one network
// destination.
//
// The text form is "ip:port" for IPv4 and "[ip]:port" for IPv6, followed
// by ":tls" when the TLS flag is set.
type Endpoint struct {
	IP    Address
	Port  uint16
	Flags Flags
}

// NewEndpoint returns the endpoint made of ip, port and flags.
func NewEndpoint(ip Address, port uint16, flags Flags) Endpoint {
	return Endpoint{IP: ip, Port: port, Flags: flags}
}

// ParseEndpoint parses the text form of an endpoint. The whole input must
// match; failures wrap ErrInvalidEndpointText and quote the input.
func ParseEndpoint(s string) (Endpoint, error) {
	var e Endpoint
	f := s
	if len(s) > len(tlsSuffix) && strings.HasSuffix(s, tlsSuffix) {
		e.Flags.TLS = true
		f = s[:len(s)-len(tlsSuffix)]
	}

	var host, port string
	if strings.HasPrefix(f, "[") {
		end := strings.IndexByte(f, ']')
		if end < 0 || end+1 >= len(f) || f[end+1] != ':' {
			return Endpoint{}, invalidEndpoint(s)
		}
		host, port = f[1:end], f[end+2:]
	} else {
		i := strings.LastIndexByte(f, ':')
		if i < 0 {
			return Endpoint{}, invalidEndpoint(s)
		}
		host, port = f[:i], f[i+1:]
	}

	ip, ok := ParseAddress(host)
	if !ok || ip.IsV6() != strings.HasPrefix(f, "[") {
		return Endpoint{}, invalidEndpoint(s)
	}
	p, ok := parsePort(port)
	if !ok {
		return Endpoint{}, invalidEndpoint(s)
	}
	e.IP, e.Port = ip, p
	return e, nil
}

// ParseEndpointList splits s on commas and parses every piece. Pieces are
// not trimmed. The first malformed piece fails the whole list.
func ParseEndpointList(s string) ([]Endpoint, error) {
	pieces := strings.Split(s, ",")
	endpoints := make([]Endpoint, 0, len(pieces))
	for _, piece := range pieces {
		e, err := ParseEndpoint(piece)
		if err != nil {
			return nil, err
		}
		endpoints = append(endpoints, e)
	}
	return endpoints, nil
}

// FormatEndpointList joins the text form of endpoints with commas.
func FormatEndpointList(endpoints []Endpoint) string {
	var sb strings.Builder
	for i, e := range endpoints {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(e.String())
	}
	return sb.String()
}

// WithTLS returns a copy of e with the TLS flag set to tls.
func (e Endpoint) WithTLS(tls bool) Endpoint {
	e.Flags.TLS = tls
	return e
}

// IsTLS reports whether e requires an encrypted connection.
func (e Endpoint) IsTLS() bool { return e.Flags.TLS }

// IsV6 reports whether the address of e is IPv6.
func (e Endpoint) IsV6() bool { return e.IP.IsV6() }

// HostPort returns e in the form accepted by net.Dial, without flags.
func (e Endpoint) HostPort() string {
	return net.JoinHostPort(e.IP.String(), strconv.FormatUint(uint64(e.Port), 10))
}

// String returns the canonical text form of e.
func (e Endpoint) String() string {
	var sb strings.Builder
	if e.IP.IsV6() {
		sb.WriteByte('[')
		sb.WriteString(e.IP.String())
		sb.WriteByte(']')
	} else {
		sb.WriteString(e.IP.String())
	}
	sb.WriteByte(':')
	sb.WriteString(strconv.FormatUint(uint64(e.Port), 10))
	if e.Flags.TLS {
		sb.WriteString(tlsSuffix)
	}
	return sb.String()
}

// Compare orders endpoints by address, then port, then flags.
func (e Endpoint) Compare(o Endpoint) int {
	if c := e.IP.Compare(o.IP); c != 0 {
		return c
	}
	switch {
	case e.Port < o.Port:
		return -1
	case e.Port > o.Port:
		return 1
	}
	return e.Flags.Compare(o.Flags)
}

// Less reports whether e sorts before o.
func (e Endpoint) Less(o Endpoint) bool { return e.Compare(o) < 0 }

// MarshalText implements encoding.TextMarshaler.
func (e Endpoint) MarshalText() ([]byte, error) {
	return []byte(e.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (e *Endpoint) UnmarshalText(text []byte) error {
	parsed, err := ParseEndpoint(string(text))
	if err != nil {
		return err
	}
	*e = parsed
	return nil
}

// SortEndpoints sorts endpoints in place.
func SortEndpoints(endpoints []Endpoint) {
	slices.SortFunc(endpoints, Endpoint.Compare)
}

// DedupEndpoints sorts endpoints and drops repeated values. The returned
// slice shares the backing array of endpoints.
func DedupEndpoints(endpoints []Endpoint) []Endpoint {
	SortEndpoints(endpoints)
	return slices.Compact(endpoints)
}

func parsePort(s string) (uint16, bool) {
	if s == "" {
		return 0, false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return 0, false
		}
	}
	p, err := strconv.ParseUint(s, 10, 16)
	if err != nil {
		return 0, false
	}
	return uint16(p), true
}

func invalidEndpoint(text string) error {
	return errors.Wrapf(ErrInvalidEndpointText, "parse endpoint %q", text)
}
