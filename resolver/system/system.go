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
Package system implements a resolver backed by the platform resolver of the
net package.
*/
package system

import (
	"context"
	"net"

	"github.com/netloc/netloc-go/model"
)

// Resolver resolves host names with a net.Resolver and service names with
// the platform services database.
//
// The net package does not tell IPv4 answers from IPv4-mapped IPv6 answers
// (::ffff:a.b.c.d), so both come back as IPv4 endpoints. Use the dns
// resolver when mapped AAAA answers must stay IPv6.
type Resolver struct {
	resolver *net.Resolver
	network  string
}

// ResolverOption sets a parameter for the Resolver.
type ResolverOption func(r *Resolver)

// NetResolver sets the net.Resolver to query. The default is
// net.DefaultResolver.
func NetResolver(nr *net.Resolver) ResolverOption {
	return func(r *Resolver) {
		if nr != nil {
			r.resolver = nr
		}
	}
}

// Network restricts lookups to "ip4" or "ip6". The default "ip" returns both
// families.
func Network(network string) ResolverOption {
	return func(r *Resolver) {
		r.network = network
	}
}

// NewResolver returns a new platform resolver.
func NewResolver(options ...ResolverOption) *Resolver {
	r := &Resolver{
		resolver: net.DefaultResolver,
		network:  "ip",
	}
	for _, option := range options {
		option(r)
	}
	return r
}

// ResolveTCPEndpoint implements resolver.Resolver. Numeric services are used
// as the port directly.
func (r *Resolver) ResolveTCPEndpoint(ctx context.Context, host, service string) ([]model.Endpoint, error) {
	port, err := r.resolver.LookupPort(ctx, "tcp", service)
	if err != nil {
		return nil, err
	}

	ips, err := r.resolver.LookupIP(ctx, r.network, host)
	if err != nil {
		return nil, err
	}

	endpoints := make([]model.Endpoint, 0, len(ips))
	for _, ip := range ips {
		addr, ok := model.AddressFromIP(ip)
		if !ok {
			continue
		}
		endpoints = append(endpoints, model.NewEndpoint(addr, uint16(port), model.Flags{}))
	}
	return endpoints, nil
}
