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
Package static implements a resolver answering from a fixed host table.
*/
package static

import (
	"context"
	"net"
	"strconv"

	"github.com/pkg/errors"

	"github.com/netloc/netloc-go/model"
)

// Resolver answers lookups from a table of host names to endpoints.
type Resolver struct {
	hosts map[string][]model.Endpoint
}

// NewResolver returns a resolver for hosts, a map of host name to endpoint
// list text. A malformed list fails the whole table.
func NewResolver(hosts map[string]string) (*Resolver, error) {
	r := &Resolver{hosts: make(map[string][]model.Endpoint, len(hosts))}
	for host, list := range hosts {
		endpoints, err := model.ParseEndpointList(list)
		if err != nil {
			return nil, errors.Wrapf(err, "host %q", host)
		}
		r.hosts[host] = endpoints
	}
	return r, nil
}

// ResolveTCPEndpoint implements resolver.Resolver. An empty service keeps
// the ports of the table; a numeric service replaces them.
func (r *Resolver) ResolveTCPEndpoint(ctx context.Context, host, service string) ([]model.Endpoint, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	endpoints, ok := r.hosts[host]
	if !ok {
		return nil, &net.DNSError{Err: "no such host", Name: host, IsNotFound: true}
	}

	out := make([]model.Endpoint, len(endpoints))
	copy(out, endpoints)
	if service == "" {
		return out, nil
	}

	port, err := strconv.ParseUint(service, 10, 16)
	if err != nil {
		return nil, &net.AddrError{Err: "unknown port", Addr: service}
	}
	for i := range out {
		out[i].Port = uint16(port)
	}
	return out, nil
}

// Hosts returns the names known to r.
func (r *Resolver) Hosts() []string {
	hosts := make([]string, 0, len(r.hosts))
	for host := range r.hosts {
		hosts = append(hosts, host)
	}
	return hosts
}
