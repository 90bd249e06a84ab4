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
Package dns implements a resolver that queries DNS servers directly.

Numeric services are used as the port of the A and AAAA answers for the
host. Symbolic services are looked up as SRV records named
_service._tcp.host and every SRV target is then resolved to addresses.
*/
package dns

import (
	"context"
	"net"
	"strconv"
	"strings"

	"github.com/miekg/dns"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/netloc/netloc-go/model"
)

// ErrNoServers is returned by NewResolver without any server to query.
var ErrNoServers = errors.New("requires at least one DNS server")

// Resolver queries a list of DNS servers in order.
type Resolver struct {
	servers []model.Endpoint
	udp     *dns.Client
	tls     *dns.Client
	logger  zerolog.Logger
}

// ResolverOption sets a parameter for the Resolver.
type ResolverOption func(r *Resolver)

// Logger sets the logger used to report failing servers.
func Logger(logger zerolog.Logger) ResolverOption {
	return func(r *Resolver) {
		r.logger = logger
	}
}

// Client sets the client used for plain servers. Servers tagged with TLS
// always use DNS over TLS.
func Client(c *dns.Client) ResolverOption {
	return func(r *Resolver) {
		if c != nil {
			r.udp = c
		}
	}
}

// NewResolver returns a new DNS resolver querying servers. Servers tagged
// with TLS are queried over DNS over TLS.
func NewResolver(servers []model.Endpoint, options ...ResolverOption) (*Resolver, error) {
	if len(servers) == 0 {
		return nil, ErrNoServers
	}
	r := &Resolver{
		servers: append([]model.Endpoint(nil), servers...),
		udp:     &dns.Client{Net: "udp"},
		tls:     &dns.Client{Net: "tcp-tls"},
		logger:  zerolog.Nop(),
	}
	for _, option := range options {
		option(r)
	}
	return r, nil
}

// ResolveTCPEndpoint implements resolver.Resolver.
func (r *Resolver) ResolveTCPEndpoint(ctx context.Context, host, service string) ([]model.Endpoint, error) {
	type target struct {
		name string
		port uint16
	}

	var targets []target
	if port, err := strconv.ParseUint(service, 10, 16); err == nil {
		targets = append(targets, target{host, uint16(port)})
	} else {
		reply, err := r.exchange(ctx, "_"+service+"._tcp."+host, dns.TypeSRV)
		if err != nil {
			return nil, err
		}
		for _, answer := range reply.Answer {
			if srv, ok := answer.(*dns.SRV); ok {
				targets = append(targets, target{srv.Target, srv.Port})
			}
		}
		if len(targets) == 0 {
			return nil, &net.DNSError{Err: "no SRV records", Name: host, IsNotFound: true}
		}
	}

	var endpoints []model.Endpoint
	for _, t := range targets {
		if addr, ok := model.ParseAddress(strings.TrimSuffix(t.name, ".")); ok {
			endpoints = append(endpoints, model.NewEndpoint(addr, t.port, model.Flags{}))
			continue
		}
		for _, qtype := range []uint16{dns.TypeA, dns.TypeAAAA} {
			addrs, err := r.lookup(ctx, t.name, qtype)
			if err != nil {
				return nil, err
			}
			for _, addr := range addrs {
				endpoints = append(endpoints, model.NewEndpoint(addr, t.port, model.Flags{}))
			}
		}
	}
	if len(endpoints) == 0 {
		return nil, &net.DNSError{Err: "no such host", Name: host, IsNotFound: true}
	}
	return endpoints, nil
}

func (r *Resolver) lookup(ctx context.Context, name string, qtype uint16) ([]model.Address, error) {
	reply, err := r.exchange(ctx, name, qtype)
	if err != nil {
		var dnsErr *net.DNSError
		if errors.As(err, &dnsErr) && dnsErr.IsNotFound {
			return nil, nil
		}
		return nil, err
	}
	var addrs []model.Address
	for _, answer := range reply.Answer {
		var ip net.IP
		switch rr := answer.(type) {
		case *dns.A:
			ip = rr.A
		case *dns.AAAA:
			ip = rr.AAAA
		default:
			continue
		}
		if addr, ok := addressOf(ip, qtype); ok {
			addrs = append(addrs, addr)
		}
	}
	return addrs, nil
}

// addressOf keeps IPv4-mapped AAAA answers in the IPv6 family.
func addressOf(ip net.IP, qtype uint16) (model.Address, bool) {
	if qtype == dns.TypeAAAA && len(ip) == net.IPv6len {
		var b [16]byte
		copy(b[:], ip)
		return model.AddressFromIPv6(b), true
	}
	return model.AddressFromIP(ip)
}

// exchange sends one question to each server in turn until one of them
// answers. Only transport failures move on to the next server.
func (r *Resolver) exchange(ctx context.Context, name string, qtype uint16) (*dns.Msg, error) {
	query := new(dns.Msg)
	query.SetQuestion(dns.Fqdn(name), qtype)

	var lastErr error
	for _, server := range r.servers {
		client := r.udp
		if server.IsTLS() {
			client = r.tls
		}
		reply, _, err := client.ExchangeContext(ctx, query, server.HostPort())
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return nil, ctxErr
			}
			r.logger.Debug().Err(err).Stringer("server", server).Str("name", name).Msg("dns exchange failed")
			lastErr = err
			continue
		}
		return reply, replyError(name, server, reply)
	}
	return nil, errors.Wrapf(lastErr, "lookup %s", name)
}

func replyError(name string, server model.Endpoint, reply *dns.Msg) error {
	switch reply.Rcode {
	case dns.RcodeSuccess:
		return nil
	case dns.RcodeNameError:
		return &net.DNSError{Err: "no such host", Name: name, Server: server.String(), IsNotFound: true}
	case dns.RcodeServerFailure:
		return &net.DNSError{Err: "server failure", Name: name, Server: server.String(), IsTemporary: true}
	default:
		return &net.DNSError{Err: "server misbehaving: " + dns.RcodeToString[reply.Rcode], Name: name, Server: server.String()}
	}
}
