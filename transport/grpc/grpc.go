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
Package grpc implements a transport establishing gRPC client connections.
*/
package grpc

import (
	"context"
	"crypto/tls"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials"
	"google.golang.org/grpc/credentials/insecure"

	"github.com/netloc/netloc-go/model"
	"github.com/netloc/netloc-go/transport"
	"github.com/netloc/netloc-go/transport/tcp"
)

// Transport dials one gRPC client connection per Connect call and waits
// until it is ready.
type Transport struct {
	tlsConfig   *tls.Config
	dialOptions []grpc.DialOption
}

// TransportOption sets a parameter for the Transport.
type TransportOption func(t *Transport)

// TLSConfig sets the base TLS configuration for endpoints tagged with TLS.
// Unless it names a server, the host passed to Connect is used.
func TLSConfig(c *tls.Config) TransportOption {
	return func(t *Transport) {
		t.tlsConfig = c
	}
}

// DialOptions appends options to every dial, e.g. interceptors or stats
// handlers. Transport credentials are always chosen from the endpoint.
func DialOptions(options ...grpc.DialOption) TransportOption {
	return func(t *Transport) {
		t.dialOptions = append(t.dialOptions, options...)
	}
}

// NewTransport returns a new gRPC transport.
func NewTransport(options ...TransportOption) *Transport {
	t := &Transport{}
	for _, option := range options {
		option(t)
	}
	return t
}

// Connect implements transport.Transport. The returned connection is a
// *grpc.ClientConn in the ready state.
func (t *Transport) Connect(ctx context.Context, e model.Endpoint, host string) (transport.Connection, error) {
	creds := insecure.NewCredentials()
	if e.IsTLS() {
		creds = credentials.NewTLS(tcp.ClientConfig(t.tlsConfig, host))
	}

	options := append([]grpc.DialOption{
		grpc.WithBlock(),
		grpc.WithReturnConnectionError(),
	}, t.dialOptions...)
	options = append(options, grpc.WithTransportCredentials(creds))

	conn, err := grpc.DialContext(ctx, "passthrough:///"+e.HostPort(), options...)
	if err != nil {
		return nil, err
	}
	return conn, nil
}
