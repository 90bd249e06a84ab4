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

package grpc_test

import (
	"context"
	"crypto/tls"
	"net"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"google.golang.org/grpc"
	"google.golang.org/grpc/connectivity"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	"github.com/netloc/netloc-go/model"
	netlocgrpc "github.com/netloc/netloc-go/transport/grpc"
)

func checkHealth(conn *grpc.ClientConn) {
	resp, err := healthpb.NewHealthClient(conn).Check(context.Background(), &healthpb.HealthCheckRequest{})
	Expect(err).ToNot(HaveOccurred())
	Expect(resp.GetStatus()).To(Equal(healthpb.HealthCheckResponse_SERVING))
}

var _ = Describe("gRPC Transport", func() {
	var ctx context.Context

	BeforeEach(func() {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(context.Background(), 5*time.Second)
		DeferCleanup(cancel)
	})

	Context("with a plain endpoint", func() {
		It("returns a ready client connection", func() {
			conn, err := netlocgrpc.NewTransport().Connect(ctx, plainEndpoint, "db.example")
			Expect(err).ToNot(HaveOccurred())
			DeferCleanup(conn.Close)

			cc, ok := conn.(*grpc.ClientConn)
			Expect(ok).To(BeTrue())
			Expect(cc.GetState()).To(Equal(connectivity.Ready))
			checkHealth(cc)
		})

		It("fails when the endpoint refuses connections", func() {
			lis, err := net.Listen("tcp", "127.0.0.1:0")
			Expect(err).ToNot(HaveOccurred())
			e, err := model.ParseEndpoint(lis.Addr().String())
			Expect(err).ToNot(HaveOccurred())
			Expect(lis.Close()).To(Succeed())

			short, cancel := context.WithTimeout(ctx, 500*time.Millisecond)
			defer cancel()
			conn, err := netlocgrpc.NewTransport().Connect(short, e, "db.example")
			Expect(err).To(HaveOccurred())
			Expect(conn).To(BeNil())
		})
	})

	Context("with a TLS endpoint", func() {
		It("verifies the server against the host", func() {
			tr := netlocgrpc.NewTransport(netlocgrpc.TLSConfig(&tls.Config{RootCAs: tlsRoots}))

			conn, err := tr.Connect(ctx, tlsEndpoint, "example.com")
			Expect(err).ToNot(HaveOccurred())
			DeferCleanup(conn.Close)
			checkHealth(conn.(*grpc.ClientConn))
		})

		It("fails for a host the certificate does not cover", func() {
			tr := netlocgrpc.NewTransport(netlocgrpc.TLSConfig(&tls.Config{RootCAs: tlsRoots}))

			short, cancel := context.WithTimeout(ctx, time.Second)
			defer cancel()
			_, err := tr.Connect(short, tlsEndpoint, "other.invalid")
			Expect(err).To(HaveOccurred())
		})

		It("does not speak TLS to a plain endpoint without the tag", func() {
			short, cancel := context.WithTimeout(ctx, time.Second)
			defer cancel()
			_, err := netlocgrpc.NewTransport().Connect(short, tlsEndpoint.WithTLS(false), "example.com")
			Expect(err).To(HaveOccurred())
		})
	})

	It("honours cancellation", func() {
		cancelled, cancel := context.WithCancel(ctx)
		cancel()

		conn, err := netlocgrpc.NewTransport().Connect(cancelled, plainEndpoint, "db.example")
		Expect(err).To(HaveOccurred())
		Expect(conn).To(BeNil())
	})
})
