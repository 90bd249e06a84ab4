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

package netloc_test

import (
	"context"
	"errors"
	"net"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/netloc/netloc-go"
	"github.com/netloc/netloc-go/model"
	"github.com/netloc/netloc-go/resolver"
	"github.com/netloc/netloc-go/transport"
	"github.com/netloc/netloc-go/transport/recorder"
)

func staticResolver(list string) resolver.Func {
	endpoints, err := model.ParseEndpointList(list)
	Expect(err).ToNot(HaveOccurred())
	return func(ctx context.Context, host, service string) ([]model.Endpoint, error) {
		return append([]model.Endpoint(nil), endpoints...), nil
	}
}

// blockingResolver waits for its context and reports entering through started.
func blockingResolver(started chan<- struct{}) resolver.Func {
	return func(ctx context.Context, host, service string) ([]model.Endpoint, error) {
		close(started)
		<-ctx.Done()
		return nil, ctx.Err()
	}
}

var _ = Describe("Connector", func() {
	var rec *recorder.Transport

	BeforeEach(func() {
		rec = recorder.NewTransport()
	})

	Context("options", func() {
		It("requires a transport", func() {
			_, err := netloc.NewConnector(nil)
			Expect(err).To(MatchError(netloc.ErrInvalidTransport))
		})

		It("requires a resolver", func() {
			_, err := netloc.NewConnector(rec, netloc.WithResolver(nil))
			Expect(err).To(MatchError(netloc.ErrInvalidResolver))
		})

		It("requires a random source", func() {
			_, err := netloc.NewConnector(rec, netloc.WithRandom(nil))
			Expect(err).To(MatchError(netloc.ErrInvalidRandom))
		})

		It("accepts the defaults", func() {
			c, err := netloc.NewConnector(rec)
			Expect(err).ToNot(HaveOccurred())
			Expect(c).ToNot(BeNil())
		})
	})

	Context("picking", func() {
		It("chooses candidates uniformly", func() {
			const (
				candidates = 4
				trials     = 8000
			)
			c, err := netloc.NewConnector(rec,
				netloc.WithResolver(staticResolver("10.0.0.1:1,10.0.0.2:1,[::1]:1,[::2]:1")),
				netloc.WithRandom(netloc.NewLockedRandom(42)),
			)
			Expect(err).ToNot(HaveOccurred())

			counts := map[model.Endpoint]int{}
			for i := 0; i < trials; i++ {
				e, err := c.Pick(context.Background(), "db.example", "1", false)
				Expect(err).ToNot(HaveOccurred())
				counts[e]++
			}

			Expect(counts).To(HaveLen(candidates))
			for e, n := range counts {
				Expect(n).To(BeNumerically("~", trials/candidates, trials/candidates/5), "endpoint %s", e)
			}
		})

		It("picks reproducibly with the same seed", func() {
			pick := func() []model.Endpoint {
				c, err := netloc.NewConnector(rec,
					netloc.WithResolver(staticResolver("10.0.0.1:1,10.0.0.2:1,10.0.0.3:1")),
					netloc.WithRandom(netloc.NewLockedRandom(7)),
				)
				Expect(err).ToNot(HaveOccurred())
				var picks []model.Endpoint
				for i := 0; i < 16; i++ {
					e, err := c.Pick(context.Background(), "db.example", "1", false)
					Expect(err).ToNot(HaveOccurred())
					picks = append(picks, e)
				}
				return picks
			}
			Expect(pick()).To(Equal(pick()))
		})

		DescribeTable("sets the TLS flag to the request",
			func(list string, useTLS bool) {
				c, err := netloc.NewConnector(rec, netloc.WithResolver(staticResolver(list)))
				Expect(err).ToNot(HaveOccurred())

				for i := 0; i < 8; i++ {
					_, err = c.Connect(context.Background(), "db.example", "4500", useTLS)
					Expect(err).ToNot(HaveOccurred())
				}
				calls := rec.Flush()
				Expect(calls).To(HaveLen(8))
				for _, call := range calls {
					Expect(call.Endpoint.IsTLS()).To(Equal(useTLS))
					Expect(call.Host).To(Equal("db.example"))
				}
			},
			Entry("plain candidates, TLS requested", "10.0.0.1:4500,10.0.0.2:4500", true),
			Entry("TLS candidates, plain requested", "10.0.0.1:4500:tls,10.0.0.2:4500:tls", false),
			Entry("mixed candidates, TLS requested", "10.0.0.1:4500,[::1]:4500:tls", true),
			Entry("mixed candidates, plain requested", "10.0.0.1:4500,[::1]:4500:tls", false),
		)

		It("returns resolver errors unchanged", func() {
			notFound := &net.DNSError{Err: "no such host", Name: "db.example", IsNotFound: true}
			c, err := netloc.NewConnector(rec, netloc.WithResolver(resolver.Func(
				func(context.Context, string, string) ([]model.Endpoint, error) {
					return nil, notFound
				},
			)))
			Expect(err).ToNot(HaveOccurred())

			conn, err := c.Connect(context.Background(), "db.example", "4500", false)
			Expect(err).To(BeIdenticalTo(notFound))
			Expect(conn).To(BeNil())
			Expect(rec.Flush()).To(BeEmpty())
		})

		It("fails without candidates", func() {
			c, err := netloc.NewConnector(rec, netloc.WithResolver(resolver.Func(
				func(context.Context, string, string) ([]model.Endpoint, error) {
					return nil, nil
				},
			)))
			Expect(err).ToNot(HaveOccurred())

			_, err = c.Connect(context.Background(), "db.example", "4500", false)
			Expect(err).To(MatchError(netloc.ErrNoCandidates))
			Expect(rec.Flush()).To(BeEmpty())
		})
	})

	Context("connecting", func() {
		It("returns the transport connection", func() {
			c, err := netloc.NewConnector(rec, netloc.WithResolver(staticResolver("[::1]:4800")))
			Expect(err).ToNot(HaveOccurred())

			conn, err := c.Connect(context.Background(), "db.example", "4800", true)
			Expect(err).ToNot(HaveOccurred())
			Expect(conn).To(BeAssignableToTypeOf(&recorder.Conn{}))
			Expect(conn.(*recorder.Conn).Endpoint.String()).To(Equal("[::1]:4800:tls"))
		})

		It("returns transport errors unchanged", func() {
			refused := errors.New("connection refused")
			rec.FailWith(refused)
			c, err := netloc.NewConnector(rec, netloc.WithResolver(staticResolver("10.0.0.1:4500")))
			Expect(err).ToNot(HaveOccurred())

			_, err = c.Connect(context.Background(), "db.example", "4500", false)
			Expect(err).To(BeIdenticalTo(refused))
		})

		It("does not connect once the context is done after resolution", func() {
			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()
			r := resolver.Func(func(context.Context, string, string) ([]model.Endpoint, error) {
				cancel()
				return model.ParseEndpointList("10.0.0.1:4500")
			})
			c, err := netloc.NewConnector(rec, netloc.WithResolver(r))
			Expect(err).ToNot(HaveOccurred())

			_, err = c.Connect(ctx, "db.example", "4500", false)
			Expect(err).To(MatchError(context.Canceled))
			Expect(rec.Flush()).To(BeEmpty())
		})
	})

	Context("asynchronously", func() {
		It("delivers the connection", func() {
			c, err := netloc.NewConnector(rec, netloc.WithResolver(staticResolver("10.0.0.1:4500")))
			Expect(err).ToNot(HaveOccurred())

			f := c.ConnectAsync(context.Background(), "db.example", "4500", true)
			Eventually(f.Done()).Should(BeClosed())
			conn, err := f.Wait()
			Expect(err).ToNot(HaveOccurred())
			Expect(conn.(*recorder.Conn).Endpoint.IsTLS()).To(BeTrue())
		})

		It("cancels the resolution stage", func() {
			started := make(chan struct{})
			c, err := netloc.NewConnector(rec, netloc.WithResolver(blockingResolver(started)))
			Expect(err).ToNot(HaveOccurred())

			f := c.ConnectAsync(context.Background(), "db.example", "4500", false)
			Eventually(started).Should(BeClosed())
			Consistently(f.Done()).ShouldNot(BeClosed())

			f.Cancel()
			conn, err := f.Wait()
			Expect(err).To(MatchError(context.Canceled))
			Expect(conn).To(BeNil())
			Expect(rec.Flush()).To(BeEmpty())
		})

		It("cancels the connection stage", func() {
			started := make(chan struct{})
			t := transport.Func(func(ctx context.Context, e model.Endpoint, host string) (transport.Connection, error) {
				close(started)
				<-ctx.Done()
				return nil, ctx.Err()
			})
			c, err := netloc.NewConnector(t, netloc.WithResolver(staticResolver("10.0.0.1:4500")))
			Expect(err).ToNot(HaveOccurred())

			f := c.ConnectAsync(context.Background(), "db.example", "4500", false)
			Eventually(started).Should(BeClosed())

			f.Cancel()
			_, err = f.Wait()
			Expect(err).To(MatchError(context.Canceled))
		})

		It("follows the parent context", func() {
			started := make(chan struct{})
			c, err := netloc.NewConnector(rec, netloc.WithResolver(blockingResolver(started)))
			Expect(err).ToNot(HaveOccurred())

			ctx, cancel := context.WithCancel(context.Background())
			f := c.ConnectAsync(ctx, "db.example", "4500", false)
			Eventually(started).Should(BeClosed())

			cancel()
			_, err = f.Wait()
			Expect(err).To(MatchError(context.Canceled))
		})

		It("ignores Cancel once done", func() {
			c, err := netloc.NewConnector(rec, netloc.WithResolver(staticResolver("10.0.0.1:4500")))
			Expect(err).ToNot(HaveOccurred())

			f := c.ConnectAsync(context.Background(), "db.example", "4500", false)
			conn, err := f.Wait()
			Expect(err).ToNot(HaveOccurred())

			f.Cancel()
			again, err := f.Wait()
			Expect(err).ToNot(HaveOccurred())
			Expect(again).To(BeIdenticalTo(conn))
		})
	})
})
