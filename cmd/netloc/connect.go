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

package main

import (
	"context"
	"fmt"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/netloc/netloc-go"
	"github.com/netloc/netloc-go/config"
	"github.com/netloc/netloc-go/resolver"
	"github.com/netloc/netloc-go/resolver/dns"
	"github.com/netloc/netloc-go/resolver/static"
	"github.com/netloc/netloc-go/resolver/system"
	"github.com/netloc/netloc-go/transport"
	"github.com/netloc/netloc-go/transport/amqp"
	"github.com/netloc/netloc-go/transport/grpc"
	"github.com/netloc/netloc-go/transport/http"
	"github.com/netloc/netloc-go/transport/kafka"
	"github.com/netloc/netloc-go/transport/log"
	"github.com/netloc/netloc-go/transport/pulsar"
	"github.com/netloc/netloc-go/transport/recorder"
	"github.com/netloc/netloc-go/transport/tcp"
)

func newResolver(c *config.Config, logger zerolog.Logger) (resolver.Resolver, error) {
	switch c.Resolver.Kind {
	case config.ResolverDNS:
		r, err := dns.NewResolver(c.Resolver.Servers, dns.Logger(logger))
		if err != nil {
			return nil, err
		}
		return r, nil
	case config.ResolverStatic:
		r, err := static.NewResolver(c.Resolver.Hosts)
		if err != nil {
			return nil, err
		}
		return r, nil
	default:
		return system.NewResolver(), nil
	}
}

func newTransport(c *config.Config, logger zerolog.Logger) transport.Transport {
	switch c.Connect.Transport {
	case config.TransportGRPC:
		return grpc.NewTransport()
	case config.TransportHTTP:
		return http.NewTransport(http.Logger(logger))
	case config.TransportKafka:
		return kafka.NewTransport(kafka.Logger(logger))
	case config.TransportAMQP:
		return amqp.NewTransport(amqp.Logger(logger))
	case config.TransportPulsar:
		return pulsar.NewTransport(pulsar.Logger(logger))
	default:
		return tcp.NewTransport()
	}
}

func registerResolve(rootCmd *cobra.Command, globalOptions *GlobalOptions) {
	var timeout time.Duration
	subCmd := &cobra.Command{
		Use:   "resolve HOST SERVICE",
		Short: "Prints every endpoint a host and service resolve to",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := newResolver(globalOptions.config, globalOptions.logger)
			if err != nil {
				return err
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
			defer cancel()

			endpoints, err := r.ResolveTCPEndpoint(ctx, args[0], args[1])
			if err != nil {
				return err
			}
			for _, e := range endpoints {
				fmt.Fprintln(cmd.OutOrStdout(), e)
			}
			return nil
		},
	}
	subCmd.Flags().String("resolver", config.ResolverSystem, "resolver kind (system, dns, static)")
	subCmd.Flags().DurationVar(&timeout, "timeout", 10*time.Second, "resolution timeout")
	rootCmd.AddCommand(subCmd)
}

func registerConnect(rootCmd *cobra.Command, globalOptions *GlobalOptions) {
	var (
		timeout time.Duration
		dryRun  bool
	)
	subCmd := &cobra.Command{
		Use:   "connect HOST SERVICE",
		Short: "Connects to one endpoint picked at random for a host and service",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, logger := globalOptions.config, globalOptions.logger

			r, err := newResolver(c, logger)
			if err != nil {
				return err
			}
			var next transport.Transport
			rec := recorder.NewTransport()
			if dryRun {
				next = rec
			} else {
				next = newTransport(c, logger)
			}

			connector, err := netloc.NewConnector(
				log.NewTransport(next, logger),
				netloc.WithResolver(r),
				netloc.WithLogger(logger),
			)
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
			defer cancel()

			conn, err := connector.Connect(ctx, args[0], args[1], c.Connect.TLS)
			if err != nil {
				return errors.Wrapf(err, "connect %s %s", args[0], args[1])
			}
			defer conn.Close()

			if dryRun {
				for _, call := range rec.Flush() {
					fmt.Fprintln(cmd.OutOrStdout(), call.Endpoint)
				}
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), "connected via", c.Connect.Transport)
			return nil
		},
	}
	subCmd.Flags().Bool("tls", false, "tag the picked endpoint for TLS")
	subCmd.Flags().String("transport", config.TransportTCP, "transport (tcp, grpc, http, kafka, amqp, pulsar)")
	subCmd.Flags().String("resolver", config.ResolverSystem, "resolver kind (system, dns, static)")
	subCmd.Flags().DurationVar(&timeout, "timeout", 10*time.Second, "resolution and connection timeout")
	subCmd.Flags().BoolVar(&dryRun, "dry-run", false, "print the picked endpoint instead of connecting")
	rootCmd.AddCommand(subCmd)
}

