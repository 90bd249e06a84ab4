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
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/netloc/netloc-go/model"
	"github.com/netloc/netloc-go/proto/endpointpb"
)

// listSerializer encodes endpoint lists.
type listSerializer interface {
	Serialize(endpoints []model.Endpoint) ([]byte, error)
	ContentType() string
}

type jsonSerializer struct{}

func (jsonSerializer) Serialize(endpoints []model.Endpoint) ([]byte, error) {
	return json.Marshal(endpoints)
}

func (jsonSerializer) ContentType() string { return "application/json" }

var serializers = map[string]listSerializer{
	"json":  jsonSerializer{},
	"proto": endpointpb.ListSerializer{},
}

func registerEncode(rootCmd *cobra.Command, globalOptions *GlobalOptions) {
	var format string
	subCmd := &cobra.Command{
		Use:   "encode LIST",
		Short: "Encodes an endpoint list as JSON or hex protobuf",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, ok := serializers[format]
			if !ok {
				return errors.Errorf("unknown format %q", format)
			}
			endpoints, err := model.ParseEndpointList(args[0])
			if err != nil {
				return err
			}
			b, err := s.Serialize(endpoints)
			if err != nil {
				return err
			}
			globalOptions.logger.Debug().Str("content_type", s.ContentType()).Int("bytes", len(b)).Msg("encoded")
			if format == "proto" {
				fmt.Fprintln(cmd.OutOrStdout(), hex.EncodeToString(b))
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(b))
			return nil
		},
	}
	subCmd.Flags().StringVar(&format, "format", "proto", "output format (proto, json)")
	rootCmd.AddCommand(subCmd)
}

func registerDecode(rootCmd *cobra.Command, globalOptions *GlobalOptions) {
	subCmd := &cobra.Command{
		Use:   "decode HEX",
		Short: "Decodes a hex protobuf endpoint list",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := hex.DecodeString(strings.TrimSpace(args[0]))
			if err != nil {
				return errors.Wrap(err, "decode hex")
			}
			endpoints, err := endpointpb.UnmarshalList(b)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), model.FormatEndpointList(endpoints))
			return nil
		},
	}
	rootCmd.AddCommand(subCmd)
}
