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
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/netloc/netloc-go/model"
)

func registerParse(rootCmd *cobra.Command, globalOptions *GlobalOptions) {
	var asJSON bool
	subCmd := &cobra.Command{
		Use:   "parse ENDPOINT...",
		Short: "Prints the canonical form of each endpoint",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			endpoints := make([]model.Endpoint, 0, len(args))
			for _, arg := range args {
				e, err := model.ParseEndpoint(arg)
				if err != nil {
					return err
				}
				endpoints = append(endpoints, e)
			}
			if asJSON {
				return json.NewEncoder(cmd.OutOrStdout()).Encode(endpoints)
			}
			for _, e := range endpoints {
				fmt.Fprintln(cmd.OutOrStdout(), e)
			}
			return nil
		},
	}
	subCmd.Flags().BoolVar(&asJSON, "json", false, "print a JSON array")
	rootCmd.AddCommand(subCmd)
}

func registerList(rootCmd *cobra.Command, globalOptions *GlobalOptions) {
	var sortList, dedup bool
	subCmd := &cobra.Command{
		Use:   "list LIST",
		Short: "Parses a comma separated endpoint list",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			endpoints, err := model.ParseEndpointList(args[0])
			if err != nil {
				return err
			}
			switch {
			case dedup:
				endpoints = model.DedupEndpoints(endpoints)
			case sortList:
				model.SortEndpoints(endpoints)
			}
			globalOptions.logger.Debug().Int("endpoints", len(endpoints)).Msg("parsed list")
			fmt.Fprintln(cmd.OutOrStdout(), model.FormatEndpointList(endpoints))
			return nil
		},
	}
	subCmd.Flags().BoolVar(&sortList, "sort", false, "sort the endpoints")
	subCmd.Flags().BoolVar(&dedup, "dedup", false, "sort the endpoints and drop duplicates")
	rootCmd.AddCommand(subCmd)
}

func registerSelfCheck(rootCmd *cobra.Command, globalOptions *GlobalOptions) {
	subCmd := &cobra.Command{
		Use:   "selfcheck",
		Short: "Checks endpoint text canonicalization and strictness",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := model.SelfCheck(); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "OK")
			return nil
		},
	}
	rootCmd.AddCommand(subCmd)
}
