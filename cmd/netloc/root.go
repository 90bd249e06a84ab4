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
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/netloc/netloc-go/config"
	"github.com/netloc/netloc-go/model"
)

// GlobalOptions holds state shared by all subcommands.
type GlobalOptions struct {
	ConfigPath string
	SelfCheck  bool

	config *config.Config
	logger zerolog.Logger
}

// flagKeys maps flags to the configuration keys they override.
var flagKeys = map[string]string{
	"log-level": config.KeyLogLevel,
	"tls":       config.KeyConnectTLS,
	"transport": config.KeyConnectTransport,
	"resolver":  config.KeyResolverKind,
}

func newRootCmd() *cobra.Command {
	globalOptions := &GlobalOptions{logger: zerolog.Nop()}

	rootCmd := &cobra.Command{
		Use:           "netloc",
		Short:         "Parse, resolve and connect to network endpoints",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return globalOptions.load(cmd)
		},
	}
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&globalOptions.ConfigPath, "config", "", "path to the configuration file")
	flags.String("log-level", "info", "log level (trace, debug, info, warn, error)")
	flags.BoolVar(&globalOptions.SelfCheck, "selfcheck", false, "run the endpoint text self check before the command")

	registerParse(rootCmd, globalOptions)
	registerList(rootCmd, globalOptions)
	registerResolve(rootCmd, globalOptions)
	registerConnect(rootCmd, globalOptions)
	registerEncode(rootCmd, globalOptions)
	registerDecode(rootCmd, globalOptions)
	registerSelfCheck(rootCmd, globalOptions)
	return rootCmd
}

// load reads the configuration, binding the flags of cmd over it.
func (g *GlobalOptions) load(cmd *cobra.Command) error {
	v, err := config.NewViper(g.ConfigPath)
	if err != nil {
		return err
	}
	for name, key := range flagKeys {
		if f := cmd.Flags().Lookup(name); f != nil {
			if err = v.BindPFlag(key, f); err != nil {
				return errors.Wrapf(err, "bind flag %s", name)
			}
		}
	}
	c, err := config.FromViper(v)
	if err != nil {
		return err
	}

	g.config = c
	g.logger = zerolog.New(zerolog.ConsoleWriter{Out: cmd.ErrOrStderr()}).
		Level(c.LogLevel).
		With().Timestamp().Logger()

	if g.SelfCheck {
		if err = model.SelfCheck(); err != nil {
			return err
		}
		g.logger.Debug().Msg("self check passed")
	}
	return nil
}
