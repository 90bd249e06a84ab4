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

// Command netloc parses, resolves and connects to network endpoints.
package main

import (
	"io"
	"os"

	"github.com/rs/zerolog"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		reportError(os.Stderr, err)
		os.Exit(1)
	}
}

// reportError writes err to w as a console log line.
func reportError(w io.Writer, err error) {
	logger := zerolog.New(zerolog.ConsoleWriter{Out: w, NoColor: true})
	logger.Error().Err(err).Msg("netloc failed")
}
