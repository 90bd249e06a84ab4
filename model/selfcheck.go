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

package model

import "github.com/pkg/errors"

// canonicalForms maps endpoint text to the text its parsed value formats to.
var canonicalForms = []struct {
	in, out string
	v6, tls bool
}{
	{"[::1]:4800", "[::1]:4800", true, false},
	{"[2001:0db8:85a3:0000:0000:8a2e:0370:7334]:4800", "[2001:db8:85a3::8a2e:370:7334]:4800", true, false},
	{"[2001:0db8:85a3:0000:0000:8a2e:0370:7334]:4800:tls", "[2001:db8:85a3::8a2e:370:7334]:4800:tls", true, true},
	{"1.2.3.4:80", "1.2.3.4:80", false, false},
	{"1.2.3.4:80:tls", "1.2.3.4:80:tls", false, true},
}

// malformedForms must all be rejected by ParseEndpoint.
var malformedForms = []string{
	"1.2.3.4:80x",
	"1.2.3.4:",
	"1.2.3.4:80 ",
	"[::1:4800",
	"[::1]4800",
}

// SelfCheck verifies the endpoint text grammar against a fixed set of
// canonical and malformed inputs. It returns the first mismatch found.
func SelfCheck() error {
	for _, c := range canonicalForms {
		e, err := ParseEndpoint(c.in)
		if err != nil {
			return errors.Wrap(err, "selfcheck")
		}
		if e.IsV6() != c.v6 {
			return errors.Errorf("selfcheck: %q: want v6 %t, have %t", c.in, c.v6, e.IsV6())
		}
		if e.IsTLS() != c.tls {
			return errors.Errorf("selfcheck: %q: want tls %t, have %t", c.in, c.tls, e.IsTLS())
		}
		if have := e.String(); have != c.out {
			return errors.Errorf("selfcheck: %q: want %q, have %q", c.in, c.out, have)
		}
	}
	for _, in := range malformedForms {
		if _, err := ParseEndpoint(in); !errors.Is(err, ErrInvalidEndpointText) {
			return errors.Errorf("selfcheck: %q: want %v, have %v", in, ErrInvalidEndpointText, err)
		}
	}
	return nil
}
