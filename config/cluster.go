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

package config

import (
	"strings"

	"github.com/pkg/errors"

	"github.com/netloc/netloc-go/model"
)

// ErrInvalidClusterString is returned when parsing a malformed cluster
// string.
var ErrInvalidClusterString = errors.New("invalid cluster string")

// Cluster describes how to reach a cluster: a human readable description, a
// unique id and the coordinator endpoints.
type Cluster struct {
	Description  string           `json:"description"`
	ID           string           `json:"id"`
	Coordinators []model.Endpoint `json:"coordinators"`
}

// ParseClusterString parses the one line form
//
//	description:id@endpoint,endpoint,...
//
// The description may hold letters, digits and underscores, the id letters
// and digits. At least one coordinator is required.
func ParseClusterString(s string) (Cluster, error) {
	at := strings.IndexByte(s, '@')
	if at < 0 {
		return Cluster{}, errors.Wrapf(ErrInvalidClusterString, "missing '@' in %q", s)
	}
	head, list := s[:at], s[at+1:]

	colon := strings.IndexByte(head, ':')
	if colon < 0 {
		return Cluster{}, errors.Wrapf(ErrInvalidClusterString, "missing ':' in %q", s)
	}
	description, id := head[:colon], head[colon+1:]
	if description == "" || !isWord(description, true) {
		return Cluster{}, errors.Wrapf(ErrInvalidClusterString, "bad description %q", description)
	}
	if id == "" || !isWord(id, false) {
		return Cluster{}, errors.Wrapf(ErrInvalidClusterString, "bad id %q", id)
	}

	coordinators, err := model.ParseEndpointList(list)
	if err != nil {
		return Cluster{}, errors.Wrap(err, "cluster coordinators")
	}
	return Cluster{Description: description, ID: id, Coordinators: coordinators}, nil
}

// String returns the one line form of c.
func (c Cluster) String() string {
	return c.Description + ":" + c.ID + "@" + model.FormatEndpointList(c.Coordinators)
}

func isWord(s string, underscore bool) bool {
	for i := 0; i < len(s); i++ {
		switch ch := s[i]; {
		case ch >= 'a' && ch <= 'z', ch >= 'A' && ch <= 'Z', ch >= '0' && ch <= '9':
		case ch == '_' && underscore:
		default:
			return false
		}
	}
	return true
}
