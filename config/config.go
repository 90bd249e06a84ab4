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
Package config loads client configuration from files, environment variables
and flags.
*/
package config

import (
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/spf13/viper"

	"github.com/netloc/netloc-go/model"
)

// EnvPrefix prefixes environment variables overriding configuration keys,
// e.g. NETLOC_CONNECT_TLS for connect.tls.
const EnvPrefix = "NETLOC"

// Configuration keys.
const (
	KeyClusterDescription  = "cluster.description"
	KeyClusterID           = "cluster.id"
	KeyClusterCoordinators = "cluster.coordinators"
	KeyClusterFile         = "cluster.file"
	KeyResolverKind        = "resolver.kind"
	KeyResolverServers     = "resolver.servers"
	KeyResolverHosts       = "resolver.hosts"
	KeyConnectTLS          = "connect.tls"
	KeyConnectTransport    = "connect.transport"
	KeyLogLevel            = "log.level"
)

// Resolver kinds.
const (
	ResolverSystem = "system"
	ResolverDNS    = "dns"
	ResolverStatic = "static"
)

// Transport names.
const (
	TransportTCP    = "tcp"
	TransportGRPC   = "grpc"
	TransportHTTP   = "http"
	TransportKafka  = "kafka"
	TransportAMQP   = "amqp"
	TransportPulsar = "pulsar"
)

const defaultDNSPort = 53

// ErrInvalidValue is returned for configuration values outside their
// allowed set.
var ErrInvalidValue = errors.New("invalid configuration value")

// Config holds the client configuration.
type Config struct {
	Cluster  Cluster
	Resolver ResolverConfig
	Connect  ConnectConfig
	LogLevel zerolog.Level
}

// ResolverConfig selects and parameterizes the resolver.
type ResolverConfig struct {
	Kind    string
	Servers []model.Endpoint
	Hosts   map[string]string
}

// ConnectConfig parameterizes connection attempts.
type ConnectConfig struct {
	TLS       bool
	Transport string
}

// SetDefaults registers the default value of every key on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault(KeyResolverKind, ResolverSystem)
	v.SetDefault(KeyConnectTLS, false)
	v.SetDefault(KeyConnectTransport, TransportTCP)
	v.SetDefault(KeyLogLevel, zerolog.InfoLevel.String())
}

// NewViper returns a viper instance with defaults and environment overrides
// set up. When path is not empty the configuration file is read too.
func NewViper(path string) (*viper.Viper, error) {
	v := viper.New()
	SetDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.Wrapf(err, "read config %s", path)
		}
	}
	return v, nil
}

// Load reads the configuration file at path, if any, applies environment
// overrides and decodes the result.
func Load(path string) (*Config, error) {
	v, err := NewViper(path)
	if err != nil {
		return nil, err
	}
	return FromViper(v)
}

// FromViper decodes and validates the configuration held by v. Any malformed
// endpoint fails the whole call with an error naming the key and the text.
func FromViper(v *viper.Viper) (*Config, error) {
	var (
		c   Config
		err error
	)

	if c.Cluster, err = clusterFromViper(v); err != nil {
		return nil, err
	}

	c.Resolver.Kind = v.GetString(KeyResolverKind)
	switch c.Resolver.Kind {
	case ResolverSystem, ResolverDNS, ResolverStatic:
	default:
		return nil, errors.Wrapf(ErrInvalidValue, "%s %q", KeyResolverKind, c.Resolver.Kind)
	}
	for _, s := range stringList(v.Get(KeyResolverServers)) {
		server, err := parseServer(s)
		if err != nil {
			return nil, errors.Wrapf(err, "config key %s", KeyResolverServers)
		}
		c.Resolver.Servers = append(c.Resolver.Servers, server)
	}
	c.Resolver.Hosts = v.GetStringMapString(KeyResolverHosts)
	for host, list := range c.Resolver.Hosts {
		if _, err = model.ParseEndpointList(list); err != nil {
			return nil, errors.Wrapf(err, "config key %s.%s", KeyResolverHosts, host)
		}
	}
	if c.Resolver.Kind == ResolverDNS && len(c.Resolver.Servers) == 0 {
		return nil, errors.Wrapf(ErrInvalidValue, "%s requires %s", ResolverDNS, KeyResolverServers)
	}

	c.Connect.TLS = v.GetBool(KeyConnectTLS)
	c.Connect.Transport = v.GetString(KeyConnectTransport)
	switch c.Connect.Transport {
	case TransportTCP, TransportGRPC, TransportHTTP, TransportKafka, TransportAMQP, TransportPulsar:
	default:
		return nil, errors.Wrapf(ErrInvalidValue, "%s %q", KeyConnectTransport, c.Connect.Transport)
	}

	if c.LogLevel, err = zerolog.ParseLevel(v.GetString(KeyLogLevel)); err != nil {
		return nil, errors.Wrapf(err, "config key %s", KeyLogLevel)
	}
	return &c, nil
}

func clusterFromViper(v *viper.Viper) (Cluster, error) {
	if path := v.GetString(KeyClusterFile); path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return Cluster{}, errors.Wrapf(err, "config key %s", KeyClusterFile)
		}
		c, err := ParseClusterString(strings.TrimSpace(string(b)))
		if err != nil {
			return Cluster{}, errors.Wrapf(err, "cluster file %s", path)
		}
		return c, nil
	}

	c := Cluster{
		Description: v.GetString(KeyClusterDescription),
		ID:          v.GetString(KeyClusterID),
	}
	if list := strings.Join(stringList(v.Get(KeyClusterCoordinators)), ","); list != "" {
		coordinators, err := model.ParseEndpointList(list)
		if err != nil {
			return Cluster{}, errors.Wrapf(err, "config key %s", KeyClusterCoordinators)
		}
		c.Coordinators = coordinators
	}
	return c, nil
}

// stringList accepts both a comma separated string and a list of strings.
func stringList(raw interface{}) []string {
	switch v := raw.(type) {
	case nil:
		return nil
	case string:
		if v == "" {
			return nil
		}
		return strings.Split(v, ",")
	case []string:
		return v
	case []interface{}:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	default:
		return nil
	}
}

// parseServer accepts endpoint text or a bare address, which gets the DNS
// port.
func parseServer(s string) (model.Endpoint, error) {
	if ip, ok := model.ParseAddress(s); ok {
		return model.NewEndpoint(ip, defaultDNSPort, model.Flags{}), nil
	}
	return model.ParseEndpoint(s)
}
