// Copyright 2021 The restclient Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package restclient

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/gogama/restclient/request"
	"gopkg.in/yaml.v3"
)

// Config is the file form of a client's construction parameters.
//
//	base_url: https://api.github.com
//	headers:
//	  User-Agent: my-app/1.0
//	  Accept: application/vnd.github+json
//	params:
//	  per_page: "100"
//	timeout: 30s
type Config struct {
	// BaseURL is the root of the REST API. It must be an absolute http
	// or https URL.
	BaseURL string `yaml:"base_url"`
	// Headers are default header fields sent on every call.
	Headers map[string]string `yaml:"headers"`
	// Params are default query parameters sent on every call.
	Params map[string]string `yaml:"params"`
	// Timeout is the overall request timeout of the default session.
	// Zero means no timeout.
	Timeout time.Duration `yaml:"timeout"`
}

// LoadConfig reads and validates the YAML configuration file at path.
func LoadConfig(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("restclient: read config %s: %w", path, err)
	}
	cfg, err := ParseConfig(b)
	if err != nil {
		return nil, fmt.Errorf("restclient: config %s: %w", path, err)
	}
	return cfg, nil
}

// ParseConfig parses and validates a YAML configuration document.
func ParseConfig(b []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks that the configuration can build a client.
func (cfg *Config) Validate() error {
	cfg.BaseURL = strings.TrimSpace(cfg.BaseURL)
	if cfg.BaseURL == "" {
		return fmt.Errorf("base_url is required")
	}
	u, err := url.Parse(cfg.BaseURL)
	if err != nil {
		return fmt.Errorf("invalid base_url: %w", err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("base_url %q must be an absolute http or https URL", cfg.BaseURL)
	}
	if cfg.Timeout < 0 {
		return fmt.Errorf("timeout must not be negative")
	}
	return nil
}

// Options returns the configured headers and query parameters as
// request options, in a stable order.
func (cfg *Config) Options() []request.Option {
	opts := make([]request.Option, 0, len(cfg.Headers)+len(cfg.Params))
	for _, k := range sortedKeys(cfg.Headers) {
		opts = append(opts, request.Header(k, cfg.Headers[k]))
	}
	for _, k := range sortedKeys(cfg.Params) {
		opts = append(opts, request.Param(k, cfg.Params[k]))
	}
	return opts
}

// NewClient returns a client built from the configuration, with extra
// applied after the configured defaults.
func (cfg *Config) NewClient(extra ...request.Option) *Client {
	c := New(cfg.BaseURL, append(cfg.Options(), extra...)...)
	if cfg.Timeout > 0 {
		timeout := cfg.Timeout
		c.NewSession = func(_ context.Context) (request.Session, error) {
			return NewHTTPSession(timeout)
		}
	}
	return c
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
