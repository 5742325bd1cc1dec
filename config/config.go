/*
   Copyright 2025 The DIRPX Authors.

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

package config

import (
	"log/slog"

	"dirpx.dev/xdel/apis"
	"dirpx.dev/xdel/signature"
)

const (
	// DefaultMinAccessibility represents the default for MinAccessibility.
	// Internal and more visible members are served; private and protected are not.
	DefaultMinAccessibility = signature.Internal
	// DefaultMaxDepth represents the default for MaxDepth.
	// A value of 32 should be sufficient for all practical purposes.
	DefaultMaxDepth = 32
	// DefaultMemoize represents the default for Memoize.
	DefaultMemoize = true
)

// discard is shared so that default configs compare equal.
var discard = slog.New(slog.DiscardHandler)

// NewConfig constructs an apis.Config from the given options.
func NewConfig(opts ...Option) apis.Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	// Ensure MaxDepth is valid.
	if cfg.MaxDepth <= 0 {
		cfg.MaxDepth = DefaultMaxDepth
	}
	if cfg.Logger == nil {
		cfg.Logger = discard
	}
	return cfg
}

// DefaultConfig is the default configuration used when none is provided.
func DefaultConfig() apis.Config {
	return apis.Config{
		MinAccessibility: DefaultMinAccessibility,
		MaxDepth:         DefaultMaxDepth,
		Memoize:          DefaultMemoize,
		Logger:           discard,
	}
}

// Logger returns cfg.Logger, or a discarding logger when it is nil.
func Logger(cfg apis.Config) *slog.Logger {
	if cfg.Logger == nil {
		return discard
	}
	return cfg.Logger
}

// Option is a functional option that mutates an apis.Config during construction.
type Option func(*apis.Config)

// WithMinAccessibility sets the MinAccessibility option.
func WithMinAccessibility(a signature.Accessibility) Option {
	return func(c *apis.Config) {
		c.MinAccessibility = a
	}
}

// WithMaxDepth sets the MaxDepth option.
// A non-positive value resets to the default.
func WithMaxDepth(max int) Option {
	return func(c *apis.Config) {
		if max <= 0 {
			c.MaxDepth = DefaultMaxDepth
			return
		}
		c.MaxDepth = max
	}
}

// WithMemoize sets the Memoize option.
func WithMemoize(memoize bool) Option {
	return func(c *apis.Config) {
		c.Memoize = memoize
	}
}

// WithLogger sets the Logger option. Nil restores the discarding logger.
func WithLogger(l *slog.Logger) Option {
	return func(c *apis.Config) {
		if l == nil {
			l = discard
		}
		c.Logger = l
	}
}
