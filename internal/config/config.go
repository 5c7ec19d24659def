// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"time"
)

// StructuredConfig is the top-level configuration container shared by the
// blog client and the reference document store. It aggregates all
// sub-configurations and is populated by merging values from environment
// variables, command-line flags, and an optional JSON or YAML file.
//
// Struct tags:
//   - envPrefix: prefix applied to all nested env tag lookups (caarlos0/env).
//   - env: direct environment variable name for scalar fields.
type StructuredConfig struct {
	// App holds client application settings: the bearer token, the blog
	// author's email and the log file location.
	App App `envPrefix:"APP_"`

	// Storage holds configuration for the client-side Local Cache.
	Storage Storage `envPrefix:"STORAGE_"`

	// Server holds the reference document store's listen address, token
	// verification parameters and index provisioning.
	Server Server `envPrefix:"SERVER_"`

	// Adapter holds the Remote Gateway target and request timeout.
	Adapter Adapter `envPrefix:"ADAPTER_"`

	// Workers holds the connectivity probe and resync job settings.
	Workers Workers `envPrefix:"WORKERS_"`

	// FilePath is the optional path to a JSON or YAML configuration file.
	// When non-empty, the file is parsed and merged with the values already
	// loaded from environment variables and flags.
	// Populated via the CONFIG environment variable or the -c / -config flag.
	FilePath string `env:"CONFIG"`
}

// Storage groups the configuration for the client storage backends.
type Storage struct {
	// Cache holds the Local Cache database settings.
	Cache Cache `envPrefix:"CACHE_"`
}

// Cache holds connection settings for the SQLite Local Cache.
type Cache struct {
	// DSN is the SQLite file path of the cache. The special value
	// ":memory:" selects a non-durable in-process cache.
	// Env: STORAGE_CACHE_DSN
	DSN string `env:"DSN"`
}

// App holds client-side application values.
type App struct {
	// Token is the bearer token presented to the document store. Its claims
	// also drive the client's authorization verdicts.
	// Env: APP_TOKEN
	Token string `env:"TOKEN"`

	// AuthorEmail is the email of the blog owner. Only a session whose token
	// carries this email may create, edit or delete posts.
	// Env: APP_AUTHOR_EMAIL
	AuthorEmail string `env:"AUTHOR_EMAIL"`

	// LogFile is the file the client writes its JSON logs to, keeping the
	// terminal free for the TUI.
	// Env: APP_LOG_FILE
	LogFile string `env:"LOG_FILE"`

	// Version is the semantic version string of the running application.
	// Env: APP_VERSION
	Version string `env:"VERSION"`
}

// Server holds settings of the reference document store.
type Server struct {
	// HTTPAddress is the TCP address on which the HTTP server listens,
	// in "host:port" format (e.g. "0.0.0.0:8080").
	// Env: SERVER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// RequestTimeout is the maximum duration allowed for a single non-stream
	// request before the server cancels it (e.g. "30s", "1m").
	// Env: SERVER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`

	// TokenSignKey is the HMAC secret used to verify (and mint) bearer tokens.
	// Env: SERVER_TOKEN_SIGN_KEY
	TokenSignKey string `env:"TOKEN_SIGN_KEY"`

	// TokenIssuer is the expected "iss" claim of every bearer token.
	// Env: SERVER_TOKEN_ISSUER
	TokenIssuer string `env:"TOKEN_ISSUER"`

	// TokenDuration specifies how long a minted token remains valid.
	// Env: SERVER_TOKEN_DURATION
	TokenDuration time.Duration `env:"TOKEN_DURATION"`

	// OwnerEmail is the blog owner's email; post writes and foreign comment
	// deletes are only accepted from tokens carrying it.
	// Env: SERVER_OWNER_EMAIL
	OwnerEmail string `env:"OWNER_EMAIL"`

	// Indexes lists provisioned composite indexes in the form
	// "collection:filterField+orderField" (e.g. "comments:postId+date").
	// Env: SERVER_INDEXES (comma separated)
	Indexes []string `env:"INDEXES" envSeparator:","`
}

// Adapter holds the settings of the Remote Gateway client.
type Adapter struct {
	// HTTPAddress is the base URL (or host:port) of the document store.
	// Env: ADAPTER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// RequestTimeout is the maximum duration of a single outbound request.
	// Push subscriptions are not bound by it.
	// Env: ADAPTER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// Workers holds configuration for the client background workers.
type Workers struct {
	// ProbeInterval is how often the connectivity probe pings the store.
	// Env: WORKERS_PROBE_INTERVAL
	ProbeInterval time.Duration `env:"PROBE_INTERVAL"`

	// ProbeFailureThreshold is the number of consecutive failed pings after
	// which the probe reports the host offline.
	// Env: WORKERS_PROBE_FAILURE_THRESHOLD
	ProbeFailureThreshold int `env:"PROBE_FAILURE_THRESHOLD"`

	// ResyncInterval is how often engines stuck on a one-shot view retry
	// entering live mode.
	// Env: WORKERS_RESYNC_INTERVAL
	ResyncInterval time.Duration `env:"RESYNC_INTERVAL"`
}

// GetStructuredConfig loads and merges the configuration from all available
// sources in the following priority order (the first source that sets a
// field wins):
//  1. Environment variables
//  2. Command-line flags
//  3. Config file (path resolved from sources 1 and 2)
func GetStructuredConfig() (*StructuredConfig, error) {
	return newConfigBuilder().
		withEnv().
		withFlags().
		withFile().
		build()
}
