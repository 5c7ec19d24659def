// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEnv_AllFields(t *testing.T) {
	// Arrange
	envVars := map[string]string{
		"CONFIG": "/path/to/config.yaml",

		"APP_TOKEN":        "bearer",
		"APP_AUTHOR_EMAIL": "owner@example.com",
		"APP_LOG_FILE":     "client.log",
		"APP_VERSION":      "1.2.3",

		"STORAGE_CACHE_DSN": "/var/cache/blog.db",

		"ADAPTER_ADDRESS":         "http://localhost:8080",
		"ADAPTER_REQUEST_TIMEOUT": "10s",

		"WORKERS_PROBE_INTERVAL":          "3s",
		"WORKERS_PROBE_FAILURE_THRESHOLD": "2",
		"WORKERS_RESYNC_INTERVAL":         "1m",

		"SERVER_ADDRESS":         "localhost:8080",
		"SERVER_REQUEST_TIMEOUT": "30s",
		"SERVER_TOKEN_SIGN_KEY":  "jwt_secret",
		"SERVER_TOKEN_ISSUER":    "test_issuer",
		"SERVER_TOKEN_DURATION":  "1h",
		"SERVER_OWNER_EMAIL":     "owner@example.com",
		"SERVER_INDEXES":         "comments:postId+date,posts:mood+date",
	}
	setEnvVars(t, envVars)

	// Act
	cfg := &StructuredConfig{}
	err := parseEnv(cfg)

	// Assert
	require.NoError(t, err)

	assert.Equal(t, "/path/to/config.yaml", cfg.FilePath)

	assert.Equal(t, "bearer", cfg.App.Token)
	assert.Equal(t, "owner@example.com", cfg.App.AuthorEmail)
	assert.Equal(t, "client.log", cfg.App.LogFile)
	assert.Equal(t, "1.2.3", cfg.App.Version)

	assert.Equal(t, "/var/cache/blog.db", cfg.Storage.Cache.DSN)

	assert.Equal(t, "http://localhost:8080", cfg.Adapter.HTTPAddress)
	assert.Equal(t, 10*time.Second, cfg.Adapter.RequestTimeout)

	assert.Equal(t, 3*time.Second, cfg.Workers.ProbeInterval)
	assert.Equal(t, 2, cfg.Workers.ProbeFailureThreshold)
	assert.Equal(t, time.Minute, cfg.Workers.ResyncInterval)

	assert.Equal(t, "localhost:8080", cfg.Server.HTTPAddress)
	assert.Equal(t, 30*time.Second, cfg.Server.RequestTimeout)
	assert.Equal(t, "jwt_secret", cfg.Server.TokenSignKey)
	assert.Equal(t, "test_issuer", cfg.Server.TokenIssuer)
	assert.Equal(t, time.Hour, cfg.Server.TokenDuration)
	assert.Equal(t, "owner@example.com", cfg.Server.OwnerEmail)
	assert.Equal(t, []string{"comments:postId+date", "posts:mood+date"}, cfg.Server.Indexes)
}

func TestParseEnv_PartialFields(t *testing.T) {
	setEnvVars(t, map[string]string{
		"STORAGE_CACHE_DSN": "cache.db",
	})

	cfg := &StructuredConfig{}
	require.NoError(t, parseEnv(cfg))

	assert.Equal(t, "cache.db", cfg.Storage.Cache.DSN)
	assert.Empty(t, cfg.Adapter.HTTPAddress)
	assert.Zero(t, cfg.Workers.ProbeInterval)
	assert.Nil(t, cfg.Server.Indexes)
}

func TestParseEnv_InvalidValues(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  string
	}{
		{"bad duration", "ADAPTER_REQUEST_TIMEOUT", "fast"},
		{"bad int", "WORKERS_PROBE_FAILURE_THRESHOLD", "three"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.val)
			err := parseEnv(&StructuredConfig{})
			require.Error(t, err)
			assert.Contains(t, err.Error(), "error getting env configs")
		})
	}
}

func setEnvVars(t *testing.T, vars map[string]string) {
	t.Helper()
	for k, v := range vars {
		t.Setenv(k, v)
	}
}
