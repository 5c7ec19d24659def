// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"
	"strings"
)

// validate checks the merged [StructuredConfig] for values that are wrong
// regardless of which binary consumes them.
func (cfg *StructuredConfig) validate() error {
	if cfg.Workers.ProbeFailureThreshold < 0 {
		return fmt.Errorf("%w: negative probe failure threshold", ErrInvalidWorkerConfigs)
	}

	for _, idx := range cfg.Server.Indexes {
		collection, fields, ok := strings.Cut(idx, ":")
		if !ok || collection == "" || !strings.Contains(fields, "+") {
			return fmt.Errorf("%w: malformed index %q", ErrInvalidServerConfigs, idx)
		}
	}

	return nil
}

func (cfg *ClientConfig) validate() error {
	if cfg.Storage.Cache.DSN == "" {
		return ErrInvalidStorageConfigs
	}

	if cfg.Adapter.HTTPAddress == "" || cfg.Adapter.RequestTimeout <= 0 {
		return ErrInvalidAdapterConfigs
	}

	if cfg.Workers.ProbeInterval <= 0 || cfg.Workers.ResyncInterval <= 0 {
		return ErrInvalidWorkerConfigs
	}

	return nil
}

func (cfg *DocstoreConfig) validate() error {
	if cfg.Server.HTTPAddress == "" || cfg.Server.TokenSignKey == "" {
		return ErrInvalidServerConfigs
	}

	return nil
}
