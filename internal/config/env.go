// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// parseEnv fills cfg from the environment. Variables are named after the
// `env`/`envPrefix` tags of [StructuredConfig], e.g. ADAPTER_ADDRESS or
// SERVER_INDEXES (a comma separated list).
func parseEnv(cfg any) error {
	if err := env.Parse(cfg); err != nil {
		return fmt.Errorf("error getting env configs: %w", err)
	}
	return nil
}
