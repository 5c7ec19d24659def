package config

import (
	"fmt"
	"time"
)

// DocstoreServer holds the reference document store's server settings.
type DocstoreServer struct {
	HTTPAddress    string
	RequestTimeout time.Duration
	TokenSignKey   string
	TokenIssuer    string
	TokenDuration  time.Duration
	OwnerEmail     string
	Indexes        []string
}

// DocstoreConfig is the reference document store's configuration view.
type DocstoreConfig struct {
	Server  DocstoreServer
	Version string
}

// GetDocstoreConfig builds and validates the document store configuration.
func GetDocstoreConfig() (*DocstoreConfig, error) {
	cfg, err := GetStructuredConfig()
	if err != nil {
		return nil, fmt.Errorf("error get structured config: %w", err)
	}

	docCfg := newDocstoreConfig(cfg)
	return docCfg, docCfg.validate()
}

func newDocstoreConfig(cfg *StructuredConfig) *DocstoreConfig {
	duration := cfg.Server.TokenDuration
	if duration == 0 {
		duration = 24 * time.Hour
	}

	return &DocstoreConfig{
		Server: DocstoreServer{
			HTTPAddress:    cfg.Server.HTTPAddress,
			RequestTimeout: cfg.Server.RequestTimeout,
			TokenSignKey:   cfg.Server.TokenSignKey,
			TokenIssuer:    cfg.Server.TokenIssuer,
			TokenDuration:  duration,
			OwnerEmail:     cfg.Server.OwnerEmail,
			Indexes:        cfg.Server.Indexes,
		},
		Version: cfg.App.Version,
	}
}
