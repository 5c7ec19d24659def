package config

import (
	"fmt"
	"time"
)

// ClientApp holds client-side application settings derived from the shared
// structured config.
type ClientApp struct {
	// Token is the bearer token used for store requests and capability checks.
	Token string
	// AuthorEmail is the blog owner's email.
	AuthorEmail string
	// LogFile is the client's log destination.
	LogFile string
	// Version is the client version string.
	Version string
}

// ClientAdapter holds network settings used by the Remote Gateway.
type ClientAdapter struct {
	// HTTPAddress is the document store endpoint.
	HTTPAddress string
	// RequestTimeout is the default timeout for outbound requests.
	RequestTimeout time.Duration
}

// ClientCache contains Local Cache settings.
type ClientCache struct {
	// DSN is the SQLite file path, or ":memory:".
	DSN string
}

// ClientStorage groups client storage backend settings.
type ClientStorage struct {
	// Cache holds the Local Cache settings.
	Cache ClientCache
}

// ClientWorkers contains client background worker settings.
type ClientWorkers struct {
	// ProbeInterval defines how often the connectivity probe runs.
	ProbeInterval time.Duration
	// ProbeFailureThreshold is the number of consecutive failures that flips
	// the monitor offline.
	ProbeFailureThreshold int
	// ResyncInterval defines how often degraded engines are resynced.
	ResyncInterval time.Duration
}

// ClientConfig is the top-level client configuration assembled from
// [StructuredConfig].
type ClientConfig struct {
	// App contains application-level client settings.
	App ClientApp
	// Adapter contains the document store address and timeout.
	Adapter ClientAdapter
	// Storage contains client storage settings.
	Storage ClientStorage
	// Workers contains background job settings.
	Workers ClientWorkers
}

// GetClientConfig builds and validates a client-specific config view from the
// merged structured configuration.
func GetClientConfig() (*ClientConfig, error) {
	cfg, err := GetStructuredConfig()
	if err != nil {
		return nil, fmt.Errorf("error get structured config: %w", err)
	}

	clientCfg := newClientConfig(cfg)
	return clientCfg, clientCfg.validate()
}

func newClientConfig(cfg *StructuredConfig) *ClientConfig {
	threshold := cfg.Workers.ProbeFailureThreshold
	if threshold == 0 {
		threshold = 1
	}

	return &ClientConfig{
		App: ClientApp{
			Token:       cfg.App.Token,
			AuthorEmail: cfg.App.AuthorEmail,
			LogFile:     cfg.App.LogFile,
			Version:     cfg.App.Version,
		},
		Adapter: ClientAdapter{
			HTTPAddress:    cfg.Adapter.HTTPAddress,
			RequestTimeout: cfg.Adapter.RequestTimeout,
		},
		Storage: ClientStorage{
			Cache: ClientCache{DSN: cfg.Storage.Cache.DSN},
		},
		Workers: ClientWorkers{
			ProbeInterval:         cfg.Workers.ProbeInterval,
			ProbeFailureThreshold: threshold,
			ResyncInterval:        cfg.Workers.ResyncInterval,
		},
	}
}
