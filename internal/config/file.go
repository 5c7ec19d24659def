package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// StructuredFileConfig is the on-disk layout of a JSON or YAML config file.
type StructuredFileConfig struct {
	App struct {
		Token       string `json:"token" yaml:"token"`
		AuthorEmail string `json:"author_email" yaml:"author_email"`
		LogFile     string `json:"log_file" yaml:"log_file"`
		Version     string `json:"version" yaml:"version"`
	} `json:"app,omitempty" yaml:"app,omitempty"`

	Storage struct {
		Cache struct {
			DSN string `json:"dsn" yaml:"dsn"`
		} `json:"cache,omitempty" yaml:"cache,omitempty"`
	} `json:"storage,omitempty" yaml:"storage,omitempty"`

	Server struct {
		HTTPAddress    string   `json:"http_address" yaml:"http_address"`
		RequestTimeout Duration `json:"request_timeout" yaml:"request_timeout"`
		TokenSignKey   string   `json:"token_sign_key" yaml:"token_sign_key"`
		TokenIssuer    string   `json:"token_issuer" yaml:"token_issuer"`
		TokenDuration  Duration `json:"token_duration" yaml:"token_duration"`
		OwnerEmail     string   `json:"owner_email" yaml:"owner_email"`
		Indexes        []string `json:"indexes" yaml:"indexes"`
	} `json:"server,omitempty" yaml:"server,omitempty"`

	Adapter struct {
		HTTPAddress    string   `json:"http_address" yaml:"http_address"`
		RequestTimeout Duration `json:"request_timeout" yaml:"request_timeout"`
	} `json:"adapter,omitempty" yaml:"adapter,omitempty"`

	Workers struct {
		ProbeInterval         Duration `json:"probe_interval" yaml:"probe_interval"`
		ProbeFailureThreshold int      `json:"probe_failure_threshold" yaml:"probe_failure_threshold"`
		ResyncInterval        Duration `json:"resync_interval" yaml:"resync_interval"`
	} `json:"workers,omitempty" yaml:"workers,omitempty"`
}

// parseFile reads a config file, choosing the YAML decoder for .yaml/.yml
// paths and JSON otherwise.
func parseFile(path string) (*StructuredConfig, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("error reading a config file: %w", err)
	}
	defer f.Close()

	var fileCfg StructuredFileConfig
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err = yaml.NewDecoder(f).Decode(&fileCfg); err != nil {
			return nil, fmt.Errorf("error decoding yaml configs: %w", err)
		}
	case ".json", "":
		if err = json.NewDecoder(f).Decode(&fileCfg); err != nil {
			return nil, fmt.Errorf("error decoding json configs: %w", err)
		}
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedConfigFile, path)
	}

	return fileCfg.toStructured(), nil
}

func (c *StructuredFileConfig) toStructured() *StructuredConfig {
	return &StructuredConfig{
		App: App{
			Token:       c.App.Token,
			AuthorEmail: c.App.AuthorEmail,
			LogFile:     c.App.LogFile,
			Version:     c.App.Version,
		},
		Storage: Storage{
			Cache: Cache{DSN: c.Storage.Cache.DSN},
		},
		Server: Server{
			HTTPAddress:    c.Server.HTTPAddress,
			RequestTimeout: time.Duration(c.Server.RequestTimeout),
			TokenSignKey:   c.Server.TokenSignKey,
			TokenIssuer:    c.Server.TokenIssuer,
			TokenDuration:  time.Duration(c.Server.TokenDuration),
			OwnerEmail:     c.Server.OwnerEmail,
			Indexes:        c.Server.Indexes,
		},
		Adapter: Adapter{
			HTTPAddress:    c.Adapter.HTTPAddress,
			RequestTimeout: time.Duration(c.Adapter.RequestTimeout),
		},
		Workers: Workers{
			ProbeInterval:         time.Duration(c.Workers.ProbeInterval),
			ProbeFailureThreshold: c.Workers.ProbeFailureThreshold,
			ResyncInterval:        time.Duration(c.Workers.ResyncInterval),
		},
	}
}

// Duration is a wrapper around time.Duration that supports JSON and YAML
// unmarshaling from strings like "1h", "30s".
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		tmp, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		*d = Duration(tmp)
		return nil
	default:
		return json.Unmarshal(b, (*time.Duration)(d))
	}
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}

func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var n int64
	if err := value.Decode(&n); err == nil {
		*d = Duration(time.Duration(n))
		return nil
	}

	tmp, err := time.ParseDuration(value.Value)
	if err != nil {
		return err
	}
	*d = Duration(tmp)
	return nil
}

func (d Duration) MarshalYAML() (interface{}, error) {
	return time.Duration(d).String(), nil
}
