// Package config builds the registry client configuration once per process.
//
// Settings are layered: defaults, then an optional TOML file, then the MAAS_* environment
// variables, then explicit overrides such as a command-line timeout. Load does not check that
// required settings are present; the registry client does that on every call so the error
// names the missing environment variable.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/atlanticdynamic/mcpregistry/internal/interpolation"
	"github.com/atlanticdynamic/mcpregistry/internal/registry"
)

type loader struct {
	filePath  string
	lookup    interpolation.LookupFunc
	timeout   time.Duration
	logger    *slog.Logger
	userAgent string
}

// Load assembles a registry.Config from the configured sources.
func Load(opts ...Option) (registry.Config, error) {
	l := &loader{
		lookup: os.LookupEnv,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(l)
	}

	cfg := registry.Config{
		Timeout:   registry.DefaultTimeout,
		UserAgent: l.userAgent,
		Logger:    l.logger,
	}

	if l.filePath != "" {
		fc, err := loadFile(l.filePath, l.lookup)
		if err != nil {
			return registry.Config{}, fmt.Errorf("%w: %w", ErrFailedToLoadConfig, err)
		}
		if err := fc.applyTo(&cfg); err != nil {
			return registry.Config{}, fmt.Errorf("%w: %w", ErrFailedToLoadConfig, err)
		}
		l.logger.Debug("Loaded registry settings from file", "path", l.filePath)
	}

	if err := l.applyEnv(&cfg); err != nil {
		return registry.Config{}, err
	}

	if l.timeout > 0 {
		cfg.Timeout = l.timeout
	}

	return cfg, nil
}

// applyEnv overlays every non-empty MAAS_* variable onto cfg.
func (l *loader) applyEnv(cfg *registry.Config) error {
	if v := l.get(registry.EnvEndpoint); v != "" {
		cfg.Endpoint = v
	}
	if v := l.get(registry.EnvBearer); v != "" {
		cfg.BearerToken = v
	}
	if v := l.get(registry.EnvInstanceID); v != "" {
		cfg.InstanceID = v
	}
	if v := l.get(registry.EnvTimeout); v != "" {
		timeout, err := time.ParseDuration(v)
		if err != nil {
			return &registry.ConfigurationError{
				Variable: registry.EnvTimeout,
				Reason:   fmt.Sprintf("is not a valid duration: %q", v),
			}
		}
		cfg.Timeout = timeout
	}
	return nil
}

func (l *loader) get(name string) string {
	v, _ := l.lookup(name)
	return v
}
