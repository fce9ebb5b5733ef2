package config

import (
	"log/slog"
	"time"

	"github.com/atlanticdynamic/mcpregistry/internal/interpolation"
)

// Option represents a functional option for Load.
type Option func(*loader)

// WithFile reads settings from a TOML file before the environment is applied.
func WithFile(path string) Option {
	return func(l *loader) {
		l.filePath = path
	}
}

// WithLookupEnv replaces os.LookupEnv, mainly so tests do not touch the process environment.
func WithLookupEnv(lookup interpolation.LookupFunc) Option {
	return func(l *loader) {
		if lookup != nil {
			l.lookup = lookup
		}
	}
}

// WithTimeout overrides any timeout from the file or the environment. Zero leaves them alone.
func WithTimeout(timeout time.Duration) Option {
	return func(l *loader) {
		l.timeout = timeout
	}
}

// WithLogger sets the logger handed to the registry client.
func WithLogger(logger *slog.Logger) Option {
	return func(l *loader) {
		if logger != nil {
			l.logger = logger
		}
	}
}

// WithUserAgent sets the User-Agent sent on every registry request.
func WithUserAgent(userAgent string) Option {
	return func(l *loader) {
		l.userAgent = userAgent
	}
}
