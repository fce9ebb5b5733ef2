package registry

import (
	"log/slog"
	"net/http"
	"time"

	"golang.org/x/net/http/httpguts"
)

// Environment variables that carry the registry connection settings.
const (
	EnvEndpoint   = "MAAS_MCP_INSTANCE_DATA_REGISTRY_ENDPOINT"
	EnvBearer     = "MAAS_MCP_INSTANCE_DATA_REGISTRY_BEARER"
	EnvInstanceID = "MAAS_MCP_INSTANCE_UUID"
	EnvTimeout    = "MAAS_MCP_INSTANCE_DATA_REGISTRY_TIMEOUT"
)

// DefaultTimeout bounds a single request when Config.Timeout is zero.
const DefaultTimeout = 30 * time.Second

// Config holds everything the Client needs to talk to the registry. It is built once
// (see the config package) and handed to New; the Client never reads the environment.
type Config struct {
	// Endpoint is the registry base URL, already scoped to this instance
	Endpoint string
	// BearerToken is sent as "Authorization: Bearer <token>"
	BearerToken string
	// InstanceID identifies the caller. It must be present but is not sent to the registry.
	InstanceID string
	// Timeout bounds each request; zero means DefaultTimeout
	Timeout time.Duration
	// UserAgent is sent on every request when non-empty
	UserAgent string

	Logger     *slog.Logger
	HTTPClient *http.Client
}

// Validate reports the first missing or unusable setting as a *ConfigurationError.
// Settings are checked in the order endpoint, bearer token, instance id.
func (c Config) Validate() error {
	if c.Endpoint == "" {
		return &ConfigurationError{Variable: EnvEndpoint}
	}
	if c.BearerToken == "" {
		return &ConfigurationError{Variable: EnvBearer}
	}
	if !httpguts.ValidHeaderFieldValue(c.BearerToken) {
		return &ConfigurationError{Variable: EnvBearer, Reason: "contains characters not allowed in an HTTP header"}
	}
	if c.InstanceID == "" {
		return &ConfigurationError{Variable: EnvInstanceID}
	}
	if c.Timeout < 0 {
		return &ConfigurationError{Variable: EnvTimeout, Reason: "must not be negative"}
	}
	return nil
}

func (c Config) timeout() time.Duration {
	if c.Timeout == 0 {
		return DefaultTimeout
	}
	return c.Timeout
}
