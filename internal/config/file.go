package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/atlanticdynamic/mcpregistry/internal/interpolation"
	"github.com/atlanticdynamic/mcpregistry/internal/registry"
	"github.com/pelletier/go-toml/v2"
)

// fileConfig is the TOML layout of a registry settings file:
//
//	endpoint     = "https://${MAAS_HOST}/api/instance-data-registry/${MAAS_MCP_INSTANCE_UUID}"
//	bearer_token = "${REGISTRY_TOKEN}"
//	instance_id  = "${MAAS_MCP_INSTANCE_UUID}"
//	timeout      = "10s"
type fileConfig struct {
	Endpoint    string `toml:"endpoint"     env_interpolation:"yes"`
	BearerToken string `toml:"bearer_token" env_interpolation:"yes"`
	InstanceID  string `toml:"instance_id"  env_interpolation:"yes"`
	Timeout     string `toml:"timeout"      env_interpolation:"yes"`
}

// loadFile reads and interpolates a TOML settings file.
func loadFile(path string, lookup interpolation.LookupFunc) (*fileConfig, error) {
	if ext := filepath.Ext(path); ext != ".toml" {
		return nil, fmt.Errorf("%w: '%s'", ErrUnsupportedExtension, ext)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigFileNotFound, path)
		}
		return nil, fmt.Errorf("failed to read config file '%s': %w", path, err)
	}

	fc := &fileConfig{}
	decoder := toml.NewDecoder(bytes.NewReader(data)).DisallowUnknownFields()
	if err := decoder.Decode(fc); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrInvalidConfigFile, path, err)
	}

	if err := interpolation.InterpolateStruct(fc, lookup); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrInvalidConfigFile, path, err)
	}

	return fc, nil
}

// applyTo copies every non-empty file setting onto cfg.
func (fc *fileConfig) applyTo(cfg *registry.Config) error {
	if fc.Endpoint != "" {
		cfg.Endpoint = fc.Endpoint
	}
	if fc.BearerToken != "" {
		cfg.BearerToken = fc.BearerToken
	}
	if fc.InstanceID != "" {
		cfg.InstanceID = fc.InstanceID
	}
	if fc.Timeout != "" {
		timeout, err := time.ParseDuration(fc.Timeout)
		if err != nil {
			return fmt.Errorf("%w: timeout: %w", ErrInvalidConfigFile, err)
		}
		cfg.Timeout = timeout
	}
	return nil
}
