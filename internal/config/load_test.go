package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/atlanticdynamic/mcpregistry/internal/registry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func envLookup(vars map[string]string) func(string) (string, bool) {
	return func(key string) (string, bool) {
		v, ok := vars[key]
		return v, ok
	}
}

func writeConfigFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadFromEnvironment(t *testing.T) {
	cfg, err := Load(WithLookupEnv(envLookup(map[string]string{
		registry.EnvEndpoint:   "https://maas.local/api/instance-data-registry/abc",
		registry.EnvBearer:     "token-1",
		registry.EnvInstanceID: "abc",
	})))
	require.NoError(t, err)

	assert.Equal(t, "https://maas.local/api/instance-data-registry/abc", cfg.Endpoint)
	assert.Equal(t, "token-1", cfg.BearerToken)
	assert.Equal(t, "abc", cfg.InstanceID)
	assert.Equal(t, registry.DefaultTimeout, cfg.Timeout)
	assert.NotNil(t, cfg.Logger)
	assert.NoError(t, cfg.Validate())
}

func TestLoadDoesNotRequireSettings(t *testing.T) {
	cfg, err := Load(WithLookupEnv(envLookup(nil)))
	require.NoError(t, err, "missing settings are reported by the client, not the loader")

	var cfgErr *registry.ConfigurationError
	require.ErrorAs(t, cfg.Validate(), &cfgErr)
	assert.Equal(t, registry.EnvEndpoint, cfgErr.Variable)
}

func TestLoadTreatsEmptyVariablesAsUnset(t *testing.T) {
	cfg, err := Load(WithLookupEnv(envLookup(map[string]string{
		registry.EnvEndpoint:   "http://registry",
		registry.EnvBearer:     "",
		registry.EnvInstanceID: "abc",
	})))
	require.NoError(t, err)

	var cfgErr *registry.ConfigurationError
	require.ErrorAs(t, cfg.Validate(), &cfgErr)
	assert.Equal(t, registry.EnvBearer, cfgErr.Variable)
}

func TestLoadTimeout(t *testing.T) {
	tests := []struct {
		name     string
		env      string
		override time.Duration
		want     time.Duration
		wantErr  bool
	}{
		{name: "default", want: registry.DefaultTimeout},
		{name: "from environment", env: "5s", want: 5 * time.Second},
		{name: "override wins", env: "5s", override: 2 * time.Second, want: 2 * time.Second},
		{name: "invalid duration", env: "soon", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			vars := map[string]string{}
			if tt.env != "" {
				vars[registry.EnvTimeout] = tt.env
			}

			cfg, err := Load(WithLookupEnv(envLookup(vars)), WithTimeout(tt.override))
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, registry.ErrConfiguration)
				assert.Contains(t, err.Error(), registry.EnvTimeout)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, cfg.Timeout)
		})
	}
}

func TestLoadUserAgent(t *testing.T) {
	cfg, err := Load(WithLookupEnv(envLookup(nil)), WithUserAgent("mcpregistry/1.2.3"))
	require.NoError(t, err)
	assert.Equal(t, "mcpregistry/1.2.3", cfg.UserAgent)
}

func TestLoadWithFile(t *testing.T) {
	path := writeConfigFile(t, "registry.toml", `
endpoint     = "https://${REGISTRY_HOST:maas.local}/api/instance-data-registry/abc"
bearer_token = "${REGISTRY_TOKEN}"
instance_id  = "abc"
timeout      = "7s"
`)

	t.Run("file values", func(t *testing.T) {
		cfg, err := Load(
			WithFile(path),
			WithLookupEnv(envLookup(map[string]string{"REGISTRY_TOKEN": "from-file-env"})),
		)
		require.NoError(t, err)
		assert.Equal(t, "https://maas.local/api/instance-data-registry/abc", cfg.Endpoint)
		assert.Equal(t, "from-file-env", cfg.BearerToken)
		assert.Equal(t, "abc", cfg.InstanceID)
		assert.Equal(t, 7*time.Second, cfg.Timeout)
	})

	t.Run("environment overrides file", func(t *testing.T) {
		cfg, err := Load(
			WithFile(path),
			WithLookupEnv(envLookup(map[string]string{
				"REGISTRY_TOKEN":       "from-file-env",
				registry.EnvBearer:     "from-env",
				registry.EnvInstanceID: "def",
				registry.EnvTimeout:    "1s",
			})),
		)
		require.NoError(t, err)
		assert.Equal(t, "from-env", cfg.BearerToken)
		assert.Equal(t, "def", cfg.InstanceID)
		assert.Equal(t, time.Second, cfg.Timeout)
	})

	t.Run("missing interpolation variable", func(t *testing.T) {
		_, err := Load(WithFile(path), WithLookupEnv(envLookup(nil)))
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrFailedToLoadConfig)
		assert.ErrorIs(t, err, ErrInvalidConfigFile)
		assert.Contains(t, err.Error(), "REGISTRY_TOKEN")
	})
}

func TestLoadFileErrors(t *testing.T) {
	tests := []struct {
		name    string
		path    func(t *testing.T) string
		wantErr error
	}{
		{
			name:    "missing file",
			path:    func(t *testing.T) string { return filepath.Join(t.TempDir(), "absent.toml") },
			wantErr: ErrConfigFileNotFound,
		},
		{
			name:    "wrong extension",
			path:    func(t *testing.T) string { return writeConfigFile(t, "registry.yaml", "endpoint: x") },
			wantErr: ErrUnsupportedExtension,
		},
		{
			name:    "malformed toml",
			path:    func(t *testing.T) string { return writeConfigFile(t, "registry.toml", "endpoint = ") },
			wantErr: ErrInvalidConfigFile,
		},
		{
			name:    "unknown field",
			path:    func(t *testing.T) string { return writeConfigFile(t, "registry.toml", `endpont = "x"`) },
			wantErr: ErrInvalidConfigFile,
		},
		{
			name:    "invalid timeout",
			path:    func(t *testing.T) string { return writeConfigFile(t, "registry.toml", `timeout = "later"`) },
			wantErr: ErrInvalidConfigFile,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(WithFile(tt.path(t)), WithLookupEnv(envLookup(nil)))
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrFailedToLoadConfig)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}
