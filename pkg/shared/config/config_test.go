package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestNewConfigAppliesDefaults(t *testing.T) {
	path := writeConfig(t, `
meetup:
  page_size: 50
  max_pages: 3
logger:
  level: debug
http_client:
  timeout: 10s
  proxy:
    host: proxy.local
    port: 3128
output:
  encoding: windows-1252
anonymize:
  level: firstname
`)

	cfg, err := NewConfig(path)
	require.NoError(t, err)

	assert.Equal(t, DefaultBaseURL, cfg.Meetup.BaseURL)
	assert.Equal(t, DefaultOAuthURL, cfg.Meetup.OAuthURL)
	assert.Equal(t, 50, cfg.Meetup.PageSize)
	assert.Equal(t, 3, cfg.Meetup.MaxPages)
	assert.Equal(t, "debug", cfg.Logger.Level)
	assert.Equal(t, 10*time.Second, cfg.HTTPClient.Timeout)
	assert.Equal(t, 3128, cfg.HTTPClient.Proxy.Port)
	assert.Equal(t, "windows-1252", cfg.Output.Encoding)
	assert.Equal(t, DefaultS3Region, cfg.Output.S3Region)
	assert.Equal(t, "firstname", cfg.Anonymize.Level)
	assert.NoError(t, ValidateConfig(cfg))
}

func TestNewConfigRejectsUnknownKeys(t *testing.T) {
	path := writeConfig(t, "meetup:\n  base_ulr: https://api.meetup.com\n")

	_, err := NewConfig(path)
	assert.Error(t, err)
}

func TestNewConfigMissingFile(t *testing.T) {
	_, err := NewConfig(filepath.Join(t.TempDir(), "absent.yml"))
	assert.Error(t, err)

	_, err = NewConfig(t.TempDir())
	assert.ErrorContains(t, err, "is a directory, not a file")
}

func TestLoadConfigWithoutPath(t *testing.T) {
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	cfg, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)

	require.NoError(t, os.WriteFile(DefaultConfigPath, []byte("meetup:\n  page_size: 20\n"), 0644))
	cfg, err = LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, 20, cfg.Meetup.PageSize)
}

func TestValidateConfig(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(cfg *Config)
		wantErr string
	}{
		{name: "defaults", mutate: func(cfg *Config) {}},
		{
			name:    "relative base url",
			mutate:  func(cfg *Config) { cfg.Meetup.BaseURL = "api.meetup.com" },
			wantErr: "base_url must use http or https",
		},
		{
			name:    "base url without host",
			mutate:  func(cfg *Config) { cfg.Meetup.BaseURL = "https://" },
			wantErr: "base_url has no host",
		},
		{
			name:    "page size too large",
			mutate:  func(cfg *Config) { cfg.Meetup.PageSize = 500 },
			wantErr: "page_size must be between 1 and 200",
		},
		{
			name:    "negative max pages",
			mutate:  func(cfg *Config) { cfg.Meetup.MaxPages = -1 },
			wantErr: "max_pages cannot be negative",
		},
		{
			name:    "unknown log level",
			mutate:  func(cfg *Config) { cfg.Logger.Level = "chatty" },
			wantErr: "logger directive is invalid",
		},
		{
			name:    "timeout too long",
			mutate:  func(cfg *Config) { cfg.HTTPClient.Timeout = time.Hour },
			wantErr: "duration is too long",
		},
		{
			name:    "negative timeout",
			mutate:  func(cfg *Config) { cfg.HTTPClient.Timeout = -time.Second },
			wantErr: "cannot be negative",
		},
		{
			name:    "bad proxy port",
			mutate:  func(cfg *Config) { cfg.HTTPClient.Proxy = Proxy{Host: "proxy.local", Port: 70000} },
			wantErr: "port must be between 1 and 65535",
		},
		{
			name:    "unknown encoding",
			mutate:  func(cfg *Config) { cfg.Output.Encoding = "ebcdic" },
			wantErr: "unsupported encoding",
		},
		{
			name:   "numeric anonymize level",
			mutate: func(cfg *Config) { cfg.Anonymize.Level = "1" },
		},
		{
			name:    "unknown anonymize level",
			mutate:  func(cfg *Config) { cfg.Anonymize.Level = "surname" },
			wantErr: "unknown anonymization level",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)

			err := ValidateConfig(cfg)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}

	assert.Error(t, ValidateConfig(nil))
}

func TestValidateProxyAddsScheme(t *testing.T) {
	proxy := Proxy{Host: "proxy.local/", Port: 8080}

	require.NoError(t, validateProxy(&proxy))
	assert.Equal(t, "http://proxy.local", proxy.Host)
	assert.Equal(t, "http://proxy.local:8080", ProxyAddress(proxy))
	assert.Empty(t, ProxyAddress(Proxy{Host: "proxy.local"}))
}

func TestGetBoolValue(t *testing.T) {
	yes := true
	no := false
	cfg := &Config{
		Logger:     Logger{JSONFormat: &yes},
		HTTPClient: HTTPClient{TLSClientConfig: TLSClientConfig{Verify: &no}},
	}

	assert.True(t, GetBoolValue(cfg, "Logger.JSONFormat", false))
	assert.False(t, GetBoolValue(cfg, "HTTPClient.TLSClientConfig.Verify", true))
	assert.True(t, GetBoolValue(cfg, "HTTPClient.Debug", true))
	assert.False(t, GetBoolValue(cfg, "HTTPClient.Missing", false))
	assert.True(t, GetBoolValue(nil, "Logger.JSONFormat", true))
}

func TestSetThen(t *testing.T) {
	assert.Equal(t, "x", SetThen("", "x"))
	assert.Equal(t, "y", SetThen("y", "x"))
	assert.Equal(t, 100, SetThen(0, 100))
	assert.Equal(t, time.Second, SetThen(time.Duration(0), time.Second))
}
