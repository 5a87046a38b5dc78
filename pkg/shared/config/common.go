package config

import (
	"crypto/tls"
	"time"
)

const (
	DefaultBaseURL  = "https://api.meetup.com"
	DefaultOAuthURL = "https://secure.meetup.com/oauth2/authorize"
	DefaultPageSize = 100
	DefaultEncoding = "utf-8"
	DefaultS3Region = "eu-west-2"
)

// DefaultMeetupConfig returns the settings of the public meetup.com API.
func DefaultMeetupConfig() Meetup {
	return Meetup{
		BaseURL:  DefaultBaseURL,
		OAuthURL: DefaultOAuthURL,
		PageSize: DefaultPageSize,
		MaxPages: 0, // follow every continuation link
	}
}

// BaseHTTPConfig holds common HTTP client configuration settings.
type BaseHTTPConfig struct {
	RetryCount      int           // Number of retries for failed requests
	Timeout         time.Duration // Timeout for requests
	TLSClientConfig *tls.Config   // TLS configuration
	Proxy           string        // Proxy address
}

// RestyHTTPClientConfig holds additional configuration settings for the Resty HTTP client.
type RestyHTTPClientConfig struct {
	BaseHTTPConfig
	Debug bool // Flag to enable Resty debug mode
}

// DefaultHTTPConfig returns a base configuration for HTTP clients with default values.
// Requests are never retried: a failed page aborts the export.
func DefaultHTTPConfig() BaseHTTPConfig {
	return BaseHTTPConfig{
		RetryCount: 0,
		Timeout:    30 * time.Second,
		TLSClientConfig: &tls.Config{
			MinVersion:         tls.VersionTLS12, // Enforce a minimum TLS version
			InsecureSkipVerify: false,            // Ensure TLS certificates are verified
		},
		Proxy: "", // No proxy by default
	}
}

// DefaultRestyConfig returns a default configuration for the Resty HTTP client, extending the base HTTP configuration.
func DefaultRestyConfig() RestyHTTPClientConfig {
	baseConfig := DefaultHTTPConfig()
	return RestyHTTPClientConfig{
		BaseHTTPConfig: baseConfig,
		Debug:          false, // Debug mode is disabled by default
	}
}
