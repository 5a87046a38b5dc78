package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/scan-io-git/meetup-data/internal/anonymize"
	"github.com/scan-io-git/meetup-data/internal/export"
)

const (
	maxPageSize    = 200
	maxHTTPTimeout = 5 * time.Minute
)

// ValidateConfig checks if the global configurations have valid values.
func ValidateConfig(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("YAML global config: configuration object is nil")
	}
	if err := ValidateMeetupConfig(&cfg.Meetup); err != nil {
		return fmt.Errorf("YAML global config: meetup directive is invalid: %w", err)
	}
	if err := ValidateLoggerConfig(&cfg.Logger); err != nil {
		return fmt.Errorf("YAML global config: logger directive is invalid: %w", err)
	}
	if err := ValidateHTTPConfig(&cfg.HTTPClient); err != nil {
		return fmt.Errorf("YAML global config: http_client directive is invalid: %w", err)
	}
	if err := ValidateOutputConfig(&cfg.Output); err != nil {
		return fmt.Errorf("YAML global config: output directive is invalid: %w", err)
	}
	if err := ValidateAnonymizeConfig(&cfg.Anonymize); err != nil {
		return fmt.Errorf("YAML global config: anonymize directive is invalid: %w", err)
	}
	return nil
}

// ValidateMeetupConfig checks the API endpoint and paging settings.
func ValidateMeetupConfig(meetupConfig *Meetup) error {
	if meetupConfig == nil {
		return fmt.Errorf("meetup configuration is nil")
	}
	if err := validateURL(meetupConfig.BaseURL, "base_url"); err != nil {
		return err
	}
	if err := validateURL(meetupConfig.OAuthURL, "oauth_url"); err != nil {
		return err
	}
	if meetupConfig.PageSize < 1 || meetupConfig.PageSize > maxPageSize {
		return fmt.Errorf("page_size must be between 1 and %d: %d", maxPageSize, meetupConfig.PageSize)
	}
	if meetupConfig.MaxPages < 0 {
		return fmt.Errorf("max_pages cannot be negative: %d", meetupConfig.MaxPages)
	}
	return nil
}

// ValidateLoggerConfig checks that the configured level is one hclog knows.
func ValidateLoggerConfig(loggerConfig *Logger) error {
	if loggerConfig == nil {
		return fmt.Errorf("logger configuration is nil")
	}
	switch strings.ToUpper(loggerConfig.Level) {
	case "", "TRACE", "DEBUG", "INFO", "WARN", "ERROR":
		return nil
	default:
		return fmt.Errorf("unknown level %q", loggerConfig.Level)
	}
}

// ValidateHTTPConfig checks if the HTTP configurations have valid values.
func ValidateHTTPConfig(httpConfig *HTTPClient) error {
	if httpConfig == nil {
		return fmt.Errorf("HTTP configuration is nil")
	}
	if err := validateDuration(httpConfig.Timeout, "timeout", maxHTTPTimeout); err != nil {
		return err
	}
	if err := validateProxy(&httpConfig.Proxy); err != nil {
		return err
	}
	return nil
}

// ValidateOutputConfig checks the default output encoding.
func ValidateOutputConfig(outputConfig *Output) error {
	if outputConfig == nil {
		return fmt.Errorf("output configuration is nil")
	}
	if err := export.ValidateEncoding(outputConfig.Encoding); err != nil {
		return err
	}
	return nil
}

// ValidateAnonymizeConfig checks the default anonymization level.
func ValidateAnonymizeConfig(anonymizeConfig *Anonymize) error {
	if anonymizeConfig == nil {
		return fmt.Errorf("anonymize configuration is nil")
	}
	if anonymizeConfig.Level == "" {
		return nil
	}
	_, err := anonymize.ParseLevel(anonymizeConfig.Level)
	return err
}

// validateURL requires an absolute http(s) URL.
func validateURL(raw, name string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("invalid %s %q: %w", name, raw, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("%s must use http or https: %q", name, raw)
	}
	if u.Host == "" {
		return fmt.Errorf("%s has no host: %q", name, raw)
	}
	return nil
}

// validateDuration checks that a time.Duration is valid and within a specified maximum duration.
func validateDuration(d time.Duration, name string, max time.Duration) error {
	if d < 0 {
		return fmt.Errorf("invalid duration for %q: %v cannot be negative", name, d)
	}
	if d > max {
		return fmt.Errorf("%q duration is too long: %v exceeds maximum of %v", name, d, max)
	}
	return nil
}

// validateProxy checks if the given Proxy settings are valid.
func validateProxy(proxy *Proxy) error {
	if proxy == nil {
		return fmt.Errorf("proxy configuration is nil")
	}

	// If host or port is not set, skip further validation
	if proxy.Host == "" || proxy.Port == 0 {
		return nil
	}

	if err := validateHost(&proxy.Host); err != nil {
		return err
	}
	return validatePort(proxy.Port)
}

// validateHost ensures the proxy host includes a scheme; adds "http" if missing.
func validateHost(host *string) error {
	if host == nil {
		return fmt.Errorf("host string pointer is nil")
	}

	if !strings.Contains(*host, "://") {
		*host = "http://" + *host
	}
	*host = strings.TrimRight(*host, "/")

	u, err := url.Parse(*host)
	if err != nil {
		return fmt.Errorf("invalid host URL: %w", err)
	}
	if u.Hostname() == "" {
		return fmt.Errorf("invalid host URL: %q has no host name", *host)
	}
	return nil
}

func validatePort(port int) error {
	if port < 1 || port > 65535 {
		return fmt.Errorf("port must be between 1 and 65535, got %d", port)
	}
	return nil
}

// ProxyAddress returns host:port, or an empty string when no proxy is configured.
func ProxyAddress(proxy Proxy) string {
	if proxy.Host == "" || proxy.Port == 0 {
		return ""
	}
	return fmt.Sprintf("%s:%d", proxy.Host, proxy.Port)
}
