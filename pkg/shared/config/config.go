package config

import (
	"os"
	"time"

	yaml "gopkg.in/yaml.v2"

	"github.com/scan-io-git/meetup-data/pkg/shared/files"
)

// DefaultConfigPath is read when no --config flag is given and the file exists.
const DefaultConfigPath = "config.yml"

type Config struct {
	Meetup     Meetup     `yaml:"meetup"`
	Logger     Logger     `yaml:"logger"`
	HTTPClient HTTPClient `yaml:"http_client"`
	Output     Output     `yaml:"output"`
	Anonymize  Anonymize  `yaml:"anonymize"`
}

// Meetup describes the remote API.
type Meetup struct {
	BaseURL  string `yaml:"base_url"`
	OAuthURL string `yaml:"oauth_url"`
	PageSize int    `yaml:"page_size"`
	MaxPages int    `yaml:"max_pages"`
}

type Logger struct {
	Level           string `yaml:"level"`
	JSONFormat      *bool  `yaml:"json_format"`
	IncludeLocation *bool  `yaml:"include_location"`
}

type HTTPClient struct {
	Debug           *bool           `yaml:"debug"`
	Timeout         time.Duration   `yaml:"timeout"`
	TLSClientConfig TLSClientConfig `yaml:"tls_client_config"`
	Proxy           Proxy           `yaml:"proxy"`
}

type TLSClientConfig struct {
	Verify *bool `yaml:"verify"`
}

type Proxy struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// Output holds defaults for the export sink.
type Output struct {
	Encoding string `yaml:"encoding"`
	S3Region string `yaml:"s3_region"`
}

// Anonymize sets the level used when neither --identifiable nor --firstname
// is given. Empty means redacted.
type Anonymize struct {
	Level string `yaml:"level"`
}

func LoadYAML(configPath string, data interface{}) error {
	if err := files.ValidatePath(configPath); err != nil {
		return err
	}

	file, err := os.Open(configPath)
	if err != nil {
		return err
	}
	defer file.Close()

	d := yaml.NewDecoder(file)
	d.SetStrict(true)
	if err := d.Decode(data); err != nil {
		return err
	}

	return nil
}

// NewConfig reads configPath and fills every unset value with its default.
func NewConfig(configPath string) (*Config, error) {
	config := &Config{}

	if err := LoadYAML(configPath, config); err != nil {
		return nil, err
	}

	ApplyDefaults(config)
	return config, nil
}

// LoadConfig resolves the configuration for a run. An explicit path must
// exist; without one, DefaultConfigPath is used when present and the
// built-in defaults otherwise.
func LoadConfig(configPath string) (*Config, error) {
	if configPath != "" {
		return NewConfig(configPath)
	}
	if _, err := os.Stat(DefaultConfigPath); err == nil {
		return NewConfig(DefaultConfigPath)
	}
	return Default(), nil
}

// Default returns a configuration made only of default values.
func Default() *Config {
	cfg := &Config{}
	ApplyDefaults(cfg)
	return cfg
}

// ApplyDefaults fills zero values of cfg.
func ApplyDefaults(cfg *Config) {
	defaults := DefaultMeetupConfig()
	cfg.Meetup.BaseURL = SetThen(cfg.Meetup.BaseURL, defaults.BaseURL)
	cfg.Meetup.OAuthURL = SetThen(cfg.Meetup.OAuthURL, defaults.OAuthURL)
	cfg.Meetup.PageSize = SetThen(cfg.Meetup.PageSize, defaults.PageSize)

	cfg.HTTPClient.Timeout = SetThen(cfg.HTTPClient.Timeout, DefaultRestyConfig().Timeout)
	cfg.Output.Encoding = SetThen(cfg.Output.Encoding, DefaultEncoding)
	cfg.Output.S3Region = SetThen(cfg.Output.S3Region, DefaultS3Region)
}
