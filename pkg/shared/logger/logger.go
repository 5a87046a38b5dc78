package logger

import (
	"io"
	"os"
	"strings"

	"github.com/hashicorp/go-hclog"

	"github.com/scan-io-git/meetup-data/pkg/shared/config"
)

// EnvLogLevel overrides every other level setting when set.
const EnvLogLevel = "MEETUP_DATA_LOG_LEVEL"

// Output is where every logger writes. stdout is reserved for exported data.
var Output io.Writer = os.Stderr

// NewLogger creates a named logger. The level is taken from the environment,
// then from the config file, then from the verbosity of the run.
func NewLogger(cfg *config.Config, name string, verbosity int) hclog.Logger {
	return hclog.New(&hclog.LoggerOptions{
		Name:            name,
		DisableTime:     true,
		Output:          Output,
		Level:           ResolveLevel(cfg, verbosity),
		JSONFormat:      cfg != nil && config.GetBoolValue(cfg, "Logger.JSONFormat", false),
		IncludeLocation: cfg != nil && config.GetBoolValue(cfg, "Logger.IncludeLocation", false),
	})
}

// ResolveLevel picks the log level for a run.
func ResolveLevel(cfg *config.Config, verbosity int) hclog.Level {
	if env := os.Getenv(EnvLogLevel); env != "" {
		return getLogLevel(strings.ToUpper(env), verbosity)
	}
	if cfg != nil && cfg.Logger.Level != "" {
		return getLogLevel(strings.ToUpper(cfg.Logger.Level), verbosity)
	}
	return verbosityLevel(verbosity)
}

func verbosityLevel(verbosity int) hclog.Level {
	switch {
	case verbosity <= 0:
		return hclog.Warn
	case verbosity == 1:
		return hclog.Info
	default:
		return hclog.Debug
	}
}

func getLogLevel(levelStr string, verbosity int) hclog.Level {
	switch levelStr {
	case "TRACE":
		return hclog.Trace
	case "DEBUG":
		return hclog.Debug
	case "INFO":
		return hclog.Info
	case "WARN":
		return hclog.Warn
	case "ERROR":
		return hclog.Error
	default:
		return verbosityLevel(verbosity)
	}
}
