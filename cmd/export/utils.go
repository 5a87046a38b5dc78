package export

import (
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/scan-io-git/meetup-data/internal/anonymize"
	dataexport "github.com/scan-io-git/meetup-data/internal/export"
	"github.com/scan-io-git/meetup-data/internal/paginator"
	"github.com/scan-io-git/meetup-data/pkg/shared/config"
	"github.com/scan-io-git/meetup-data/pkg/shared/files"
)

// normalizeFlagName accepts underscores in long flag names, so --stop_after_one
// keeps working.
func normalizeFlagName(f *pflag.FlagSet, name string) pflag.NormalizedName {
	return pflag.NormalizedName(strings.ReplaceAll(name, "_", "-"))
}

// determineVerbosity maps -q and -v onto a verbosity level. Quiet wins.
func determineVerbosity(options *RunOptionsExport) int {
	switch {
	case options.Quiet:
		return 0
	case options.Verbose:
		return 2
	default:
		return 1
	}
}

// determineLevel maps --identifiable and --firstname onto an anonymization
// level. Without either flag the configured anonymize.level applies, and
// redacted when that is unset or unknown.
func determineLevel(cfg *config.Config, options *RunOptionsExport) anonymize.Level {
	switch {
	case options.Identifiable:
		return anonymize.Identifiable
	case options.FirstName:
		return anonymize.FirstName
	}
	if cfg != nil && cfg.Anonymize.Level != "" {
		if level, err := anonymize.ParseLevel(cfg.Anonymize.Level); err == nil {
			return level
		}
	}
	return anonymize.Redacted
}

func determineFormat(options *RunOptionsExport) dataexport.Format {
	switch {
	case options.JSON:
		return dataexport.FormatRaw
	case options.FlatJSON:
		return dataexport.FormatFlatJSON
	default:
		return dataexport.FormatCSV
	}
}

// determineEncoding returns the --encoding flag when given. Otherwise CSV uses
// the configured default and JSON formats stay UTF-8.
func determineEncoding(cmd *cobra.Command, cfg *config.Config, options *RunOptionsExport, format dataexport.Format) string {
	if cmd != nil && cmd.Flags().Changed("encoding") {
		return options.Encoding
	}
	if format != dataexport.FormatCSV || cfg == nil {
		return dataexport.EncodingUTF8
	}
	return config.SetThen(cfg.Output.Encoding, dataexport.EncodingUTF8)
}

func paginatorConfig(cfg *config.Config, options *RunOptionsExport, verbosity int) paginator.Config {
	pc := paginator.Config{
		BaseURL:      config.DefaultBaseURL,
		PageSize:     config.DefaultPageSize,
		Verbosity:    verbosity,
		StopAfterOne: options.StopAfterOne,
		Level:        determineLevel(cfg, options),
	}
	if cfg != nil {
		pc.BaseURL = config.SetThen(cfg.Meetup.BaseURL, pc.BaseURL)
		pc.PageSize = config.SetThen(cfg.Meetup.PageSize, pc.PageSize)
		pc.MaxPages = cfg.Meetup.MaxPages
	}
	return pc
}

// defaultFileName names the output when the target is a folder.
func defaultFileName(entity string, format dataexport.Format) string {
	ext := "json"
	if format == dataexport.FormatCSV {
		ext = "csv"
	}
	return entity + "." + ext
}

// metricsPath expands a tilde in the metrics file path.
func metricsPath(path string) string {
	expanded, err := files.ExpandPath(path)
	if err != nil {
		return path
	}
	return expanded
}
