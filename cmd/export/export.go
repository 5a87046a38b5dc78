package export

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	dataexport "github.com/scan-io-git/meetup-data/internal/export"
	"github.com/scan-io-git/meetup-data/internal/meetup"
	"github.com/scan-io-git/meetup-data/internal/metrics"
	"github.com/scan-io-git/meetup-data/internal/paginator"
	"github.com/scan-io-git/meetup-data/internal/sink"
	"github.com/scan-io-git/meetup-data/pkg/shared/config"
	"github.com/scan-io-git/meetup-data/pkg/shared/errors"
	"github.com/scan-io-git/meetup-data/pkg/shared/httpclient"
	"github.com/scan-io-git/meetup-data/pkg/shared/logger"
)

// RunOptionsExport holds the arguments for the export command.
type RunOptionsExport struct {
	Quiet        bool
	Verbose      bool
	JSON         bool
	CSV          bool
	FlatJSON     bool
	Identifiable bool
	FirstName    bool
	StopAfterOne bool
	Output       string
	Encoding     string
	MetricsFile  string
}

// hintMessage is printed when there is nothing to do.
const hintMessage = "Run with the -h option to get help on how to run this."

// Global variables for configuration and command arguments
var (
	AppConfig          *config.Config
	exportOptions      RunOptionsExport
	exampleExportUsage = `  # Export the members of a group as CSV, names fully redacted
  meetup-data export ACCESS_TOKEN members PyData-Edinburgh > PyData-Edinburgh-members.csv

  # Export past events of a group as raw nested JSON
  meetup-data export --json ACCESS_TOKEN past-events PyData-Edinburgh

  # Export attendance of one event keeping first names, written to a file
  meetup-data export --firstname -o attendance.csv ACCESS_TOKEN attendance PyData-Edinburgh 245151789

  # Export your activity feed to S3 in Windows-1252 for spreadsheet users
  meetup-data export --encoding windows-1252 -o s3://exports/meetup/ ACCESS_TOKEN activity

  # Fetch a single record to check the shape of the data
  meetup-data export -v --stop-after-one ACCESS_TOKEN future-events PyData-Edinburgh`
)

var ExportCmd = &cobra.Command{
	Use:                   "export [-q|-v] [--json|--csv|--flat-json] [--identifiable|--firstname] [--stop-after-one] [-o OUTPUT] [--encoding ENCODING] [--metrics-file PATH] ACCESS_TOKEN ENTITY [PARAMS...]",
	SilenceUsage:          true,
	DisableFlagsInUseLine: true,
	Example:               exampleExportUsage,
	Short:                 "Fetches an entity from the meetup.com API and writes it as CSV or JSON",
	RunE:                  runExportCommand,
}

// Init initializes the global configuration variable.
func Init(cfg *config.Config) {
	AppConfig = cfg
	ExportCmd.Long = generateLongDescription(AppConfig)
}

// runExportCommand executes the export command.
func runExportCommand(cmd *cobra.Command, args []string) error {
	if err := validateExportArgs(&exportOptions, args); err != nil {
		return errors.NewCommandError(err, errors.ExitFailure)
	}

	if needsHint(args) {
		fmt.Fprintln(cmd.ErrOrStderr(), hintMessage)
		return nil
	}
	token, entity, params := args[0], args[1], args[2:]

	cfg := AppConfig
	if cfg == nil {
		cfg = config.Default()
	}

	verbosity := determineVerbosity(&exportOptions)
	log := logger.NewLogger(cfg, "core-export", verbosity).With("run_id", uuid.NewString())

	query, err := meetup.BuildQuery(entity, params)
	if err != nil {
		log.Debug("invalid export arguments", "entity", entity, "params", params)
		return errors.NewCommandError(err, errors.ExitFailure)
	}

	format := determineFormat(&exportOptions)
	exporter, err := dataexport.NewExporter(format, determineEncoding(cmd, cfg, &exportOptions, format))
	if err != nil {
		return errors.NewCommandError(errors.NewUsageError("%v", err), errors.ExitFailure)
	}

	collector := metrics.NewCollector()
	if exportOptions.MetricsFile != "" {
		defer func() {
			if err := collector.WriteTextfile(metricsPath(exportOptions.MetricsFile)); err != nil {
				log.Warn("failed to write metrics", "error", err)
			}
		}()
	}

	p := paginator.New(
		paginatorConfig(cfg, &exportOptions, verbosity),
		httpclient.New(log.Named("http"), cfg),
		log.Named("paginator"),
		collector,
	)

	records, err := p.Fetch(cmd.Context(), token, query)
	if err != nil {
		log.Debug("fetch failed", "entity", entity, "error", err)
		return errors.NewCommandError(err, errors.ExitFailure)
	}
	if len(records) == 0 {
		return errors.NewCommandError(&errors.EmptyResultError{}, errors.ExitFailure)
	}

	out, err := sink.Open(cmd.Context(), exportOptions.Output, sink.Options{
		DefaultName: defaultFileName(entity, format),
		S3Region:    cfg.Output.S3Region,
		Stdout:      cmd.OutOrStdout(),
		Logger:      log.Named("sink"),
	})
	if err != nil {
		log.Error("failed to open output", "output", exportOptions.Output, "error", err)
		return errors.NewCommandError(err, errors.ExitFailure)
	}

	if err := exporter.Export(records, out); err != nil {
		if discardErr := out.Discard(); discardErr != nil {
			log.Warn("failed to discard partial export", "location", out.Location(), "error", discardErr)
		}
		log.Error("failed to write export", "error", err)
		return errors.NewCommandError(err, errors.ExitFailure)
	}
	if err := out.Close(); err != nil {
		log.Error("failed to finish export", "location", out.Location(), "error", err)
		return errors.NewCommandError(err, errors.ExitFailure)
	}
	collector.RecordsExported(len(records))

	log.Info("export command completed successfully",
		"entity", entity,
		"records", len(records),
		"format", string(format),
		"output", out.Location(),
	)
	return nil
}

// generateLongDescription lists the available entities and explains how to get a token.
func generateLongDescription(cfg *config.Config) string {
	oauthURL := config.DefaultOAuthURL
	if cfg != nil && cfg.Meetup.OAuthURL != "" {
		oauthURL = cfg.Meetup.OAuthURL
	}

	var entities []string
	for _, e := range meetup.Entities() {
		line := e.Name
		if e.Params != "" {
			line += " " + e.Params
		}
		entities = append(entities, fmt.Sprintf("%-32s %s", line, e.Description))
	}

	return fmt.Sprintf(`Fetches every page of an entity from the meetup.com API, anonymizes people's
names and writes the records to standard output, a file or S3.

By default names are fully redacted and records are written as CSV, one
flattened row per record.

List of available entities ("events" is an alias of past-events):
  %s

%s`, strings.Join(entities, "\n  "), meetup.TokenHelp(oauthURL))
}

func init() {
	ExportCmd.Long = generateLongDescription(nil)
	ExportCmd.Flags().SetNormalizeFunc(normalizeFlagName)
	ExportCmd.Flags().BoolVarP(&exportOptions.Quiet, "quiet", "q", false, "Run quietly, without displaying the URLs used.")
	ExportCmd.Flags().BoolVarP(&exportOptions.Verbose, "verbose", "v", false, "Print out each record as it is read.")
	ExportCmd.Flags().BoolVar(&exportOptions.JSON, "json", false, "Write out results in raw nested JSON form.")
	ExportCmd.Flags().BoolVar(&exportOptions.CSV, "csv", false, "Write out results as flattened CSV rows (default).")
	ExportCmd.Flags().BoolVar(&exportOptions.FlatJSON, "flat-json", false, "Write out results as flattened rows in JSON form.")
	ExportCmd.Flags().BoolVar(&exportOptions.Identifiable, "identifiable", false, "Retain identifiable information about people.")
	ExportCmd.Flags().BoolVar(&exportOptions.FirstName, "firstname", false, "Retain people's first names but not surnames.")
	ExportCmd.Flags().BoolVar(&exportOptions.StopAfterOne, "stop-after-one", false, "Stop after reading a single record.")
	ExportCmd.Flags().StringVarP(&exportOptions.Output, "output", "o", "", "Output target: a file, a folder or s3://bucket/key (default: standard output).")
	ExportCmd.Flags().StringVar(&exportOptions.Encoding, "encoding", "", fmt.Sprintf("CSV output encoding, one of: %s.", strings.Join(dataexport.SupportedEncodings(), ", ")))
	ExportCmd.Flags().StringVar(&exportOptions.MetricsFile, "metrics-file", "", "Write Prometheus metrics of the run to this file.")
	ExportCmd.Flags().BoolP("help", "h", false, "Show help for the export command.")
}
