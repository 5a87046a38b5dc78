package export

import (
	"github.com/scan-io-git/meetup-data/internal/sink"
	"github.com/scan-io-git/meetup-data/pkg/shared/errors"
	"github.com/scan-io-git/meetup-data/pkg/shared/files"
)

// validateExportArgs validates the flags provided to the export command.
// Positional arguments are checked later, once the entity is known.
func validateExportArgs(options *RunOptionsExport, args []string) error {
	if options.Identifiable && options.FirstName {
		return errors.NewUsageError("you cannot use both --identifiable and --firstname together")
	}

	formats := 0
	for _, set := range []bool{options.JSON, options.CSV, options.FlatJSON} {
		if set {
			formats++
		}
	}
	if formats > 1 {
		return errors.NewUsageError("you cannot use more than one of --json, --csv and --flat-json together")
	}

	if options.Encoding != "" && (options.JSON || options.FlatJSON) {
		return errors.NewUsageError("the 'encoding' flag only applies to CSV output")
	}

	if options.MetricsFile != "" {
		if _, err := files.ExpandPath(options.MetricsFile); err != nil {
			return errors.NewUsageError("failed to expand path %q: %v", options.MetricsFile, err)
		}
	}

	if sink.Kind(options.Output) == sink.KindS3 {
		if _, _, err := sink.ParseS3URL(options.Output); err != nil {
			return errors.NewUsageError("invalid output: %v", err)
		}
	}

	return nil
}

// needsHint reports whether the command has nothing to do: the access token
// or the entity is missing, or help was asked for as an entity.
func needsHint(args []string) bool {
	return len(args) < 2 || args[1] == "help"
}
