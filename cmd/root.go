package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/scan-io-git/meetup-data/cmd/export"
	"github.com/scan-io-git/meetup-data/cmd/version"
	"github.com/scan-io-git/meetup-data/pkg/shared/config"
	"github.com/scan-io-git/meetup-data/pkg/shared/errors"
)

var (
	cfgFile   string
	AppConfig *config.Config
	rootCmd   = &cobra.Command{
		Use:                   "meetup-data [command]",
		SilenceUsage:          true,
		SilenceErrors:         true,
		DisableFlagsInUseLine: true,
		Short:                 "meetup-data exports data from the meetup.com API.",
		Long: `meetup-data fetches members, events, attendance and activity from the
meetup.com API, anonymizes people's names and writes the records as CSV or JSON.`,
		PersistentPreRunE: initConfig,
	}
)

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", fmt.Sprintf("config file (default is %s when present)", config.DefaultConfigPath))
	rootCmd.AddCommand(export.ExportCmd)
	rootCmd.AddCommand(version.NewVersionCmd())
}

// Execute runs the root command and returns the process exit code.
func Execute() int {
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := rootCmd.ExecuteContext(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
	return errors.ExitCode(err)
}

func initConfig(cmd *cobra.Command, args []string) error {
	var err error

	AppConfig, err = config.LoadConfig(cfgFile)
	if err != nil {
		return errors.NewCommandError(fmt.Errorf("failed to load config: %w", err), errors.ExitFailure)
	}
	if err := config.ValidateConfig(AppConfig); err != nil {
		return errors.NewCommandError(err, errors.ExitFailure)
	}

	export.Init(AppConfig)
	version.Init(AppConfig)
	return nil
}
