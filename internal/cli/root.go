// Package cli implements the footprint command tree.
package cli

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/carbonex/footprint/internal/config"
	"github.com/carbonex/footprint/internal/logging"
)

// isTerminal checks if the given file is a terminal.
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// logger is the package-level logger for CLI operations.
var logger zerolog.Logger //nolint:gochecknoglobals // Required for zerolog context integration

// NewRootCmd creates the root Cobra command for the footprint CLI.
// It wires up logging and the subcommand groups (assess, units,
// factors, serve, db).
func NewRootCmd(ver string) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "footprint",
		Short:   "Carbon footprint calculation engine",
		Long:    "Footprint: calculate Scope 1, 2, and 3 greenhouse gas emissions from activity data",
		Version: ver,
		Example: rootCmdExample,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return setupLogging(cmd)
		},
	}

	cmd.PersistentFlags().Bool("debug", false, "enable debug logging")
	cmd.PersistentFlags().String("config", "", "config file path (default ~/.footprint/config.yaml)")
	cmd.AddCommand(newAssessCmd(), newUnitsCmd(), newFactorsCmd(), NewServeCmd(), newDBCmd())

	return cmd
}

const rootCmdExample = `  # Run an assessment from an activity data file
  footprint assess run --input activity.yaml

  # Run against a specific region and save the result
  footprint assess run --input activity.yaml --region DE --save

  # Emit the full result as JSON
  footprint assess run --input activity.yaml --output json

  # Convert between activity units
  footprint units convert 1000 kWh MMBtu

  # Look up an emission factor
  footprint factors lookup --category electricity --subcategory grid_us_national --scope 2

  # Serve the calculation API
  footprint serve --addr :8080

  # Apply database migrations
  footprint db migrate`

// setupLogging configures logging based on config file, environment,
// and CLI flags, and attaches the logger to the command context.
func setupLogging(cmd *cobra.Command) error {
	cfgPath, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return err
	}

	loggingCfg := cfg.Logging
	if debug, _ := cmd.Flags().GetBool("debug"); debug {
		loggingCfg.Level = "debug"
		loggingCfg.Format = "console"
		loggingCfg.File = ""
	}

	// Console output on a terminal, JSON when piped, unless the
	// config pins a format.
	if loggingCfg.Format == "" {
		if isTerminal(os.Stderr) {
			loggingCfg.Format = "console"
		} else {
			loggingCfg.Format = "json"
		}
	}

	log := logging.NewLogger(loggingCfg.ToLoggingConfig())
	logger = logging.ComponentLogger(log, "cli")

	ctx := logging.WithContext(cmd.Context(), log)
	ctx = config.WithContext(ctx, cfg)
	cmd.SetContext(ctx)

	logger.Debug().Ctx(ctx).Str("command", cmd.Name()).Msg("command started")
	return nil
}
