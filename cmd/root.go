// =============================================================================
// Asset Import - Root Command
// =============================================================================
//
// COBRA CLI STRUCTURE:
//   rootCmd (asset-import)
//   ├── processCmd  (asset-import process)
//   ├── templateCmd (asset-import template)
//   ├── lookupCmd   (asset-import lookup sync)
//   └── versionCmd  (asset-import version)
//
// CONFIGURATION:
//   Before any subcommand runs, the root command:
//   1. loads .env from the working directory (godotenv)
//   2. reads the main configuration file named by --config
//   3. configures slog from log_level / log_format (--verbose forces debug)
//
// =============================================================================

package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/ginjaninja78/asset-import/internal/config"
	"github.com/ginjaninja78/asset-import/internal/logging"
)

// =============================================================================
// GLOBAL VARIABLES
// =============================================================================

// cfgFile holds the path to the main configuration file.
var cfgFile string

// verbose forces debug logging.
var verbose bool

// mainConfig is loaded by the root PersistentPreRunE.
var mainConfig *config.MainConfig

// =============================================================================
// ROOT COMMAND DEFINITION
// =============================================================================

var rootCmd = &cobra.Command{
	Use:   "asset-import",
	Short: "Asset Import - Validate bulk-import spreadsheets for the asset register",
	Long: `Asset Import validates and normalizes bulk-import spreadsheets for the
asset register: offices (addresses), mobile phones, mobile routers and tablets.

Every row is checked column by column and every problem is reported with its
spreadsheet row number, so an operator can fix the whole file in one pass.

Example Usage:
  asset-import process                      # Validate all files in the input directory
  asset-import process --dry-run            # Report only, do not archive input files
  asset-import template --entity phone      # Write a blank phone import workbook
  asset-import lookup sync                  # Publish the lookup sets to Redis`,

	SilenceUsage: true,

	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		config.LoadEnv(".env")

		cfg, err := config.LoadMainConfig(cfgFile)
		if err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}
		if verbose {
			cfg.LogLevel = "debug"
		}
		logging.Setup(cfg.LogLevel, cfg.LogFormat)

		mainConfig = cfg
		return nil
	},

	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

// Execute runs the root command. It is called by main.main(). An interrupt
// cancels the command context; running imports stop at the next row.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(
		&cfgFile,
		"config",
		"config.yaml",
		"Path to the main configuration file",
	)

	rootCmd.PersistentFlags().BoolVarP(
		&verbose,
		"verbose",
		"v",
		false,
		"Enable debug logging",
	)
}
