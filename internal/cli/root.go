// Package cli implements the shelfmon command-line interface.
//
// The root command launches the enclosure dashboard TUI; subcommands
// cover schedule editing, config inspection, and version info. Cobra
// commands stay thin and delegate to the internal packages.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Global flags available to all subcommands.
var (
	configFlag string
	apiURLFlag string
)

var rootCmd = &cobra.Command{
	Use:   "shelfmon",
	Short: "Storage enclosure dashboard",
	Long: `shelfmon is a terminal dashboard for storage appliance enclosures.

It mirrors enclosure, slot, and pool health state from the appliance
middleware and renders it live, with a CPU gauge and a cron schedule
editor for maintenance tasks.

Running shelfmon with no subcommand opens the dashboard.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return dashboardCommand()
	},
}

// Execute runs the root command and exits non-zero on error.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFlag, "config", "", "path to config file")
	rootCmd.PersistentFlags().StringVar(&apiURLFlag, "api-url", "", "middleware WebSocket endpoint (overrides config)")
}
