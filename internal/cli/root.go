// Package cli implements the routeplay command line.
package cli

import (
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	// Global flags
	configPath string
	noColor    bool
	verbose    bool
)

var rootCmd = &cobra.Command{
	Use:     "routeplay",
	Version: "dev",
	Short:   "Replay and inspect editor routing sessions",
	Long: `routeplay drives the switchboard router from a YAML script and prints every
component lifecycle call it causes, so navigation sequences can be checked
without a running editor.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	CompletionOptions: cobra.CompletionOptions{
		DisableDefaultCmd: true,
	},
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if noColor {
			color.NoColor = true
		}
	},
}

// logLevel is the session log level requested on the command line; empty
// keeps the configured one.
func logLevel() string {
	if verbose {
		return "debug"
	}
	return ""
}

func SetVersion(v string) {
	if v == "" {
		return
	}
	rootCmd.Version = v
	rootCmd.SetVersionTemplate("{{.Version}}\n")
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to a switchboard TOML config (defaults to $SWITCHBOARD_CONFIG)")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable colored output")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log router debug output to stderr")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(keysCmd)
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
