// Package commands implements the uastackd CLI.
package commands

import (
	"github.com/spf13/cobra"
)

var (
	// Version information injected at build time.
	Version = "dev"
	Commit  = "none"

	cfgFile string
)

var rootCmd = &cobra.Command{
	Use:   "uastackd",
	Short: "uastack - OPC UA communication stack",
	Long: `uastack implements the core of an OPC UA (IEC 62541) communication
stack in pure Go: the builtin type model, the session lifecycle state
machine, and the Browse/TranslateBrowsePath address-space traversal
engine with continuation-point paging.

Use "uastackd [command] --help" for more information about a command.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the CLI.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: uastack.yaml in ., ~/.config/uastack, /etc/uastack)")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(nodeidCmd)
	rootCmd.AddCommand(browseCmd)

	rootCmd.CompletionOptions.DisableDefaultCmd = true
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Run: func(cmd *cobra.Command, _ []string) {
		cmd.Printf("uastackd %s (%s)\n", Version, Commit)
	},
}
