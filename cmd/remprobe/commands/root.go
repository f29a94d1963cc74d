package commands

import (
	"github.com/spf13/cobra"
)

var (
	version   string
	commit    string
	buildDate string
)

func SetVersionInfo(v, c, b string) {
	version = v
	commit = c
	buildDate = b
}

var rootCmd = &cobra.Command{
	Use:   "remprobe",
	Short: "Remote connectivity prober",
	Long: `Connects to remote hosts over SSH and tests network connectivity
from each host's vantage point against a well-known endpoint.
Results are shown on the console or exported per host as CSV or text.`,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(checkCmd)

	rootCmd.PersistentFlags().StringP("output", "o", "host", "Output mode (host, csv, text)")
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug output")
}
