package commands

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/ryanelliottsmith/remprobe/pkg/probe"
	"github.com/ryanelliottsmith/remprobe/pkg/report"
	"github.com/ryanelliottsmith/remprobe/pkg/types"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Run the connectivity probe locally",
	Long:  "Test connectivity to " + probe.Endpoint + " from this machine, without any remote channel.",
	RunE: func(cmd *cobra.Command, args []string) error {
		privileged, _ := cmd.Flags().GetBool("privileged")
		path, _ := cmd.Flags().GetString("path")
		outputFormat, _ := cmd.Flags().GetString("output")

		mode, err := types.ParseMode(outputFormat)
		if err != nil {
			return err
		}
		if path == "" {
			path, err = os.UserHomeDir()
			if err != nil {
				return err
			}
		}

		name, err := os.Hostname()
		if err != nil {
			name = "localhost"
		}

		local := probe.NewLocal()
		local.Privileged = privileged

		result, err := local.Probe(context.Background(), name)
		if err != nil {
			return err
		}

		return report.New(path, mode).Report(result, 1)
	},
}

func init() {
	checkCmd.Flags().Bool("privileged", false, "Use raw ICMP sockets (requires CAP_NET_RAW)")
	checkCmd.Flags().StringP("path", "p", "", "Directory for generated report files (default: home directory)")
}
