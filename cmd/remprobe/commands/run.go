package commands

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/ryanelliottsmith/remprobe/pkg/config"
	"github.com/ryanelliottsmith/remprobe/pkg/orchestrator"
	"github.com/ryanelliottsmith/remprobe/pkg/probe"
	"github.com/ryanelliottsmith/remprobe/pkg/report"
	"github.com/ryanelliottsmith/remprobe/pkg/session"
	"github.com/ryanelliottsmith/remprobe/pkg/types"
)

var runCmd = &cobra.Command{
	Use:   "run [computer_name...]",
	Short: "Probe connectivity from remote hosts",
	Long: `Open an SSH channel to each named host in order, test connectivity
to ` + probe.Endpoint + ` from that host, and report the result.
Hosts that cannot be reached are warned about and skipped.`,
	RunE: runProbes,
}

func init() {
	runCmd.Flags().StringP("path", "p", "", "Directory for generated report files (default: home directory)")
	runCmd.Flags().StringP("user", "u", "", "SSH user (default: current user)")
	runCmd.Flags().String("key", "", "SSH private key file (default: ~/.ssh/id_rsa if present)")
	runCmd.Flags().String("password", "", "SSH password")
	runCmd.Flags().Int("port", 0, "SSH port (default: 22)")
	runCmd.Flags().StringP("config", "c", "", "YAML config file with targets and connection settings")
	runCmd.Flags().Duration("timeout", session.DefaultDialTimeout, "SSH connect timeout")
}

func runProbes(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	configPath, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	if path, _ := cmd.Flags().GetString("path"); path != "" {
		cfg.Path = path
	}
	if cmd.Flags().Changed("output") {
		cfg.Output, _ = cmd.Flags().GetString("output")
	}
	if user, _ := cmd.Flags().GetString("user"); user != "" {
		cfg.User = user
	}
	if key, _ := cmd.Flags().GetString("key"); key != "" {
		cfg.KeyFile = key
	}
	if password, _ := cmd.Flags().GetString("password"); password != "" {
		cfg.Password = password
	}
	if port, _ := cmd.Flags().GetInt("port"); port != 0 {
		cfg.Port = port
	}

	targets := args
	if len(targets) == 0 {
		targets = cfg.Targets
	}
	if len(targets) == 0 {
		return fmt.Errorf("at least one computer_name required (argument or config file)")
	}

	mode, err := types.ParseMode(cfg.Output)
	if err != nil {
		return err
	}

	timeout, _ := cmd.Flags().GetDuration("timeout")
	dialer, err := session.NewSSHDialer(session.Config{
		User:     cfg.User,
		KeyFile:  cfg.KeyFile,
		Password: cfg.Password,
		Port:     cfg.Port,
		Timeout:  timeout,
	})
	if err != nil {
		return err
	}

	orch := orchestrator.New(dialer, probe.NewRemote(), report.New(cfg.Path, mode))

	runID := orchestrator.GenerateRunID()
	fmt.Printf("🚀 Starting probe run %s (%d targets, output=%s)\n", runID[:8], len(targets), mode)
	fmt.Printf("Targets: %s\n\n", strings.Join(targets, ", "))

	start := time.Now()
	summary, err := orch.Run(ctx, targets)
	if err != nil {
		return err
	}

	fmt.Printf("\n✅ Run complete in %v: %d probed, %d skipped of %d targets\n",
		time.Since(start).Round(time.Millisecond), summary.Probed, summary.Skipped, summary.Attempted)
	return nil
}
