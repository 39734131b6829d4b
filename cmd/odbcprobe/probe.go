package main

import (
	"fmt"
	"strconv"
	"time"

	"odbcprobe/internal/core"
	"odbcprobe/internal/logger"
	"odbcprobe/internal/service"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var probeTimeout time.Duration

var probeCmd = &cobra.Command{
	Use:   "probe [host] [port]",
	Short: "Check TCP reachability of the database host",
	Long: `Makes a single TCP connect attempt to host:port and reports whether it
succeeded, was refused or timed out. Host and port default to ODBC_HOSTNAME
and ODBC_PORT.`,
	Args: cobra.MaximumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		if err := logger.Init(cfg.LogDir); err != nil {
			return fmt.Errorf("failed to init logger: %w", err)
		}

		host, portStr := cfg.Hostname, cfg.Port
		if len(args) > 0 {
			host = args[0]
		}
		if len(args) > 1 {
			portStr = args[1]
		}
		if host == "" || portStr == "" {
			return fmt.Errorf("host and port are required (args or ODBC_HOSTNAME/ODBC_PORT)")
		}
		port, err := strconv.Atoi(portStr)
		if err != nil || port < 1 || port > 65535 {
			return fmt.Errorf("invalid port %q", portStr)
		}

		timeout := cfg.ProbeTimeout
		if cmd.Flags().Changed("timeout") {
			timeout = probeTimeout
		}

		res := service.NewProber(nil).Probe(cmd.Context(), host, port, timeout)
		printProbe(res)

		history, closeHistory := openHistory(cfg)
		defer closeHistory()
		if history != nil {
			if err := history.RecordProbe(res); err != nil {
				logger.Error.Printf("Failed to record probe: %v", err)
			}
		}
		return nil
	},
}

func init() {
	probeCmd.Flags().DurationVarP(&probeTimeout, "timeout", "t", 10*time.Second, "connect timeout (ODBCPROBE_PROBE_TIMEOUT)")
	rootCmd.AddCommand(probeCmd)
}

func printProbe(res core.ProbeResult) {
	addr := fmt.Sprintf("%s:%d", res.Host, res.Port)
	switch res.Status {
	case core.Reachable:
		pterm.Success.Printfln("Connection to %s succeeded (%v)", addr, res.Latency.Round(time.Millisecond))
	case core.TimedOut:
		pterm.Warning.Printfln("Connection to %s timed out after %v", addr, res.Latency.Round(time.Millisecond))
	default:
		pterm.Error.Printfln("Connection to %s failed: %v", addr, res.Err)
	}
	logger.Info.Printf("probe %s: %s", addr, res.Status)
}
