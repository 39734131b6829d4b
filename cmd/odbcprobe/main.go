package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"odbcprobe/internal/config"
	"odbcprobe/internal/logger"

	"github.com/spf13/cobra"

	// Drivers
	_ "github.com/alexbrainman/odbc"
)

var (
	envFile     string
	logDir      string
	historyPath string
	noHistory   bool
)

var rootCmd = &cobra.Command{
	Use:   "odbcprobe",
	Short: "Check ODBC database connectivity and run a single query",
	Long: `odbcprobe connects to a database through an ODBC driver, runs one read-only
query and prints the columns and rows. It can also check raw TCP reachability
of the database host.

Connection settings come from ODBC_* environment variables or a .env file.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	// No subcommand runs the query
	RunE: func(cmd *cobra.Command, args []string) error {
		return runQuery(cmd, args)
	},
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		logger.Error.Fatalf("%v", err)
	}
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&envFile, "env-file", ".env", "dotenv file with ODBC_* settings")
	pf.StringVar(&logDir, "log-dir", "", "log directory (default ODBCPROBE_LOG_DIR or logs)")
	pf.StringVar(&historyPath, "history", "", "run history database (default ODBCPROBE_HISTORY or odbcprobe.db)")
	pf.BoolVar(&noHistory, "no-history", false, "do not record this run")

	addQueryFlags(rootCmd)
}

// loadConfig reads env configuration and applies the persistent flags
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	config.EnvFile = envFile
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if cmd.Flags().Changed("log-dir") {
		cfg.LogDir = logDir
	}
	if cmd.Flags().Changed("history") {
		cfg.HistoryPath = historyPath
	}
	return cfg, nil
}
