package main

import (
	"fmt"
	"os"

	"odbcprobe/internal/config"
	"odbcprobe/internal/core"
	"odbcprobe/internal/data"
	"odbcprobe/internal/logger"
	"odbcprobe/internal/report"
	"odbcprobe/internal/service"
	"odbcprobe/internal/transport"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

type queryOptions struct {
	query          string
	driver         string
	database       string
	hostname       string
	port           string
	protocol       string
	uid            string
	sqlDriver      string
	charset        string
	output         string
	showDescriptor bool
}

var queryOpts queryOptions

var queryCmd = &cobra.Command{
	Use:   "query",
	Short: "Connect and run one query (default command)",
	Long: `Connects with the configured ODBC driver, runs a single query and prints
its columns and rows. Query errors are reported but do not fail the command;
configuration and connection errors do.`,
	RunE: runQuery,
}

func init() {
	addQueryFlags(queryCmd)
	rootCmd.AddCommand(queryCmd)
}

func addQueryFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringVarP(&queryOpts.query, "query", "q", "", "query to run (default ODBCPROBE_QUERY or "+core.DefaultQuery+")")
	f.StringVar(&queryOpts.driver, "driver", "", "ODBC driver library path (ODBC_DRIVER)")
	f.StringVar(&queryOpts.database, "database", "", "database name (ODBC_DATABASE)")
	f.StringVar(&queryOpts.hostname, "host", "", "database host (ODBC_HOSTNAME)")
	f.StringVar(&queryOpts.port, "port", "", "database port (ODBC_PORT)")
	f.StringVar(&queryOpts.protocol, "protocol", "", "network protocol (ODBC_PROTOCOL)")
	f.StringVar(&queryOpts.uid, "uid", "", "user id (ODBC_UID)")
	f.StringVar(&queryOpts.sqlDriver, "sql-driver", "", "database/sql driver name (ODBCPROBE_SQL_DRIVER)")
	f.StringVar(&queryOpts.charset, "charset", "", "charset for text columns (ODBC_CHARSET)")
	f.StringVarP(&queryOpts.output, "output", "o", "table", "output format: table or log")
	f.BoolVar(&queryOpts.showDescriptor, "show-descriptor", false, "print the masked connection string before connecting")
}

// applyQueryFlags overrides env configuration with explicitly set flags
func applyQueryFlags(cmd *cobra.Command, cfg *config.Config) {
	overrides := []struct {
		flag  string
		value string
		field *string
	}{
		{"query", queryOpts.query, &cfg.Query},
		{"driver", queryOpts.driver, &cfg.Driver},
		{"database", queryOpts.database, &cfg.Database},
		{"host", queryOpts.hostname, &cfg.Hostname},
		{"port", queryOpts.port, &cfg.Port},
		{"protocol", queryOpts.protocol, &cfg.Protocol},
		{"uid", queryOpts.uid, &cfg.UID},
		{"sql-driver", queryOpts.sqlDriver, &cfg.SQLDriver},
		{"charset", queryOpts.charset, &cfg.Charset},
	}
	for _, o := range overrides {
		if cmd.Flags().Changed(o.flag) {
			*o.field = o.value
		}
	}
}

func runQuery(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	applyQueryFlags(cmd, cfg)

	if err := logger.Init(cfg.LogDir); err != nil {
		return fmt.Errorf("failed to init logger: %w", err)
	}

	var sink core.Sink
	var table *report.TableSink
	switch queryOpts.output {
	case "table":
		// Console table plus structured events in the log file
		table = report.NewTableSink(os.Stdout)
		sink = report.Multi{table, report.NewLogSink(logger.File())}
	case "log":
		sink = report.NewLogSink(logger.Info.Logger())
	default:
		return fmt.Errorf("unknown output format %q", queryOpts.output)
	}

	resolver, err := newSecretResolver(cfg)
	if err != nil {
		return err
	}

	connector := service.NewConnector(transport.NewSQL(cfg.SQLDriver), sink, resolver).WithCharset(cfg.Charset)
	connCfg := cfg.Connection()

	if queryOpts.showDescriptor {
		desc, err := connector.Descriptor(connCfg)
		if err != nil {
			return err
		}
		pterm.Println(desc)
	}

	history, closeHistory := openHistory(cfg)
	defer closeHistory()

	target := fmt.Sprintf("%s@%s:%s", cfg.Database, cfg.Hostname, cfg.Port)
	ctx := cmd.Context()

	conn, err := connector.Connect(ctx, connCfg)
	if err != nil {
		if history != nil {
			if herr := history.RecordFailedConnect(target, cfg.Query, err); herr != nil {
				logger.Error.Printf("Failed to record run: %v", herr)
			}
		}
		return err
	}

	summary := service.NewQueryRunner().Run(ctx, conn, cfg.Query, sink)
	if table != nil {
		if err := table.Flush(); err != nil {
			logger.Error.Printf("Failed to render results: %v", err)
		}
	}

	if history != nil {
		if err := history.RecordQuery(target, summary); err != nil {
			logger.Error.Printf("Failed to record run: %v", err)
		}
	}
	logger.Info.Printf("Query finished: %d rows in %v", summary.Rows, summary.Duration)
	return nil
}

// newSecretResolver returns a resolver able to decrypt enc: passwords when a key is configured
func newSecretResolver(cfg *config.Config) (*service.SecretResolver, error) {
	if cfg.SecretKey == "" {
		return service.NewSecretResolver(nil), nil
	}
	crypto, err := service.NewEncryptionService(cfg.SecretKey)
	if err != nil {
		return nil, fmt.Errorf("failed to init crypto service: %w", err)
	}
	return service.NewSecretResolver(crypto), nil
}

// openHistory opens the run history. A history failure never blocks the run;
// it returns nil and a no-op closer instead.
func openHistory(cfg *config.Config) (*service.History, func()) {
	if noHistory {
		return nil, func() {}
	}
	db, err := data.InitDB(cfg.HistoryPath)
	if err != nil {
		logger.Error.Printf("Failed to open run history %s: %v", cfg.HistoryPath, err)
		return nil, func() {}
	}
	return service.NewHistory(data.NewRunRepo(db)), func() { db.Close() }
}
