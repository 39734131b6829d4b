package main

import (
	"fmt"
	"strconv"
	"time"

	"odbcprobe/internal/data"
	"odbcprobe/internal/service"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var historyLimit int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recent query runs and probes",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}

		db, err := data.InitDB(cfg.HistoryPath)
		if err != nil {
			return fmt.Errorf("failed to open run history: %w", err)
		}
		defer db.Close()

		runs, err := service.NewHistory(data.NewRunRepo(db)).Recent(historyLimit)
		if err != nil {
			return err
		}
		if len(runs) == 0 {
			pterm.Info.Println("No runs recorded yet.")
			return nil
		}

		table := pterm.TableData{{"Time", "Kind", "Target", "Status", "Rows", "Duration", "Error"}}
		for _, r := range runs {
			table = append(table, []string{
				r.Timestamp.Format(time.DateTime),
				r.Kind,
				r.Target,
				r.Status,
				strconv.Itoa(r.Rows),
				(time.Duration(r.DurationMs) * time.Millisecond).String(),
				r.ErrorMsg,
			})
		}
		return pterm.DefaultTable.WithHasHeader().WithData(table).Render()
	},
}

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "number of runs to show")
	rootCmd.AddCommand(historyCmd)
}
