package report

import (
	"fmt"
	"io"

	"odbcprobe/internal/core"

	"github.com/pterm/pterm"
	"github.com/rs/zerolog"
)

// LogSink writes sink events as structured log entries.
type LogSink struct {
	log zerolog.Logger
}

func NewLogSink(log zerolog.Logger) *LogSink {
	return &LogSink{log: log}
}

func (s *LogSink) Info(msg string)  { s.log.Info().Msg(msg) }
func (s *LogSink) Error(msg string) { s.log.Error().Msg(msg) }

func (s *LogSink) Columns(cols []string) {
	s.log.Info().Str("event", string(EventColumns)).Strs("columns", cols).Msg("columns")
}

func (s *LogSink) Row(values []any) {
	s.log.Info().Str("event", string(EventRow)).Strs("values", FormatRow(values)).Msg("row")
}

func (s *LogSink) NoData() {
	s.log.Info().Str("event", string(EventNoData)).Msg("No data found.")
}

// TableSink renders results as a console table. Rows are buffered until Flush.
type TableSink struct {
	out    io.Writer
	cols   []string
	rows   [][]string
	noData bool
}

func NewTableSink(out io.Writer) *TableSink {
	return &TableSink{out: out}
}

func (s *TableSink) Info(msg string)  { pterm.Info.WithWriter(s.out).Println(msg) }
func (s *TableSink) Error(msg string) { pterm.Error.WithWriter(s.out).Println(msg) }

func (s *TableSink) Columns(cols []string) {
	s.cols = append([]string(nil), cols...)
}

func (s *TableSink) Row(values []any) {
	s.rows = append(s.rows, FormatRow(values))
}

func (s *TableSink) NoData() {
	s.noData = true
}

// Flush renders buffered results and resets the sink.
func (s *TableSink) Flush() error {
	defer func() {
		s.cols, s.rows, s.noData = nil, nil, false
	}()

	if s.noData {
		pterm.Warning.WithWriter(s.out).Println("No data found.")
		return nil
	}
	if len(s.rows) == 0 {
		return nil
	}

	data := pterm.TableData{s.cols}
	for _, r := range s.rows {
		data = append(data, r)
	}
	return pterm.DefaultTable.WithHasHeader().WithBoxed().WithWriter(s.out).WithData(data).Render()
}

// Multi fans every event out to each sink in order
type Multi []core.Sink

func (m Multi) Info(msg string) {
	for _, s := range m {
		s.Info(msg)
	}
}

func (m Multi) Error(msg string) {
	for _, s := range m {
		s.Error(msg)
	}
}

func (m Multi) Columns(cols []string) {
	for _, s := range m {
		s.Columns(cols)
	}
}

func (m Multi) Row(values []any) {
	for _, s := range m {
		s.Row(values)
	}
}

func (m Multi) NoData() {
	for _, s := range m {
		s.NoData()
	}
}

// FormatRow renders column values as display strings; NULL for nil.
func FormatRow(values []any) []string {
	out := make([]string, len(values))
	for i, v := range values {
		switch val := v.(type) {
		case nil:
			out[i] = "NULL"
		case []byte:
			out[i] = string(val)
		default:
			out[i] = fmt.Sprint(val)
		}
	}
	return out
}
