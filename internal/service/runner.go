package service

import (
	"context"
	"time"

	"odbcprobe/internal/core"
)

// QueryRunner executes a single read-only query and reports the result.
type QueryRunner struct{}

func NewQueryRunner() *QueryRunner {
	return &QueryRunner{}
}

// Run executes query on conn and reports columns, then rows or a no-data
// notice, to sink. Query failures are reported as error entries and kept in
// the returned Summary; they are never returned to the caller as errors.
// conn is closed before Run returns, whatever the outcome.
func (r *QueryRunner) Run(ctx context.Context, conn core.Conn, query string, sink core.Sink) (summary core.Summary) {
	if query == "" {
		query = core.DefaultQuery
	}
	summary.Query = query

	if conn == nil {
		sink.Error(core.ErrNoConn.Error())
		summary.Err = core.ErrNoConn
		return summary
	}

	start := time.Now()
	defer func() {
		if err := conn.Close(); err != nil {
			sink.Error("failed to close connection: " + err.Error())
		}
		summary.Duration = time.Since(start)
	}()

	fail := func(stage string, err error) core.Summary {
		qerr := &core.QueryError{Query: query, Stage: stage, Cause: err}
		sink.Error("Error: " + qerr.Error())
		summary.Err = qerr
		return summary
	}

	cur, err := conn.Execute(ctx, query)
	if err != nil {
		return fail("execute", err)
	}
	defer cur.Close()

	cols, err := cur.Columns()
	if err != nil {
		return fail("describe", err)
	}
	summary.Columns = cols
	sink.Columns(cols)

	rows, err := cur.FetchAll()
	if err != nil {
		return fail("fetch", err)
	}
	result := core.QueryResult{Columns: cols, Rows: rows}

	if len(result.Rows) == 0 {
		sink.NoData()
		return summary
	}
	for _, row := range result.Rows {
		sink.Row(row)
	}
	summary.Rows = len(result.Rows)
	return summary
}
