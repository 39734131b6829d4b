package report

import (
	"bufio"
	"bytes"
	"encoding/json"
	"testing"

	"odbcprobe/internal/logger"

	"github.com/pterm/pterm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecorder_Order(t *testing.T) {
	rec := NewRecorder()
	rec.Info("connected")
	rec.Columns([]string{"id", "name"})
	rec.Row([]any{1, "Alice"})
	rec.Row([]any{2, "Bob"})
	rec.Error("boom")
	rec.NoData()

	assert.Equal(t, []EventKind{EventInfo, EventColumns, EventRow, EventRow, EventError, EventNoData}, rec.Kinds())
	assert.Equal(t, 2, rec.Count(EventRow))

	events := rec.Events()
	assert.Equal(t, []string{"id", "name"}, events[1].Columns)
	assert.Equal(t, []any{2, "Bob"}, events[3].Values)
	assert.Equal(t, "boom", events[4].Message)
}

func TestRecorder_CopiesInput(t *testing.T) {
	rec := NewRecorder()
	row := []any{1, "Alice"}
	rec.Row(row)
	row[1] = "changed"

	assert.Equal(t, "Alice", rec.Events()[0].Values[1])
}

func TestLogSink(t *testing.T) {
	buf := &bytes.Buffer{}
	sink := NewLogSink(logger.New(buf, "info"))

	sink.Info("connected")
	sink.Columns([]string{"id", "name"})
	sink.Row([]any{int64(1), nil})
	sink.NoData()
	sink.Error("boom")

	var entries []map[string]any
	sc := bufio.NewScanner(buf)
	for sc.Scan() {
		var e map[string]any
		require.NoError(t, json.Unmarshal(sc.Bytes(), &e))
		entries = append(entries, e)
	}
	require.Len(t, entries, 5)

	assert.Equal(t, "connected", entries[0]["message"])
	assert.Equal(t, "columns", entries[1]["event"])
	assert.Equal(t, []any{"id", "name"}, entries[1]["columns"])
	assert.Equal(t, []any{"1", "NULL"}, entries[2]["values"])
	assert.Equal(t, "no_data", entries[3]["event"])
	assert.Equal(t, "error", entries[4]["level"])
}

func TestTableSink(t *testing.T) {
	pterm.DisableColor()
	t.Cleanup(pterm.EnableColor)

	t.Run("rows", func(t *testing.T) {
		buf := &bytes.Buffer{}
		sink := NewTableSink(buf)
		sink.Columns([]string{"id", "name"})
		sink.Row([]any{1, "Alice"})
		sink.Row([]any{2, "Bob"})
		require.NoError(t, sink.Flush())

		out := buf.String()
		assert.Contains(t, out, "name")
		assert.Contains(t, out, "Alice")
		assert.Less(t, bytes.Index(buf.Bytes(), []byte("Alice")), bytes.Index(buf.Bytes(), []byte("Bob")))
	})

	t.Run("no data", func(t *testing.T) {
		buf := &bytes.Buffer{}
		sink := NewTableSink(buf)
		sink.Columns([]string{"id"})
		sink.NoData()
		require.NoError(t, sink.Flush())

		assert.Contains(t, buf.String(), "No data found.")
	})
}

func TestMulti(t *testing.T) {
	a, b := NewRecorder(), NewRecorder()
	m := Multi{a, b}

	m.Columns([]string{"id"})
	m.Row([]any{1})

	assert.Equal(t, a.Kinds(), b.Kinds())
	assert.Equal(t, []EventKind{EventColumns, EventRow}, a.Kinds())
}

func TestFormatRow(t *testing.T) {
	assert.Equal(t, []string{"1", "x", "NULL", "raw"}, FormatRow([]any{1, "x", nil, []byte("raw")}))
}
