// Package transport adapts database/sql drivers to core.Transport.
//
// The ODBC driver (github.com/alexbrainman/odbc) registers itself as "odbc";
// the binary imports it, tests substitute the pure-Go sqlite driver.
package transport

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"odbcprobe/internal/core"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/ianaindex"
)

// DriverODBC is the database/sql name registered by github.com/alexbrainman/odbc
const DriverODBC = "odbc"

// SQL opens one dedicated *sql.DB per connection.
type SQL struct {
	driverName string
}

func NewSQL(driverName string) *SQL {
	if driverName == "" {
		driverName = DriverODBC
	}
	return &SQL{driverName: driverName}
}

func (t *SQL) Open(ctx context.Context, descriptor string) (core.Conn, error) {
	db, err := sql.Open(t.driverName, descriptor)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s connection: %w", t.driverName, err)
	}
	// One session, no pool
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, err
	}

	return &conn{db: db, decoders: map[core.CharType]*encoding.Decoder{}}, nil
}

type conn struct {
	db       *sql.DB
	decoders map[core.CharType]*encoding.Decoder
	closed   bool
}

func (c *conn) SetDecoding(t core.CharType, charset string) error {
	if c.closed {
		return core.ErrConnClosed
	}
	enc, err := ianaindex.IANA.Encoding(charset)
	if err != nil {
		return fmt.Errorf("unknown charset %q: %w", charset, err)
	}
	if enc == nil {
		return fmt.Errorf("unsupported charset %q", charset)
	}
	c.decoders[t] = enc.NewDecoder()
	return nil
}

func (c *conn) Execute(ctx context.Context, query string) (core.Cursor, error) {
	if c.closed {
		return nil, core.ErrConnClosed
	}
	rows, err := c.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	return &cursor{rows: rows, conn: c}, nil
}

// Close releases the session. Later calls are no-ops.
func (c *conn) Close() error {
	if c.closed {
		return nil
	}
	c.closed = true
	return c.db.Close()
}

type cursor struct {
	rows *sql.Rows
	conn *conn
}

func (cur *cursor) Columns() ([]string, error) {
	return cur.rows.Columns()
}

// FetchAll reads every remaining row, decoding raw text column bytes with
// the connection's configured charsets.
func (cur *cursor) FetchAll() ([][]any, error) {
	colTypes, err := cur.rows.ColumnTypes()
	if err != nil {
		return nil, err
	}

	decoders := make([]*encoding.Decoder, len(colTypes))
	for i, ct := range colTypes {
		if kind, ok := charType(ct.DatabaseTypeName()); ok {
			decoders[i] = cur.conn.decoders[kind]
		}
	}

	result := [][]any{}
	for cur.rows.Next() {
		values := make([]any, len(colTypes))
		valuePtrs := make([]any, len(colTypes))
		for i := range values {
			valuePtrs[i] = &values[i]
		}

		if err := cur.rows.Scan(valuePtrs...); err != nil {
			return nil, err
		}

		for i, val := range values {
			values[i], err = decodeValue(val, decoders[i])
			if err != nil {
				return nil, fmt.Errorf("decode column %s: %w", colTypes[i].Name(), err)
			}
		}
		result = append(result, values)
	}
	if err := cur.rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (cur *cursor) Close() error {
	return cur.rows.Close()
}

// charType classifies a driver type name. Unknown names (expressions) count as narrow text.
func charType(typeName string) (core.CharType, bool) {
	name := strings.ToUpper(typeName)
	if name == "" {
		return core.SQLChar, true
	}
	if !strings.Contains(name, "CHAR") && !strings.Contains(name, "TEXT") && !strings.Contains(name, "CLOB") {
		return 0, false
	}
	if strings.HasPrefix(name, "N") || strings.HasPrefix(name, "W") {
		return core.SQLWChar, true
	}
	return core.SQLChar, true
}

// decodeValue decodes raw text bytes. Strings are already decoded by the
// driver (wide columns arrive as UTF-16 converted text) and pass through.
func decodeValue(val any, dec *encoding.Decoder) (any, error) {
	switch v := val.(type) {
	case []byte:
		if dec == nil {
			return string(v), nil
		}
		out, err := dec.Bytes(v)
		if err != nil {
			return nil, err
		}
		return string(out), nil
	default:
		return val, nil
	}
}
