package service

import (
	"context"
	"errors"

	"odbcprobe/internal/core"
)

type stubTransport struct {
	calls       int
	descriptors []string
	openErr     error
	conn        *stubConn
}

func (t *stubTransport) Open(ctx context.Context, descriptor string) (core.Conn, error) {
	t.calls++
	t.descriptors = append(t.descriptors, descriptor)
	if t.openErr != nil {
		return nil, t.openErr
	}
	if t.conn == nil {
		t.conn = &stubConn{}
	}
	return t.conn, nil
}

type stubConn struct {
	decodings   map[core.CharType]string
	decodingErr error

	columns    []string
	rows       [][]any
	execErr    error
	columnsErr error
	fetchErr   error

	executed    []string
	closeCalls  int
	cursorClose int
}

func (c *stubConn) SetDecoding(t core.CharType, charset string) error {
	if c.decodingErr != nil {
		return c.decodingErr
	}
	if c.decodings == nil {
		c.decodings = map[core.CharType]string{}
	}
	c.decodings[t] = charset
	return nil
}

func (c *stubConn) Execute(ctx context.Context, query string) (core.Cursor, error) {
	if c.closeCalls > 0 {
		return nil, core.ErrConnClosed
	}
	c.executed = append(c.executed, query)
	if c.execErr != nil {
		return nil, c.execErr
	}
	return &stubCursor{conn: c}, nil
}

func (c *stubConn) Close() error {
	c.closeCalls++
	return nil
}

type stubCursor struct {
	conn *stubConn
}

func (cur *stubCursor) Columns() ([]string, error) {
	return cur.conn.columns, cur.conn.columnsErr
}

func (cur *stubCursor) FetchAll() ([][]any, error) {
	if cur.conn.fetchErr != nil {
		return nil, cur.conn.fetchErr
	}
	return cur.conn.rows, nil
}

func (cur *stubCursor) Close() error {
	cur.conn.cursorClose++
	return nil
}

var errDriver = errors.New("[Informix][ODBC] connection refused")
