package core

import (
	"context"
	"net"
)

// Transport opens driver sessions from a connection descriptor
type Transport interface {
	Open(ctx context.Context, descriptor string) (Conn, error)
}

// Conn is a live database session. It must be closed exactly once.
type Conn interface {
	// SetDecoding sets the charset used to decode text columns of the given type.
	SetDecoding(t CharType, charset string) error
	Execute(ctx context.Context, query string) (Cursor, error)
	Close() error
}

// Cursor is the result of one executed statement
type Cursor interface {
	Columns() ([]string, error)
	FetchAll() ([][]any, error)
	Close() error
}

// Sink receives leveled messages and query results.
type Sink interface {
	Info(msg string)
	Error(msg string)
	Columns(cols []string)
	Row(values []any)
	NoData()
}

// Dialer is satisfied by *net.Dialer
type Dialer interface {
	DialContext(ctx context.Context, network, address string) (net.Conn, error)
}

// RunRepository stores the local run history
type RunRepository interface {
	Create(run *Run) error
	GetRecent(limit int) ([]Run, error)
}
