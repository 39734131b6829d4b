package core

import (
	"errors"
	"fmt"
)

// ErrConnClosed is returned by any operation on a closed connection.
var ErrConnClosed = errors.New("connection is closed")

// ErrNoConn is reported when a query is run without an opened connection.
var ErrNoConn = errors.New("no open connection")

// ConfigError reports a missing or unresolvable configuration field.
// It is always raised before any network activity.
type ConfigError struct {
	Field  string
	Reason string
	Cause  error
}

func (e *ConfigError) Error() string {
	msg := fmt.Sprintf("config: %s: %s", e.Field, e.Reason)
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

func (e *ConfigError) Unwrap() error { return e.Cause }

// ConnectionError reports a failed open (network, auth or driver).
type ConnectionError struct {
	Target string
	Cause  error
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("connection to %s failed: %v", e.Target, e.Cause)
}

func (e *ConnectionError) Unwrap() error { return e.Cause }

// QueryError reports an execute, describe or fetch failure on an open connection.
type QueryError struct {
	Query string
	Stage string // execute, describe, fetch
	Cause error
}

func (e *QueryError) Error() string {
	return fmt.Sprintf("%s failed: %v", e.Stage, e.Cause)
}

func (e *QueryError) Unwrap() error { return e.Cause }

func IsConfigError(err error) bool {
	var ce *ConfigError
	return errors.As(err, &ce)
}

func IsConnectionError(err error) bool {
	var ce *ConnectionError
	return errors.As(err, &ce)
}

func IsQueryError(err error) bool {
	var qe *QueryError
	return errors.As(err, &qe)
}
