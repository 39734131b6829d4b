package core

import (
	"time"
)

// Keys recognised in a ConnectionConfig
const (
	KeyDriver   = "driver"
	KeyDatabase = "database"
	KeyHostname = "hostname"
	KeyPort     = "port"
	KeyProtocol = "protocol"
	KeyUID      = "uid"
	KeyPassword = "pwd"
)

// RequiredKeys lists the connection fields in descriptor order.
var RequiredKeys = []string{KeyDriver, KeyDatabase, KeyHostname, KeyPort, KeyProtocol, KeyUID, KeyPassword}

// DefaultQuery is run when the caller does not supply one.
const DefaultQuery = "SELECT * FROM employees"

// ConnectionConfig maps connection field names to their values.
type ConnectionConfig map[string]string

// Clone returns an independent copy of the config.
func (c ConnectionConfig) Clone() ConnectionConfig {
	out := make(ConnectionConfig, len(c))
	for k, v := range c {
		out[k] = v
	}
	return out
}

// CharType selects which family of text columns a decoding applies to.
type CharType int

const (
	SQLChar  CharType = iota // single-byte text columns
	SQLWChar                 // wide text columns
)

func (t CharType) String() string {
	if t == SQLWChar {
		return "SQL_WCHAR"
	}
	return "SQL_CHAR"
}

type QueryResult struct {
	Columns []string `json:"columns"`
	Rows    [][]any  `json:"rows"`
}

// Summary describes one completed query run. Err holds the contained
// *QueryError, if any.
type Summary struct {
	Query    string
	Columns  []string
	Rows     int
	Duration time.Duration
	Err      error
}

type ProbeStatus int

const (
	Reachable ProbeStatus = iota
	Unreachable
	TimedOut
)

func (s ProbeStatus) String() string {
	switch s {
	case Reachable:
		return "reachable"
	case Unreachable:
		return "unreachable"
	case TimedOut:
		return "timed_out"
	default:
		return "unknown"
	}
}

type ProbeResult struct {
	Status  ProbeStatus   `json:"status"`
	Host    string        `json:"host"`
	Port    int           `json:"port"`
	Latency time.Duration `json:"latency"`
	Err     error         `json:"-"`
}

// Run is one entry in the local run history
type Run struct {
	ID         int64     `json:"id"`
	Timestamp  time.Time `json:"timestamp"`
	Kind       string    `json:"kind"` // "query" or "probe"
	Target     string    `json:"target"`
	Query      string    `json:"query"`
	Status     string    `json:"status"`
	Rows       int       `json:"rows"`
	DurationMs int64     `json:"duration_ms"`
	ErrorMsg   string    `json:"error_message"`
}
