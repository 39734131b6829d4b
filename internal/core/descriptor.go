package core

import (
	"strings"
)

// descriptorKeys maps config keys to ODBC connection string attributes, in template order.
var descriptorKeys = []struct {
	key, attr string
}{
	{KeyDriver, "DRIVER"},
	{KeyDatabase, "DATABASE"},
	{KeyHostname, "HOSTNAME"},
	{KeyPort, "PORT"},
	{KeyProtocol, "PROTOCOL"},
	{KeyUID, "UID"},
	{KeyPassword, "PWD"},
}

// BuildDescriptor renders cfg into an ODBC connection string:
// DRIVER=..;DATABASE=..;HOSTNAME=..;PORT=..;PROTOCOL=..;UID=..;PWD=..;
// Callers validate that every key is present first.
func BuildDescriptor(cfg ConnectionConfig) string {
	var b strings.Builder
	for _, k := range descriptorKeys {
		b.WriteString(k.attr)
		b.WriteByte('=')
		b.WriteString(quoteValue(cfg[k.key]))
		b.WriteByte(';')
	}
	return b.String()
}

// MaskedDescriptor is BuildDescriptor with the password replaced, for logging.
func MaskedDescriptor(cfg ConnectionConfig) string {
	masked := cfg.Clone()
	if masked[KeyPassword] != "" {
		masked[KeyPassword] = "***"
	}
	return BuildDescriptor(masked)
}

// quoteValue wraps values that would break attribute parsing in braces,
// doubling any closing brace.
func quoteValue(v string) string {
	if !strings.ContainsAny(v, ";{}") && strings.TrimSpace(v) == v {
		return v
	}
	return "{" + strings.ReplaceAll(v, "}", "}}") + "}"
}
