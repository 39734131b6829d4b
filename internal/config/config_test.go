package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"odbcprobe/internal/core"

	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func useEnvFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), ".env")
	if content != "" {
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	}
	prev := EnvFile
	EnvFile = path
	t.Cleanup(func() { EnvFile = prev })
	return path
}

func TestLoad_Defaults(t *testing.T) {
	useEnvFile(t, "")
	for _, k := range []string{"ODBC_CHARSET", "ODBCPROBE_SQL_DRIVER", "ODBCPROBE_QUERY", "ODBCPROBE_LOG_DIR", "ODBCPROBE_HISTORY", "ODBCPROBE_PROBE_TIMEOUT"} {
		t.Setenv(k, "")
	}

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "utf-8", cfg.Charset)
	assert.Equal(t, "odbc", cfg.SQLDriver)
	assert.Equal(t, core.DefaultQuery, cfg.Query)
	assert.Equal(t, "logs", cfg.LogDir)
	assert.Equal(t, "odbcprobe.db", cfg.HistoryPath)
	assert.Equal(t, 10*time.Second, cfg.ProbeTimeout)
}

func TestLoad_FromEnv(t *testing.T) {
	useEnvFile(t, "")
	t.Setenv("ODBC_DRIVER", "./drv.so")
	t.Setenv("ODBC_DATABASE", "cmr")
	t.Setenv("ODBC_HOSTNAME", "localhost")
	t.Setenv("ODBC_PORT", "9088")
	t.Setenv("ODBC_PROTOCOL", "TCPIP")
	t.Setenv("ODBC_UID", "informix")
	t.Setenv("ODBC_PWD", "secret")
	t.Setenv("ODBCPROBE_PROBE_TIMEOUT", "1500ms")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, core.ConnectionConfig{
		core.KeyDriver:   "./drv.so",
		core.KeyDatabase: "cmr",
		core.KeyHostname: "localhost",
		core.KeyPort:     "9088",
		core.KeyProtocol: "TCPIP",
		core.KeyUID:      "informix",
		core.KeyPassword: "secret",
	}, cfg.Connection())
	assert.Equal(t, 1500*time.Millisecond, cfg.ProbeTimeout)
}

func TestLoad_InvalidTimeout(t *testing.T) {
	useEnvFile(t, "")
	t.Setenv("ODBCPROBE_PROBE_TIMEOUT", "soon")

	_, err := Load()
	assert.Error(t, err)
}

func TestConnection_OmitsBlankFields(t *testing.T) {
	cfg := &Config{Driver: "./drv.so", Database: "  ", UID: "informix"}

	conn := cfg.Connection()
	assert.Len(t, conn, 2)
	assert.NotContains(t, conn, core.KeyDatabase)
	assert.NotContains(t, conn, core.KeyPassword)
}

func TestEnsureSecretKey(t *testing.T) {
	t.Run("existing key is kept", func(t *testing.T) {
		useEnvFile(t, "")
		cfg := &Config{SecretKey: "0123456789abcdef0123456789abcdef"}

		key, generated, err := cfg.EnsureSecretKey()
		require.NoError(t, err)
		assert.False(t, generated)
		assert.Equal(t, cfg.SecretKey, key)
	})

	t.Run("missing key is generated and saved", func(t *testing.T) {
		path := useEnvFile(t, "ODBC_UID=informix\n")
		cfg := &Config{}

		key, generated, err := cfg.EnsureSecretKey()
		require.NoError(t, err)
		assert.True(t, generated)
		assert.GreaterOrEqual(t, len(key), minKeyLength)

		env, err := godotenv.Read(path)
		require.NoError(t, err)
		assert.Equal(t, key, env["ODBCPROBE_KEY"])
		assert.Equal(t, "informix", env["ODBC_UID"])
	})

	t.Run("other lines are left untouched", func(t *testing.T) {
		original := "# ODBC settings\nODBC_UID=informix\n\n# plain, enc: or keyring:\nODBC_PWD=\n"
		path := useEnvFile(t, original)
		cfg := &Config{}

		key, _, err := cfg.EnsureSecretKey()
		require.NoError(t, err)

		content, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, original+"ODBCPROBE_KEY="+key+"\n", string(content))
	})

	t.Run("short key line is replaced in place", func(t *testing.T) {
		path := useEnvFile(t, "# key\r\nODBCPROBE_KEY=short\r\nODBC_UID=informix\r\n")
		cfg := &Config{SecretKey: "short"}

		key, generated, err := cfg.EnsureSecretKey()
		require.NoError(t, err)
		assert.True(t, generated)

		content, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "# key\r\nODBCPROBE_KEY="+key+"\r\nODBC_UID=informix\r\n", string(content))
	})

	t.Run("missing file is created", func(t *testing.T) {
		path := useEnvFile(t, "")
		cfg := &Config{}

		key, _, err := cfg.EnsureSecretKey()
		require.NoError(t, err)

		content, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "ODBCPROBE_KEY="+key+"\n", string(content))
	})
}
