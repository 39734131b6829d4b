package config

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"os"
	"strings"
	"time"

	"odbcprobe/internal/core"

	"github.com/joho/godotenv"
)

// EnvFile is the dotenv file read by Load and updated by EnsureSecretKey
var EnvFile = ".env"

const (
	minKeyLength = 32
	secretKeyEnv = "ODBCPROBE_KEY"
)

type Config struct {
	Driver   string
	Database string
	Hostname string
	Port     string
	Protocol string
	UID      string
	Password string

	Charset      string
	SQLDriver    string
	Query        string
	SecretKey    string
	LogDir       string
	HistoryPath  string
	ProbeTimeout time.Duration
}

func Load() (*Config, error) {
	// Try loading .env file, but don't fail if it doesn't exist
	_ = godotenv.Load(EnvFile)

	cfg := &Config{
		Driver:   os.Getenv("ODBC_DRIVER"),
		Database: os.Getenv("ODBC_DATABASE"),
		Hostname: os.Getenv("ODBC_HOSTNAME"),
		Port:     os.Getenv("ODBC_PORT"),
		Protocol: os.Getenv("ODBC_PROTOCOL"),
		UID:      os.Getenv("ODBC_UID"),
		Password: os.Getenv("ODBC_PWD"),

		Charset:     getenv("ODBC_CHARSET", "utf-8"),
		SQLDriver:   getenv("ODBCPROBE_SQL_DRIVER", "odbc"),
		Query:       getenv("ODBCPROBE_QUERY", core.DefaultQuery),
		SecretKey:   os.Getenv(secretKeyEnv),
		LogDir:      getenv("ODBCPROBE_LOG_DIR", "logs"),
		HistoryPath: getenv("ODBCPROBE_HISTORY", "odbcprobe.db"),
	}

	timeout := getenv("ODBCPROBE_PROBE_TIMEOUT", "10s")
	d, err := time.ParseDuration(timeout)
	if err != nil {
		return nil, fmt.Errorf("invalid ODBCPROBE_PROBE_TIMEOUT %q: %w", timeout, err)
	}
	cfg.ProbeTimeout = d

	return cfg, nil
}

// Connection returns the connection fields as a ConnectionConfig.
// Unset fields are left out so the connector reports them.
func (c *Config) Connection() core.ConnectionConfig {
	fields := map[string]string{
		core.KeyDriver:   c.Driver,
		core.KeyDatabase: c.Database,
		core.KeyHostname: c.Hostname,
		core.KeyPort:     c.Port,
		core.KeyProtocol: c.Protocol,
		core.KeyUID:      c.UID,
		core.KeyPassword: c.Password,
	}

	out := core.ConnectionConfig{}
	for k, v := range fields {
		if strings.TrimSpace(v) != "" {
			out[k] = v
		}
	}
	return out
}

// EnsureSecretKey returns the configured secret key, generating one and
// saving it to the env file when it is missing or too short.
func (c *Config) EnsureSecretKey() (key string, generated bool, err error) {
	if len(c.SecretKey) >= minKeyLength {
		return c.SecretKey, false, nil
	}

	newKey, err := generateRandomKey(minKeyLength)
	if err != nil {
		return "", false, fmt.Errorf("failed to generate key: %w", err)
	}
	if err := saveKeyToEnv(EnvFile, newKey); err != nil {
		return "", false, fmt.Errorf("failed to save key to %s: %w", EnvFile, err)
	}

	c.SecretKey = newKey
	return newKey, true, nil
}

func getenv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func generateRandomKey(length int) (string, error) {
	b := make([]byte, length)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(b), nil
}

// saveKeyToEnv replaces the ODBCPROBE_KEY line in filename, or appends one.
// Every other line is written back untouched.
func saveKeyToEnv(filename, key string) error {
	keyLine := fmt.Sprintf("%s=%s", secretKeyEnv, key)

	content, err := os.ReadFile(filename)
	if os.IsNotExist(err) {
		return os.WriteFile(filename, []byte(keyLine+"\n"), 0644)
	} else if err != nil {
		return err
	}

	lines := strings.Split(string(content), "\n")
	found := false
	for i, line := range lines {
		trimmed := strings.TrimPrefix(strings.TrimSpace(line), "export ")
		if !strings.HasPrefix(trimmed, secretKeyEnv+"=") {
			continue
		}
		if strings.HasSuffix(line, "\r") {
			lines[i] = keyLine + "\r"
		} else {
			lines[i] = keyLine
		}
		found = true
	}

	out := strings.Join(lines, "\n")
	if !found {
		if out != "" && !strings.HasSuffix(out, "\n") {
			out += "\n"
		}
		out += keyLine + "\n"
	}
	return os.WriteFile(filename, []byte(out), 0644)
}
