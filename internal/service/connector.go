package service

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"odbcprobe/internal/core"
)

// DefaultCharset is applied to both narrow and wide text columns
const DefaultCharset = "utf-8"

// Connector turns a ConnectionConfig into a live connection.
type Connector struct {
	transport core.Transport
	sink      core.Sink
	secrets   *SecretResolver
	charset   string
}

func NewConnector(transport core.Transport, sink core.Sink, secrets *SecretResolver) *Connector {
	return &Connector{
		transport: transport,
		sink:      sink,
		secrets:   secrets,
		charset:   DefaultCharset,
	}
}

// WithCharset overrides the result text charset
func (c *Connector) WithCharset(charset string) *Connector {
	if charset != "" {
		c.charset = charset
	}
	return c
}

// Connect validates cfg, opens a session and configures text decoding.
// Config problems return *core.ConfigError without touching the transport;
// open or decoding failures return *core.ConnectionError. One sink line is
// written per outcome.
func (c *Connector) Connect(ctx context.Context, cfg core.ConnectionConfig) (core.Conn, error) {
	resolved, err := c.resolve(cfg)
	if err != nil {
		c.sink.Error(err.Error())
		return nil, err
	}

	target := targetName(resolved)
	conn, err := c.transport.Open(ctx, core.BuildDescriptor(resolved))
	if err != nil {
		cerr := &core.ConnectionError{Target: target, Cause: err}
		c.sink.Error(cerr.Error())
		return nil, cerr
	}

	for _, t := range []core.CharType{core.SQLChar, core.SQLWChar} {
		if err := conn.SetDecoding(t, c.charset); err != nil {
			conn.Close()
			cerr := &core.ConnectionError{Target: target, Cause: fmt.Errorf("set %s decoding: %w", t, err)}
			c.sink.Error(cerr.Error())
			return nil, cerr
		}
	}

	c.sink.Info("connected to " + target)
	return conn, nil
}

// Descriptor returns the password-masked descriptor Connect would use.
func (c *Connector) Descriptor(cfg core.ConnectionConfig) (string, error) {
	resolved, err := c.resolve(cfg)
	if err != nil {
		return "", err
	}
	return core.MaskedDescriptor(resolved), nil
}

// resolve checks required fields, makes the driver path absolute and
// resolves the password. The input map is not modified.
func (c *Connector) resolve(cfg core.ConnectionConfig) (core.ConnectionConfig, error) {
	for _, k := range core.RequiredKeys {
		if strings.TrimSpace(cfg[k]) == "" {
			return nil, &core.ConfigError{Field: k, Reason: "required field is missing"}
		}
	}

	out := cfg.Clone()

	driver, err := resolvePath(cfg[core.KeyDriver])
	if err != nil {
		return nil, &core.ConfigError{Field: core.KeyDriver, Reason: "cannot resolve driver path", Cause: err}
	}
	out[core.KeyDriver] = driver

	pwd, err := c.secrets.Resolve(cfg[core.KeyPassword])
	if err != nil {
		return nil, &core.ConfigError{Field: core.KeyPassword, Reason: "cannot resolve password", Cause: err}
	}
	out[core.KeyPassword] = pwd

	return out, nil
}

// resolvePath makes p absolute against the working directory and checks it is a readable file.
func resolvePath(p string) (string, error) {
	abs, err := filepath.Abs(p)
	if err != nil {
		return "", err
	}

	info, err := os.Stat(abs)
	if err != nil {
		return "", err
	}
	if info.IsDir() {
		return "", fmt.Errorf("%s is a directory", abs)
	}

	f, err := os.Open(abs)
	if err != nil {
		return "", err
	}
	f.Close()

	return abs, nil
}

func targetName(cfg core.ConnectionConfig) string {
	return fmt.Sprintf("%s@%s:%s", cfg[core.KeyDatabase], cfg[core.KeyHostname], cfg[core.KeyPort])
}
