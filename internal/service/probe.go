package service

import (
	"context"
	"errors"
	"net"
	"strconv"
	"time"

	"odbcprobe/internal/core"
)

// DefaultProbeTimeout applies when Probe is given a non-positive timeout
const DefaultProbeTimeout = 10 * time.Second

// Prober performs single-attempt TCP reachability checks.
type Prober struct {
	dialer core.Dialer
}

// NewProber uses a plain net.Dialer when dialer is nil
func NewProber(dialer core.Dialer) *Prober {
	if dialer == nil {
		dialer = &net.Dialer{}
	}
	return &Prober{dialer: dialer}
}

// Probe dials host:port once within timeout and classifies the outcome.
func (p *Prober) Probe(ctx context.Context, host string, port int, timeout time.Duration) core.ProbeResult {
	if timeout <= 0 {
		timeout = DefaultProbeTimeout
	}
	res := core.ProbeResult{Host: host, Port: port}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	start := time.Now()
	conn, err := p.dialer.DialContext(ctx, "tcp", net.JoinHostPort(host, strconv.Itoa(port)))
	res.Latency = time.Since(start)

	if err == nil {
		conn.Close()
		res.Status = core.Reachable
		return res
	}

	res.Err = err
	if isTimeout(err) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
		res.Status = core.TimedOut
	} else {
		res.Status = core.Unreachable
	}
	return res
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var ne net.Error
	return errors.As(err, &ne) && ne.Timeout()
}
