// Package prober times TLS handshakes against individual IP addresses.
package prober

import (
	"context"
	"crypto/tls"
	"math"
	"net"
	"strconv"
	"time"

	"github.com/NordCoder/Coloscope/internal/domain/result"
)

type Config struct {
	Port    int
	Timeout time.Duration
}

// Prober measures wall-clock time from connection start to handshake
// completion. Certificate and hostname verification are disabled on
// purpose: the measurement needs timing, not trust, and probing by raw
// IP would fail verification anyway.
type Prober struct {
	port    int
	timeout time.Duration
}

func New(cfg Config) *Prober {
	port := cfg.Port
	if port <= 0 {
		port = 443
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 4 * time.Second
	}
	return &Prober{port: port, timeout: timeout}
}

// Probe connects to ip and performs a TLS handshake with sni as the
// server name. It never returns an error: failures yield Success=false
// with the elapsed time up to the point the failure was detected.
func (p *Prober) Probe(ctx context.Context, ip, sni string) result.ProbeOutcome {
	addr := net.JoinHostPort(ip, strconv.Itoa(p.port))
	deadline := time.Now().Add(p.timeout)

	start := time.Now()
	outcome := func(success bool) result.ProbeOutcome {
		return result.ProbeOutcome{
			IP:        ip,
			LatencyMs: roundMs(time.Since(start)),
			Success:   success,
		}
	}

	dialer := &net.Dialer{Timeout: p.timeout, Deadline: deadline}
	conn, err := dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		return outcome(false)
	}
	defer conn.Close()

	_ = conn.SetDeadline(deadline)
	tc := tls.Client(conn, &tls.Config{
		ServerName:         sni,
		InsecureSkipVerify: true,
		MinVersion:         tls.VersionTLS12,
	})
	if err := tc.HandshakeContext(ctx); err != nil {
		return outcome(false)
	}
	out := outcome(true)
	_ = tc.Close()
	return out
}

// roundMs converts to milliseconds rounded to two decimal places.
func roundMs(d time.Duration) float64 {
	ms := float64(d) / float64(time.Millisecond)
	return math.Round(ms*100) / 100
}
