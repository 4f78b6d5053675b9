package probe

import (
	"context"
	"net"
	"strconv"
	"time"

	"go.uber.org/zap"
)

// DefaultTCPTimeout bounds a single connect attempt.
const DefaultTCPTimeout = 1000 * time.Millisecond

// TCPProbe checks whether a TCP port accepts connections.
type TCPProbe struct {
	Timeout time.Duration

	logger *zap.Logger
}

// NewTCPProbe creates a probe with the given per-attempt timeout.
// A zero timeout selects DefaultTCPTimeout.
func NewTCPProbe(timeout time.Duration, log *zap.Logger) *TCPProbe {
	if timeout <= 0 {
		timeout = DefaultTCPTimeout
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &TCPProbe{Timeout: timeout, logger: log}
}

// Probe makes one connection attempt to ip:port. It returns nil when the
// connection completes within the timeout and a *ProbeError otherwise.
// The socket is closed before Probe returns.
func (p *TCPProbe) Probe(ctx context.Context, ip string, port int) error {
	addr := net.JoinHostPort(ip, strconv.Itoa(port))

	probeCtx, cancel := context.WithTimeout(ctx, p.Timeout)
	defer cancel()

	var dialer net.Dialer
	conn, err := dialer.DialContext(probeCtx, "tcp", addr)
	if err != nil {
		return classifyDialError(ctx, addr, err)
	}

	if err := conn.Close(); err != nil {
		p.logger.Debug("failed to close probe connection", zap.String("addr", addr), zap.Error(err))
	}

	return nil
}

// Reachable reports whether Probe succeeded.
func (p *TCPProbe) Reachable(ctx context.Context, ip string, port int) bool {
	return p.Probe(ctx, ip, port) == nil
}
