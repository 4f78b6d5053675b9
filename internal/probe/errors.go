package probe

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"syscall"
)

// Sentinel errors for SNMP identity failures.
var (
	ErrSNMPTimeout      = errors.New("snmp request timed out")
	ErrSNMPTransport    = errors.New("snmp transport error")
	ErrSNMPMalformed    = errors.New("snmp response malformed")
	ErrSNMPNoSuchObject = errors.New("snmp object not present")
)

// ProbeKind is the category of a failed TCP probe
type ProbeKind int

const (
	// ProbeOther covers errors that are not classified further
	ProbeOther ProbeKind = iota
	// ProbeTimeout means the connect did not finish within the probe timeout
	ProbeTimeout
	// ProbeRefused means the host answered with a reset
	ProbeRefused
	// ProbeHostUnreachable means no route to the host
	ProbeHostUnreachable
	// ProbeNetworkUnreachable means no route to the network
	ProbeNetworkUnreachable
	// ProbeCancelled means the caller's context was cancelled
	ProbeCancelled
)

// String returns a human-readable name for the probe kind
func (k ProbeKind) String() string {
	switch k {
	case ProbeTimeout:
		return "timeout"
	case ProbeRefused:
		return "connection refused"
	case ProbeHostUnreachable:
		return "host unreachable"
	case ProbeNetworkUnreachable:
		return "network unreachable"
	case ProbeCancelled:
		return "cancelled"
	case ProbeOther:
		return "error"
	default:
		return fmt.Sprintf("ProbeKind(%d)", int(k))
	}
}

// ProbeError is a failed TCP reachability probe.
type ProbeError struct {
	Kind ProbeKind
	Addr string
	Err  error
}

func (e *ProbeError) Error() string {
	return fmt.Sprintf("probe %s: %s: %v", e.Addr, e.Kind, e.Err)
}

func (e *ProbeError) Unwrap() error {
	return e.Err
}

// classifyDialError maps a dial error onto a ProbeError.
func classifyDialError(ctx context.Context, addr string, err error) *ProbeError {
	pe := &ProbeError{Kind: ProbeOther, Addr: addr, Err: err}

	switch {
	case errors.Is(ctx.Err(), context.Canceled):
		pe.Kind = ProbeCancelled
	case errors.Is(err, context.DeadlineExceeded), os.IsTimeout(err):
		pe.Kind = ProbeTimeout
	case errors.Is(err, syscall.ECONNREFUSED):
		pe.Kind = ProbeRefused
	case errors.Is(err, syscall.EHOSTUNREACH):
		pe.Kind = ProbeHostUnreachable
	case errors.Is(err, syscall.ENETUNREACH):
		pe.Kind = ProbeNetworkUnreachable
	default:
		var netErr net.Error
		if errors.As(err, &netErr) && netErr.Timeout() {
			pe.Kind = ProbeTimeout
		}
	}

	return pe
}

// SNMPError is a failed SNMP identity query.
type SNMPError struct {
	IP  string
	Err error
}

func (e *SNMPError) Error() string {
	return fmt.Sprintf("snmp %s: %v", e.IP, e.Err)
}

func (e *SNMPError) Unwrap() error {
	return e.Err
}

func newSNMPError(ip string, kind error, cause error) *SNMPError {
	if cause == nil {
		return &SNMPError{IP: ip, Err: kind}
	}
	return &SNMPError{IP: ip, Err: fmt.Errorf("%w: %w", kind, cause)}
}
