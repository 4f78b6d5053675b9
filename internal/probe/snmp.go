package probe

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"strings"
	"time"

	"github.com/gosnmp/gosnmp"
	"go.uber.org/zap"
)

const (
	// OIDSysName is SNMPv2-MIB::sysName.0
	OIDSysName = "1.3.6.1.2.1.1.5.0"

	DefaultSNMPCommunity = "public"
	DefaultSNMPPort      = 161
	DefaultSNMPTimeout   = 300 * time.Millisecond
	DefaultSNMPRetries   = 3
)

// SNMPProbe asks a host for its sysName over SNMP v2c.
type SNMPProbe struct {
	Community string
	Port      uint16
	Timeout   time.Duration
	Retries   int

	logger *zap.Logger
}

// NewSNMPProbe creates a probe with the default community, port, timeout and retries.
func NewSNMPProbe(log *zap.Logger) *SNMPProbe {
	if log == nil {
		log = zap.NewNop()
	}
	return &SNMPProbe{
		Community: DefaultSNMPCommunity,
		Port:      DefaultSNMPPort,
		Timeout:   DefaultSNMPTimeout,
		Retries:   DefaultSNMPRetries,
		logger:    log,
	}
}

// client builds a gosnmp client bound to ctx.
func (p *SNMPProbe) client(ctx context.Context, ip string) *gosnmp.GoSNMP {
	return &gosnmp.GoSNMP{
		Target:    ip,
		Port:      p.Port,
		Community: p.Community,
		Version:   gosnmp.Version2c,
		Timeout:   p.Timeout,
		Retries:   p.Retries,
		Context:   ctx,
	}
}

// QueryName issues a GET for sysName.0 and returns the decoded value.
// Any failure is returned as *SNMPError; the UDP socket is always closed.
func (p *SNMPProbe) QueryName(ctx context.Context, ip string) (string, error) {
	client := p.client(ctx, ip)

	if err := client.Connect(); err != nil {
		return "", newSNMPError(ip, ErrSNMPTransport, err)
	}
	defer func(conn net.Conn) {
		if err := conn.Close(); err != nil {
			p.logger.Debug("failed to close SNMP connection", zap.String("ip", ip), zap.Error(err))
		}
	}(client.Conn)

	result, err := client.Get([]string{OIDSysName})
	if err != nil {
		return "", newSNMPError(ip, classifySNMPError(ctx, err), err)
	}

	return decodeSysName(ip, result)
}

func classifySNMPError(ctx context.Context, err error) error {
	if ctx.Err() != nil {
		return ErrSNMPTimeout
	}
	if os.IsTimeout(err) || strings.Contains(strings.ToLower(err.Error()), "timeout") {
		return ErrSNMPTimeout
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return ErrSNMPTimeout
	}
	if strings.Contains(strings.ToLower(err.Error()), "unmarshal") {
		return ErrSNMPMalformed
	}
	return ErrSNMPTransport
}

// decodeSysName validates the response packet and extracts the string value.
func decodeSysName(ip string, result *gosnmp.SnmpPacket) (string, error) {
	if result == nil {
		return "", newSNMPError(ip, ErrSNMPMalformed, errors.New("empty response"))
	}
	if result.Error != gosnmp.NoError {
		return "", newSNMPError(ip, ErrSNMPMalformed, fmt.Errorf("error status %s", result.Error))
	}
	if len(result.Variables) == 0 {
		return "", newSNMPError(ip, ErrSNMPMalformed, errors.New("no variable bindings"))
	}

	v := result.Variables[0]
	switch v.Type {
	case gosnmp.NoSuchObject, gosnmp.NoSuchInstance, gosnmp.EndOfMibView, gosnmp.Null:
		return "", newSNMPError(ip, ErrSNMPNoSuchObject, nil)
	case gosnmp.OctetString:
		switch val := v.Value.(type) {
		case []byte:
			return string(val), nil
		case string:
			return val, nil
		}
	}

	return "", newSNMPError(ip, ErrSNMPMalformed, fmt.Errorf("unexpected type %s for %s", v.Type, v.Name))
}
