package discovery

import (
	"fmt"
	"net"
	"strconv"
	"time"

	"github.com/muurk/printscan/internal/printers"
)

// Status is the derived availability of a printer.
type Status int

const (
	StatusUnknown Status = iota
	StatusOnline
	StatusOffline
)

// String returns the upper-case status keyword.
func (s Status) String() string {
	switch s {
	case StatusOnline:
		return "ONLINE"
	case StatusOffline:
		return "OFFLINE"
	default:
		return "UNKNOWN"
	}
}

// Label returns the display text for the status.
func (s Status) Label() string {
	switch s {
	case StatusOnline:
		return "Online"
	case StatusOffline:
		return "Offline"
	default:
		return "Unknown"
	}
}

// MarshalText encodes the status keyword for JSON output.
func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Address is a resolved printer endpoint.
type Address struct {
	IP   string `json:"ip"`
	Port int    `json:"port"`
}

// String returns "ip:port".
func (a Address) String() string {
	return net.JoinHostPort(a.IP, strconv.Itoa(a.Port))
}

// Strategy names the resolution step that produced an address.
type Strategy string

const (
	StrategyURI      Strategy = "uri"
	StrategyName     Strategy = "name"
	StrategyTCPScan  Strategy = "tcp-scan"
	StrategySNMPScan Strategy = "snmp-scan"

	// StrategyNone means every step ran and none produced an address
	StrategyNone Strategy = "none"

	// StrategySkipped means the printer is a software sink and was not resolved
	StrategySkipped Strategy = "skipped"
)

// Record is one printer as observed by a discovery pass.
type Record struct {
	Printer    printers.LogicalPrinter `json:"printer"`
	Status     Status                  `json:"status"`
	Address    *Address                `json:"address,omitempty"`
	ObservedAt time.Time               `json:"observed_at"`

	// Strategy that produced Address, or none/skipped
	Strategy Strategy `json:"strategy"`

	// Virtual is set for printers matching the denylist
	Virtual bool `json:"virtual"`

	// LastOnline equals ObservedAt when the printer is online
	LastOnline *time.Time `json:"last_online,omitempty"`
}

// String returns a human-readable summary of the record
func (r Record) String() string {
	addr := "unresolved"
	if r.Address != nil {
		addr = r.Address.String()
	}
	return fmt.Sprintf("%s [%s] at %s", r.Printer.Name, r.Status, addr)
}

// Resolved reports whether an address was attached.
func (r Record) Resolved() bool {
	return r.Address != nil
}
