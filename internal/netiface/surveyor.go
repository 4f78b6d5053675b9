package netiface

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strings"

	psnet "github.com/shirou/gopsutil/v3/net"
)

// ErrInterfaceEnumeration is wrapped by every InterfaceEnumerationError.
var ErrInterfaceEnumeration = errors.New("network interface enumeration failed")

// DefaultVirtualPrefixes lists interface name prefixes treated as virtual.
var DefaultVirtualPrefixes = []string{
	"docker", "veth", "br-", "virbr", "vmnet", "vboxnet", "cni", "flannel",
	"tun", "tap", "utun", "zt", "tailscale", "wg",
}

// InterfaceEnumerationError reports that the host interface list could not be read.
type InterfaceEnumerationError struct {
	Err error
}

func (e *InterfaceEnumerationError) Error() string {
	return fmt.Sprintf("%v: %v", ErrInterfaceEnumeration, e.Err)
}

// Unwrap exposes both the sentinel and the OS error.
func (e *InterfaceEnumerationError) Unwrap() []error {
	return []error{ErrInterfaceEnumeration, e.Err}
}

// Prefix is the /24 network part of a local IPv4 address, e.g. "192.168.1.".
type Prefix struct {
	Value     string
	Interface string
}

// String returns the dotted prefix.
func (p Prefix) String() string {
	return p.Value
}

// Host returns the address formed by appending a host octet to the prefix.
func (p Prefix) Host(octet int) string {
	return fmt.Sprintf("%s%d", p.Value, octet)
}

// interfaceLister abstracts gopsutil so tests can feed interface tables.
type interfaceLister func(ctx context.Context) (psnet.InterfaceStatList, error)

// Surveyor enumerates local interfaces and derives scan prefixes.
type Surveyor struct {
	// VirtualPrefixes are interface name prefixes that are skipped.
	VirtualPrefixes []string

	list interfaceLister
}

// NewSurveyor creates a Surveyor backed by the host network stack.
func NewSurveyor(virtualPrefixes []string) *Surveyor {
	if virtualPrefixes == nil {
		virtualPrefixes = DefaultVirtualPrefixes
	}
	return &Surveyor{
		VirtualPrefixes: virtualPrefixes,
		list:            psnet.InterfacesWithContext,
	}
}

// ListSubnetPrefixes returns the /24 prefixes of every IPv4 address bound to an
// up, non-loopback, non-virtual interface. On enumeration failure it returns an
// empty slice together with an *InterfaceEnumerationError.
func (s *Surveyor) ListSubnetPrefixes(ctx context.Context) ([]Prefix, error) {
	ifaces, err := s.list(ctx)
	if err != nil {
		return []Prefix{}, &InterfaceEnumerationError{Err: err}
	}

	prefixes := make([]Prefix, 0)
	seen := make(map[string]bool)

	for _, iface := range ifaces {
		if !s.usable(iface) {
			continue
		}
		for _, addr := range iface.Addrs {
			prefix, ok := ipv4Prefix(addr.Addr)
			if !ok || seen[prefix] {
				continue
			}
			seen[prefix] = true
			prefixes = append(prefixes, Prefix{Value: prefix, Interface: iface.Name})
		}
	}

	return prefixes, nil
}

func (s *Surveyor) usable(iface psnet.InterfaceStat) bool {
	if !hasFlag(iface.Flags, "up") || hasFlag(iface.Flags, "loopback") {
		return false
	}
	return !s.isVirtual(iface.Name)
}

// isVirtual reports alias interfaces ("eth0:1") and known software bridges/tunnels.
func (s *Surveyor) isVirtual(name string) bool {
	if strings.Contains(name, ":") {
		return true
	}
	lower := strings.ToLower(name)
	for _, p := range s.VirtualPrefixes {
		if p != "" && strings.HasPrefix(lower, strings.ToLower(p)) {
			return true
		}
	}
	return false
}

func hasFlag(flags []string, want string) bool {
	for _, f := range flags {
		if f == want {
			return true
		}
	}
	return false
}

// ipv4Prefix converts "192.168.1.23/24" (or a bare address) to "192.168.1.".
func ipv4Prefix(addr string) (string, bool) {
	if i := strings.IndexByte(addr, '/'); i >= 0 {
		addr = addr[:i]
	}
	ip := net.ParseIP(addr)
	if ip == nil {
		return "", false
	}
	ip4 := ip.To4()
	if ip4 == nil {
		return "", false
	}
	return fmt.Sprintf("%d.%d.%d.", ip4[0], ip4[1], ip4[2]), true
}
