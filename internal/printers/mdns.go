package printers

import (
	"context"
	"fmt"
	"net"
	"strconv"
	"strings"
	"time"

	"github.com/grandcat/zeroconf"
	"go.uber.org/zap"
)

const (
	// ServiceType is the DNS-SD type for raw port (JetDirect) printers
	ServiceType = "_pdl-datastream._tcp"

	// ServiceDomain is the mDNS domain (typically "local.")
	ServiceDomain = "local."

	// DefaultBrowseTimeout bounds one browse
	DefaultBrowseTimeout = 3 * time.Second

	// DefaultRawPort is used when an advertisement carries no port
	DefaultRawPort = 9100
)

// browseFunc runs a DNS-SD browse, sending entries until ctx ends. It closes
// entries once browsing stops, including when it fails to start.
type browseFunc func(ctx context.Context, service, domain string, entries chan<- *zeroconf.ServiceEntry) error

func zeroconfBrowse(ctx context.Context, service, domain string, entries chan<- *zeroconf.ServiceEntry) error {
	resolver, err := zeroconf.NewResolver(nil)
	if err != nil {
		close(entries)
		return fmt.Errorf("failed to create mDNS resolver: %w", err)
	}
	// zeroconf closes entries when its browse loop exits, on error as well
	if err := resolver.Browse(ctx, service, domain, entries); err != nil {
		return fmt.Errorf("failed to browse for mDNS services: %w", err)
	}
	return nil
}

// MDNSRegistry reports raw-port printers advertised over multicast DNS.
type MDNSRegistry struct {
	// Timeout is how long to listen for advertisements
	Timeout time.Duration

	browse browseFunc
	logger *zap.Logger
}

// NewMDNSRegistry creates an mDNS browser with the given listen window.
func NewMDNSRegistry(timeout time.Duration, log *zap.Logger) *MDNSRegistry {
	if timeout <= 0 {
		timeout = DefaultBrowseTimeout
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &MDNSRegistry{Timeout: timeout, browse: zeroconfBrowse, logger: log}
}

// ListPrinters browses for the configured window and returns what answered.
func (r *MDNSRegistry) ListPrinters(ctx context.Context) ([]LogicalPrinter, error) {
	ctx, cancel := context.WithTimeout(ctx, r.Timeout)
	defer cancel()

	entries := make(chan *zeroconf.ServiceEntry)
	printers := make([]LogicalPrinter, 0)
	seen := make(map[string]bool)

	// Read until the browser closes entries; answers after the window are dropped.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for entry := range entries {
			if ctx.Err() != nil {
				continue
			}
			p := r.parseServiceEntry(entry)
			if p == nil || seen[p.Name] {
				continue
			}
			seen[p.Name] = true
			printers = append(printers, *p)
		}
	}()

	if err := r.browse(ctx, ServiceType, ServiceDomain, entries); err != nil {
		cancel()
		<-done
		return nil, newEnumerationError(SourceMDNS, err)
	}

	<-ctx.Done()
	<-done

	return printers, nil
}

// parseServiceEntry converts a service entry into a LogicalPrinter.
// Returns nil when the entry has no instance name or no usable address.
func (r *MDNSRegistry) parseServiceEntry(entry *zeroconf.ServiceEntry) *LogicalPrinter {
	if entry == nil || entry.Instance == "" {
		return nil
	}

	var ip string
	for _, addr := range entry.AddrIPv4 {
		ip = addr.String()
		break
	}
	if ip == "" && len(entry.AddrIPv6) > 0 {
		ip = entry.AddrIPv6[0].String()
	}
	if ip == "" {
		return nil
	}

	port := entry.Port
	if port == 0 {
		port = DefaultRawPort
	}

	attrs := map[string]string{
		AttrURI: "socket://" + net.JoinHostPort(ip, strconv.Itoa(port)),
	}
	for _, txt := range entry.Text {
		k, v, _ := strings.Cut(txt, "=")
		switch strings.ToLower(k) {
		case "ty":
			attrs[AttrMakeAndModel] = v
		case "note":
			attrs[AttrLocation] = v
		case "product":
			attrs["product"] = strings.Trim(v, "()")
		}
	}

	r.logger.Debug("mDNS printer advertisement",
		zap.String("printer", entry.Instance),
		zap.String("uri", attrs[AttrURI]),
	)

	return &LogicalPrinter{
		Name:       entry.Instance,
		Attributes: attrs,
		Source:     SourceMDNS,
	}
}
