package discovery

import (
	"context"
	"net"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/semaphore"

	"github.com/muurk/printscan/internal/netiface"
	"github.com/muurk/printscan/internal/printers"
)

const (
	// DefaultRawPort is assumed whenever a scan finds a printer. It is never
	// negotiated with the device.
	DefaultRawPort = 9100

	// DefaultScanConcurrency bounds in-flight probes per scan
	DefaultScanConcurrency = 32

	// DefaultResolveDeadline bounds one printer's whole cascade
	DefaultResolveDeadline = 10 * time.Second

	firstHostOctet = 1
	lastHostOctet  = 254
)

// Prober reports whether ip:port accepts a TCP connection.
type Prober interface {
	Reachable(ctx context.Context, ip string, port int) bool
}

// Identifier returns the SNMP system name of ip.
type Identifier interface {
	QueryName(ctx context.Context, ip string) (string, error)
}

// ResolverOptions tunes the address resolver.
type ResolverOptions struct {
	Port        int
	Concurrency int
	Deadline    time.Duration

	DisableTCPScan  bool
	DisableSNMPScan bool
}

// Resolver finds a printer's network address.
type Resolver struct {
	prober     Prober
	identifier Identifier
	opts       ResolverOptions
	logger     *zap.Logger
}

// NewResolver creates a resolver. Zero options fall back to defaults.
func NewResolver(prober Prober, identifier Identifier, opts ResolverOptions, log *zap.Logger) *Resolver {
	if opts.Port <= 0 || opts.Port > 65535 {
		opts.Port = DefaultRawPort
	}
	if opts.Concurrency <= 0 {
		opts.Concurrency = DefaultScanConcurrency
	}
	if opts.Deadline <= 0 {
		opts.Deadline = DefaultResolveDeadline
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Resolver{prober: prober, identifier: identifier, opts: opts, logger: log}
}

// Direct resolves an address from the printer's own data without any
// network activity.
func (r *Resolver) Direct(p printers.LogicalPrinter) (*Address, Strategy) {
	if uri, ok := p.Attribute(printers.AttrURI); ok {
		if addr := addressFromURI(uri); addr != nil {
			return addr, StrategyURI
		}
	}
	if addr := addressFromName(p.Name); addr != nil {
		return addr, StrategyName
	}
	return nil, StrategyNone
}

// Resolve runs the cascade: printer-uri, name, TCP scan, SNMP scan.
// The first step to produce an address wins. Probe failures are treated as
// "not this address" and never returned. When the deadline expires the
// printer is left unresolved.
func (r *Resolver) Resolve(ctx context.Context, p printers.LogicalPrinter, subnets []netiface.Prefix) (*Address, Strategy) {
	if addr, strategy := r.Direct(p); addr != nil {
		return addr, strategy
	}
	if len(subnets) == 0 {
		return nil, StrategyNone
	}

	ctx, cancel := context.WithTimeout(ctx, r.opts.Deadline)
	defer cancel()

	log := r.logger.With(zap.String("printer", p.Name))

	if !r.opts.DisableTCPScan && r.prober != nil {
		ip, probes := r.scan(ctx, subnets, func(ctx context.Context, ip string) bool {
			return r.prober.Reachable(ctx, ip, r.opts.Port)
		})
		log.Debug("TCP scan finished",
			zap.String("ip", ip),
			zap.Int64("probes", probes),
		)
		if ip != "" {
			return &Address{IP: ip, Port: r.opts.Port}, StrategyTCPScan
		}
	}

	if ctx.Err() != nil {
		log.Debug("Resolution deadline reached", zap.Error(ctx.Err()))
		return nil, StrategyNone
	}

	if !r.opts.DisableSNMPScan && r.identifier != nil {
		ip, probes := r.scan(ctx, subnets, func(ctx context.Context, ip string) bool {
			name, err := r.identifier.QueryName(ctx, ip)
			if err != nil {
				return false
			}
			return strings.Contains(name, p.Name)
		})
		log.Debug("SNMP scan finished",
			zap.String("ip", ip),
			zap.Int64("probes", probes),
		)
		if ip != "" {
			return &Address{IP: ip, Port: DefaultRawPort}, StrategySNMPScan
		}
	}

	return nil, StrategyNone
}

// scan fans match out over every host of every prefix with bounded
// concurrency. The first match cancels the remaining probes. All probes have
// returned by the time scan returns.
func (r *Resolver) scan(ctx context.Context, subnets []netiface.Prefix, match func(ctx context.Context, ip string) bool) (string, int64) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	sem := semaphore.NewWeighted(int64(r.opts.Concurrency))
	found := make(chan string, 1)

	var (
		wg     sync.WaitGroup
		probes atomic.Int64
	)

dispatch:
	for _, prefix := range subnets {
		for octet := firstHostOctet; octet <= lastHostOctet; octet++ {
			if err := sem.Acquire(ctx, 1); err != nil {
				break dispatch
			}

			ip := prefix.Host(octet)
			wg.Add(1)
			go func() {
				defer wg.Done()
				defer sem.Release(1)

				probes.Add(1)
				if !match(ctx, ip) {
					return
				}
				select {
				case found <- ip:
					cancel()
				default:
				}
			}()
		}
	}

	wg.Wait()

	select {
	case ip := <-found:
		return ip, probes.Load()
	default:
		return "", probes.Load()
	}
}

// addressFromURI parses socket://ip[:port], ignoring any trailing path.
// A missing port means the raw printing port, as CUPS assumes.
func addressFromURI(raw string) *Address {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil || u.Scheme != "socket" {
		return nil
	}
	if u.Port() == "" {
		return parseHostPort(net.JoinHostPort(u.Hostname(), strconv.Itoa(DefaultRawPort)))
	}
	return parseHostPort(u.Host)
}

// namedAddress matches "(ip:port)" inside a printer name.
var namedAddress = regexp.MustCompile(`\(([^()]+)\)`)

// addressFromName parses a parenthesised ip:port in a printer name,
// e.g. "HP LaserJet (192.168.1.50:9100)".
func addressFromName(name string) *Address {
	for _, m := range namedAddress.FindAllStringSubmatch(name, -1) {
		if addr := parseHostPort(strings.TrimSpace(m[1])); addr != nil {
			return addr
		}
	}
	return nil
}

func parseHostPort(hostport string) *Address {
	host, portStr, err := net.SplitHostPort(hostport)
	if err != nil {
		return nil
	}
	ip := net.ParseIP(host)
	if ip == nil || ip.To4() == nil {
		return nil
	}
	port, err := strconv.Atoi(portStr)
	if err != nil || port < 1 || port > 65535 {
		return nil
	}
	return &Address{IP: ip.To4().String(), Port: port}
}
