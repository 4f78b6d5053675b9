package discovery

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/muurk/printscan/internal/netiface"
	"github.com/muurk/printscan/internal/printers"
)

// DefaultParallelism bounds how many printers are resolved at once.
const DefaultParallelism = 4

// ErrPrinterNotFound is returned by ResolvePrinter for unknown names.
var ErrPrinterNotFound = errors.New("printer not found")

// Surveyor lists the local /24 prefixes to scan.
type Surveyor interface {
	ListSubnetPrefixes(ctx context.Context) ([]netiface.Prefix, error)
}

// ServiceOptions tunes a discovery pass.
type ServiceOptions struct {
	// Denylist defaults to DefaultDenylist when nil
	Denylist Denylist

	// Parallelism defaults to DefaultParallelism
	Parallelism int

	// Now stamps records, defaults to time.Now
	Now func() time.Time
}

// Service runs discovery passes.
type Service struct {
	registry    printers.Registry
	surveyor    Surveyor
	resolver    *Resolver
	denylist    Denylist
	parallelism int
	now         func() time.Time
	logger      *zap.Logger
}

// NewService wires a discovery service.
func NewService(registry printers.Registry, surveyor Surveyor, resolver *Resolver, opts ServiceOptions, log *zap.Logger) *Service {
	if opts.Denylist == nil {
		opts.Denylist = DefaultDenylist()
	}
	if opts.Parallelism <= 0 {
		opts.Parallelism = DefaultParallelism
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{
		registry:    registry,
		surveyor:    surveyor,
		resolver:    resolver,
		denylist:    opts.Denylist,
		parallelism: opts.Parallelism,
		now:         opts.Now,
		logger:      log,
	}
}

// ListDiscoveredPrinters runs one discovery pass and returns a record per
// registered printer, in registry order.
//
// A registry failure is returned as is and no records are produced.
// Interface enumeration failures only disable scanning.
func (s *Service) ListDiscoveredPrinters(ctx context.Context) ([]Record, error) {
	log := s.logger.With(zap.String("pass_id", uuid.NewString()))

	list, err := s.registry.ListPrinters(ctx)
	if err != nil {
		log.Error("Printer enumeration failed", zap.Error(err))
		return nil, err
	}

	records := make([]Record, len(list))
	if len(list) == 0 {
		log.Info("No printers registered")
		return records, nil
	}

	log.Info("Discovery pass started", zap.Int("printers", len(list)))
	start := time.Now()

	survey := s.subnetSurvey(ctx, log)

	var g errgroup.Group
	g.SetLimit(s.parallelism)
	for i, p := range list {
		g.Go(func() error {
			records[i] = s.observe(ctx, log, p, survey)
			return nil
		})
	}
	_ = g.Wait()

	sum := Summarize(records)
	log.Info("Discovery pass finished",
		zap.Int("printers", sum.Total),
		zap.Int("online", sum.Online),
		zap.Int("resolved", sum.Resolved),
		zap.Duration("elapsed", time.Since(start)),
	)

	return records, nil
}

// ResolvePrinter runs a pass restricted to the printer with the given name.
func (s *Service) ResolvePrinter(ctx context.Context, name string) (Record, error) {
	log := s.logger.With(zap.String("pass_id", uuid.NewString()))

	list, err := s.registry.ListPrinters(ctx)
	if err != nil {
		return Record{}, err
	}

	for _, p := range list {
		if p.Name == name {
			return s.observe(ctx, log, p, s.subnetSurvey(ctx, log)), nil
		}
	}
	return Record{}, fmt.Errorf("%w: %q", ErrPrinterNotFound, name)
}

// subnetSurvey returns a function that lists local prefixes on first call
// and returns the same slice afterwards.
func (s *Service) subnetSurvey(ctx context.Context, log *zap.Logger) func() []netiface.Prefix {
	var (
		once    sync.Once
		subnets []netiface.Prefix
	)
	return func() []netiface.Prefix {
		once.Do(func() {
			if s.surveyor == nil {
				return
			}
			prefixes, err := s.surveyor.ListSubnetPrefixes(ctx)
			if err != nil {
				log.Warn("Interface survey failed, subnet scanning disabled", zap.Error(err))
			}
			subnets = prefixes
			log.Debug("Interface survey complete", zap.Int("prefixes", len(subnets)))
		})
		return subnets
	}
}

func (s *Service) observe(ctx context.Context, log *zap.Logger, p printers.LogicalPrinter, survey func() []netiface.Prefix) Record {
	now := s.now()
	rec := Record{
		Printer:    p,
		Status:     Classify(p),
		ObservedAt: now,
		Strategy:   StrategyNone,
	}
	if rec.Status == StatusOnline {
		rec.LastOnline = &now
	}

	log = log.With(zap.String("printer", p.Name))

	if marker, ok := s.denylist.Match(p.Name); ok {
		rec.Virtual = true
		rec.Strategy = StrategySkipped
		log.Debug("Virtual printer, address resolution skipped", zap.String("marker", marker))
		return rec
	}

	if s.resolver == nil {
		return rec
	}

	addr, strategy := s.resolver.Direct(p)
	if addr == nil {
		addr, strategy = s.resolver.Resolve(ctx, p, survey())
	}
	rec.Address = addr
	rec.Strategy = strategy

	log.Debug("Printer observed",
		zap.Stringer("status", rec.Status),
		zap.String("strategy", string(strategy)),
		zap.Bool("resolved", addr != nil),
	)
	return rec
}

// Summary counts the outcome of a pass.
type Summary struct {
	Total    int    `json:"total"`
	Online   int    `json:"online"`
	Offline  int    `json:"offline"`
	Unknown  int    `json:"unknown"`
	Resolved int    `json:"resolved"`
	Virtual  int    `json:"virtual"`
	Default  string `json:"default,omitempty"`
}

// Summarize tallies records by status and resolution.
func Summarize(records []Record) Summary {
	sum := Summary{Total: len(records)}
	for _, r := range records {
		switch r.Status {
		case StatusOnline:
			sum.Online++
		case StatusOffline:
			sum.Offline++
		default:
			sum.Unknown++
		}
		if r.Address != nil {
			sum.Resolved++
		}
		if r.Virtual {
			sum.Virtual++
		}
		if r.Printer.IsDefault && sum.Default == "" {
			sum.Default = r.Printer.Name
		}
	}
	return sum
}
