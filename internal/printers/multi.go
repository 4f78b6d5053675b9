package printers

import (
	"context"
	"errors"

	"go.uber.org/zap"
)

// Member is one source inside a MultiRegistry.
type Member struct {
	Source   Source
	Registry Registry

	// Optional sources are skipped on failure instead of failing the listing
	Optional bool
}

// MultiRegistry merges several registries, first name wins.
type MultiRegistry struct {
	members []Member
	logger  *zap.Logger
}

// NewMultiRegistry creates a registry over members, queried in order.
func NewMultiRegistry(log *zap.Logger, members ...Member) *MultiRegistry {
	if log == nil {
		log = zap.NewNop()
	}
	return &MultiRegistry{members: members, logger: log}
}

// ListPrinters queries every member and de-duplicates by printer name.
func (m *MultiRegistry) ListPrinters(ctx context.Context) ([]LogicalPrinter, error) {
	out := make([]LogicalPrinter, 0)
	seen := make(map[string]Source)

	for _, member := range m.members {
		list, err := member.Registry.ListPrinters(ctx)
		if err != nil {
			if !member.Optional {
				var ee *EnumerationError
				if errors.As(err, &ee) {
					return nil, ee
				}
				return nil, newEnumerationError(member.Source, err)
			}
			m.logger.Warn("Optional printer source failed, skipping",
				zap.String("source", string(member.Source)),
				zap.Error(err),
			)
			continue
		}

		for _, p := range list {
			if prev, dup := seen[p.Name]; dup {
				m.logger.Debug("Duplicate printer name ignored",
					zap.String("printer", p.Name),
					zap.String("kept", string(prev)),
					zap.String("dropped", string(member.Source)),
				)
				continue
			}
			seen[p.Name] = member.Source
			out = append(out, p)
		}
	}

	return out, nil
}
