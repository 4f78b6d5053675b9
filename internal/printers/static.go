package printers

import (
	"context"
)

// StaticPrinter is a printer declared by hand in the config file.
type StaticPrinter struct {
	Name       string
	URI        string
	IsDefault  bool
	Attributes map[string]string
}

// StaticRegistry serves a fixed list of printers.
type StaticRegistry struct {
	printers []StaticPrinter
}

// NewStaticRegistry creates a registry over the declared printers.
func NewStaticRegistry(printers []StaticPrinter) *StaticRegistry {
	return &StaticRegistry{printers: printers}
}

// ListPrinters never fails.
func (r *StaticRegistry) ListPrinters(_ context.Context) ([]LogicalPrinter, error) {
	out := make([]LogicalPrinter, 0, len(r.printers))
	for _, sp := range r.printers {
		if sp.Name == "" {
			continue
		}
		attrs := make(map[string]string, len(sp.Attributes)+1)
		for k, v := range sp.Attributes {
			attrs[k] = v
		}
		if sp.URI != "" {
			attrs[AttrURI] = sp.URI
		}
		out = append(out, LogicalPrinter{
			Name:       sp.Name,
			IsDefault:  sp.IsDefault,
			Attributes: normalizeAttributes(attrs),
			Source:     SourceStatic,
		})
	}
	return out, nil
}
