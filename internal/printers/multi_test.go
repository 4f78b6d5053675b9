package printers

import (
	"context"
	"errors"
	"testing"
)

type fakeRegistry struct {
	printers []LogicalPrinter
	err      error
}

func (f fakeRegistry) ListPrinters(context.Context) ([]LogicalPrinter, error) {
	return f.printers, f.err
}

func TestMultiRegistry_ListPrinters(t *testing.T) {
	cups := fakeRegistry{printers: []LogicalPrinter{
		{Name: "Lab", Source: SourceCUPS},
		{Name: "Office", Source: SourceCUPS},
	}}
	static := NewStaticRegistry([]StaticPrinter{
		{Name: "Office", URI: "socket://10.0.0.9:9100"},
		{Name: "Warehouse", URI: "socket://10.0.0.10:9100"},
	})

	m := NewMultiRegistry(nil,
		Member{Source: SourceCUPS, Registry: cups},
		Member{Source: SourceStatic, Registry: static},
	)

	got, err := m.ListPrinters(context.Background())
	if err != nil {
		t.Fatalf("ListPrinters() unexpected error: %v", err)
	}

	want := []struct {
		name   string
		source Source
	}{
		{"Lab", SourceCUPS},
		{"Office", SourceCUPS},
		{"Warehouse", SourceStatic},
	}
	if len(got) != len(want) {
		t.Fatalf("ListPrinters() = %v, want %d printers", got, len(want))
	}
	for i, w := range want {
		if got[i].Name != w.name || got[i].Source != w.source {
			t.Errorf("printer[%d] = %s/%s, want %s/%s", i, got[i].Name, got[i].Source, w.name, w.source)
		}
	}
}

func TestMultiRegistry_Failures(t *testing.T) {
	broken := fakeRegistry{err: errors.New("socket closed")}
	ok := fakeRegistry{printers: []LogicalPrinter{{Name: "Lab"}}}

	t.Run("optional source skipped", func(t *testing.T) {
		m := NewMultiRegistry(nil,
			Member{Source: SourceMDNS, Registry: broken, Optional: true},
			Member{Source: SourceCUPS, Registry: ok},
		)
		got, err := m.ListPrinters(context.Background())
		if err != nil {
			t.Fatalf("ListPrinters() unexpected error: %v", err)
		}
		if len(got) != 1 {
			t.Errorf("ListPrinters() = %v, want [Lab]", got)
		}
	})

	t.Run("required source fails", func(t *testing.T) {
		m := NewMultiRegistry(nil,
			Member{Source: SourceCUPS, Registry: ok},
			Member{Source: SourceMDNS, Registry: broken},
		)
		got, err := m.ListPrinters(context.Background())
		if got != nil {
			t.Errorf("ListPrinters() returned partial result %v", got)
		}
		var ee *EnumerationError
		if !errors.As(err, &ee) || ee.Source != SourceMDNS {
			t.Errorf("error = %v, want mdns EnumerationError", err)
		}
		if !errors.Is(err, ErrEnumeration) {
			t.Errorf("error does not wrap ErrEnumeration")
		}
	})
}

func TestStaticRegistry_ListPrinters(t *testing.T) {
	r := NewStaticRegistry([]StaticPrinter{
		{Name: "", URI: "socket://10.0.0.1:9100"},
		{Name: "Label", URI: "socket://10.0.0.2:9100", IsDefault: true,
			Attributes: map[string]string{"printer-state": "3"}},
	})

	got, err := r.ListPrinters(context.Background())
	if err != nil {
		t.Fatalf("ListPrinters() unexpected error: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("ListPrinters() = %v, want one printer", got)
	}
	p := got[0]
	if !p.IsDefault || p.Source != SourceStatic {
		t.Errorf("printer = %+v", p)
	}
	if v, _ := p.Attribute(AttrURI); v != "socket://10.0.0.2:9100" {
		t.Errorf("printer-uri = %q", v)
	}
	if v, _ := p.Attribute(AttrState); v != AttrStateIdle {
		t.Errorf("printer-state = %q, want idle", v)
	}
}
