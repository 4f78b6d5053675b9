package main

import (
	"context"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/muurk/printscan/internal/config"
	"github.com/muurk/printscan/internal/discovery"
	"github.com/muurk/printscan/internal/printers"
)

func staticConfig() *config.Config {
	c := config.NewConfig()
	c.Registry.CUPS = false
	c.Registry.MDNS = false
	c.Registry.Printers = []config.StaticPrinter{
		{Name: "Front desk", URI: "socket://10.0.0.5:9100", Default: true},
		{Name: "Microsoft Print to PDF"},
		{Name: "Lab (192.168.7.20:9101)", Attributes: map[string]string{
			"printer-state":             "3",
			"printer-state-reasons":     "none",
			"printer-is-accepting-jobs": "true",
		}},
	}
	return c
}

func TestStaticPrinters(t *testing.T) {
	got := staticPrinters(staticConfig().Registry.Printers)
	if len(got) != 3 {
		t.Fatalf("got %d printers, want 3", len(got))
	}
	if got[0].Name != "Front desk" || got[0].URI != "socket://10.0.0.5:9100" || !got[0].IsDefault {
		t.Errorf("first printer = %+v", got[0])
	}
	if got[2].Attributes["printer-state"] != "3" {
		t.Errorf("attributes not carried over: %v", got[2].Attributes)
	}
}

func TestNewRegistry_StaticOnly(t *testing.T) {
	reg := newRegistry(staticConfig(), false, zap.NewNop())

	got, err := reg.ListPrinters(context.Background())
	if err != nil {
		t.Fatalf("ListPrinters() error = %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("got %d printers, want 3", len(got))
	}
	for _, p := range got {
		if p.Source != printers.SourceStatic {
			t.Errorf("%s: source = %s, want static", p.Name, p.Source)
		}
	}
}

func TestNewService_ResolvesWithoutScanning(t *testing.T) {
	c := staticConfig()
	c.Discovery.TCPScan = false
	c.Discovery.SNMPScan = false
	c.Discovery.Deadline = time.Second

	records, err := newService(c, false, zap.NewNop()).ListDiscoveredPrinters(context.Background())
	if err != nil {
		t.Fatalf("ListDiscoveredPrinters() error = %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("got %d records, want 3", len(records))
	}

	tests := []struct {
		strategy discovery.Strategy
		addr     string
		virtual  bool
		status   discovery.Status
	}{
		{discovery.StrategyURI, "10.0.0.5:9100", false, discovery.StatusUnknown},
		{discovery.StrategySkipped, "", true, discovery.StatusUnknown},
		{discovery.StrategyName, "192.168.7.20:9101", false, discovery.StatusOnline},
	}
	for i, tt := range tests {
		rec := records[i]
		if rec.Strategy != tt.strategy {
			t.Errorf("%s: strategy = %s, want %s", rec.Printer.Name, rec.Strategy, tt.strategy)
		}
		if rec.Virtual != tt.virtual {
			t.Errorf("%s: virtual = %v, want %v", rec.Printer.Name, rec.Virtual, tt.virtual)
		}
		if rec.Status != tt.status {
			t.Errorf("%s: status = %s, want %s", rec.Printer.Name, rec.Status, tt.status)
		}
		var addr string
		if rec.Address != nil {
			addr = rec.Address.String()
		}
		if addr != tt.addr {
			t.Errorf("%s: address = %q, want %q", rec.Printer.Name, addr, tt.addr)
		}
	}
}

func TestApplyScanFlags(t *testing.T) {
	defer func() { noTCPScan, noSNMPScan = false, false }()

	c := config.NewConfig()
	noTCPScan = true
	applyScanFlags(c)
	if c.Discovery.TCPScan {
		t.Error("TCP scan still enabled")
	}
	if !c.Discovery.SNMPScan {
		t.Error("SNMP scan disabled without flag")
	}
}
