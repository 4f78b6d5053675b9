package ui

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/muurk/printscan/internal/discovery"
	"github.com/muurk/printscan/internal/printers"
)

var observed = time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC)

func sampleRecords() []discovery.Record {
	return []discovery.Record{
		{
			Printer: printers.LogicalPrinter{
				Name:      "Office",
				IsDefault: true,
				Source:    printers.SourceCUPS,
				Attributes: map[string]string{
					printers.AttrMakeAndModel: "HP LaserJet 400",
				},
			},
			Status:     discovery.StatusOnline,
			Address:    &discovery.Address{IP: "10.0.0.5", Port: 9100},
			Strategy:   discovery.StrategyURI,
			ObservedAt: observed,
		},
		{
			Printer:    printers.LogicalPrinter{Name: "Microsoft Print to PDF", Source: printers.SourceCUPS},
			Status:     discovery.StatusOnline,
			Strategy:   discovery.StrategySkipped,
			Virtual:    true,
			ObservedAt: observed,
		},
	}
}

func TestPlainRecord(t *testing.T) {
	recs := sampleRecords()

	tests := []struct {
		rec  discovery.Record
		want string
	}{
		{recs[0], "Office\tONLINE\t10.0.0.5:9100\turi\tdefault"},
		{recs[1], "Microsoft Print to PDF\tONLINE\t-\tskipped\t"},
	}
	for _, tt := range tests {
		if got := PlainRecord(tt.rec); got != tt.want {
			t.Errorf("PlainRecord() = %q, want %q", got, tt.want)
		}
	}
}

func TestRecordDetails(t *testing.T) {
	recs := sampleRecords()

	details := recordDetails(recs[0])
	got := make(map[string]string)
	for _, d := range details {
		got[d.Key] = d.Value
	}
	if got["Address"] != "10.0.0.5:9100" || got["Resolved by"] != "uri" || got["Model"] != "HP LaserJet 400" {
		t.Errorf("recordDetails() = %v", details)
	}
	if details[0].Key != "Address" {
		t.Errorf("first detail = %q, want Address", details[0].Key)
	}

	virtual := recordDetails(recs[1])
	if virtual[0].Value != "virtual printer, not resolved" {
		t.Errorf("virtual address = %q", virtual[0].Value)
	}
}

func TestRenderRecord(t *testing.T) {
	out := RenderRecord(sampleRecords()[0], 80)
	for _, want := range []string{"Office", "Online", "10.0.0.5:9100", "default"} {
		if !strings.Contains(out, want) {
			t.Errorf("RenderRecord() missing %q:\n%s", want, out)
		}
	}
}

func TestHeader_Render(t *testing.T) {
	out := NewHeader("Printer discovery", "printscan scan",
		Param{"Sources", "cups"},
		Param{"Scan", "tcp, snmp"},
	).SetWidth(80).Render()

	for _, want := range []string{"PRINTER DISCOVERY", "printscan scan", "Sources:", "tcp, snmp"} {
		if !strings.Contains(out, want) {
			t.Errorf("Render() missing %q:\n%s", want, out)
		}
	}
	if strings.Index(out, "Sources") > strings.Index(out, "Scan:") {
		t.Error("params should keep insertion order")
	}
}

func TestResult_Render(t *testing.T) {
	fail := NewFailureResult("Discovery failed", errors.New("lpstat not found"), []string{"Install cups-client"}).
		SetWidth(80).Render()
	for _, want := range []string{"FAILED", "lpstat not found", "Install cups-client"} {
		if !strings.Contains(fail, want) {
			t.Errorf("failure Render() missing %q:\n%s", want, fail)
		}
	}

	ok := NewSuccessResult("2 printers discovered", Param{"Online", "2"}).SetWidth(80).Render()
	if !strings.Contains(ok, "2 printers discovered") || !strings.Contains(ok, "Online:") {
		t.Errorf("success Render() = %s", ok)
	}
}

func TestPrinter_Plain(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)
	if !p.Plain() {
		t.Fatal("a bytes.Buffer is not a terminal, printer should be plain")
	}

	recs := sampleRecords()
	p.PrintHeader("Printer discovery", "printscan scan")
	p.PrintRecords(recs)
	p.PrintSummary(discovery.Summarize(recs))

	out := buf.String()
	if strings.Contains(out, "PRINTER DISCOVERY") {
		t.Error("plain output should not include the header box")
	}
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if lines[0] != PlainRecord(recs[0]) {
		t.Errorf("first line = %q", lines[0])
	}
	if !strings.Contains(out, "2 printers discovered") || !strings.Contains(out, "Default: Office") {
		t.Errorf("summary missing:\n%s", out)
	}
}

func TestSummaryParams(t *testing.T) {
	params := SummaryParams(discovery.Summary{Total: 3, Online: 1, Offline: 1, Unknown: 1, Resolved: 1, Virtual: 1})
	for _, p := range params {
		if p.Key == "Resolved" && p.Value != "1 of 2" {
			t.Errorf("Resolved = %q, want \"1 of 2\"", p.Value)
		}
		if p.Key == "Default" {
			t.Error("Default should be omitted when no printer is default")
		}
	}
}

func TestClampWidth(t *testing.T) {
	tests := []struct{ in, want int }{
		{0, MinTerminalWidth},
		{59, MinTerminalWidth},
		{80, 80},
		{250, maxContentWidth},
	}
	for _, tt := range tests {
		if got := clampWidth(tt.in); got != tt.want {
			t.Errorf("clampWidth(%d) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestStatusMarker(t *testing.T) {
	tests := []struct {
		status discovery.Status
		want   string
	}{
		{discovery.StatusOnline, SuccessMarker},
		{discovery.StatusOffline, FailureMarker},
		{discovery.StatusUnknown, "?"},
		{discovery.Status(42), "?"},
	}
	for _, tt := range tests {
		if got := StatusMarker(tt.status); got != tt.want {
			t.Errorf("StatusMarker(%v) = %q, want %q", tt.status, got, tt.want)
		}
	}
	if !strings.Contains(StatusBadge(discovery.StatusOffline), "Offline") {
		t.Error("StatusBadge missing label")
	}
}
