package config

import (
	"strings"
	"testing"
	"time"
)

func TestScanDurations(t *testing.T) {
	d := NewConfig().Discovery

	tcp, snmp := d.ScanDurations(1)
	if tcp != 8*time.Second {
		t.Errorf("tcp = %v, want 8s", tcp)
	}
	if snmp != 9600*time.Millisecond {
		t.Errorf("snmp = %v, want 9.6s", snmp)
	}

	d.SNMPScan = false
	if _, snmp := d.ScanDurations(1); snmp != 0 {
		t.Errorf("snmp = %v with scan disabled, want 0", snmp)
	}
	if tcp, snmp := d.ScanDurations(0); tcp != 0 || snmp != 0 {
		t.Errorf("no prefixes = (%v, %v), want zero", tcp, snmp)
	}
}

func TestDeadlineWarning(t *testing.T) {
	tests := []struct {
		name     string
		prefixes int
		edit     func(d *DiscoveryConfig)
		want     string
	}{
		{"defaults one subnet", 1, func(*DiscoveryConfig) {}, "shorter than a full scan"},
		{"defaults two subnets", 2, func(*DiscoveryConfig) {}, "SNMP scan never runs"},
		{"snmp disabled", 1, func(d *DiscoveryConfig) { d.SNMPScan = false }, ""},
		{"long deadline", 1, func(d *DiscoveryConfig) { d.Deadline = 30 * time.Second }, ""},
		{"no subnets", 0, func(*DiscoveryConfig) {}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := NewConfig().Discovery
			tt.edit(d)
			got := d.DeadlineWarning(tt.prefixes)
			if tt.want == "" {
				if got != "" {
					t.Errorf("DeadlineWarning() = %q, want none", got)
				}
				return
			}
			if !strings.Contains(got, tt.want) {
				t.Errorf("DeadlineWarning() = %q, want containing %q", got, tt.want)
			}
		})
	}
}
