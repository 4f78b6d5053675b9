package config

import (
	"fmt"
	"time"
)

// hostsPerPrefix is the number of addresses probed in one /24.
const hostsPerPrefix = 254

// ScanDurations estimates how long a TCP scan and an SNMP scan take over
// the given number of /24 prefixes when no host answers.
func (d *DiscoveryConfig) ScanDurations(prefixes int) (tcp, snmp time.Duration) {
	if prefixes <= 0 || d.Concurrency <= 0 {
		return 0, 0
	}
	rounds := time.Duration((prefixes*hostsPerPrefix + d.Concurrency - 1) / d.Concurrency)

	if d.TCPScan {
		tcp = rounds * d.TCPTimeout
	}
	if d.SNMPScan && d.SNMP != nil {
		snmp = rounds * d.SNMP.Timeout * time.Duration(d.SNMP.Retries+1)
	}
	return tcp, snmp
}

// DeadlineWarning describes how the per-printer deadline cuts the subnet
// scans short, or returns "" when both enabled scans fit.
func (d *DiscoveryConfig) DeadlineWarning(prefixes int) string {
	tcp, snmp := d.ScanDurations(prefixes)
	switch {
	case tcp+snmp <= d.Deadline:
		return ""
	case tcp >= d.Deadline && snmp > 0:
		return fmt.Sprintf("deadline %s is spent by the TCP scan (~%s over %d subnets); the SNMP scan never runs",
			d.Deadline, tcp, prefixes)
	default:
		return fmt.Sprintf("deadline %s is shorter than a full scan (TCP ~%s, SNMP ~%s over %d subnets); silent subnets are not fully covered",
			d.Deadline, tcp, snmp, prefixes)
	}
}
