package discovery

import (
	"strings"

	"github.com/muurk/printscan/internal/printers"
)

// referenceFlavors are the document flavors that mark a usable print service
// on subsystems that report no state attributes.
var referenceFlavors = map[string]bool{
	printers.FlavorPageable:        true,
	printers.FlavorPrintable:       true,
	printers.FlavorByteArrayAuto:   true,
	printers.FlavorInputStreamAuto: true,
	printers.FlavorURLAuto:         true,
}

// Classify derives a Status from a printer's attributes.
//
// Rules, first match wins:
//  1. non-empty printer-state-reasons ("none" counts as empty): OFFLINE
//  2. printer-state present and not idle: OFFLINE
//  3. printer-is-accepting-jobs present: ONLINE if accepting, else OFFLINE
//  4. any document flavors: ONLINE if one is a reference flavor, else OFFLINE
//  5. otherwise UNKNOWN
func Classify(p printers.LogicalPrinter) Status {
	if reasons, ok := p.Attribute(printers.AttrStateReasons); ok && hasReasons(reasons) {
		return StatusOffline
	}

	if state, ok := p.Attribute(printers.AttrState); ok {
		if !isIdle(state) {
			return StatusOffline
		}
	}

	if accepting, ok := p.Attribute(printers.AttrAcceptingJobs); ok {
		if isAccepting(accepting) {
			return StatusOnline
		}
		return StatusOffline
	}

	if len(p.DocFlavors) > 0 {
		for _, f := range p.DocFlavors {
			if referenceFlavors[f] {
				return StatusOnline
			}
		}
		return StatusOffline
	}

	return StatusUnknown
}

func hasReasons(v string) bool {
	for _, reason := range strings.Split(v, ",") {
		reason = strings.TrimSpace(reason)
		if reason != "" && !strings.EqualFold(reason, printers.AttrReasonsNone) {
			return true
		}
	}
	return false
}

func isIdle(state string) bool {
	s := strings.ToLower(strings.TrimSpace(state))
	return s == printers.AttrStateIdle || s == "3"
}

func isAccepting(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "true", "yes", "1", "accepting-jobs":
		return true
	default:
		return false
	}
}
