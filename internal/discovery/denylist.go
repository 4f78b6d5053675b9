package discovery

import (
	"sort"
	"strings"
)

// Denylist maps a name marker to a description of the software sink it
// identifies. Printers whose name contains a marker are never resolved.
type Denylist map[string]string

// DefaultDenylist returns the built-in virtual printer markers.
func DefaultDenylist() Denylist {
	return Denylist{
		"PDF":       "PDF writer",
		"Microsoft": "Microsoft virtual printer (XPS, OneNote, Print to PDF)",
	}
}

// Match returns the first matching marker in sorted order.
// Matching is a case-sensitive substring test.
func (d Denylist) Match(name string) (string, bool) {
	markers := make([]string, 0, len(d))
	for m := range d {
		markers = append(markers, m)
	}
	sort.Strings(markers)

	for _, m := range markers {
		if m != "" && strings.Contains(name, m) {
			return m, true
		}
	}
	return "", false
}

// Contains reports whether name matches any marker.
func (d Denylist) Contains(name string) bool {
	_, ok := d.Match(name)
	return ok
}
