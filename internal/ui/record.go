package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/muurk/printscan/internal/discovery"
	"github.com/muurk/printscan/internal/printers"
)

// RenderRecord renders one discovery record as a bordered card.
func RenderRecord(rec discovery.Record, width int) string {
	if width < MinTerminalWidth {
		width = MinTerminalWidth
	}

	name := PrinterNameStyle.Render(rec.Printer.Name)
	if rec.Printer.IsDefault {
		name += " " + DefaultTagStyle.Render(DefaultMarker+" default")
	}

	lines := []string{name + "  " + StatusBadge(rec.Status), ""}
	lines = append(lines, detailLines(recordDetails(rec), "")...)

	return CardStyle(width, rec.Status).Render(strings.Join(lines, "\n"))
}

// recordDetails lists the card fields in display order.
func recordDetails(rec discovery.Record) []Param {
	address := "unresolved"
	switch {
	case rec.Address != nil:
		address = rec.Address.String()
	case rec.Virtual:
		address = "virtual printer, not resolved"
	}

	details := []Param{
		{"Address", address},
		{"Resolved by", string(rec.Strategy)},
		{"Source", string(rec.Printer.Source)},
	}
	if v, ok := rec.Printer.Attribute(printers.AttrMakeAndModel); ok && v != "" {
		details = append(details, Param{"Model", v})
	}
	if v, ok := rec.Printer.Attribute(printers.AttrLocation); ok && v != "" {
		details = append(details, Param{"Location", v})
	}
	if v, ok := rec.Printer.Attribute(printers.AttrStateReasons); ok && v != "" && v != printers.AttrReasonsNone {
		details = append(details, Param{"Reasons", v})
	}
	details = append(details, Param{"Observed", rec.ObservedAt.Format(time.DateTime)})
	return details
}

// PlainRecord renders a record as a single tab-separated line for
// non-interactive output.
func PlainRecord(rec discovery.Record) string {
	address := "-"
	if rec.Address != nil {
		address = rec.Address.String()
	}
	def := ""
	if rec.Printer.IsDefault {
		def = "default"
	}
	return fmt.Sprintf("%s\t%s\t%s\t%s\t%s", rec.Printer.Name, rec.Status, address, rec.Strategy, def)
}

// SummaryParams converts a pass summary into result details.
func SummaryParams(sum discovery.Summary) []Param {
	params := []Param{
		{"Online", fmt.Sprintf("%d", sum.Online)},
		{"Offline", fmt.Sprintf("%d", sum.Offline)},
		{"Unknown", fmt.Sprintf("%d", sum.Unknown)},
		{"Resolved", fmt.Sprintf("%d of %d", sum.Resolved, sum.Total-sum.Virtual)},
		{"Virtual", fmt.Sprintf("%d", sum.Virtual)},
	}
	if sum.Default != "" {
		params = append(params, Param{"Default", sum.Default})
	}
	return params
}
