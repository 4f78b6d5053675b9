package printers

import (
	"context"
	"errors"
	"fmt"
	"sort"
)

// Attribute category names used across registry sources.
const (
	AttrDefault        = "printer-is-default"
	AttrAcceptingJobs  = "printer-is-accepting-jobs"
	AttrState          = "printer-state"
	AttrStateReasons   = "printer-state-reasons"
	AttrURI            = "printer-uri"
	AttrMakeAndModel   = "printer-make-and-model"
	AttrLocation       = "printer-location"
	AttrInfo           = "printer-info"
	AttrDocFormats     = "document-format-supported"
	AttrDeviceURI      = "device-uri"
	AttrStateIdle      = "idle"
	AttrStateBusy      = "processing"
	AttrStateStopped   = "stopped"
	AttrReasonsNone    = "none"
	AttrAcceptingTrue  = "true"
	AttrAcceptingFalse = "false"
)

// Document flavors that indicate a usable print service when no state
// attributes are available.
const (
	FlavorPageable        = "service-formatted.pageable"
	FlavorPrintable       = "service-formatted.printable"
	FlavorByteArrayAuto   = "byte-array.autosense"
	FlavorInputStreamAuto = "input-stream.autosense"
	FlavorURLAuto         = "url.autosense"
)

// Source identifies which registry produced a printer.
type Source string

const (
	SourceCUPS   Source = "cups"
	SourceMDNS   Source = "mdns"
	SourceStatic Source = "static"
)

// LogicalPrinter is one printer as registered with a print subsystem.
type LogicalPrinter struct {
	// Name is unique within one registry listing
	Name string `json:"name"`

	// IsDefault marks the system default destination
	IsDefault bool `json:"is_default"`

	// Attributes maps attribute category name to its string form
	Attributes map[string]string `json:"attributes,omitempty"`

	// DocFlavors is only consulted by the legacy status fallback
	DocFlavors []string `json:"doc_flavors,omitempty"`

	Source Source `json:"source"`
}

// Attribute returns an attribute value and whether it was present.
func (p LogicalPrinter) Attribute(name string) (string, bool) {
	if p.Attributes == nil {
		return "", false
	}
	v, ok := p.Attributes[name]
	return v, ok
}

// AttributeNames returns the attribute keys in sorted order.
func (p LogicalPrinter) AttributeNames() []string {
	names := make([]string, 0, len(p.Attributes))
	for k := range p.Attributes {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// String returns a short description for logs
func (p LogicalPrinter) String() string {
	if p.IsDefault {
		return fmt.Sprintf("%s (default, %s)", p.Name, p.Source)
	}
	return fmt.Sprintf("%s (%s)", p.Name, p.Source)
}

// Registry lists the logical printers visible to this host.
type Registry interface {
	ListPrinters(ctx context.Context) ([]LogicalPrinter, error)
}

// ErrEnumeration is wrapped by every EnumerationError.
var ErrEnumeration = errors.New("print subsystem enumeration failed")

// EnumerationError means the print subsystem could not be queried.
type EnumerationError struct {
	Source Source
	Err    error
}

func (e *EnumerationError) Error() string {
	return fmt.Sprintf("%v (%s): %v", ErrEnumeration, e.Source, e.Err)
}

// Unwrap exposes both the sentinel and the cause.
func (e *EnumerationError) Unwrap() []error {
	return []error{ErrEnumeration, e.Err}
}

func newEnumerationError(source Source, err error) *EnumerationError {
	return &EnumerationError{Source: source, Err: err}
}
