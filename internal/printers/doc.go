// Package printers enumerates the logical printers visible to this host.
//
// A Registry returns LogicalPrinter values: a name, a default marker, a flat
// attribute map keyed by IPP attribute names, and optional document flavors.
// Implementations:
//
//   - CUPSRegistry shells out to lpstat and lpoptions
//   - MDNSRegistry browses _pdl-datastream._tcp with zeroconf
//   - StaticRegistry serves printers declared in the config file
//   - MultiRegistry merges the above, first name wins
//
// A required source that cannot be queried fails the listing with an
// *EnumerationError. An empty print subsystem is not an error.
package printers
