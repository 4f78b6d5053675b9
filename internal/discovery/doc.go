// Package discovery turns the host's registered printers into discovery
// records with a status and, where possible, a network address.
//
// # Discovery Process
//
// One call to Service.ListDiscoveredPrinters is one pass:
//  1. List logical printers from the registry (failure ends the pass)
//  2. Classify each printer's status from its attributes
//  3. Skip address resolution for denylisted software printers
//  4. Resolve the address of every other printer
//  5. Return one Record per printer, in registry order
//
// # Address Resolution
//
// The Resolver tries, in order, stopping at the first success:
//   - printer-uri of the form socket://ip:port
//   - a parenthesised ip:port in the printer name
//   - a TCP connect scan of every local /24 on port 9100
//   - an SNMP sysName scan of every local /24, matching on the printer name
//
// Scans run with bounded concurrency and cancel outstanding probes once one
// succeeds, so with several reachable hosts the winner is whichever answers
// first. The whole cascade runs under a per-printer deadline.
//
// # Usage Example
//
//	svc := discovery.NewService(registry, surveyor, resolver, discovery.ServiceOptions{}, log)
//	records, err := svc.ListDiscoveredPrinters(ctx)
//	if err != nil {
//	    return err
//	}
//	for _, r := range records {
//	    fmt.Println(r)
//	}
//
// # Network Requirements
//
// - Scanning only covers IPv4 interfaces that are up and not virtual
// - SNMP identification needs v2c with the "public" community on UDP 161
package discovery
