// Package netiface surveys the host's network interfaces and derives the /24
// prefixes that the address resolver scans.
//
// Only interfaces that are up, not loopback and not virtual contribute. An
// interface is virtual when its name carries an alias suffix ("eth0:1") or
// starts with one of the configured prefixes (docker, veth, virbr, ...).
//
// Enumeration failures are reported as *InterfaceEnumerationError alongside an
// empty prefix list; callers treat them as "scanning unavailable".
package netiface
