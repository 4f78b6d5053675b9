// Package probe holds the two per-address checks used by the address resolver.
//
// TCPProbe makes a single bounded connect attempt and reports reachability.
// SNMPProbe sends an SNMP v2c GET for sysName.0 (community "public", UDP 161,
// 300 ms per attempt, 3 retries) and returns the advertised name.
//
// Both release their socket on every exit path. Failures come back as
// *ProbeError and *SNMPError; the resolver treats them as "not this address".
package probe
