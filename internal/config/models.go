package config

import "time"

// Config represents the entire printscan configuration file.
type Config struct {
	Version    int              `yaml:"version"`
	Discovery  *DiscoveryConfig `yaml:"discovery,omitempty"`
	Interfaces *InterfaceConfig `yaml:"interfaces,omitempty"`
	Registry   *RegistryConfig  `yaml:"registry,omitempty"`
	Logging    *LoggingConfig   `yaml:"logging,omitempty"`
}

// DiscoveryConfig tunes address resolution.
type DiscoveryConfig struct {
	Port        int           `yaml:"port"`        // Raw printing port assumed by scans
	Concurrency int           `yaml:"concurrency"` // In-flight probes per scan
	Parallelism int           `yaml:"parallelism"` // Printers resolved at once
	Deadline    time.Duration `yaml:"deadline"`    // Per-printer cascade bound
	TCPTimeout  time.Duration `yaml:"tcp_timeout"` // One TCP connect attempt
	TCPScan     bool          `yaml:"tcp_scan"`    // Enable the subnet TCP scan
	SNMPScan    bool          `yaml:"snmp_scan"`   // Enable the subnet SNMP scan
	SNMP        *SNMPConfig   `yaml:"snmp,omitempty"`

	// Denylist maps a name marker to a description of the virtual printer.
	// An empty map disables it, an absent key restores the defaults.
	Denylist map[string]string `yaml:"denylist"`
}

// SNMPConfig configures the sysName probe.
type SNMPConfig struct {
	Community string        `yaml:"community"`
	Port      uint16        `yaml:"port"`
	Timeout   time.Duration `yaml:"timeout"` // Per attempt
	Retries   int           `yaml:"retries"` // 0 sends a single request
}

// InterfaceConfig controls which interfaces are scanned.
type InterfaceConfig struct {
	// VirtualPrefixes are interface name prefixes that are never scanned
	VirtualPrefixes []string `yaml:"virtual_prefixes,omitempty"`
}

// RegistryConfig selects printer sources.
type RegistryConfig struct {
	CUPS        bool            `yaml:"cups"`
	MDNS        bool            `yaml:"mdns"`
	MDNSTimeout time.Duration   `yaml:"mdns_timeout"`
	Printers    []StaticPrinter `yaml:"printers,omitempty"`
}

// StaticPrinter is a printer declared by hand.
type StaticPrinter struct {
	Name       string            `yaml:"name"`
	URI        string            `yaml:"uri,omitempty"`
	Default    bool              `yaml:"default,omitempty"`
	Attributes map[string]string `yaml:"attributes,omitempty"`
}

// LoggingConfig sets the default log level and format.
type LoggingConfig struct {
	Level  string `yaml:"level,omitempty"`  // debug, info, warn, error, off; empty is silent
	Format string `yaml:"format,omitempty"` // console or json
}

// Default values for a new configuration.
const (
	DefaultPort        = 9100
	DefaultConcurrency = 32
	DefaultParallelism = 4
	DefaultDeadline    = 10 * time.Second
	DefaultTCPTimeout  = time.Second
	DefaultCommunity   = "public"
	DefaultSNMPPort    = 161
	DefaultSNMPTimeout = 300 * time.Millisecond
	DefaultSNMPRetries = 3
	DefaultMDNSTimeout = 3 * time.Second
)

// DefaultDenylist are the virtual printer markers of a new configuration.
var DefaultDenylist = map[string]string{
	"PDF":       "PDF writer",
	"Microsoft": "Microsoft virtual printer (XPS, OneNote, Print to PDF)",
}

// NewConfig creates a new Config with default values.
func NewConfig() *Config {
	c := &Config{Version: CurrentVersion}
	c.applyDefaults()
	return c
}

// applyDefaults fills missing sections and zero values.
func (c *Config) applyDefaults() {
	if c.Discovery == nil {
		c.Discovery = &DiscoveryConfig{TCPScan: true, SNMPScan: true}
	}
	d := c.Discovery
	if d.Port == 0 {
		d.Port = DefaultPort
	}
	if d.Concurrency == 0 {
		d.Concurrency = DefaultConcurrency
	}
	if d.Parallelism == 0 {
		d.Parallelism = DefaultParallelism
	}
	if d.Deadline == 0 {
		d.Deadline = DefaultDeadline
	}
	if d.TCPTimeout == 0 {
		d.TCPTimeout = DefaultTCPTimeout
	}
	if d.SNMP == nil {
		d.SNMP = &SNMPConfig{Retries: DefaultSNMPRetries}
	}
	if d.SNMP.Community == "" {
		d.SNMP.Community = DefaultCommunity
	}
	if d.SNMP.Port == 0 {
		d.SNMP.Port = DefaultSNMPPort
	}
	if d.SNMP.Timeout == 0 {
		d.SNMP.Timeout = DefaultSNMPTimeout
	}
	if d.Denylist == nil {
		d.Denylist = make(map[string]string, len(DefaultDenylist))
		for k, v := range DefaultDenylist {
			d.Denylist[k] = v
		}
	}

	if c.Interfaces == nil {
		c.Interfaces = &InterfaceConfig{}
	}

	if c.Registry == nil {
		c.Registry = &RegistryConfig{CUPS: true}
	}
	if c.Registry.MDNSTimeout == 0 {
		c.Registry.MDNSTimeout = DefaultMDNSTimeout
	}

	if c.Logging == nil {
		c.Logging = &LoggingConfig{}
	}
}
