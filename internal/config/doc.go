// Package config provides configuration management for printscan.
//
// This package manages a YAML configuration file holding discovery tuning
// (scan port, concurrency, deadlines, SNMP parameters, the virtual printer
// denylist), interface filtering, printer sources and the default log level.
// The configuration follows OS-specific conventions for storage location.
//
// # Configuration File Location
//
// The configuration file is stored in platform-appropriate locations:
//   - Linux: $XDG_CONFIG_HOME/printscan/config.yaml or $HOME/.config/printscan/config.yaml
//   - macOS: $HOME/.config/printscan/config.yaml
//   - Windows: %LOCALAPPDATA%\printscan\config.yaml
//
// # Usage Example
//
//	cfg, err := config.Load("")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	cfg.Discovery.Denylist["OneNote"] = "OneNote sink"
//
//	// Save changes atomically
//	if err := cfg.Save(""); err != nil {
//	    log.Fatal(err)
//	}
//
// # Example File
//
//	version: 1
//	discovery:
//	    port: 9100
//	    concurrency: 32
//	    deadline: 10s
//	    snmp_scan: false
//	registry:
//	    cups: true
//	    printers:
//	        - name: Dock Labeler
//	          uri: socket://10.0.4.20:9100
package config
