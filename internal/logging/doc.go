// Package logging provides structured logging for printscan.
//
// The package wraps a zap logger. Until Initialize is called with a level (or
// PRINTSCAN_LOG_LEVEL is set) every call goes to a no-op logger, so CLI output
// stays clean by default.
//
// # Log Levels
//
//   - Debug: individual probe outcomes, raw lpoptions attributes
//   - Info: pass start/finish, resolved addresses
//   - Warn: interface enumeration failures, skipped optional registry sources
//   - Error: print subsystem enumeration failures
//
// # Structured Logging
//
// Components take a *zap.Logger (usually logging.Named("resolver")) and log
// with fields:
//
//	log.Info("Address resolved",
//	    zap.String("printer", "HP LaserJet"),
//	    zap.String("ip", "192.168.1.50"),
//	    zap.String("strategy", "tcp-scan"),
//	)
//
// # Configuration
//
//	if err := logging.Initialize(logging.Options{Level: "debug", Format: logging.FormatJSON}); err != nil {
//	    log.Fatal(err)
//	}
//	defer logging.Sync()
//
// Logs go to stderr so that `printscan scan --json` output stays parseable.
// The level "off" forces silence even when PRINTSCAN_LOG_LEVEL is set.
package logging
