// Printscan discovers the printers registered on this host and resolves
// their network addresses.
//
// It lists printers from CUPS (and optionally mDNS and the config file),
// classifies each as online, offline or unknown, and resolves an IP and port
// from the printer URI, the printer name, or by scanning the local /24
// subnets over TCP and SNMP.
//
// Usage:
//
//	printscan [command] [flags]
//
// See 'printscan --help' for available commands.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/muurk/printscan/internal/config"
	"github.com/muurk/printscan/internal/logging"
	"github.com/muurk/printscan/internal/version"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	logging.Sync()

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// Global flags
var (
	configPath string
	logLevel   string
	logFormat  string
)

// Loaded in PersistentPreRunE
var (
	cfg *config.Config
	log *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "printscan",
	Short: "Printer discovery and address resolution",
	Long: `Discover the printers registered on this host and resolve their network
addresses.

Printers are listed from CUPS, optionally from mDNS advertisements and from
printers declared in the config file. Each printer gets a status (ONLINE,
OFFLINE, UNKNOWN) and, unless it is a virtual printer such as "Microsoft Print
to PDF", an address resolved from its URI, its name, or a scan of the local
/24 subnets on port 9100.`,
	Version:           version.Get().Version,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
}

func init() {
	// Disable automatic completion command generation
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default is the OS config directory)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (debug, info, warn, error, off); overrides "+logging.LogLevelEnvVar)
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "", "Log format (console, json)")
}

// setup loads the config file and initializes logging.
func setup(cmd *cobra.Command, args []string) error {
	var err error
	cfg, err = config.Load(configPath)
	if err != nil {
		return err
	}

	level := logLevel
	if level == "" && os.Getenv(logging.LogLevelEnvVar) == "" {
		level = cfg.Logging.Level
	}
	format := logFormat
	if format == "" {
		format = cfg.Logging.Format
	}
	if err := logging.Initialize(logging.Options{Level: level, Format: format}); err != nil {
		return err
	}

	log = logging.GetLogger()
	log.Debug("Configuration loaded",
		zap.String("path", configPath),
		zap.String("version", version.Get().String()),
	)
	return nil
}
