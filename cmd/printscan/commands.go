package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/muurk/printscan/internal/config"
	"github.com/muurk/printscan/internal/discovery"
	"github.com/muurk/printscan/internal/printers"
	"github.com/muurk/printscan/internal/probe"
	"github.com/muurk/printscan/internal/ui"
	"github.com/muurk/printscan/internal/version"
)

// Command flags
var (
	jsonOutput  bool
	scanMDNS    bool
	noTCPScan   bool
	noSNMPScan  bool
	probePort   int
	forceInit   bool
	versionJSON bool
)

func init() {
	rootCmd.AddCommand(scanCmd)
	rootCmd.AddCommand(resolveCmd)
	rootCmd.AddCommand(subnetsCmd)
	rootCmd.AddCommand(probeCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(versionCmd)

	for _, c := range []*cobra.Command{scanCmd, resolveCmd} {
		c.Flags().BoolVar(&jsonOutput, "json", false, "Print records as JSON")
		c.Flags().BoolVar(&scanMDNS, "mdns", false, "Also list printers advertised over mDNS")
		c.Flags().BoolVar(&noTCPScan, "no-tcp-scan", false, "Disable the subnet TCP scan")
		c.Flags().BoolVar(&noSNMPScan, "no-snmp-scan", false, "Disable the subnet SNMP scan")
	}

	probeTCPCmd.Flags().IntVar(&probePort, "port", discovery.DefaultRawPort, "TCP port to connect to")
	probeCmd.AddCommand(probeTCPCmd)
	probeCmd.AddCommand(probeSNMPCmd)

	configInitCmd.Flags().BoolVar(&forceInit, "force", false, "Overwrite an existing config file")
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configPathCmd)
	configCmd.AddCommand(configShowCmd)

	versionCmd.Flags().BoolVar(&versionJSON, "json", false, "Print version information as JSON")
}

// applyScanFlags copies command line overrides into the loaded config.
func applyScanFlags(c *config.Config) {
	if noTCPScan {
		c.Discovery.TCPScan = false
	}
	if noSNMPScan {
		c.Discovery.SNMPScan = false
	}
}

// troubleshooting returns hints for a failed discovery pass.
func troubleshooting(err error) []string {
	var ee *printers.EnumerationError
	if errors.As(err, &ee) {
		switch ee.Source {
		case printers.SourceCUPS:
			return []string{
				"Check that the CUPS scheduler is running (lpstat -r)",
				"Install the CUPS client tools (lpstat, lpoptions)",
				"Disable CUPS with 'registry.cups: false' to use static printers only",
			}
		case printers.SourceMDNS:
			return []string{"Check that multicast is allowed on this network"}
		}
	}
	return nil
}

func printJSON(v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	fmt.Println(string(data))
	return nil
}

// scanCmd runs one discovery pass
var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Discover printers and resolve their addresses",
	Long: `Run one discovery pass over every registered printer.

Each printer is classified ONLINE, OFFLINE or UNKNOWN from its attributes.
Printers that are not virtual get an address from, in order: a socket:// URI,
an "(ip:port)" in the printer name, a TCP scan of the local /24 subnets on
port 9100, or an SNMP sysName scan of the same subnets.

discovery.deadline (default 10s) bounds all four steps for one printer. A
/24 where no host answers takes about 8s to TCP scan and 9.6s to SNMP scan
at default settings, so on busy hosts the SNMP step may not finish. scan
warns when the configured deadline cannot cover both scans.`,
	Example: `  # Discover CUPS printers
  printscan scan

  # Include mDNS advertised printers, skip the slow SNMP scan
  printscan scan --mdns --no-snmp-scan

  # JSON output for scripting
  printscan scan --json`,
	Args: cobra.NoArgs,
	RunE: runScan,
}

func runScan(cmd *cobra.Command, args []string) error {
	applyScanFlags(cfg)
	svc := newService(cfg, scanMDNS, log)
	ctx := cmd.Context()

	if jsonOutput {
		records, err := svc.ListDiscoveredPrinters(ctx)
		if err != nil {
			return err
		}
		return printJSON(struct {
			Printers []discovery.Record `json:"printers"`
			Summary  discovery.Summary  `json:"summary"`
		}{records, discovery.Summarize(records)})
	}

	out := ui.NewPrinter(os.Stdout)
	out.PrintHeader("Printer discovery", "printscan scan",
		ui.Param{Key: "TCP scan", Value: enabled(cfg.Discovery.TCPScan)},
		ui.Param{Key: "SNMP scan", Value: enabled(cfg.Discovery.SNMPScan)},
		ui.Param{Key: "Deadline", Value: cfg.Discovery.Deadline.String()},
	)
	if w := deadlineWarning(cmd.Context()); w != "" {
		fmt.Fprintf(os.Stderr, "Warning: %s\n", w)
	}

	var (
		records []discovery.Record
		err     error
	)
	if !out.Plain() && ui.IsTerminal(os.Stderr) {
		records, err = ui.RunWithSpinner(ctx, "Discovering printers...", svc.ListDiscoveredPrinters)
	} else {
		records, err = svc.ListDiscoveredPrinters(ctx)
	}
	if err != nil {
		out.PrintError("Discovery failed", err, troubleshooting(err))
		return err
	}

	if len(records) == 0 {
		out.Println("No printers registered on this host.")
		return nil
	}

	out.PrintRecords(records)
	out.PrintSummary(discovery.Summarize(records))
	return nil
}

// deadlineWarning checks the scan budget against the local subnets.
func deadlineWarning(ctx context.Context) string {
	d := cfg.Discovery
	if !d.TCPScan && !d.SNMPScan {
		return ""
	}
	prefixes, err := newSurveyor(cfg).ListSubnetPrefixes(ctx)
	if err != nil {
		return ""
	}
	w := d.DeadlineWarning(len(prefixes))
	if w != "" {
		log.Warn("Scan budget exceeds deadline", zap.Int("subnets", len(prefixes)), zap.Duration("deadline", d.Deadline))
	}
	return w
}

func enabled(b bool) string {
	if b {
		return "enabled"
	}
	return "disabled"
}

// resolveCmd resolves a single printer
var resolveCmd = &cobra.Command{
	Use:   "resolve <printer-name>",
	Short: "Resolve the address of one printer",
	Example: `  printscan resolve "HP LaserJet (10.0.0.5:9100)"
  printscan resolve Office_HP --no-snmp-scan`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		applyScanFlags(cfg)
		svc := newService(cfg, scanMDNS, log)

		rec, err := svc.ResolvePrinter(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		if jsonOutput {
			return printJSON(rec)
		}
		ui.NewPrinter(os.Stdout).PrintRecords([]discovery.Record{rec})
		return nil
	},
}

// subnetsCmd lists scan prefixes
var subnetsCmd = &cobra.Command{
	Use:   "subnets",
	Short: "List the local /24 prefixes that scans cover",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		prefixes, err := newSurveyor(cfg).ListSubnetPrefixes(cmd.Context())
		if err != nil {
			return err
		}
		if len(prefixes) == 0 {
			fmt.Println("No usable IPv4 interfaces found.")
			return nil
		}
		for _, p := range prefixes {
			fmt.Printf("%s0/24\t%s\n", p.Value, p.Interface)
		}
		return nil
	},
}

// probeCmd groups single-address probes
var probeCmd = &cobra.Command{
	Use:   "probe",
	Short: "Probe a single address",
}

var probeTCPCmd = &cobra.Command{
	Use:   "tcp <ip>",
	Short: "Check whether ip:port accepts a TCP connection",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		p := newTCPProbe(cfg, log)
		addr := args[0] + ":" + strconv.Itoa(probePort)
		if err := p.Probe(cmd.Context(), args[0], probePort); err != nil {
			var pe *probe.ProbeError
			if errors.As(err, &pe) {
				fmt.Printf("%s unreachable (%s)\n", addr, pe.Kind)
			}
			return err
		}
		fmt.Printf("%s reachable\n", addr)
		return nil
	},
}

var probeSNMPCmd = &cobra.Command{
	Use:   "snmp <ip>",
	Short: "Query the SNMP sysName of an address",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name, err := newSNMPProbe(cfg, log).QueryName(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		fmt.Println(name)
		return nil
	},
}

// configCmd manages the config file
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the printscan config file",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default config file",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := config.CreateDefaultConfig(configPath, forceInit)
		if err != nil {
			return err
		}
		ui.NewPrinter(os.Stdout).PrintSuccess("Config written", ui.Param{Key: "Path", Value: path})
		return nil
	},
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the config file location",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := config.ResolvePath(configPath)
		if err != nil {
			return err
		}
		fmt.Println(path)
		return nil
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := yaml.Marshal(cfg)
		if err != nil {
			return fmt.Errorf("failed to marshal config: %w", err)
		}
		fmt.Print(strings.TrimLeft(string(data), "\n"))
		return nil
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		info := version.Get()
		if versionJSON {
			return printJSON(info)
		}
		fmt.Printf("printscan %s\n", info)
		fmt.Printf("  go: %s  platform: %s\n", info.GoVersion, info.Platform)
		return nil
	},
}
