package main

import (
	"go.uber.org/zap"

	"github.com/muurk/printscan/internal/config"
	"github.com/muurk/printscan/internal/discovery"
	"github.com/muurk/printscan/internal/netiface"
	"github.com/muurk/printscan/internal/printers"
	"github.com/muurk/printscan/internal/probe"
)

// newRegistry builds the printer sources enabled in c. mDNS is always
// optional so a host without multicast still gets a CUPS listing.
func newRegistry(c *config.Config, withMDNS bool, log *zap.Logger) *printers.MultiRegistry {
	var members []printers.Member

	if c.Registry.CUPS {
		members = append(members, printers.Member{
			Source:   printers.SourceCUPS,
			Registry: printers.NewCUPSRegistry(log.Named("cups")),
		})
	}

	if len(c.Registry.Printers) > 0 {
		members = append(members, printers.Member{
			Source:   printers.SourceStatic,
			Registry: printers.NewStaticRegistry(staticPrinters(c.Registry.Printers)),
		})
	}

	if c.Registry.MDNS || withMDNS {
		members = append(members, printers.Member{
			Source:   printers.SourceMDNS,
			Registry: printers.NewMDNSRegistry(c.Registry.MDNSTimeout, log.Named("mdns")),
			Optional: true,
		})
	}

	return printers.NewMultiRegistry(log.Named("registry"), members...)
}

func staticPrinters(in []config.StaticPrinter) []printers.StaticPrinter {
	out := make([]printers.StaticPrinter, 0, len(in))
	for _, p := range in {
		out = append(out, printers.StaticPrinter{
			Name:       p.Name,
			URI:        p.URI,
			IsDefault:  p.Default,
			Attributes: p.Attributes,
		})
	}
	return out
}

func newTCPProbe(c *config.Config, log *zap.Logger) *probe.TCPProbe {
	return probe.NewTCPProbe(c.Discovery.TCPTimeout, log.Named("tcp"))
}

func newSNMPProbe(c *config.Config, log *zap.Logger) *probe.SNMPProbe {
	p := probe.NewSNMPProbe(log.Named("snmp"))
	p.Community = c.Discovery.SNMP.Community
	p.Port = c.Discovery.SNMP.Port
	p.Timeout = c.Discovery.SNMP.Timeout
	p.Retries = c.Discovery.SNMP.Retries
	return p
}

func newSurveyor(c *config.Config) *netiface.Surveyor {
	return netiface.NewSurveyor(c.Interfaces.VirtualPrefixes)
}

func newResolver(c *config.Config, log *zap.Logger) *discovery.Resolver {
	return discovery.NewResolver(
		newTCPProbe(c, log),
		newSNMPProbe(c, log),
		discovery.ResolverOptions{
			Port:            c.Discovery.Port,
			Concurrency:     c.Discovery.Concurrency,
			Deadline:        c.Discovery.Deadline,
			DisableTCPScan:  !c.Discovery.TCPScan,
			DisableSNMPScan: !c.Discovery.SNMPScan,
		},
		log.Named("resolver"),
	)
}

func newService(c *config.Config, withMDNS bool, log *zap.Logger) *discovery.Service {
	return discovery.NewService(
		newRegistry(c, withMDNS, log),
		newSurveyor(c),
		newResolver(c, log),
		discovery.ServiceOptions{
			Denylist:    discovery.Denylist(c.Discovery.Denylist),
			Parallelism: c.Discovery.Parallelism,
		},
		log.Named("discovery"),
	)
}
