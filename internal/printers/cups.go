package printers

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"strings"

	"go.uber.org/zap"
)

// CommandRunner runs an external command and returns its stdout.
type CommandRunner func(ctx context.Context, name string, args ...string) ([]byte, error)

// execCommand runs name with a C locale so lpstat output is not translated.
func execCommand(ctx context.Context, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Env = append(os.Environ(), "LC_ALL=C", "LANG=C")

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	out, err := cmd.Output()
	if err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			msg = strings.TrimSpace(string(out))
		}
		return out, fmt.Errorf("%s %s: %w: %s", name, strings.Join(args, " "), err, msg)
	}
	return out, nil
}

const noDestinations = "No destinations added"

// CUPSRegistry enumerates printers through the CUPS command line tools.
type CUPSRegistry struct {
	run    CommandRunner
	logger *zap.Logger
}

// NewCUPSRegistry creates a registry that shells out to lpstat and lpoptions.
func NewCUPSRegistry(log *zap.Logger) *CUPSRegistry {
	if log == nil {
		log = zap.NewNop()
	}
	return &CUPSRegistry{run: execCommand, logger: log}
}

// ListPrinters returns every CUPS destination with its options as attributes.
func (r *CUPSRegistry) ListPrinters(ctx context.Context) ([]LogicalPrinter, error) {
	names, err := r.destinations(ctx)
	if err != nil {
		return nil, newEnumerationError(SourceCUPS, err)
	}
	if len(names) == 0 {
		return []LogicalPrinter{}, nil
	}

	def, err := r.defaultDestination(ctx)
	if err != nil {
		return nil, newEnumerationError(SourceCUPS, err)
	}

	printers := make([]LogicalPrinter, 0, len(names))
	for _, name := range names {
		out, err := r.run(ctx, "lpoptions", "-p", name)
		if err != nil {
			return nil, newEnumerationError(SourceCUPS, err)
		}

		opts, err := parseOptions(strings.TrimSpace(string(out)))
		if err != nil {
			return nil, newEnumerationError(SourceCUPS, fmt.Errorf("options for %s: %w", name, err))
		}

		attrs := normalizeAttributes(opts)
		isDefault := name == def
		attrs[AttrDefault] = strconv.FormatBool(isDefault)

		r.logger.Debug("CUPS destination",
			zap.String("printer", name),
			zap.Bool("default", isDefault),
			zap.Int("attributes", len(attrs)),
		)

		printers = append(printers, LogicalPrinter{
			Name:       name,
			IsDefault:  isDefault,
			Attributes: attrs,
			DocFlavors: splitList(attrs[AttrDocFormats]),
			Source:     SourceCUPS,
		})
	}

	return printers, nil
}

// destinations lists destination names, preferring `lpstat -e` and falling
// back to parsing `lpstat -p` on CUPS versions without -e.
func (r *CUPSRegistry) destinations(ctx context.Context) ([]string, error) {
	out, err := r.run(ctx, "lpstat", "-e")
	if err == nil {
		return nonEmptyLines(out), nil
	}
	if strings.Contains(err.Error(), noDestinations) {
		return nil, nil
	}

	r.logger.Debug("lpstat -e failed, falling back to lpstat -p", zap.Error(err))

	out, err = r.run(ctx, "lpstat", "-p")
	if err != nil {
		if strings.Contains(err.Error(), noDestinations) {
			return nil, nil
		}
		return nil, err
	}

	var names []string
	for _, line := range nonEmptyLines(out) {
		fields := strings.Fields(line)
		if len(fields) >= 2 && fields[0] == "printer" {
			names = append(names, fields[1])
		}
	}
	return names, nil
}

// defaultDestination parses "system default destination: NAME".
func (r *CUPSRegistry) defaultDestination(ctx context.Context) (string, error) {
	out, err := r.run(ctx, "lpstat", "-d")
	if err != nil {
		if strings.Contains(err.Error(), noDestinations) {
			return "", nil
		}
		return "", err
	}

	for _, line := range nonEmptyLines(out) {
		if _, after, ok := strings.Cut(line, "system default destination:"); ok {
			return strings.TrimSpace(after), nil
		}
	}
	return "", nil
}

func nonEmptyLines(out []byte) []string {
	var lines []string
	scanner := bufio.NewScanner(bytes.NewReader(out))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

func splitList(v string) []string {
	if strings.TrimSpace(v) == "" {
		return nil
	}
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
