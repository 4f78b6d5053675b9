package ui

import (
	"fmt"
	"io"
	"os"

	"github.com/muurk/printscan/internal/discovery"
)

// Printer provides methods for printing UI components to a writer.
type Printer struct {
	out   io.Writer
	width int
	plain bool
}

// NewPrinter creates a new Printer that writes to the given writer.
// If w is nil, os.Stdout is used. Output falls back to plain lines when w
// is not a terminal.
func NewPrinter(w io.Writer) *Printer {
	if w == nil {
		w = os.Stdout
	}
	f, isFile := w.(*os.File)
	return &Printer{
		out:   w,
		width: GetTerminalWidth(),
		plain: !isFile || !IsTerminal(f),
	}
}

// Width returns the current terminal width used by this printer
func (p *Printer) Width() int {
	return p.width
}

// Plain reports whether styled output is disabled.
func (p *Printer) Plain() bool {
	return p.plain
}

// SetPlain forces plain or styled output.
func (p *Printer) SetPlain(plain bool) *Printer {
	p.plain = plain
	return p
}

// Println writes content with a newline
func (p *Printer) Println(content string) {
	_, _ = fmt.Fprintln(p.out, content)
}

// Newline prints an empty line
func (p *Printer) Newline() {
	_, _ = fmt.Fprintln(p.out)
}

// PrintHeader prints a command header box. Plain output skips it.
func (p *Printer) PrintHeader(title, command string, params ...Param) {
	if p.plain {
		return
	}
	p.Println(NewHeader(title, command, params...).SetWidth(p.width).Render())
	p.Newline()
}

// PrintRecords prints one card per record, or one line each in plain mode.
func (p *Printer) PrintRecords(records []discovery.Record) {
	for _, rec := range records {
		if p.plain {
			p.Println(PlainRecord(rec))
			continue
		}
		p.Println(RenderRecord(rec, p.width))
	}
}

// PrintSummary prints the pass summary box.
func (p *Printer) PrintSummary(sum discovery.Summary) {
	title := fmt.Sprintf("%d printers discovered", sum.Total)
	if p.plain {
		p.Println(title)
		for _, d := range SummaryParams(sum) {
			p.Println(fmt.Sprintf("  %s: %s", d.Key, d.Value))
		}
		return
	}
	p.Newline()
	p.Println(NewSuccessResult(title, SummaryParams(sum)...).SetWidth(p.width).Render())
}

// PrintSuccess prints a success result box
func (p *Printer) PrintSuccess(title string, details ...Param) {
	if p.plain {
		p.Println(title)
		for _, d := range details {
			p.Println(fmt.Sprintf("  %s: %s", d.Key, d.Value))
		}
		return
	}
	p.Println(NewSuccessResult(title, details...).SetWidth(p.width).Render())
}

// PrintError prints an error result box with troubleshooting tips
func (p *Printer) PrintError(title string, err error, troubleshooting []string) {
	if p.plain {
		p.Println(fmt.Sprintf("%s: %v", title, err))
		return
	}
	p.Println(NewFailureResult(title, err, troubleshooting).SetWidth(p.width).Render())
}
