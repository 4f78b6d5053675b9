package ui

import (
	"fmt"
	"strings"
)

// Outcome says whether a Result reports success or failure.
type Outcome int

const (
	ResultSuccess Outcome = iota
	ResultFailure
)

// Result is the closing box printed after a command.
type Result struct {
	Outcome Outcome
	Title   string  // "3 printers discovered"
	Details []Param // success only
	Err     error   // failure only
	Tips    []string
	Width   int
}

// NewSuccessResult creates a success box with key/value details.
func NewSuccessResult(title string, details ...Param) *Result {
	return &Result{Outcome: ResultSuccess, Title: title, Details: details, Width: GetTerminalWidth()}
}

// NewFailureResult creates a failure box. tips may be nil.
func NewFailureResult(title string, err error, tips []string) *Result {
	return &Result{Outcome: ResultFailure, Title: title, Err: err, Tips: tips, Width: GetTerminalWidth()}
}

// SetWidth overrides the detected terminal width.
func (r *Result) SetWidth(width int) *Result {
	r.Width = width
	return r
}

// Render returns the styled box.
func (r *Result) Render() string {
	width := max(r.Width, MinTerminalWidth)

	if r.Outcome == ResultFailure {
		body := []string{"", ErrorTitleStyle.Render(fmt.Sprintf("   %s  FAILED  ─  %s", FailureMarker, r.Title)), ""}
		if r.Err != nil {
			body = append(body, ErrorMessageStyle.Render("   Error: "+r.Err.Error()), "")
		}
		if len(r.Tips) > 0 {
			body = append(body, TroubleshootingBoxStyle(width).Render(renderTips(r.Tips)), "")
		}
		return ErrorBoxStyle(width).Render(strings.Join(body, "\n"))
	}

	body := []string{"", SuccessTitleStyle.Render(fmt.Sprintf("   %s  %s", SuccessMarker, r.Title)), ""}
	body = append(body, detailLines(r.Details, "   ")...)
	body = append(body, "")
	return SuccessBoxStyle(width).Render(strings.Join(body, "\n"))
}

func (r *Result) String() string {
	return r.Render()
}

func renderTips(tips []string) string {
	lines := make([]string, 0, len(tips)+2)
	lines = append(lines, TroubleshootingTitleStyle.Render("Troubleshooting:"), "")
	for _, tip := range tips {
		lines = append(lines, TroubleshootingItemStyle.Render("  • "+tip))
	}
	return strings.Join(lines, "\n")
}

// detailLines renders aligned "key: value" rows.
func detailLines(details []Param, indent string) []string {
	lines := make([]string, 0, len(details))
	for _, d := range details {
		lines = append(lines, ResultKeyStyle.Render(indent+d.Key+":")+" "+ResultValueStyle.Render(d.Value))
	}
	return lines
}
