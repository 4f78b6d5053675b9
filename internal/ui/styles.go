package ui

import (
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/muurk/printscan/internal/discovery"
)

// Palette. Adaptive colors keep cards readable on light terminals.
var (
	accent  = lipgloss.AdaptiveColor{Light: "#5A3FC0", Dark: "#7D56F4"}
	green   = lipgloss.AdaptiveColor{Light: "#1F8A45", Dark: "#43BF6D"}
	red     = lipgloss.AdaptiveColor{Light: "#C62828", Dark: "#FF5555"}
	amber   = lipgloss.AdaptiveColor{Light: "#B26A00", Dark: "#FFA500"}
	subtle  = lipgloss.AdaptiveColor{Light: "#8A8A8A", Dark: "#626262"}
	primary = lipgloss.AdaptiveColor{Light: "#1A1A1A", Dark: "#FFFFFF"}
)

// MinTerminalWidth and maxContentWidth bound rendered widths.
const (
	MinTerminalWidth = 60
	maxContentWidth  = 100
)

var (
	HeaderTitleStyle      = lipgloss.NewStyle().Foreground(primary).Bold(true).PaddingLeft(2)
	HeaderCommandStyle    = lipgloss.NewStyle().Foreground(subtle).PaddingLeft(2)
	HeaderParamKeyStyle   = lipgloss.NewStyle().Foreground(subtle).PaddingLeft(2)
	HeaderParamValueStyle = lipgloss.NewStyle().Foreground(primary)

	SpinnerStyle = lipgloss.NewStyle().Foreground(accent)

	SuccessTitleStyle = lipgloss.NewStyle().Foreground(green).Bold(true)
	ErrorTitleStyle   = lipgloss.NewStyle().Foreground(red).Bold(true)
	ErrorMessageStyle = lipgloss.NewStyle().Foreground(red)

	// ResultKeyStyle pads detail keys to a common column
	ResultKeyStyle   = lipgloss.NewStyle().Foreground(subtle).Width(15)
	ResultValueStyle = lipgloss.NewStyle().Foreground(primary)

	PrinterNameStyle = lipgloss.NewStyle().Foreground(primary).Bold(true)
	DefaultTagStyle  = lipgloss.NewStyle().Foreground(amber)

	TroubleshootingTitleStyle = lipgloss.NewStyle().Foreground(subtle).Bold(true)
	TroubleshootingItemStyle  = lipgloss.NewStyle().Foreground(subtle)
)

// Markers
const (
	SuccessMarker = "✓"
	FailureMarker = "✗"
	DefaultMarker = "★"
)

type statusTheme struct {
	color  lipgloss.AdaptiveColor
	marker string
}

var statusThemes = map[discovery.Status]statusTheme{
	discovery.StatusOnline:  {green, SuccessMarker},
	discovery.StatusOffline: {red, FailureMarker},
	discovery.StatusUnknown: {amber, "?"},
}

func themeFor(s discovery.Status) statusTheme {
	if t, ok := statusThemes[s]; ok {
		return t
	}
	return statusThemes[discovery.StatusUnknown]
}

// StatusColor returns the color used for a printer status.
func StatusColor(s discovery.Status) lipgloss.TerminalColor {
	return themeFor(s).color
}

// StatusMarker returns the marker shown next to a printer status.
func StatusMarker(s discovery.Status) string {
	return themeFor(s).marker
}

// StatusBadge renders "marker Label" in the status color.
func StatusBadge(s discovery.Status) string {
	return lipgloss.NewStyle().
		Foreground(StatusColor(s)).
		Bold(true).
		Render(StatusMarker(s) + " " + s.Label())
}

// IsTerminal reports whether f is attached to a terminal.
func IsTerminal(f *os.File) bool {
	return f != nil && term.IsTerminal(int(f.Fd()))
}

// GetTerminalWidth returns the stdout width clamped to the supported range.
func GetTerminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil {
		return MinTerminalWidth
	}
	return clampWidth(width)
}

func clampWidth(width int) int {
	return max(MinTerminalWidth, min(width, maxContentWidth))
}

// boxStyle is a bordered block whose outer width is width.
func boxStyle(border lipgloss.Border, color lipgloss.TerminalColor, width int) lipgloss.Style {
	return lipgloss.NewStyle().
		Border(border).
		BorderForeground(color).
		Width(width - 2)
}

// HeaderBorderStyle frames command headers.
func HeaderBorderStyle(width int) lipgloss.Style {
	return boxStyle(lipgloss.RoundedBorder(), accent, width)
}

// SuccessBoxStyle frames success results.
func SuccessBoxStyle(width int) lipgloss.Style {
	return boxStyle(lipgloss.DoubleBorder(), green, width).Padding(0, 2)
}

// ErrorBoxStyle frames failure results.
func ErrorBoxStyle(width int) lipgloss.Style {
	return boxStyle(lipgloss.DoubleBorder(), red, width).Padding(0, 2)
}

// CardStyle frames one printer, bordered in its status color.
func CardStyle(width int, status discovery.Status) lipgloss.Style {
	return boxStyle(lipgloss.RoundedBorder(), StatusColor(status), width).Padding(0, 1)
}

// TroubleshootingBoxStyle frames the hints under a failure result.
func TroubleshootingBoxStyle(width int) lipgloss.Style {
	return boxStyle(lipgloss.RoundedBorder(), subtle, width-10).
		Padding(0, 1).
		MarginLeft(3)
}

// RenderHorizontalDivider draws char repeated width times in the accent color.
func RenderHorizontalDivider(width int, char string) string {
	return lipgloss.NewStyle().
		Foreground(accent).
		Render(strings.Repeat(char, width))
}
