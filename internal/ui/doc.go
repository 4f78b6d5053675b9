// Package ui provides terminal UI components for the printscan CLI.
//
// This package uses Bubble Tea and Lipgloss to render discovery results. The
// components follow a "run once and exit" pattern: a spinner is drawn while a
// discovery pass runs, then the records are printed and the program exits.
//
// # Components
//
//   - Header: command banner showing the operation and its parameters
//   - Record cards: one bordered card per printer, colored by status
//   - Result: success summary or failure box with troubleshooting tips
//   - RunWithSpinner: runs a function behind a Bubble Tea spinner
//
// When stdout is not a terminal, Printer falls back to plain tab-separated
// lines so output can be piped.
//
// # Logging Integration
//
// This package expects logging to be controlled via the PRINTSCAN_LOG_LEVEL
// environment variable. When unset or empty, zap logging is silent, allowing
// the curated UI output to be displayed cleanly.
package ui
