// Package cli implements the stickfigures command-line interface.
//
// This package provides commands for exploring a small entity data set as
// animated stick figures in the terminal or the browser, exporting a frame
// as SVG, PNG or PDF, and printing the data table. The CLI is built using
// cobra and logs via the charmbracelet/log library.
//
// # Commands
//
// The main commands are:
//   - play: Interactive terminal session
//   - serve: Interactive browser session
//   - render: Export a settled frame for a chosen attribute pair
//   - table: Print the data table
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. Loggers are
// passed through context.Context. Load, session and HTTP events reach the
// logger through observability hooks registered by the root command.
package cli
