// Package cli contains the cobra subcommands. Commands stay thin: parse
// flags, call a service from wire, print the result.
package cli

import (
	"github.com/fatih/color"
)

var (
	okMark   = color.New(color.FgHiGreen).Sprint("✓")
	archived = color.New(color.FgYellow).Sprint("[archived]")
	latest   = color.New(color.FgHiMagenta).Sprint(" ← latest")
)

func dimID(id string) string {
	return color.New(color.Faint).Sprint(id)
}
