// Package pprint renders styled terminal output for the CLI: the banner shown by
// --version and help, key/value lines and error lines.
package pprint

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
)

var (
	ColorPrimary = lipgloss.Color("#7B8CDE")
	ColorAccent  = lipgloss.Color("#F6C85F") // sun yellow
	ColorError   = lipgloss.Color("#FC8181")
	ColorMuted   = lipgloss.Color("#4A5568")
	ColorText    = lipgloss.Color("#E2E8F0")
)

var (
	StyleError   = lipgloss.NewStyle().Foreground(ColorError).Bold(true)
	StyleMuted   = lipgloss.NewStyle().Foreground(ColorMuted)
	StyleAccent  = lipgloss.NewStyle().Foreground(ColorAccent).Bold(true)
	StylePrimary = lipgloss.NewStyle().Foreground(ColorPrimary).Bold(true)
	StyleText    = lipgloss.NewStyle().Foreground(ColorText)

	StyleLabel = lipgloss.NewStyle().
			Foreground(ColorPrimary).
			Bold(true).
			Width(12)
)

// Out and ErrOut are swapped by tests.
var (
	Out    io.Writer = os.Stdout
	ErrOut io.Writer = os.Stderr
)

// Error prints a red ✗ error line to stderr.
func Error(format string, args ...any) {
	fmt.Fprintln(ErrOut, StyleError.Render("✗ ")+StyleText.Render(fmt.Sprintf(format, args...)))
}

// Info prints a dimmed info line.
func Info(format string, args ...any) {
	fmt.Fprintln(Out, StyleMuted.Render("  "+fmt.Sprintf(format, args...)))
}

// KV prints a labelled key-value pair.
func KV(key, value string) {
	fmt.Fprintln(Out, StyleLabel.Render(key)+StyleText.Render(value))
}

// PrintBanner prints the orbits banner with version and build date.
func PrintBanner(version, buildDate string) {
	fmt.Fprintln(Out)
	fmt.Fprintln(Out, StyleMuted.Render("      ·  ")+StylePrimary.Render("o"))
	fmt.Fprintln(Out, StyleMuted.Render("   ·       ·"))
	fmt.Fprintln(Out, StyleMuted.Render("  ·   ")+StyleAccent.Render("( @ )")+StyleMuted.Render("   ·  ")+StylePrimary.Render("orbits"))
	fmt.Fprintln(Out, StyleMuted.Render("   ·       ·"))
	fmt.Fprintln(Out, StylePrimary.Render("      o")+StyleMuted.Render("  ·"))
	fmt.Fprintln(Out)

	versionStr := StyleAccent.Render("  " + version)
	if buildDate != "" {
		versionStr += StyleMuted.Render("  built " + buildDate)
	}
	fmt.Fprintln(Out, StyleMuted.Render("  planets, satellites and their trails"))
	fmt.Fprintln(Out, versionStr)
	fmt.Fprintln(Out)
}
