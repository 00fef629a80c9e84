package cmd

import (
	"fmt"
	"io"

	"github.com/fatih/color"
)

// ── Unified output helpers ────────────────────────────────────────────────────
// All commands use these functions to ensure consistent icon usage and
// indentation throughout gendex's CLI output.
//
// Icon semantics:
//   ✓  success / known
//   ✗  error / failure          (written to stderr)
//   ⚠  warning
//   ○  skipped / not applicable
//   -  not found / missing
//   ~  neutral info / diagnostics

// stdout and stderr are swapped by tests.
var (
	stdout io.Writer = color.Output
	stderr io.Writer = color.Error
)

var (
	iconOK   = color.New(color.FgGreen).Sprint("✓")
	iconErr  = color.New(color.FgRed).Sprint("✗")
	iconWarn = color.New(color.FgYellow).Sprint("⚠")
	iconSkip = color.New(color.Faint).Sprint("○")
	iconMiss = color.New(color.Faint).Sprint("-")
	iconInfo = color.New(color.FgCyan).Sprint("~")
	sectionC = color.New(color.Bold)
)

// printSection prints a top-level section header, e.g. "=== Doctor ===".
func printSection(title string) {
	fmt.Fprintf(stdout, "\n=== %s ===\n", sectionC.Sprint(title))
}

func printLine(w io.Writer, icon, name, msg string) {
	if name == "" {
		fmt.Fprintf(w, "  %s  %s\n", icon, msg)
	} else {
		fmt.Fprintf(w, "  %s  [%s] %s\n", icon, name, msg)
	}
}

// printOK prints a success line.
//   name = "" → "  ✓  msg"
//   name set  → "  ✓  [name] msg"
func printOK(name, msg string) { printLine(stdout, iconOK, name, msg) }

// printErr prints an error line to stderr.
func printErr(name, msg string) { printLine(stderr, iconErr, name, msg) }

func printWarn(name, msg string) { printLine(stdout, iconWarn, name, msg) }

// printSkip prints a skipped / not-applicable line.
func printSkip(name, msg string) { printLine(stdout, iconSkip, name, msg) }

// printMiss prints a not-found / missing line.
func printMiss(name, msg string) { printLine(stdout, iconMiss, name, msg) }

// printInfo prints a neutral diagnostic line.
func printInfo(name, msg string) { printLine(stdout, iconInfo, name, msg) }
