package output

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

// ColorScheme colors the parts of hvui output
type ColorScheme struct {
	// Cluster colors Harvester cluster names
	Cluster func(format string, a ...interface{}) string

	// Success colors resolved and loaded results
	Success func(format string, a ...interface{}) string

	// Error colors failures and the title of load error notifications
	Error func(format string, a ...interface{}) string

	// Header colors table headers
	Header func(format string, a ...interface{}) string

	// Duration colors per-cluster durations in wide output
	Duration func(format string, a ...interface{}) string

	// Disabled indicates if colors are disabled
	Disabled bool
}

// NewColorScheme creates a color scheme for w. Colors are off when noColor is
// set, NO_COLOR is present in the environment, or w is not a terminal.
func NewColorScheme(w io.Writer, noColor bool) *ColorScheme {
	if _, ok := os.LookupEnv("NO_COLOR"); ok || noColor || !IsTerminal(w) {
		return &ColorScheme{
			Cluster:  fmt.Sprintf,
			Success:  fmt.Sprintf,
			Error:    fmt.Sprintf,
			Header:   fmt.Sprintf,
			Duration: fmt.Sprintf,
			Disabled: true,
		}
	}

	return &ColorScheme{
		Cluster:  color.New(color.FgCyan, color.Bold).Sprintf,
		Success:  color.New(color.FgGreen).Sprintf,
		Error:    color.New(color.FgRed, color.Bold).Sprintf,
		Header:   color.New(color.FgWhite, color.Bold).Sprintf,
		Duration: color.New(color.FgBlue).Sprintf,
	}
}

// IsTerminal reports whether w is a terminal
func IsTerminal(w io.Writer) bool {
	if f, ok := w.(*os.File); ok {
		return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
	}
	return false
}

// StatusColor returns Error for failed results and Success otherwise
func (cs *ColorScheme) StatusColor(hasError bool) func(format string, a ...interface{}) string {
	if hasError {
		return cs.Error
	}
	return cs.Success
}
