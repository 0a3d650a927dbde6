package output

import (
	"fmt"
	"io"
	"os"

	"golang.org/x/term"
)

// Stdout and Stderr are the streams messages are printed to.
var (
	Stdout io.Writer = os.Stdout
	Stderr io.Writer = os.Stderr
)

// ColorsEnabled returns true if terminal colors should be used on w.
// Respects NO_COLOR environment variable (https://no-color.org/)
func ColorsEnabled(w io.Writer) bool {
	if _, noColor := os.LookupEnv("NO_COLOR"); noColor {
		return false
	}
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// ANSI color codes
const (
	reset  = "\033[0m"
	bold   = "\033[1m"
	dim    = "\033[2m"
	red    = "\033[31m"
	green  = "\033[32m"
	yellow = "\033[33m"
	cyan   = "\033[36m"
	white  = "\033[37m"
)

// Symbols for CLI output (ASCII-compatible)
const (
	SymbolSuccess = "+"
	SymbolError   = "x"
	SymbolWarning = "!"
	SymbolInfo    = "*"
	SymbolArrow   = "->"
)

func style(w io.Writer, codes, text string) string {
	if !ColorsEnabled(w) {
		return text
	}
	return codes + text + reset
}

// Dim returns text in dim style for stdout
func Dim(text string) string {
	return style(Stdout, dim, text)
}

// Success returns text styled for success messages on stdout
func Success(text string) string {
	return style(Stdout, green, text)
}

// Error returns text styled for error messages on stdout
func Error(text string) string {
	return style(Stdout, red, text)
}

// PrintHeader prints a bold section header
func PrintHeader(text string) {
	fmt.Fprintln(Stdout, style(Stdout, bold+white, text))
}

// PrintSuccess prints a success message with + symbol
func PrintSuccess(message string) {
	fmt.Fprintf(Stdout, "%s %s\n", Success(SymbolSuccess), Success(message))
}

// PrintError prints an error message with x symbol to stderr
func PrintError(message string) {
	fmt.Fprintln(Stderr, style(Stderr, red, SymbolError+" "+message))
}

// PrintWarning prints a warning message with ! symbol to stderr
func PrintWarning(message string) {
	fmt.Fprintln(Stderr, style(Stderr, yellow, SymbolWarning+" "+message))
}

// PrintInfo prints an info message with * symbol
func PrintInfo(message string) {
	fmt.Fprintf(Stdout, "%s %s\n", style(Stdout, cyan, SymbolInfo), style(Stdout, cyan, message))
}

// PrintSecondary prints secondary/supplementary information
func PrintSecondary(message string) {
	fmt.Fprintf(Stdout, "  %s %s\n", SymbolArrow, style(Stdout, dim+cyan, message))
}

// Plural returns the singular or plural form based on count
func Plural(count int, singular, plural string) string {
	if count == 1 {
		return singular
	}
	return plural
}
