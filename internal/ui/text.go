package ui

import (
	"fmt"
	"os"

	"github.com/fatih/color"
)

// Formatter renders a piece of text with a semantic style. With a color
// terminal the style is a color; without one it falls back to plain text
// decorations so the meaning survives in logs and pipes.
type Formatter struct {
	color  *color.Color
	prefix string
	suffix string
}

// Sprint formats the arguments and returns the styled string.
func (f Formatter) Sprint(a ...interface{}) string {
	text := fmt.Sprint(a...)
	if noColor() {
		return f.prefix + text + f.suffix
	}
	return f.color.Sprint(text)
}

// Sprintf formats according to a format specifier and returns the styled string.
func (f Formatter) Sprintf(format string, a ...interface{}) string {
	text := fmt.Sprintf(format, a...)
	if noColor() {
		return f.prefix + text + f.suffix
	}
	return f.color.Sprint(text)
}

// EnsureNewline ensures the string ends with a newline character.
func EnsureNewline(s string) string {
	if len(s) == 0 || s[len(s)-1] != '\n' {
		return s + "\n"
	}
	return s
}

func noColor() bool {
	// NO_COLOR (https://no-color.org/) always wins.
	if _, exists := os.LookupEnv("NO_COLOR"); exists {
		return true
	}
	// Otherwise defer to fatih/color's terminal detection.
	return color.NoColor
}

// Semantic formatters for the privydash CLI output.
var (
	// Code formats runnable commands. Yellow, or `backticks` without color.
	Code = Formatter{color.New(color.FgYellow), "`", "`"}

	// Path formats file paths and URLs. Yellow, undecorated without color.
	Path = Formatter{color.New(color.FgYellow), "", ""}

	// Flag formats CLI flags like --dry-run. Yellow, undecorated without
	// color since the -- prefix already marks it.
	Flag = Formatter{color.New(color.FgYellow), "", ""}

	// Success formats success indicators. Green, unchanged without color.
	Success = Formatter{color.New(color.FgGreen), "", ""}

	// Error formats error indicators. Red, unchanged without color.
	Error = Formatter{color.New(color.FgRed), "", ""}

	// Warning formats warning indicators. Yellow, unchanged without color.
	Warning = Formatter{color.New(color.FgYellow), "", ""}

	// Info formats hints and directional indicators. Cyan, unchanged
	// without color.
	Info = Formatter{color.New(color.FgCyan), "", ""}

	// Highlight formats user values like emails and project ids. Cyan, or
	// 'single quotes' without color.
	Highlight = Formatter{color.New(color.FgCyan), "'", "'"}

	// Muted formats secondary text. Gray, or (parentheses) without color.
	Muted = Formatter{color.New(color.FgHiBlack), "(", ")"}
)
