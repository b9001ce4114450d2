package report

import (
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// Color modes accepted by ShouldUseColor.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// ShouldUseColor reports whether ANSI colors should be written to w.
// An explicit mode wins; in auto mode it respects NO_COLOR, CLICOLOR_FORCE,
// CLICOLOR, and TTY detection.
func ShouldUseColor(mode string, w io.Writer) bool {
	switch mode {
	case ColorAlways:
		return true
	case ColorNever:
		return false
	}
	// https://no-color.org: any non-empty value disables color.
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	if strings.TrimSpace(os.Getenv("CLICOLOR_FORCE")) == "1" {
		return true
	}
	if strings.TrimSpace(os.Getenv("CLICOLOR")) == "0" {
		return false
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}
