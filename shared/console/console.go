// Package console inspects the attached terminal.
package console

import (
	"io"
	"os"
	"strings"

	"github.com/jedib0t/go-pretty/v6/text"
	"golang.org/x/term"
)

// IsTerminal reports whether w is an interactive terminal.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}

	return term.IsTerminal(int(f.Fd()))
}

// ConfigureColors enables go-pretty colours when w is a terminal and disables
// them otherwise, so piped reports carry no escape sequences.
func ConfigureColors(w io.Writer) {
	if IsTerminal(w) {
		text.EnableColors()
		return
	}
	text.DisableColors()
}

// backgroundFromColorFGBG extracts the background index from a COLORFGBG
// value such as "15;0" or "15;default;4".
func backgroundFromColorFGBG(raw string) (string, bool) {
	if raw == "" {
		return "", false
	}

	parts := strings.Split(raw, ";")
	bg := strings.TrimSpace(parts[len(parts)-1])

	return bg, bg != ""
}
