//go:build !windows

package console

import (
	"os"
)

// IsBlueBackground returns true if the terminal background color is blue.
func IsBlueBackground() bool {
	bg, ok := backgroundFromColorFGBG(os.Getenv("COLORFGBG"))
	if !ok {
		return false
	}

	// ANSI 16-color backgrounds: 4 (blue) and 12 (bright blue).
	return bg == "4" || bg == "12"
}
