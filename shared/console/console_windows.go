//go:build windows

package console

import (
	"os"

	"golang.org/x/sys/windows"
)

// IsBlueBackground returns true if the terminal background color is blue.
// Terminals that export COLORFGBG take precedence over the console buffer.
func IsBlueBackground() bool {
	if bg, ok := backgroundFromColorFGBG(os.Getenv("COLORFGBG")); ok {
		return bg == "4" || bg == "12"
	}

	handle := windows.Handle(os.Stdout.Fd())

	var info windows.ConsoleScreenBufferInfo
	if err := windows.GetConsoleScreenBufferInfo(handle, &info); err != nil {
		return false
	}

	const backgroundBlue = 0x0010

	return info.Attributes&backgroundBlue != 0
}
