//go:build windows

package ansi

import (
	"os"

	"golang.org/x/sys/windows"
)

const enableVirtualTerminalProcessing = 0x0004

// EnableANSI enables ANSI escape sequence processing on the stdout and
// stderr consoles. Logs and the spinner write to stderr.
func EnableANSI() {
	for _, f := range []*os.File{os.Stdout, os.Stderr} {
		enable(windows.Handle(f.Fd()))
	}
}

func enable(handle windows.Handle) {
	var mode uint32
	if err := windows.GetConsoleMode(handle, &mode); err != nil {
		return
	}

	_ = windows.SetConsoleMode(handle, mode|enableVirtualTerminalProcessing)
}
