// Package banner prints the application title.
package banner

import (
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/petcollar/fwrename/shared/ansi"
	"github.com/petcollar/fwrename/shared/console"
	"golang.org/x/term"
)

type bannerColor int

const (
	bannerEspressifRed bannerColor = iota
	bannerPlatformIOOrange
	bannerCollarTeal
	bannerArduinoTeal
	bannerCircuitGreen
	bannerSolderSilver
)

var bannerTitleColors = []string{
	"\x1b[38;2;231;53;43m",   // Espressif Red
	"\x1b[38;2;255;127;0m",   // PlatformIO Orange
	"\x1b[38;2;0;168;150m",   // Collar Teal
	"\x1b[38;2;0;151;157m",   // Arduino Teal
	"\x1b[38;2;46;160;67m",   // Circuit Green
	"\x1b[38;2;192;192;192m", // Solder Silver
}

var bannerTitleColorNames = []string{
	"EspressifRed",
	"PlatformIOOrange",
	"CollarTeal",
	"ArduinoTeal",
	"CircuitGreen",
	"SolderSilver",
}

const (
	bannerTitleColorDefault        = bannerPlatformIOOrange
	bannerTitleColorBlueBackground = bannerSolderSilver
	// ColorEnv selects the title color by name or raw escape sequence.
	ColorEnv = "FWRENAME_BANNER_COLOR"
)

var titleLines = []string{
	" ███████╗ ██╗    ██╗ ██████╗  ███████╗ ███╗   ██╗  █████╗  ███╗   ███╗ ███████╗",
	" ██╔════╝ ██║    ██║ ██╔══██╗ ██╔════╝ ████╗  ██║ ██╔══██╗ ████╗ ████║ ██╔════╝",
	" █████╗   ██║ █╗ ██║ ██████╔╝ █████╗   ██╔██╗ ██║ ███████║ ██╔████╔██║ █████╗  ",
	" ██╔══╝   ██║███╗██║ ██╔══██╗ ██╔══╝   ██║╚██╗██║ ██╔══██║ ██║╚██╔╝██║ ██╔══╝  ",
	" ██║      ╚███╔███╔╝ ██║  ██║ ███████╗ ██║ ╚████║ ██║  ██║ ██║ ╚═╝ ██║ ███████╗",
	" ╚═╝       ╚══╝╚══╝  ╚═╝  ╚═╝ ╚══════╝ ╚═╝  ╚═══╝ ╚═╝  ╚═╝ ╚═╝     ╚═╝ ╚══════╝",
}

func printCenteredLines(w io.Writer, lines []string, width int) {
	for _, line := range lines {
		pad := 0
		n := utf8.RuneCountInString(line)

		if width > n {
			pad = (width - n) / 2
		}

		if pad > 0 {
			fmt.Fprint(w, strings.Repeat(" ", pad))
		}

		fmt.Fprintln(w, line)
	}
}

func bannerTitleColor() bannerColor {
	if color, ok := bannerTitleColorFromEnv(); ok {
		return color
	}

	if console.IsBlueBackground() {
		return bannerTitleColorBlueBackground
	}

	return bannerTitleColorDefault
}

func bannerTitleColorFromEnv() (bannerColor, bool) {
	raw := strings.TrimSpace(os.Getenv(ColorEnv))

	if raw == "" {
		return 0, false
	}

	for idx, color := range bannerTitleColors {
		name := bannerTitleColorName(bannerColor(idx))
		if strings.EqualFold(raw, name) || raw == color {
			return bannerColor(idx), true
		}
	}

	return 0, false
}

func bannerTitleColorName(color bannerColor) string {
	if color < 0 || int(color) >= len(bannerTitleColorNames) {
		return ""
	}

	return bannerTitleColorNames[int(color)]
}

// DrawBannerTitle prints the application title banner to stdout.
func DrawBannerTitle() {
	ansi.EnableANSI()

	width := 80

	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
	}

	fmt.Print(bannerTitleColors[bannerTitleColor()])
	printCenteredLines(os.Stdout, titleLines, width)
	fmt.Print("\x1b[0m")
}
