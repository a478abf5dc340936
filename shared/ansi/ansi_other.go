//go:build !windows

// Package ansi enables ANSI escape handling on consoles that need it.
package ansi

// EnableANSI is a no-op on non-Windows; ANSI escape sequences are supported by default.
func EnableANSI() {
}
