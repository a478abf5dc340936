//go:build !windows

package console

import "testing"

func TestIsBlueBackground(t *testing.T) {
	t.Setenv("COLORFGBG", "15;12")
	if !IsBlueBackground() {
		t.Fatalf("expected bright blue background to be detected")
	}
	t.Setenv("COLORFGBG", "15;0")
	if IsBlueBackground() {
		t.Fatalf("expected black background not to be blue")
	}
}
