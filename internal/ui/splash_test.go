package ui

import (
	"strings"
	"testing"
)

func TestSplashScreenVisibility(t *testing.T) {
	splash := NewSplashScreen()

	// Initially should be hidden
	if splash.IsVisible() {
		t.Error("Splash screen should be hidden initially")
	}

	splash.Show()
	if !splash.IsVisible() {
		t.Error("Splash screen should be visible after Show()")
	}

	splash.Hide()
	if splash.IsVisible() {
		t.Error("Splash screen should be hidden after Hide()")
	}
}

func TestSplashScreenContent(t *testing.T) {
	content := strings.Join(NewSplashScreen().GetContent(), "\n")

	for _, required := range []string{"tui-smartlist", "Version", ":e", ":q", ":present"} {
		if !strings.Contains(content, required) {
			t.Errorf("Splash screen content should contain '%s'", required)
		}
	}
}
