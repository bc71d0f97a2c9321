package common

import (
	"fmt"
	"strings"
)

// WindowMode selects how the application window occupies the screen.
type WindowMode int

const (
	// WindowModeWindowed is a decorated, resizable window.
	WindowModeWindowed WindowMode = iota

	// WindowModeBorderless is an undecorated window covering the primary monitor.
	WindowModeBorderless

	// WindowModeFullscreen is an exclusive fullscreen window on the primary monitor.
	WindowModeFullscreen
)

// String returns the name used in editor.json.
func (m WindowMode) String() string {
	switch m {
	case WindowModeBorderless:
		return "borderless"
	case WindowModeFullscreen:
		return "fullscreen"
	default:
		return "window"
	}
}

// ParseWindowMode parses a window mode name. Matching is case insensitive and "windowed" is
// accepted for "window".
//
// Parameters:
//   - s: the mode name
//
// Returns:
//   - WindowMode: the parsed mode
//   - error: an error if s is not a known mode
func ParseWindowMode(s string) (WindowMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "window", "windowed":
		return WindowModeWindowed, nil
	case "borderless":
		return WindowModeBorderless, nil
	case "fullscreen":
		return WindowModeFullscreen, nil
	default:
		return WindowModeWindowed, fmt.Errorf("unknown window mode %q", s)
	}
}

// MarshalText implements encoding.TextMarshaler.
func (m WindowMode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *WindowMode) UnmarshalText(text []byte) error {
	mode, err := ParseWindowMode(string(text))
	if err != nil {
		return err
	}
	*m = mode
	return nil
}
