// Package ui is the terminal surface for tally: a bubbletea model that
// renders the counter and forwards keys and mouse taps to the input adapter.
package ui

import (
	"os"
	"strconv"
	"strings"

	"tally/internal/config"

	"github.com/charmbracelet/lipgloss"
)

// Palette
var (
	// Light Mode Colors (Default)
	LightBackground = lipgloss.Color("#f4f5f6")
	LightForeground = lipgloss.Color("#101F38")
	LightPrimary    = lipgloss.Color("#101F38")
	LightAccent     = lipgloss.Color("#8BC34A")
	LightMuted      = lipgloss.Color("#8a94a6")
	LightBorder     = lipgloss.Color("#c4cad3")
	LightCard       = lipgloss.Color("#ffffff")

	// Dark Mode Colors
	DarkBackground = lipgloss.Color("#141d2b")
	DarkForeground = lipgloss.Color("#f2f2f2")
	DarkPrimary    = lipgloss.Color("#8BC34A")
	DarkAccent     = lipgloss.Color("#4db6ac")
	DarkMuted      = lipgloss.Color("#6b7a93")
	DarkBorder     = lipgloss.Color("#2a3850")
	DarkCard       = lipgloss.Color("#1a2536")

	// Semantic Colors (same in both modes)
	Destructive = lipgloss.Color("#e53935")
	Up          = lipgloss.Color("#8BC34A")
	Down        = lipgloss.Color("#ff8a65")
)

// Theme holds the current color scheme
type Theme struct {
	Background lipgloss.Color
	Foreground lipgloss.Color
	Primary    lipgloss.Color
	Accent     lipgloss.Color
	Muted      lipgloss.Color
	Border     lipgloss.Color
	Card       lipgloss.Color
	IsDark     bool
}

// LightTheme returns the light mode theme
func LightTheme() Theme {
	return Theme{
		Background: LightBackground,
		Foreground: LightForeground,
		Primary:    LightPrimary,
		Accent:     LightAccent,
		Muted:      LightMuted,
		Border:     LightBorder,
		Card:       LightCard,
		IsDark:     false,
	}
}

// DarkTheme returns the dark mode theme
func DarkTheme() Theme {
	return Theme{
		Background: DarkBackground,
		Foreground: DarkForeground,
		Primary:    DarkPrimary,
		Accent:     DarkAccent,
		Muted:      DarkMuted,
		Border:     DarkBorder,
		Card:       DarkCard,
		IsDark:     true,
	}
}

// ThemeFor resolves a configured theme name. "auto" falls back to DetectTheme.
func ThemeFor(name string) Theme {
	switch name {
	case config.ThemeDark:
		return DarkTheme()
	case config.ThemeLight:
		return LightTheme()
	default:
		return DetectTheme()
	}
}

// DetectTheme auto-detects based on terminal or returns light mode
func DetectTheme() Theme {
	// Format is usually "foreground;background"; 0-6 and 8 are dark backgrounds.
	if colorTerm := os.Getenv("COLORFGBG"); colorTerm != "" {
		parts := strings.Split(colorTerm, ";")
		if len(parts) == 2 {
			if bgIdx, err := strconv.Atoi(parts[1]); err == nil {
				if (bgIdx >= 0 && bgIdx <= 6) || bgIdx == 8 {
					return DarkTheme()
				}
			}
		}
	}

	if os.Getenv("TALLY_DARK_MODE") == "1" {
		return DarkTheme()
	}

	return LightTheme()
}

// Styles holds all the styled components
type Styles struct {
	Theme Theme

	// Text
	Title lipgloss.Style
	Muted lipgloss.Style
	Help  lipgloss.Style

	// Counter
	Value          lipgloss.Style
	ValuePressed   lipgloss.Style
	ValueIncreased lipgloss.Style
	ValueDecreased lipgloss.Style

	// Controls
	Button        lipgloss.Style
	ButtonFocused lipgloss.Style
	Danger        lipgloss.Style

	// Dialog
	Dialog     lipgloss.Style
	DialogText lipgloss.Style
}

// NewStyles creates a new Styles instance with the given theme
func NewStyles(theme Theme) Styles {
	value := lipgloss.NewStyle().
		Foreground(theme.Foreground).
		Bold(true).
		Padding(1, 6).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Align(lipgloss.Center)

	button := lipgloss.NewStyle().
		Foreground(theme.Foreground).
		Padding(0, 2).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border)

	return Styles{
		Theme: theme,

		Title: lipgloss.NewStyle().
			Foreground(theme.Primary).
			Bold(true),

		Muted: lipgloss.NewStyle().
			Foreground(theme.Muted),

		Help: lipgloss.NewStyle().
			Foreground(theme.Muted),

		Value: value,

		// Same geometry as Value so a pulse never shifts the layout.
		ValuePressed: value.
			BorderForeground(theme.Accent),

		ValueIncreased: value.
			Foreground(Up).
			BorderForeground(Up),

		ValueDecreased: value.
			Foreground(Down).
			BorderForeground(Down),

		Button: button,

		ButtonFocused: button.
			Foreground(theme.Accent).
			BorderForeground(theme.Accent).
			Bold(true),

		Danger: button.
			Foreground(Destructive).
			BorderForeground(Destructive).
			Bold(true),

		Dialog: lipgloss.NewStyle().
			Background(theme.Card).
			Foreground(theme.Foreground).
			Padding(1, 3).
			Border(lipgloss.ThickBorder()).
			BorderForeground(Destructive),

		DialogText: lipgloss.NewStyle().
			Foreground(theme.Foreground).
			Background(theme.Card).
			Bold(true),
	}
}

// DefaultStyles returns styles for the detected theme
func DefaultStyles() Styles {
	return NewStyles(DetectTheme())
}
