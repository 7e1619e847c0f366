package config

// Theme names accepted by UIConfig.Theme.
const (
	ThemeAuto  = "auto"
	ThemeLight = "light"
	ThemeDark  = "dark"
)

// UIConfig holds terminal surface configuration.
type UIConfig struct {
	// Theme is auto, light or dark. Auto inspects COLORFGBG.
	Theme string `json:"theme" yaml:"theme"`

	// Mouse enables pointer taps on the counter and its buttons.
	Mouse bool `json:"mouse" yaml:"mouse"`

	// AltScreen runs the counter in the terminal's alternate screen.
	AltScreen bool `json:"alt_screen" yaml:"alt_screen"`
}

// DefaultUIConfig returns sensible UI defaults.
func DefaultUIConfig() *UIConfig {
	return &UIConfig{
		Theme:     ThemeAuto,
		Mouse:     true,
		AltScreen: true,
	}
}
