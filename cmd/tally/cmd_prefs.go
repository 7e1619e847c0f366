package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var (
	prefsHaptic string
	prefsAudio  string
)

// prefsCmd shows or changes the feedback toggles
var prefsCmd = &cobra.Command{
	Use:   "prefs",
	Short: "Show or change haptic and audio feedback",
	Long: `Without flags, prints both feedback toggles.

Examples:
  tally prefs --audio on
  tally prefs --haptic off --audio off`,
	Args: cobra.NoArgs,
	RunE: runPrefs,
}

func runPrefs(cmd *cobra.Command, args []string) error {
	a, err := openApp(cfg, nil)
	if err != nil {
		return err
	}
	defer a.Close()

	if cmd.Flags().Changed("haptic") {
		on, err := parseToggle(prefsHaptic)
		if err != nil {
			return fmt.Errorf("--haptic: %w", err)
		}
		if err := a.prefs.SetHaptic(on); err != nil {
			return fmt.Errorf("failed to save haptic preference: %w", err)
		}
	}
	if cmd.Flags().Changed("audio") {
		on, err := parseToggle(prefsAudio)
		if err != nil {
			return fmt.Errorf("--audio: %w", err)
		}
		if err := a.prefs.SetAudio(on); err != nil {
			return fmt.Errorf("failed to save audio preference: %w", err)
		}
	}

	p := a.prefs.Get()
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "haptic: %s\n", onOff(p.Haptic))
	fmt.Fprintf(out, "audio:  %s\n", onOff(p.Audio))
	return nil
}

func parseToggle(s string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "on", "true", "yes", "1":
		return true, nil
	case "off", "false", "no", "0":
		return false, nil
	}
	return false, fmt.Errorf("expected on or off, got %q", s)
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}
