package main

import (
	"fmt"
	"os"

	"tally/cmd/tally/ui"
	"tally/internal/input"
	"tally/internal/logging"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

// runCounter opens the counter screen.
func runCounter(cmd *cobra.Command, args []string) error {
	a, err := openApp(cfg, os.Stdout)
	if err != nil {
		return err
	}
	defer a.Close()

	styles := ui.NewStyles(ui.ThemeFor(cfg.UI.Theme))
	model := ui.NewModel(a.ctrl, input.NewAdapter(), styles)

	var opts []tea.ProgramOption
	if cfg.UI.AltScreen {
		opts = append(opts, tea.WithAltScreen())
	}
	if cfg.UI.Mouse {
		opts = append(opts, tea.WithMouseCellMotion())
	}

	logging.UI("starting counter screen at %d (session %s)", a.ctrl.Value(), logging.SessionID())
	if _, err := tea.NewProgram(model, opts...).Run(); err != nil {
		return fmt.Errorf("counter screen failed: %w", err)
	}
	return nil
}
