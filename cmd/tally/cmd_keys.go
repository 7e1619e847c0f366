package main

import (
	"fmt"
	"strings"

	"tally/cmd/tally/ui"
	"tally/internal/input"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"
)

var keysPlain bool

// keysCmd prints the key and pointer bindings
var keysCmd = &cobra.Command{
	Use:   "keys",
	Short: "Show the key and mouse bindings",
	Args:  cobra.NoArgs,
	RunE:  runKeys,
}

func runKeys(cmd *cobra.Command, args []string) error {
	md := keysMarkdown(input.NewAdapter())
	if keysPlain {
		fmt.Fprint(cmd.OutOrStdout(), md)
		return nil
	}

	style := "light"
	if ui.ThemeFor(cfg.UI.Theme).IsDark {
		style = "dark"
	}
	out, err := renderMarkdown(md, style)
	if err != nil {
		return err
	}
	fmt.Fprint(cmd.OutOrStdout(), out)
	return nil
}

func renderMarkdown(md, style string) (string, error) {
	renderer, err := glamour.NewTermRenderer(
		glamour.WithStylePath(style),
		glamour.WithWordWrap(80),
	)
	if err != nil {
		return "", fmt.Errorf("failed to create renderer: %w", err)
	}
	out, err := renderer.Render(md)
	if err != nil {
		return "", fmt.Errorf("failed to render: %w", err)
	}
	return out, nil
}

func keysMarkdown(a *input.Adapter) string {
	var sb strings.Builder
	sb.WriteString("# tally keys\n\n")
	sb.WriteString("| Action | Keys |\n|---|---|\n")
	for _, b := range a.Bindings() {
		sb.WriteString(fmt.Sprintf("| %s | %s |\n", b.Help, keyList(b.Keys)))
	}

	sb.WriteString("\n## While the reset dialog is open\n\n")
	sb.WriteString("| Action | Keys |\n|---|---|\n")
	for _, b := range a.DialogBindings() {
		sb.WriteString(fmt.Sprintf("| %s | %s |\n", b.Help, keyList(b.Keys)))
	}
	sb.WriteString("| switch Cancel/Confirm | `Tab`, `ArrowLeft`, `ArrowRight` |\n")
	sb.WriteString("| press the focused button | `Enter` |\n")
	sb.WriteString("\nCounting keys do nothing until the dialog closes.\n")

	sb.WriteString("\n## Mouse\n\n")
	sb.WriteString("- Click anywhere to count up, or use the `−1`, `Reset` and `+1` buttons.\n")
	sb.WriteString("- In the dialog, click `Confirm` or `Cancel`; clicking outside the dialog cancels.\n")
	sb.WriteString("\nPress `q` or `Ctrl+C` to quit.\n")
	return sb.String()
}

func keyList(keys []input.KeyCode) string {
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = "`" + string(k) + "`"
	}
	return strings.Join(parts, ", ")
}
