// Package main implements the one-shot counter commands.
// Each command opens the store, drives the controller with the same intents
// the counter screen uses, and prints the resulting value.
package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"tally/cmd/tally/ui"
	"tally/internal/input"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	showAll  bool
	resetYes bool
)

// showCmd prints the current value
var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the current count",
	Args:  cobra.NoArgs,
	RunE:  runShow,
}

// incCmd counts up once
var incCmd = &cobra.Command{
	Use:   "inc",
	Short: "Count up by one",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runIntent(cmd, input.IntentIncrement)
	},
}

// decCmd counts down once
var decCmd = &cobra.Command{
	Use:   "dec",
	Short: "Count down by one",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runIntent(cmd, input.IntentDecrement)
	},
}

// resetCmd sets the counter back to zero after confirmation
var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Reset the counter to zero",
	Long: `Asks for confirmation, then sets the counter to zero.

Pass --yes to skip the question (for scripts).`,
	Args: cobra.NoArgs,
	RunE: runReset,
}

func runShow(cmd *cobra.Command, args []string) error {
	a, err := openApp(cfg, nil)
	if err != nil {
		return err
	}
	defer a.Close()

	out := cmd.OutOrStdout()
	if !showAll {
		fmt.Fprintln(out, a.ctrl.Value())
		return nil
	}

	keys, err := a.kv.Keys()
	if err != nil {
		return fmt.Errorf("failed to list keys: %w", err)
	}
	for _, k := range keys {
		v, _, err := a.kv.Get(k)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", k, err)
		}
		fmt.Fprintf(out, "%s=%s\n", k, v)
	}
	return nil
}

func runIntent(cmd *cobra.Command, in input.Intent) error {
	a, err := openApp(cfg, bellWriter())
	if err != nil {
		return err
	}
	defer a.Close()

	a.ctrl.Dispatch(in)
	logger.Debug("intent applied", zap.String("intent", in.String()), zap.Int64("value", a.ctrl.Value()))
	fmt.Fprintln(cmd.OutOrStdout(), a.ctrl.Value())
	return nil
}

func runReset(cmd *cobra.Command, args []string) error {
	a, err := openApp(cfg, bellWriter())
	if err != nil {
		return err
	}
	defer a.Close()

	out := cmd.OutOrStdout()
	a.ctrl.Dispatch(input.IntentResetRequest)

	confirmed := resetYes
	if !confirmed {
		confirmed, err = ask(cmd.InOrStdin(), out, ui.ConfirmPrompt)
		if err != nil {
			a.ctrl.Dispatch(input.IntentResetCancel)
			return err
		}
	}

	if confirmed {
		a.ctrl.Dispatch(input.IntentResetConfirm)
	} else {
		a.ctrl.Dispatch(input.IntentResetCancel)
		fmt.Fprintln(out, "Reset cancelled.")
	}
	fmt.Fprintln(out, a.ctrl.Value())
	return nil
}

// ask prints question and reads a y/n answer. Anything but yes is no.
func ask(in io.Reader, out io.Writer, question string) (bool, error) {
	fmt.Fprintf(out, "%s [y/N] ", question)
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && err != io.EOF {
		return false, fmt.Errorf("failed to read answer: %w", err)
	}
	// A terminal echoes the user's Enter; piped input leaves the prompt line open.
	if !isTerminal(in) {
		fmt.Fprintln(out)
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true, nil
	}
	return false, nil
}

func isTerminal(r io.Reader) bool {
	f, ok := r.(*os.File)
	if !ok {
		return false
	}
	fi, err := f.Stat()
	return err == nil && fi.Mode()&os.ModeCharDevice != 0
}

// bellWriter is where the terminal bell goes for one-shot commands.
func bellWriter() io.Writer {
	return os.Stderr
}
