package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"tally/internal/counter"
	"tally/internal/store"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// watchCmd follows the stored count as other processes change it
var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Print the count whenever it changes",
	Long: `Watches the counter database and prints the value each time another
tally process changes it. Needs a sqlite or sqlite3 store. Stop with Ctrl+C.`,
	Args: cobra.NoArgs,
	RunE: runWatch,
}

func runWatch(cmd *cobra.Command, args []string) error {
	kv, err := store.Open(store.Options{Driver: cfg.Store.Driver, DSN: cfg.StoreDSN()})
	if err != nil {
		return fmt.Errorf("failed to open store: %w", err)
	}
	defer kv.Close()

	sqlStore, ok := kv.(*store.SQLStore)
	if !ok || sqlStore.Path() == "" {
		return fmt.Errorf("watch needs a file-backed sqlite store (driver %q)", cfg.Store.Driver)
	}

	parent := cmd.Context()
	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	changes := make(chan struct{}, 1)
	watcher, err := store.NewWatcher(sqlStore.Path(), func() {
		select {
		case changes <- struct{}{}:
		default:
		}
	})
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	last, known := readCount(kv)
	if known {
		fmt.Fprintln(out, last)
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := watcher.Start(ctx); err != nil {
			return fmt.Errorf("failed to start watcher: %w", err)
		}
		<-ctx.Done()
		watcher.Stop()
		stats := watcher.Stats()
		logger.Debug("watcher stopped",
			zap.Int("events", stats.Events),
			zap.Int("notifications", stats.Notifications))
		return nil
	})
	g.Go(func() error {
		for {
			select {
			case <-ctx.Done():
				return nil
			case <-changes:
				v, ok := readCount(kv)
				if ok && (!known || v != last) {
					fmt.Fprintln(out, v)
					last, known = v, true
				}
			}
		}
	})
	return g.Wait()
}

// readCount reads the stored value the same way the controller does at
// startup: missing or malformed entries read as 0. ok is false only when
// the store itself could not be read.
func readCount(kv store.KV) (int64, bool) {
	raw, ok, err := kv.Get(counter.ValueKey)
	if err != nil {
		logger.Debug("failed to read count", zap.Error(err))
		return 0, false
	}
	if !ok {
		return 0, true
	}
	v, _ := counter.ParseValue(raw)
	return v, true
}
