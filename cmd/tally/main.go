package main

import (
	"fmt"
	"os"

	"tally/internal/config"
	"tally/internal/logging"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	// Global flags
	verbose    bool
	configPath string
	dataDir    string

	// Loaded in PersistentPreRunE
	cfg *config.Config

	// Logger
	logger *zap.Logger
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "tally",
	Short: "tally - a persistent tap counter for the terminal",
	Long: `tally keeps one integer counter that survives restarts.

Tap anywhere (or press space, enter, an up/right arrow, k, l, w or d) to count
up; backspace, a down/left arrow, h, j, a or s count down. Reset asks for
confirmation first.

Run without arguments to open the counter screen.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// A missing .env is normal.
		_ = godotenv.Load()

		path := configPath
		if path == "" {
			path = config.DefaultConfigPath()
		}
		loaded, err := config.Load(path)
		if err != nil {
			return err
		}
		if dataDir != "" {
			loaded.DataDir = dataDir
		}
		if err := loaded.Validate(); err != nil {
			return fmt.Errorf("invalid config %s: %w", path, err)
		}
		cfg = loaded

		if err := logging.Initialize(cfg.Logging, cfg.LogsDir()); err != nil {
			return fmt.Errorf("failed to initialize logging: %w", err)
		}
		logging.Boot("config loaded from %s (store=%s)", path, cfg.Store.Driver)

		// The counter screen owns the terminal; only subcommands log to stderr.
		if cmd == cmd.Root() {
			logger = zap.NewNop()
			return nil
		}

		zc := zap.NewProductionConfig()
		zc.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
		if verbose {
			zc.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		logger, err = zc.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
		logging.CloseAll()
	},
	RunE: runCounter,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Config file (default: user config dir/tally/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", "", "Directory for the counter database and debug logs")

	showCmd.Flags().BoolVar(&showAll, "all", false, "Print every stored key")
	resetCmd.Flags().BoolVarP(&resetYes, "yes", "y", false, "Reset without asking")
	prefsCmd.Flags().StringVar(&prefsHaptic, "haptic", "", "Turn haptic feedback on or off")
	prefsCmd.Flags().StringVar(&prefsAudio, "audio", "", "Turn audio feedback on or off")
	keysCmd.Flags().BoolVar(&keysPlain, "plain", false, "Print markdown without rendering")

	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(incCmd)
	rootCmd.AddCommand(decCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(prefsCmd)
	rootCmd.AddCommand(keysCmd)
	rootCmd.AddCommand(watchCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
