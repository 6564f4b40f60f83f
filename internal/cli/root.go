// Package cli implements the hadir command surface.
package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/hadirapp-com/support-template/internal/config"
	"github.com/hadirapp-com/support-template/internal/library"
	"github.com/hadirapp-com/support-template/internal/store"
)

var (
	jsonOutput  bool
	noProgress  bool
	debugOutput bool
	quietOutput bool
	dataDirFlag string
	storeFlag   string

	appConfig *config.Config
	logger    zerolog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "hadir",
	Short: "Manage reusable support reply templates",
	Long: `hadir stores reusable reply templates with {{name}} placeholders,
manages the variables that fill them, and renders finished replies.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return setup()
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "machine-readable JSON output")
	rootCmd.PersistentFlags().BoolVar(&noProgress, "no-progress", false, "disable progress output")
	rootCmd.PersistentFlags().BoolVar(&debugOutput, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&quietOutput, "quiet", false, "log errors only")
	rootCmd.PersistentFlags().StringVar(&dataDirFlag, "data-dir", "", "data directory (default: user data dir)")
	rootCmd.PersistentFlags().StringVar(&storeFlag, "store", "", "storage backend: bolt, sqlite or memory")
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func setup() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	if dataDirFlag != "" {
		cfg.DataDir = dataDirFlag
	}
	if storeFlag != "" {
		cfg.Storage.Backend = storeFlag
	}
	appConfig = cfg

	level, err := zerolog.ParseLevel(cfg.Log.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}
	if quietOutput {
		level = zerolog.ErrorLevel
	}
	if debugOutput {
		level = zerolog.DebugLevel
	}

	logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		With().Timestamp().Logger().Level(level)

	return nil
}

// GetConfig returns the configuration resolved for this invocation.
func GetConfig() *config.Config {
	return appConfig
}

func openStore() (store.Store, error) {
	cfg := GetConfig()

	switch cfg.Storage.Backend {
	case store.BackendMemory:
		return store.NewMemory(), nil
	case store.BackendSQLite:
		if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create data directory: %w", err)
		}
		return store.NewSQLite(filepath.Join(cfg.DataDir, "hadir.db"), logger)
	case store.BackendBolt, "":
		if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create data directory: %w", err)
		}
		return store.NewBolt(filepath.Join(cfg.DataDir, "hadir.bolt"), logger)
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
	}
}

func openLibrary() (*library.Library, store.Store, error) {
	s, err := openStore()
	if err != nil {
		return nil, nil, err
	}
	return library.New(s, logger), s, nil
}
