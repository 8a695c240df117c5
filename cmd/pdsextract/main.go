// Package main provides the CLI entry point for pdsextract.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/ukaji3/pdsextract-go/internal/config"
	"github.com/ukaji3/pdsextract-go/pkg/pdsextract/mapping"
)

var (
	configPath  string
	mappingPath string
	verbose     bool

	cfg    *config.AppConfig
	logger = zap.NewNop()
)

var rootCmd = &cobra.Command{
	Use:   "pdsextract",
	Short: "Extract Personal Data Sheet workbooks into JSON",
	Long: `pdsextract reads CS Form 212 (Personal Data Sheet) workbooks and
converts them into structured JSON documents, driven by a YAML mapping
of cells, tables and ranges.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		if cfg, err = config.Load(configPath); err != nil {
			return err
		}

		zc := zap.NewProductionConfig()
		level, err := zapcore.ParseLevel(cfg.Log.Level)
		if err != nil {
			return fmt.Errorf("invalid log level %q: %w", cfg.Log.Level, err)
		}
		if verbose {
			level = zapcore.DebugLevel
		}
		zc.Level = zap.NewAtomicLevelAt(level)
		if logger, err = zc.Build(); err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "config.toml", "Configuration file")
	rootCmd.PersistentFlags().StringVarP(&mappingPath, "mapping", "m", "", "Mapping file (default: built-in CS Form 212 mapping)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	rootCmd.AddCommand(extractCmd)
	rootCmd.AddCommand(sheetsCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(configCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadSchema loads the mapping named by --mapping, then the config file,
// falling back to the built-in mapping.
func loadSchema() (*mapping.Schema, error) {
	path := mappingPath
	if path == "" {
		path = cfg.Mapping.Path
	}
	if path == "" {
		return mapping.Default()
	}

	schema, err := mapping.LoadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load mapping: %w", err)
	}
	logger.Debug("loaded mapping", zap.String("path", path), zap.Strings("sections", schema.Sections()))
	return schema, nil
}
