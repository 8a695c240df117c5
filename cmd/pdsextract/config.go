package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ukaji3/pdsextract-go/internal/config"
)

var forceInit bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the configuration file",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the default configuration to --config",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if !forceInit {
			_, err := os.Stat(configPath)
			if err == nil {
				return fmt.Errorf("%s already exists (use --force to overwrite)", configPath)
			}
			if !errors.Is(err, fs.ErrNotExist) {
				return err
			}
		}

		if err := config.Save(config.DefaultConfig(), configPath); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
		logger.Info("wrote default config", zap.String("path", configPath))
		return nil
	},
}

func init() {
	configInitCmd.Flags().BoolVar(&forceInit, "force", false, "Overwrite an existing file")
	configCmd.AddCommand(configInitCmd)
}
