package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/biosecret/todopages/config"
	"github.com/biosecret/todopages/logger"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "todopages",
	Short: "Multi-user to-do service with pages and todos",
	Long: `todopages serves a JSON API where each user organises todos into pages,
with filtering, search, profiles and live todo events.`,
	SilenceUsage: true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to config file (default todoapp.yaml if present)")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(userCmd)
	rootCmd.AddCommand(versionCmd)
}

// setup load cấu hình và tạo logger cho các command
func setup() (*config.Config, *logger.LogData, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, err
	}

	logData, err := logger.New().FromPath(cfg.Log.File).Level(cfg.Log.Level).Make()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open log file: %w", err)
	}
	return cfg, logData, nil
}
