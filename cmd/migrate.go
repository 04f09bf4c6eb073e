package cmd

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"

	"github.com/biosecret/todopages/config"
	"github.com/biosecret/todopages/database"
	"github.com/biosecret/todopages/logger"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create the database schema",
	Long:  `Apply the embedded schema for the configured driver. Safe to run more than once.`,
	RunE:  runMigrate,
}

func runMigrate(cmd *cobra.Command, args []string) error {
	cfg, logData, err := setup()
	if err != nil {
		return err
	}
	defer logData.Close()

	ctx := context.Background()
	db, dialect, err := openDB(ctx, cfg, logData)
	if err != nil {
		return err
	}
	defer database.Close(db, logData.Logger)

	if err := database.Migrate(ctx, db, dialect); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "schema applied (%s)\n", dialect)
	return nil
}

func openDB(ctx context.Context, cfg *config.Config, logData *logger.LogData) (*sqlx.DB, database.Dialect, error) {
	return database.Open(ctx, database.Options{
		Driver:         cfg.Database.Driver,
		URL:            cfg.Database.URL,
		MaxConnections: cfg.Database.MaxConnections,
	}, logData.Logger)
}
