package cmd

import (
	"github.com/spf13/cobra"

	"github.com/biosecret/todopages/app"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	Long:  `Connect to the database, apply the schema and serve the API until interrupted.`,
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, logData, err := setup()
	if err != nil {
		return err
	}
	defer logData.Close()

	return app.SetupAndRunApp(cfg, logData.Logger, logData.Writer)
}
