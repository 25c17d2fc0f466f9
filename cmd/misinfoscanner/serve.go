package main

import (
	"github.com/spf13/cobra"

	"MisinfoScanner/internal/app"
	"MisinfoScanner/internal/config"
	"MisinfoScanner/internal/logging"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the analysis HTTP server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := config.Load()
			logger := logging.New(cfg.Logging.Level)

			application, err := app.New(cfg, logger, version)
			if err != nil {
				return err
			}

			return application.Run(cmd.Context())
		},
	}
}
