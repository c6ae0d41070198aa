package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/kbukum/jasmine-step/admin"
	"github.com/kbukum/jasmine-step/logger"
)

func newServeCmd(o *rootOptions) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the admin API for the shared settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, store, err := o.newApp(cmd, true)
			if err != nil {
				return err
			}
			cfg := app.Cfg.Admin
			if addr != "" {
				cfg.Addr = addr
			}
			srv := admin.New(cfg, store,
				admin.WithHealthChecker(app.Components),
				admin.WithLogger(app.Logger.WithComponent("admin")),
			)
			if err := app.RegisterComponent(srv); err != nil {
				return err
			}
			app.OnStart(func(context.Context) error {
				app.Logger.Info("Admin API listening", logger.Fields(
					"addr", srv.Addr(),
					"auth", cfg.JWTSecret != "",
				))
				return nil
			})
			return app.Run(cmd.Context())
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (overrides admin.addr)")
	return cmd
}
