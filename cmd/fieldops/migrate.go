package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newMigrateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create the session table of the configured store",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			store, closeStore, err := openStore(ctx, a.cfg.Session)
			if err != nil {
				return err
			}
			defer closeStore()

			s, ok := store.(schemaStore)
			if !ok {
				a.log.Info("session store keeps no schema", zap.String("store", a.cfg.Session.Store))
				return nil
			}
			if err := s.EnsureSchema(ctx); err != nil {
				return err
			}
			a.log.Info("session schema ready", zap.String("store", a.cfg.Session.Store))
			return nil
		},
	}
}
