package main

import (
	"context"
	"time"

	"github.com/smallbiznis/plantdesk/internal/config"
	"github.com/smallbiznis/plantdesk/internal/migration"
	"github.com/smallbiznis/plantdesk/internal/seed"
	"github.com/spf13/cobra"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const oneShotTimeout = 2 * time.Minute

func newMigrateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create missing tables and exit",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runOnce(cmd.Context(), fx.Invoke(func(conn *gorm.DB, cfg config.Config, log *zap.Logger) error {
				if err := migration.Run(conn, cfg.DBType); err != nil {
					return err
				}
				log.Info("schema ready", zap.String("type", cfg.DBType))
				return nil
			}))
		},
	}
}

func newSeedCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Create missing tables and load default recipes and service types",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runOnce(cmd.Context(), fx.Invoke(func(conn *gorm.DB, cfg config.Config, log *zap.Logger) error {
				if err := migration.Run(conn, cfg.DBType); err != nil {
					return err
				}
				if err := seed.EnsureReferenceData(conn); err != nil {
					return err
				}
				log.Info("reference data ready")
				return nil
			}))
		},
	}
}

// runOnce builds the infrastructure, runs the invoke and shuts everything down.
func runOnce(ctx context.Context, invoke fx.Option) error {
	if ctx == nil {
		ctx = context.Background()
	}
	app := fx.New(
		infrastructure(),
		invoke,
		fx.NopLogger,
	)
	if err := app.Err(); err != nil {
		return err
	}

	startCtx, cancel := context.WithTimeout(ctx, oneShotTimeout)
	defer cancel()
	if err := app.Start(startCtx); err != nil {
		return err
	}

	stopCtx, stopCancel := context.WithTimeout(context.Background(), oneShotTimeout)
	defer stopCancel()
	return app.Stop(stopCtx)
}
