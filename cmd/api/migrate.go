package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jhoicas/Clinica-api/internal/infrastructure/postgres"
	"github.com/jhoicas/Clinica-api/pkg/config"
	"github.com/jhoicas/Clinica-api/pkg/logger"
)

func migrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Migraciones de la base de datos (embebidas en el binario)",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "up",
		Short: "Aplica las migraciones pendientes",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withMigrator(func(ctx context.Context, m *postgres.Migrator) error {
				count, err := m.Up(ctx)
				if err != nil {
					return fmt.Errorf("migración fallida: %w", err)
				}
				fmt.Printf("%d migración(es) aplicada(s).\n", count)
				return nil
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "status",
		Short: "Muestra el estado de las migraciones",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withMigrator(func(ctx context.Context, m *postgres.Migrator) error {
				statuses, err := m.Status(ctx)
				if err != nil {
					return fmt.Errorf("estado de migraciones: %w", err)
				}
				fmt.Printf("%-10s %-40s %-10s %s\n", "VERSION", "NOMBRE", "ESTADO", "APLICADA")
				fmt.Println("---------- ---------------------------------------- ---------- --------------------")
				for _, s := range statuses {
					status, appliedAt := "pendiente", ""
					if s.Applied {
						status = "aplicada"
						if s.AppliedAt != nil {
							appliedAt = s.AppliedAt.Format("2006-01-02 15:04:05")
						}
					}
					fmt.Printf("%-10d %-40s %-10s %s\n", s.Version, s.Name, status, appliedAt)
				}
				return nil
			})
		},
	})

	return cmd
}

func withMigrator(fn func(ctx context.Context, m *postgres.Migrator) error) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if cfg.Store.Driver != config.DriverPostgres {
		return fmt.Errorf("migrate requiere STORE_DRIVER=postgres (actual: %s)", cfg.Store.Driver)
	}

	ctx := context.Background()
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel, Service: cfg.App.Name})
	pool, err := postgres.NewPool(ctx, cfg.DB, log.Component("db"))
	if err != nil {
		return err
	}
	defer pool.Close()

	return fn(ctx, postgres.NewMigrator(pool))
}
