package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/farsishop/storefront/app/configs"
	"github.com/farsishop/storefront/app/db/seeders"
	"github.com/farsishop/storefront/app/models/migrations"
	"github.com/farsishop/storefront/app/repositories"
	"github.com/rs/zerolog"
	"github.com/urfave/cli/v3"
	"gorm.io/gorm"
)

func RunCli() {
	env := configs.LoadEnv()
	logger := configs.NewLogger(env)

	cmd := &cli.Command{
		Name:   "storefront",
		Usage:  "Persian storefront API",
		Action: func(ctx context.Context, c *cli.Command) error { return Serve(ctx, env, logger) },
		Commands: []*cli.Command{
			{
				Name:  "serve",
				Usage: "Start the HTTP API (default)",
				Action: func(ctx context.Context, c *cli.Command) error {
					return Serve(ctx, env, logger)
				},
			},
			{
				Name:  "migrate",
				Usage: "Run database migration",
				Action: func(ctx context.Context, c *cli.Command) error {
					return withDB(env, logger, func(db *gorm.DB) error {
						if err := migrations.AutoMigrate(db); err != nil {
							return err
						}
						logger.Info().Msg("migration complete")
						return nil
					})
				},
			},
			{
				Name:  "seed",
				Usage: "Create or update the admin user from ADMIN_EMAIL / ADMIN_PASSWORD",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "demo",
						Usage: "also fill an empty catalog with fake data",
					},
				},
				Action: func(ctx context.Context, c *cli.Command) error {
					return withDB(env, logger, func(db *gorm.DB) error {
						repos := repositories.NewRegistry(db)
						if _, err := seeders.SeedAdmin(ctx, repos.Users, env.AdminEmail, env.AdminPassword, logger); err != nil {
							return err
						}
						if c.Bool("demo") {
							return seeders.SeedDemo(ctx, repos, logger)
						}
						return nil
					})
				},
			},
			{
				Name:  "generate-keys",
				Usage: "Generate new session authentication, encryption and CSRF keys for .env",
				Action: func(ctx context.Context, c *cli.Command) error {
					if err := configs.GenerateAndPrintSessionKeys(); err != nil {
						return err
					}
					logger.Info().Msg("key generation complete, copy the keys to your .env file")
					return nil
				},
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		logger.Fatal().Err(err).Msg("command failed")
	}
}

func withDB(env configs.ENV, logger zerolog.Logger, fn func(db *gorm.DB) error) error {
	db, err := configs.OpenConnection(env, logger)
	if err != nil {
		return fmt.Errorf("database connection failed: %w", err)
	}
	defer func() {
		if err := configs.CloseConnection(db); err != nil {
			logger.Warn().Err(err).Msg("failed to close database")
		}
	}()
	return fn(db)
}
