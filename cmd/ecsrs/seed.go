package main

import (
	"context"
	"fmt"

	"ecsrs/internal/db"
	"ecsrs/internal/seed"
	"ecsrs/internal/store"

	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

var seedCommand = &cli.Command{
	Name:  "seed",
	Usage: "Seed the database with initial data",
	Action: func(c *cli.Context) error {
		cfg, err := loadConfig()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		ctx := context.Background()

		pool, err := db.Connect(ctx, cfg)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		defer pool.Close()

		logrus.Info("Connected to database")

		lgaRepo := store.NewLGARepository(pool)

		logrus.Info("Seeding local government areas...")
		if err := seed.SeedLGAs(ctx, lgaRepo); err != nil {
			return fmt.Errorf("failed to seed lgas: %w", err)
		}

		logrus.Info("Local government areas seeded successfully")

		return nil
	},
}
