package main

import (
	"context"
	"fmt"
	"os"

	"github.com/kanjidojo/kanji-backend/internal/config"
	"github.com/kanjidojo/kanji-backend/internal/database"
	"github.com/kanjidojo/kanji-backend/internal/migration"
	pkglogger "github.com/kanjidojo/kanji-backend/pkg/logger"
	"github.com/urfave/cli/v3"
	"gorm.io/gorm"
)

func main() {
	config.LoadDotEnv()

	env := os.Getenv("APP_ENV")
	pkglogger.InitStructured(env)

	args := os.Args
	if len(args) == 1 {
		args = append(args, "--help")
	}

	root := &cli.Command{
		Name:  "migrate",
		Usage: "Manage the kanji-backend database schema",
		Commands: []*cli.Command{
			{
				Name:   "up",
				Usage:  "apply all pending migrations",
				Flags:  []cli.Flag{configFlag(env)},
				Action: withDB(migration.Up),
			},
			{
				Name:   "down",
				Usage:  "roll back the most recent migration",
				Flags:  []cli.Flag{configFlag(env)},
				Action: withDB(migration.Down),
			},
			{
				Name:   "status",
				Usage:  "show applied and pending migrations",
				Flags:  []cli.Flag{configFlag(env)},
				Action: withDB(migration.Status),
			},
			{
				Name:  "seed",
				Usage: "apply migrations, then load the sample catalog and a demo account",
				Flags: []cli.Flag{
					configFlag(env),
					&cli.StringFlag{Name: "username", Value: "demo", Usage: "demo account username"},
					&cli.StringFlag{Name: "password", Sources: cli.EnvVars("SEED_PASSWORD"), Required: true, Usage: "demo account password"},
				},
				Action: func(ctx context.Context, c *cli.Command) error {
					return run(ctx, c.String("config"), func(ctx context.Context, db *gorm.DB) error {
						if err := migration.Up(ctx, db); err != nil {
							return err
						}
						return migration.Seed(ctx, db, migration.SeedOptions{
							Username: c.String("username"),
							Password: c.String("password"),
						})
					})
				},
			},
		},
	}

	if err := root.Run(context.Background(), args); err != nil {
		pkglogger.GetLogger().Fatal().Err(err).Msg("migrate failed")
	}
}

func configFlag(env string) cli.Flag {
	return &cli.StringFlag{Name: "config", Value: config.Path(env), Usage: "config file path"}
}

func withDB(fn func(context.Context, *gorm.DB) error) cli.ActionFunc {
	return func(ctx context.Context, c *cli.Command) error {
		return run(ctx, c.String("config"), fn)
	}
}

func run(ctx context.Context, configPath string, fn func(context.Context, *gorm.DB) error) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	db, err := database.Open(cfg)
	if err != nil {
		return fmt.Errorf("connect: %w", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	if err := fn(ctx, db); err != nil {
		return err
	}

	version, err := migration.Version(ctx, db)
	if err != nil {
		return err
	}
	pkglogger.Info("schema version %d (%s)", version, cfg.Database.Driver)
	return nil
}
