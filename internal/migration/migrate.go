package migration

import (
	"context"
	"embed"
	"fmt"
	"sync"

	"github.com/kanjidojo/kanji-backend/pkg/logger"
	"github.com/pressly/goose/v3"
	"gorm.io/gorm"
)

//go:embed migrations/mysql/*.sql migrations/sqlite/*.sql
var migrationsFS embed.FS

// goose keeps its dialect and base FS in package globals
var gooseMu sync.Mutex

type gooseLogger struct{}

func (gooseLogger) Printf(format string, v ...interface{}) {
	logger.GetLogger().Info().Str("component", "migrate").Msgf(format, v...)
}

func (gooseLogger) Fatalf(format string, v ...interface{}) {
	logger.GetLogger().Fatal().Str("component", "migrate").Msgf(format, v...)
}

// source maps the gorm dialector to the goose dialect and migration directory
func source(db *gorm.DB) (string, string, error) {
	switch name := db.Dialector.Name(); name {
	case "mysql":
		return "mysql", "migrations/mysql", nil
	case "sqlite":
		return "sqlite3", "migrations/sqlite", nil
	default:
		return "", "", fmt.Errorf("no migrations for dialect %q", name)
	}
}

func withGoose(db *gorm.DB, fn func(dir string) error) error {
	dialect, dir, err := source(db)
	if err != nil {
		return err
	}

	gooseMu.Lock()
	defer gooseMu.Unlock()

	goose.SetLogger(gooseLogger{})
	goose.SetBaseFS(migrationsFS)
	if err := goose.SetDialect(dialect); err != nil {
		return err
	}
	return fn(dir)
}

// Up applies all pending migrations
func Up(ctx context.Context, db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return withGoose(db, func(dir string) error {
		return goose.UpContext(ctx, sqlDB, dir)
	})
}

// Down rolls back the most recent migration
func Down(ctx context.Context, db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return withGoose(db, func(dir string) error {
		return goose.DownContext(ctx, sqlDB, dir)
	})
}

// Status logs the applied/pending state of every migration
func Status(ctx context.Context, db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return withGoose(db, func(dir string) error {
		return goose.StatusContext(ctx, sqlDB, dir)
	})
}

// Version returns the current schema version
func Version(ctx context.Context, db *gorm.DB) (int64, error) {
	sqlDB, err := db.DB()
	if err != nil {
		return 0, err
	}
	var version int64
	err = withGoose(db, func(string) error {
		v, err := goose.GetDBVersionContext(ctx, sqlDB)
		version = v
		return err
	})
	return version, err
}
