package db

import (
	"context"
	"embed"
	"fmt"

	"countryfx/internal/config"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// Migrate applies any pending schema migrations through the pgx stdlib
// driver. Runs before the pool is created so the schema is settled by the
// time the first request arrives.
func Migrate(ctx context.Context, cfg config.DbServer) error {
	sqlDB, err := goose.OpenDBWithDriver("pgx", cfg.GetConnectionStr())
	if err != nil {
		return fmt.Errorf("open db for migrations: %w", err)
	}
	defer func() { _ = sqlDB.Close() }()

	goose.SetBaseFS(migrationsFS)
	if err = goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("set migration dialect: %w", err)
	}
	if err = goose.UpContext(ctx, sqlDB, "migrations"); err != nil {
		return fmt.Errorf("apply migrations: %w", err)
	}
	return nil
}
