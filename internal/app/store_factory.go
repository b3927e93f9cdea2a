package app

import (
	"strings"

	"github.com/mattwilson20/ascrl-platform/internal/store"
	"github.com/mattwilson20/ascrl-platform/internal/store/postgres"
	"github.com/mattwilson20/ascrl-platform/internal/store/sqlite"
)

func NewStore(config *Config) (store.LeagueStore, error) {
	dsn := config.Database.DSN
	migrationsDir := config.Database.MigrationsDir

	if strings.HasPrefix(dsn, "postgres") {
		return postgres.NewPostgresStore(dsn, migrationsDir)
	}
	return sqlite.NewSQLiteStore(dsn, migrationsDir)
}
