package mysql

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	migratemysql "github.com/golang-migrate/migrate/v4/database/mysql"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/rs/zerolog/log"
)

// Migrate runs the SQL migrations in dir against db. action is one of
// up, down (one step), step-up or drop.
func Migrate(db *sql.DB, dir, action string) error {
	drv, err := migratemysql.WithInstance(db, &migratemysql.Config{})
	if err != nil {
		return fmt.Errorf("migrate driver: %w", err)
	}
	mig, err := migrate.NewWithDatabaseInstance("file://"+dir, "mysql", drv)
	if err != nil {
		return fmt.Errorf("error creating migrate instance: %w", err)
	}

	switch action {
	case "up":
		err = mig.Up()
	case "down":
		err = mig.Steps(-1)
	case "step-up":
		err = mig.Steps(1)
	case "drop":
		err = mig.Down()
	default:
		return fmt.Errorf("unknown migrate action %q", action)
	}
	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migrate %s: %w", action, err)
	}
	log.Info().Str("action", action).Str("dir", dir).Msg("database migrations applied")
	return nil
}
