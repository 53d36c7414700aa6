package main

import (
	"database/sql"
	"flag"

	_ "github.com/go-sql-driver/mysql"
	"github.com/rs/zerolog/log"

	"suite_hotel/internal/adapters/observability"
	"suite_hotel/internal/shared"
	mysqlrepo "suite_hotel/internal/storage/mysql"
)

func main() {
	action := flag.String("action", "up", "up | down | step-up | drop")
	flag.Parse()

	cfg := shared.Load()
	log.Logger = observability.NewLogger(cfg.AppEnv, cfg.LogLevel)

	if cfg.MySQLDSN == "" {
		log.Fatal().Msg("MYSQL_DSN is required")
	}
	dsn, err := mysqlrepo.NormalizeDSN(cfg.MySQLDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid MYSQL_DSN")
	}
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		log.Fatal().Err(err).Msg("sql.Open failed")
	}
	defer db.Close()
	if err := db.Ping(); err != nil {
		log.Fatal().Err(err).Msg("db.Ping failed")
	}

	if err := mysqlrepo.Migrate(db, cfg.MigrationsDir, *action); err != nil {
		observability.ErrorWithStack(err)
		log.Fatal().Msg("migration failed")
	}
}
