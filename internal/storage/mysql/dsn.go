package mysql

import (
	"fmt"

	drv "github.com/go-sql-driver/mysql"
)

// NormalizeDSN forces parseTime on: DATE columns are scanned into time.Time.
func NormalizeDSN(dsn string) (string, error) {
	cfg, err := drv.ParseDSN(dsn)
	if err != nil {
		return "", fmt.Errorf("parse mysql dsn: %w", err)
	}
	cfg.ParseTime = true
	return cfg.FormatDSN(), nil
}
