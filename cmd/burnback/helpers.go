package burnback

import (
	"database/sql"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/redrazor111/burn-back/internal/app"
	"github.com/redrazor111/burn-back/internal/db"
	"github.com/redrazor111/burn-back/internal/service"
)

// withDB opens the database, applies migrations, reconciles the daily
// ledger against the wall clock and hands the connection to run. Every
// command goes through here, so a day rollover is handled before any
// command logic sees the ledger.
func withDB(run func(*sql.DB, time.Time) error) error {
	path, err := resolveDBPath()
	if err != nil {
		return err
	}
	if err := app.EnsureDBDir(path); err != nil {
		return err
	}
	sqldb, err := db.Open(path)
	if err != nil {
		return err
	}
	defer sqldb.Close()

	if err := db.ApplyMigrations(sqldb); err != nil {
		return err
	}
	now := time.Now()
	if err := service.ReconcileDay(sqldb, now); err != nil {
		return err
	}
	return run(sqldb, now)
}

func parseIntArg(name, value string) (int, error) {
	v, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q", name, value)
	}
	if v <= 0 {
		return 0, fmt.Errorf("%s must be > 0", name)
	}
	return v, nil
}
