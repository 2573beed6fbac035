package service_test

import (
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/redrazor111/burn-back/internal/db"
	"github.com/redrazor111/burn-back/internal/service"
)

func newTestDB(t *testing.T) *sql.DB {
	t.Helper()
	path := filepath.Join(t.TempDir(), "burnback.db")
	sqldb, err := db.Open(path)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.ApplyMigrations(sqldb); err != nil {
		t.Fatalf("apply migrations: %v", err)
	}
	return sqldb
}

func reconciledDB(t *testing.T, now time.Time) *sql.DB {
	t.Helper()
	sqldb := newTestDB(t)
	if err := service.ReconcileDay(sqldb, now); err != nil {
		t.Fatalf("reconcile day: %v", err)
	}
	return sqldb
}
