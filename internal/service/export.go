package service

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/redrazor111/burn-back/internal/model"
)

// ExportSnapshot is the full JSON dump of user data: profile, today's
// ledger and both permanent archives.
type ExportSnapshot struct {
	ExportedAt      time.Time                `json:"exported_at"`
	Profile         model.Profile            `json:"profile"`
	Today           *TodayStatus             `json:"today"`
	Scans           []model.ScanEntry        `json:"scans"`
	Activities      []model.ActivityLogEntry `json:"activities"`
	ScanHistory     []model.ScanRecord       `json:"scan_history"`
	ActivityHistory []model.ActivityRecord   `json:"activity_history"`
}

func BuildExport(db *sql.DB, now time.Time) (*ExportSnapshot, error) {
	snapshot := &ExportSnapshot{ExportedAt: now}

	var err error
	if snapshot.Profile, err = LoadProfile(db); err != nil {
		return nil, err
	}
	if snapshot.Today, err = Today(db, now); err != nil {
		return nil, fmt.Errorf("export today status: %w", err)
	}
	if snapshot.Scans, err = TodayScans(db); err != nil {
		return nil, err
	}
	if snapshot.Activities, err = TodayActivities(db); err != nil {
		return nil, err
	}
	if snapshot.ScanHistory, err = ScanRecords(db); err != nil {
		return nil, err
	}
	if snapshot.ActivityHistory, err = ActivityRecords(db); err != nil {
		return nil, err
	}
	return snapshot, nil
}
