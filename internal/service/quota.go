package service

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/redrazor111/burn-back/internal/model"
)

// The entitlement gate keeps two independent daily counters for free-tier
// usage: meal scans and activity logs. Counters belong to a calendar day and
// read as zero whenever the stored day is not today. Pro users are never
// counted; the counters exist to bound free usage, not for analytics.

// QuotaStateFor returns today's view of the counters.
func QuotaStateFor(db *sql.DB, now time.Time) (model.QuotaState, error) {
	today := DayKeyOf(now).String()
	state := model.QuotaState{DateStamp: today}

	var stamp string
	var scans, activities int
	err := db.QueryRow(`SELECT date_stamp, scan_count, activity_count FROM quota_state WHERE id = 1`).Scan(&stamp, &scans, &activities)
	if err == sql.ErrNoRows {
		return state, nil
	}
	if err != nil {
		return model.QuotaState{}, fmt.Errorf("load quota state: %w", err)
	}
	if stamp == today {
		state.ScanCount = scans
		state.ActivityCount = activities
	}
	return state, nil
}

// CanScan reports whether a scan may be recorded. Denial is signalled, not
// returned as an error, so callers can present an upgrade path.
func CanScan(db *sql.DB, isPro bool, now time.Time) (bool, error) {
	if isPro {
		return true, nil
	}
	limit, err := FreeScanLimit(db)
	if err != nil {
		return false, err
	}
	state, err := QuotaStateFor(db, now)
	if err != nil {
		return false, err
	}
	return state.ScanCount < limit, nil
}

// CanLogActivity reports whether an activity log may be recorded.
func CanLogActivity(db *sql.DB, isPro bool, now time.Time) (bool, error) {
	if isPro {
		return true, nil
	}
	limit, err := FreeActivityLimit(db)
	if err != nil {
		return false, err
	}
	state, err := QuotaStateFor(db, now)
	if err != nil {
		return false, err
	}
	return state.ActivityCount < limit, nil
}

// RecordScanUsage increments the free-tier scan counter. No-op for pro.
func RecordScanUsage(db *sql.DB, isPro bool, now time.Time) error {
	if isPro {
		return nil
	}
	return bumpQuota(db, now, 1, 0)
}

// RecordActivityUsage increments the free-tier activity counter. No-op for
// pro.
func RecordActivityUsage(db *sql.DB, isPro bool, now time.Time) error {
	if isPro {
		return nil
	}
	return bumpQuota(db, now, 0, 1)
}

func bumpQuota(db *sql.DB, now time.Time, scanDelta, activityDelta int) error {
	state, err := QuotaStateFor(db, now)
	if err != nil {
		return err
	}
	_, err = db.Exec(`
INSERT INTO quota_state(id, date_stamp, scan_count, activity_count)
VALUES(1, ?, ?, ?)
ON CONFLICT(id) DO UPDATE SET
  date_stamp=excluded.date_stamp,
  scan_count=excluded.scan_count,
  activity_count=excluded.activity_count
`, state.DateStamp, state.ScanCount+scanDelta, state.ActivityCount+activityDelta)
	if err != nil {
		return fmt.Errorf("update quota state: %w", err)
	}
	return nil
}
