package service

import (
	"database/sql"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/redrazor111/burn-back/internal/burn"
	"github.com/redrazor111/burn-back/internal/model"
)

// The daily ledger is the day-scoped record of consumed and burned calories.
// ReconcileDay must run before any mutating operation; mutations on an
// unreconciled ledger fail fast with ErrLedgerNotReady. The permanent
// archive is written as a second step after the ledger transaction commits,
// so the two stores can diverge if that step fails (ErrArchiveAppend).

type ScanInput struct {
	ProductName string
	Calories    int
	// Activities must be empty (slots are derived from the burn table and
	// the profile weight) or exactly ten slots from the vision service.
	Activities []model.ActivitySlot
}

// ReconcileDay compares the stored day stamp with now and clears the ledger
// when the day has changed. Calling it twice on the same day is a no-op
// after the first call.
func ReconcileDay(db *sql.DB, now time.Time) error {
	today := DayKeyOf(now).String()

	var stamp string
	err := db.QueryRow(`SELECT date_stamp FROM day_state WHERE id = 1`).Scan(&stamp)
	if err != nil && err != sql.ErrNoRows {
		return fmt.Errorf("load day state: %w", err)
	}
	if err == nil && stamp == today {
		return nil
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("begin rollover tx: %w", err)
	}
	for _, stmt := range []string{`DELETE FROM day_scans`, `DELETE FROM day_activities`} {
		if _, err := tx.Exec(stmt); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("clear day ledger: %w", err)
		}
	}
	if _, err := tx.Exec(`
INSERT INTO day_state(id, date_stamp, water_cups)
VALUES(1, ?, 0)
ON CONFLICT(id) DO UPDATE SET date_stamp=excluded.date_stamp, water_cups=0
`, today); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("stamp day state: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit rollover: %w", err)
	}
	return nil
}

// LedgerDay returns the stamped calendar day, or ErrLedgerNotReady when the
// ledger was never reconciled.
func LedgerDay(db *sql.DB) (DayKey, error) {
	var stamp string
	err := db.QueryRow(`SELECT date_stamp FROM day_state WHERE id = 1`).Scan(&stamp)
	if err == sql.ErrNoRows {
		return "", ErrLedgerNotReady
	}
	if err != nil {
		return "", fmt.Errorf("load day state: %w", err)
	}
	return DayKey(stamp), nil
}

func requireReconciled(db *sql.DB, now time.Time) error {
	day, err := LedgerDay(db)
	if err != nil {
		return err
	}
	if day != DayKeyOf(now) {
		return ErrLedgerNotReady
	}
	return nil
}

// RecordScan adds a scanned meal to today's ledger. On quota denial it
// returns ErrScanQuotaExceeded without mutating anything. The ledger insert
// and the usage increment commit in one transaction; the archive append
// follows and reports ErrArchiveAppend on failure while the entry stands.
func RecordScan(db *sql.DB, in ScanInput, isPro bool, now time.Time) (model.ScanEntry, error) {
	if err := requireReconciled(db, now); err != nil {
		return model.ScanEntry{}, err
	}
	if in.Calories < 0 {
		return model.ScanEntry{}, fmt.Errorf("calories must be >= 0")
	}
	name := in.ProductName
	if name == "" {
		name = "Unknown Item"
	}

	slots := in.Activities
	if len(slots) == 0 {
		derived, err := deriveSlots(db, in.Calories)
		if err != nil {
			return model.ScanEntry{}, err
		}
		slots = derived
	}
	if len(slots) != 10 {
		return model.ScanEntry{}, fmt.Errorf("expected 10 activity slots, got %d", len(slots))
	}
	slots = lockSlots(slots, isPro)

	allowed, err := CanScan(db, isPro, now)
	if err != nil {
		return model.ScanEntry{}, err
	}
	if !allowed {
		return model.ScanEntry{}, ErrScanQuotaExceeded
	}

	entry := model.ScanEntry{
		ID:          scanID(now),
		ProductName: name,
		Calories:    in.Calories,
		Activities:  slots,
		RecordedAt:  now,
	}
	slotsJSON, err := marshalSlots(slots)
	if err != nil {
		return model.ScanEntry{}, err
	}

	if err := commitLedgerWrite(db, isPro, now, 1, 0, `
INSERT INTO day_scans(id, product_name, calories, activities_json, recorded_at)
VALUES(?, ?, ?, ?, ?)
`, entry.ID, entry.ProductName, entry.Calories, slotsJSON, entry.RecordedAt.Format(time.RFC3339)); err != nil {
		return model.ScanEntry{}, fmt.Errorf("record scan: %w", err)
	}

	if err := AppendScanRecord(db, model.ScanRecord(entry)); err != nil {
		return entry, fmt.Errorf("%w: %v", ErrArchiveAppend, err)
	}
	return entry, nil
}

// RecordActivity adds a manually logged exercise to today's ledger. A
// non-positive duration is rejected before any quota is consumed. The burn
// is computed once from the profile's current weight and the fixed MET, then
// stored.
func RecordActivity(db *sql.DB, activityType string, durationMin int, isPro bool, now time.Time) (model.ActivityLogEntry, error) {
	if durationMin <= 0 {
		return model.ActivityLogEntry{}, ErrInvalidDuration
	}
	activity, ok := burn.ActivityByKey(activityType)
	if !ok {
		return model.ActivityLogEntry{}, fmt.Errorf("unknown activity type %q", activityType)
	}
	if err := requireReconciled(db, now); err != nil {
		return model.ActivityLogEntry{}, err
	}

	allowed, err := CanLogActivity(db, isPro, now)
	if err != nil {
		return model.ActivityLogEntry{}, err
	}
	if !allowed {
		return model.ActivityLogEntry{}, ErrActivityQuotaExceeded
	}

	profile, err := LoadProfile(db)
	if err != nil {
		return model.ActivityLogEntry{}, err
	}

	entry := model.ActivityLogEntry{
		ID:             uuid.NewString(),
		ActivityType:   activity.Key,
		DurationMin:    durationMin,
		CaloriesBurned: burn.CaloriesBurned(activity.MET, profile.WeightKg, durationMin),
		RecordedAt:     now,
	}

	if err := commitLedgerWrite(db, isPro, now, 0, 1, `
INSERT INTO day_activities(id, activity_type, duration_min, calories_burned, recorded_at)
VALUES(?, ?, ?, ?, ?)
`, entry.ID, entry.ActivityType, entry.DurationMin, entry.CaloriesBurned, entry.RecordedAt.Format(time.RFC3339)); err != nil {
		return model.ActivityLogEntry{}, fmt.Errorf("record activity: %w", err)
	}

	if err := AppendActivityRecord(db, model.ActivityRecord(entry)); err != nil {
		return entry, fmt.Errorf("%w: %v", ErrArchiveAppend, err)
	}
	return entry, nil
}

// commitLedgerWrite runs the ledger insert and the free-tier usage bump as
// one transaction.
func commitLedgerWrite(db *sql.DB, isPro bool, now time.Time, scanDelta, activityDelta int, insertSQL string, args ...any) error {
	state, err := QuotaStateFor(db, now)
	if err != nil {
		return err
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	if _, err := tx.Exec(insertSQL, args...); err != nil {
		_ = tx.Rollback()
		return err
	}
	if !isPro {
		if _, err := tx.Exec(`
INSERT INTO quota_state(id, date_stamp, scan_count, activity_count)
VALUES(1, ?, ?, ?)
ON CONFLICT(id) DO UPDATE SET
  date_stamp=excluded.date_stamp,
  scan_count=excluded.scan_count,
  activity_count=excluded.activity_count
`, state.DateStamp, state.ScanCount+scanDelta, state.ActivityCount+activityDelta); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("update quota state: %w", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

// TodayScans lists today's scans most-recent-first.
func TodayScans(db *sql.DB) ([]model.ScanEntry, error) {
	rows, err := db.Query(`
SELECT id, product_name, calories, activities_json, recorded_at
FROM day_scans
ORDER BY seq DESC
`)
	if err != nil {
		return nil, fmt.Errorf("list day scans: %w", err)
	}
	defer rows.Close()

	items := make([]model.ScanEntry, 0)
	for rows.Next() {
		var item model.ScanEntry
		var slotsJSON, recordedRaw string
		if err := rows.Scan(&item.ID, &item.ProductName, &item.Calories, &slotsJSON, &recordedRaw); err != nil {
			return nil, fmt.Errorf("scan day scan: %w", err)
		}
		if item.Activities, err = unmarshalSlots(slotsJSON); err != nil {
			return nil, err
		}
		if item.RecordedAt, err = parseRecordedAt(recordedRaw); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate day scans: %w", err)
	}
	return items, nil
}

// TodayActivities lists today's activity logs most-recent-first.
func TodayActivities(db *sql.DB) ([]model.ActivityLogEntry, error) {
	rows, err := db.Query(`
SELECT id, activity_type, duration_min, calories_burned, recorded_at
FROM day_activities
ORDER BY seq DESC
`)
	if err != nil {
		return nil, fmt.Errorf("list day activities: %w", err)
	}
	defer rows.Close()

	items := make([]model.ActivityLogEntry, 0)
	for rows.Next() {
		var item model.ActivityLogEntry
		var recordedRaw string
		if err := rows.Scan(&item.ID, &item.ActivityType, &item.DurationMin, &item.CaloriesBurned, &recordedRaw); err != nil {
			return nil, fmt.Errorf("scan day activity: %w", err)
		}
		if item.RecordedAt, err = parseRecordedAt(recordedRaw); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate day activities: %w", err)
	}
	return items, nil
}

// DeleteScan removes a scan from today's ledger and from the permanent
// archive. A missing id is a no-op.
func DeleteScan(db *sql.DB, id string) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("begin delete tx: %w", err)
	}
	if _, err := tx.Exec(`DELETE FROM day_scans WHERE id = ?`, id); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("delete day scan %s: %w", id, err)
	}
	if _, err := tx.Exec(`DELETE FROM scan_archive WHERE id = ?`, id); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("delete scan record %s: %w", id, err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit scan delete: %w", err)
	}
	return nil
}

// DeleteActivity removes an activity log from today's ledger and from the
// permanent archive. A missing id is a no-op.
func DeleteActivity(db *sql.DB, id string) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("begin delete tx: %w", err)
	}
	if _, err := tx.Exec(`DELETE FROM day_activities WHERE id = ?`, id); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("delete day activity %s: %w", id, err)
	}
	if _, err := tx.Exec(`DELETE FROM activity_archive WHERE id = ?`, id); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("delete activity record %s: %w", id, err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit activity delete: %w", err)
	}
	return nil
}

// ClearToday empties today's ledger and water count. The permanent archive
// is deliberately untouched: today is a view, history is permanent.
func ClearToday(db *sql.DB, now time.Time) error {
	if err := requireReconciled(db, now); err != nil {
		return err
	}
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("begin clear tx: %w", err)
	}
	for _, stmt := range []string{
		`DELETE FROM day_scans`,
		`DELETE FROM day_activities`,
		`UPDATE day_state SET water_cups = 0 WHERE id = 1`,
	} {
		if _, err := tx.Exec(stmt); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("clear today: %w", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit clear today: %w", err)
	}
	return nil
}

// TotalConsumed sums today's scanned calories.
func TotalConsumed(db *sql.DB) (int, error) {
	var total int
	if err := db.QueryRow(`SELECT COALESCE(SUM(calories), 0) FROM day_scans`).Scan(&total); err != nil {
		return 0, fmt.Errorf("sum consumed calories: %w", err)
	}
	return total, nil
}

// TotalBurned sums today's logged burn.
func TotalBurned(db *sql.DB) (int, error) {
	var total int
	if err := db.QueryRow(`SELECT COALESCE(SUM(calories_burned), 0) FROM day_activities`).Scan(&total); err != nil {
		return 0, fmt.Errorf("sum burned calories: %w", err)
	}
	return total, nil
}

// Remaining computes max(0, goal - consumed + burned): burned calories
// extend the remaining budget, floored at zero.
func Remaining(db *sql.DB) (int, error) {
	profile, err := LoadProfile(db)
	if err != nil {
		return 0, err
	}
	consumed, err := TotalConsumed(db)
	if err != nil {
		return 0, err
	}
	burned, err := TotalBurned(db)
	if err != nil {
		return 0, err
	}
	remaining := profile.DailyGoalCalories - consumed + burned
	if remaining < 0 {
		remaining = 0
	}
	return remaining, nil
}

func scanID(now time.Time) string {
	// Creation-timestamp-derived token; the uuid suffix keeps same-millisecond
	// scans distinct.
	return fmt.Sprintf("%d-%s", now.UnixMilli(), uuid.NewString()[:8])
}

// deriveSlots builds the ten burn-equivalence slots locally for entries that
// arrive without vision output, using the fixed MET table and the profile's
// current weight.
func deriveSlots(db *sql.DB, calories int) ([]model.ActivitySlot, error) {
	profile, err := LoadProfile(db)
	if err != nil {
		return nil, err
	}
	status := tierForCalories(calories)
	slots := make([]model.ActivitySlot, 0, len(burn.Activities))
	for _, a := range burn.Activities {
		minutes, err := burn.DurationToBurn(a.MET, profile.WeightKg, float64(calories))
		if err != nil {
			return nil, err
		}
		slots = append(slots, model.ActivitySlot{
			Label:   a.Label,
			Status:  status,
			Summary: fmt.Sprintf("%d minutes of %s", int(math.Round(minutes)), a.Label),
		})
	}
	return slots, nil
}

func tierForCalories(calories int) model.SlotStatus {
	switch {
	case calories <= 400:
		return model.StatusHealthy
	case calories <= 800:
		return model.StatusModerate
	default:
		return model.StatusUnhealthy
	}
}

// lockSlots applies the free-tier policy: slots beyond index 2 require pro.
func lockSlots(slots []model.ActivitySlot, isPro bool) []model.ActivitySlot {
	if isPro {
		return slots
	}
	out := make([]model.ActivitySlot, len(slots))
	copy(out, slots)
	for i := range out {
		if i > 2 {
			out[i].Status = model.StatusLocked
			out[i].Summary = "Premium feature"
		}
	}
	return out
}
