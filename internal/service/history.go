package service

import (
	"database/sql"
	"fmt"
	"sort"
	"time"

	"github.com/redrazor111/burn-back/internal/model"
)

// The history archive is the permanent record of every ledger-affecting
// event. It never participates in the daily rollover; entries leave only
// through an explicit delete or clear. Retention is bounded: each archive is
// truncated to the most recent max_history entries on append.

// AppendScanRecord stores a permanent scan record and truncates the archive
// to the configured cap, dropping the oldest entries first.
func AppendScanRecord(db *sql.DB, rec model.ScanRecord) error {
	slotsJSON, err := marshalSlots(rec.Activities)
	if err != nil {
		return err
	}
	limit, err := MaxHistory(db)
	if err != nil {
		return err
	}
	if _, err := db.Exec(`
INSERT INTO scan_archive(id, product_name, calories, activities_json, recorded_at)
VALUES(?, ?, ?, ?, ?)
`, rec.ID, rec.ProductName, rec.Calories, slotsJSON, rec.RecordedAt.Format(time.RFC3339)); err != nil {
		return fmt.Errorf("append scan record: %w", err)
	}
	return truncateArchive(db, "scan_archive", limit)
}

// AppendActivityRecord stores a permanent activity record under the same
// retention policy.
func AppendActivityRecord(db *sql.DB, rec model.ActivityRecord) error {
	limit, err := MaxHistory(db)
	if err != nil {
		return err
	}
	if _, err := db.Exec(`
INSERT INTO activity_archive(id, activity_type, duration_min, calories_burned, recorded_at)
VALUES(?, ?, ?, ?, ?)
`, rec.ID, rec.ActivityType, rec.DurationMin, rec.CaloriesBurned, rec.RecordedAt.Format(time.RFC3339)); err != nil {
		return fmt.Errorf("append activity record: %w", err)
	}
	return truncateArchive(db, "activity_archive", limit)
}

func truncateArchive(db *sql.DB, table string, limit int) error {
	query := fmt.Sprintf(`
DELETE FROM %s
WHERE seq NOT IN (SELECT seq FROM %s ORDER BY seq DESC LIMIT ?)
`, table, table)
	if _, err := db.Exec(query, limit); err != nil {
		return fmt.Errorf("truncate %s: %w", table, err)
	}
	return nil
}

// ScanRecords lists archived scans most-recent-first.
func ScanRecords(db *sql.DB) ([]model.ScanRecord, error) {
	rows, err := db.Query(`
SELECT id, product_name, calories, activities_json, recorded_at
FROM scan_archive
ORDER BY seq DESC
`)
	if err != nil {
		return nil, fmt.Errorf("list scan records: %w", err)
	}
	defer rows.Close()

	items := make([]model.ScanRecord, 0)
	for rows.Next() {
		var item model.ScanRecord
		var slotsJSON, recordedRaw string
		if err := rows.Scan(&item.ID, &item.ProductName, &item.Calories, &slotsJSON, &recordedRaw); err != nil {
			return nil, fmt.Errorf("scan archive row: %w", err)
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
		return nil, fmt.Errorf("iterate scan records: %w", err)
	}
	return items, nil
}

// ActivityRecords lists archived activity logs most-recent-first.
func ActivityRecords(db *sql.DB) ([]model.ActivityRecord, error) {
	rows, err := db.Query(`
SELECT id, activity_type, duration_min, calories_burned, recorded_at
FROM activity_archive
ORDER BY seq DESC
`)
	if err != nil {
		return nil, fmt.Errorf("list activity records: %w", err)
	}
	defer rows.Close()

	items := make([]model.ActivityRecord, 0)
	for rows.Next() {
		var item model.ActivityRecord
		var recordedRaw string
		if err := rows.Scan(&item.ID, &item.ActivityType, &item.DurationMin, &item.CaloriesBurned, &recordedRaw); err != nil {
			return nil, fmt.Errorf("activity archive row: %w", err)
		}
		if item.RecordedAt, err = parseRecordedAt(recordedRaw); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate activity records: %w", err)
	}
	return items, nil
}

// RemoveScanRecord deletes one archived scan. A missing id is a no-op.
func RemoveScanRecord(db *sql.DB, id string) error {
	if _, err := db.Exec(`DELETE FROM scan_archive WHERE id = ?`, id); err != nil {
		return fmt.Errorf("remove scan record %s: %w", id, err)
	}
	return nil
}

// RemoveActivityRecord deletes one archived activity log. A missing id is a
// no-op.
func RemoveActivityRecord(db *sql.DB, id string) error {
	if _, err := db.Exec(`DELETE FROM activity_archive WHERE id = ?`, id); err != nil {
		return fmt.Errorf("remove activity record %s: %w", id, err)
	}
	return nil
}

// ClearHistory empties both archives. Destructive and irreversible; the CLI
// asks for an explicit flag before calling this.
func ClearHistory(db *sql.DB) error {
	for _, stmt := range []string{`DELETE FROM scan_archive`, `DELETE FROM activity_archive`} {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("clear history: %w", err)
		}
	}
	return nil
}

// UnknownDayGroup buckets records whose timestamp failed to parse; display
// code treats it like any other group rather than failing.
const UnknownDayGroup = "Unknown"

type ScanDayGroup struct {
	Day           string             `json:"day"`
	Records       []model.ScanRecord `json:"records"`
	TotalCalories int                `json:"total_calories"`
}

type ActivityDayGroup struct {
	Day         string                 `json:"day"`
	Records     []model.ActivityRecord `json:"records"`
	TotalBurned int                    `json:"total_burned"`
}

// GroupScanRecordsByDay projects the scan archive into per-day buckets,
// newest day first.
func GroupScanRecordsByDay(db *sql.DB) ([]ScanDayGroup, error) {
	records, err := scanRecordsRaw(db)
	if err != nil {
		return nil, err
	}
	byDay := map[string]*ScanDayGroup{}
	for _, r := range records {
		key := displayDayKey(r.recordedRaw)
		g, ok := byDay[key]
		if !ok {
			g = &ScanDayGroup{Day: key}
			byDay[key] = g
		}
		g.Records = append(g.Records, r.record)
		g.TotalCalories += r.record.Calories
	}
	groups := make([]ScanDayGroup, 0, len(byDay))
	for _, g := range byDay {
		groups = append(groups, *g)
	}
	sort.Slice(groups, func(i, j int) bool { return groups[i].Day > groups[j].Day })
	return groups, nil
}

// GroupActivityRecordsByDay projects the activity archive into per-day
// buckets with an aggregate burn total, newest day first.
func GroupActivityRecordsByDay(db *sql.DB) ([]ActivityDayGroup, error) {
	rows, err := db.Query(`
SELECT id, activity_type, duration_min, calories_burned, recorded_at
FROM activity_archive
ORDER BY seq DESC
`)
	if err != nil {
		return nil, fmt.Errorf("list activity records: %w", err)
	}
	defer rows.Close()

	byDay := map[string]*ActivityDayGroup{}
	for rows.Next() {
		var item model.ActivityRecord
		var recordedRaw string
		if err := rows.Scan(&item.ID, &item.ActivityType, &item.DurationMin, &item.CaloriesBurned, &recordedRaw); err != nil {
			return nil, fmt.Errorf("activity archive row: %w", err)
		}
		item.RecordedAt, _ = time.Parse(time.RFC3339, recordedRaw)

		key := displayDayKey(recordedRaw)
		g, ok := byDay[key]
		if !ok {
			g = &ActivityDayGroup{Day: key}
			byDay[key] = g
		}
		g.Records = append(g.Records, item)
		g.TotalBurned += item.CaloriesBurned
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate activity records: %w", err)
	}

	groups := make([]ActivityDayGroup, 0, len(byDay))
	for _, g := range byDay {
		groups = append(groups, *g)
	}
	sort.Slice(groups, func(i, j int) bool { return groups[i].Day > groups[j].Day })
	return groups, nil
}

type rawScanRecord struct {
	record      model.ScanRecord
	recordedRaw string
}

// scanRecordsRaw keeps the raw timestamp string alongside the parsed record
// so malformed timestamps can be bucketed instead of dropped.
func scanRecordsRaw(db *sql.DB) ([]rawScanRecord, error) {
	rows, err := db.Query(`
SELECT id, product_name, calories, activities_json, recorded_at
FROM scan_archive
ORDER BY seq DESC
`)
	if err != nil {
		return nil, fmt.Errorf("list scan records: %w", err)
	}
	defer rows.Close()

	items := make([]rawScanRecord, 0)
	for rows.Next() {
		var item model.ScanRecord
		var slotsJSON, recordedRaw string
		if err := rows.Scan(&item.ID, &item.ProductName, &item.Calories, &slotsJSON, &recordedRaw); err != nil {
			return nil, fmt.Errorf("scan archive row: %w", err)
		}
		if item.Activities, err = unmarshalSlots(slotsJSON); err != nil {
			return nil, err
		}
		item.RecordedAt, _ = time.Parse(time.RFC3339, recordedRaw)
		items = append(items, rawScanRecord{record: item, recordedRaw: recordedRaw})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate scan records: %w", err)
	}
	return items, nil
}

func displayDayKey(recordedRaw string) string {
	t, err := time.Parse(time.RFC3339, recordedRaw)
	if err != nil {
		return UnknownDayGroup
	}
	return t.Local().Format("2006/01/02")
}
