package service_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/redrazor111/burn-back/internal/model"
	"github.com/redrazor111/burn-back/internal/service"
)

func TestArchiveCapKeepsMostRecent(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	defer db.Close()

	if err := service.SetConfig(db, service.ConfigMaxHistory, "5"); err != nil {
		t.Fatalf("set config: %v", err)
	}

	base := time.Date(2026, 3, 10, 12, 0, 0, 0, time.Local)
	for i := 0; i < 10; i++ {
		rec := model.ScanRecord{
			ID:          fmt.Sprintf("rec-%02d", i),
			ProductName: fmt.Sprintf("Meal %d", i),
			Calories:    100 + i,
			RecordedAt:  base.Add(time.Duration(i) * time.Minute),
		}
		if err := service.AppendScanRecord(db, rec); err != nil {
			t.Fatalf("append record %d: %v", i, err)
		}
	}

	records, err := service.ScanRecords(db)
	if err != nil {
		t.Fatalf("scan records: %v", err)
	}
	if len(records) != 5 {
		t.Fatalf("expected archive capped at 5, got %d", len(records))
	}
	for i, rec := range records {
		want := fmt.Sprintf("rec-%02d", 9-i)
		if rec.ID != want {
			t.Fatalf("position %d: expected %s, got %s", i, want, rec.ID)
		}
	}
}

func TestActivityArchiveCap(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	defer db.Close()

	if err := service.SetConfig(db, service.ConfigMaxHistory, "3"); err != nil {
		t.Fatalf("set config: %v", err)
	}

	base := time.Date(2026, 3, 10, 12, 0, 0, 0, time.Local)
	for i := 0; i < 6; i++ {
		rec := model.ActivityRecord{
			ID:             fmt.Sprintf("act-%02d", i),
			ActivityType:   "walking",
			DurationMin:    30,
			CaloriesBurned: 128,
			RecordedAt:     base.Add(time.Duration(i) * time.Minute),
		}
		if err := service.AppendActivityRecord(db, rec); err != nil {
			t.Fatalf("append record %d: %v", i, err)
		}
	}

	records, err := service.ActivityRecords(db)
	if err != nil {
		t.Fatalf("activity records: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("expected archive capped at 3, got %d", len(records))
	}
	if records[0].ID != "act-05" || records[2].ID != "act-03" {
		t.Fatalf("unexpected survivors: %+v", records)
	}
}

func TestGroupScanRecordsByDay(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	defer db.Close()

	times := []time.Time{
		time.Date(2026, 3, 14, 9, 0, 0, 0, time.Local),
		time.Date(2026, 3, 14, 19, 0, 0, 0, time.Local),
		time.Date(2026, 3, 15, 8, 0, 0, 0, time.Local),
	}
	for i, ts := range times {
		rec := model.ScanRecord{
			ID:          fmt.Sprintf("rec-%d", i),
			ProductName: "Meal",
			Calories:    300,
			RecordedAt:  ts,
		}
		if err := service.AppendScanRecord(db, rec); err != nil {
			t.Fatalf("append record %d: %v", i, err)
		}
	}

	groups, err := service.GroupScanRecordsByDay(db)
	if err != nil {
		t.Fatalf("group scan records: %v", err)
	}
	if len(groups) != 2 {
		t.Fatalf("expected 2 day groups, got %d", len(groups))
	}
	if groups[0].Day != "2026/03/15" || groups[1].Day != "2026/03/14" {
		t.Fatalf("expected newest day first, got %s then %s", groups[0].Day, groups[1].Day)
	}
	if groups[0].TotalCalories != 300 || groups[1].TotalCalories != 600 {
		t.Fatalf("unexpected day totals: %+v", groups)
	}
	if len(groups[1].Records) != 2 {
		t.Fatalf("expected 2 records on 2026/03/14, got %d", len(groups[1].Records))
	}
}

func TestGroupingBucketsMalformedTimestampsAsUnknown(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	defer db.Close()

	if _, err := db.Exec(`
INSERT INTO scan_archive(id, product_name, calories, activities_json, recorded_at)
VALUES('bad-ts', 'Mystery Meal', 250, '[]', 'not-a-timestamp')
`); err != nil {
		t.Fatalf("insert malformed row: %v", err)
	}
	good := model.ScanRecord{
		ID:          "good-ts",
		ProductName: "Salad",
		Calories:    180,
		RecordedAt:  time.Date(2026, 3, 14, 12, 0, 0, 0, time.Local),
	}
	if err := service.AppendScanRecord(db, good); err != nil {
		t.Fatalf("append record: %v", err)
	}

	groups, err := service.GroupScanRecordsByDay(db)
	if err != nil {
		t.Fatalf("group scan records: %v", err)
	}
	if len(groups) != 2 {
		t.Fatalf("expected 2 groups, got %+v", groups)
	}

	var foundUnknown bool
	for _, g := range groups {
		if g.Day == service.UnknownDayGroup {
			foundUnknown = true
			if len(g.Records) != 1 || g.Records[0].ID != "bad-ts" {
				t.Fatalf("unexpected unknown bucket: %+v", g)
			}
		}
	}
	if !foundUnknown {
		t.Fatalf("expected an %q group, got %+v", service.UnknownDayGroup, groups)
	}
}

func TestGroupActivityRecordsByDayAggregatesBurn(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	defer db.Close()

	day := time.Date(2026, 3, 14, 7, 0, 0, 0, time.Local)
	for i, burned := range []int{200, 150} {
		rec := model.ActivityRecord{
			ID:             fmt.Sprintf("act-%d", i),
			ActivityType:   "running",
			DurationMin:    20,
			CaloriesBurned: burned,
			RecordedAt:     day.Add(time.Duration(i) * time.Hour),
		}
		if err := service.AppendActivityRecord(db, rec); err != nil {
			t.Fatalf("append record %d: %v", i, err)
		}
	}

	groups, err := service.GroupActivityRecordsByDay(db)
	if err != nil {
		t.Fatalf("group activity records: %v", err)
	}
	if len(groups) != 1 {
		t.Fatalf("expected 1 group, got %d", len(groups))
	}
	if groups[0].Day != "2026/03/14" || groups[0].TotalBurned != 350 {
		t.Fatalf("unexpected group: %+v", groups[0])
	}
}

func TestRemoveAndClearHistory(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	defer db.Close()

	now := time.Date(2026, 3, 14, 12, 0, 0, 0, time.Local)
	if err := service.AppendScanRecord(db, model.ScanRecord{ID: "s1", ProductName: "Meal", Calories: 300, RecordedAt: now}); err != nil {
		t.Fatalf("append scan record: %v", err)
	}
	if err := service.AppendActivityRecord(db, model.ActivityRecord{ID: "a1", ActivityType: "yoga", DurationMin: 45, CaloriesBurned: 110, RecordedAt: now}); err != nil {
		t.Fatalf("append activity record: %v", err)
	}

	if err := service.RemoveScanRecord(db, "s1"); err != nil {
		t.Fatalf("remove scan record: %v", err)
	}
	if err := service.RemoveScanRecord(db, "s1"); err != nil {
		t.Fatalf("second remove should be a no-op: %v", err)
	}
	records, err := service.ScanRecords(db)
	if err != nil {
		t.Fatalf("scan records: %v", err)
	}
	if len(records) != 0 {
		t.Fatalf("expected empty scan archive, got %d", len(records))
	}

	if err := service.ClearHistory(db); err != nil {
		t.Fatalf("clear history: %v", err)
	}
	activities, err := service.ActivityRecords(db)
	if err != nil {
		t.Fatalf("activity records: %v", err)
	}
	if len(activities) != 0 {
		t.Fatalf("expected empty activity archive, got %d", len(activities))
	}
}
