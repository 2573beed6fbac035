package service_test

import (
	"testing"
	"time"

	"github.com/redrazor111/burn-back/internal/service"
)

func TestQuotaCountersStartAtZero(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	defer db.Close()

	now := time.Date(2026, 3, 14, 9, 0, 0, 0, time.Local)
	state, err := service.QuotaStateFor(db, now)
	if err != nil {
		t.Fatalf("quota state: %v", err)
	}
	if state.ScanCount != 0 || state.ActivityCount != 0 {
		t.Fatalf("expected zero counters, got %+v", state)
	}
	if state.DateStamp != "2026-03-14" {
		t.Fatalf("unexpected date stamp %q", state.DateStamp)
	}
}

func TestFreeTierScanLimit(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	defer db.Close()

	now := time.Date(2026, 3, 14, 9, 0, 0, 0, time.Local)
	for i := 0; i < service.DefaultFreeScanLimit; i++ {
		ok, err := service.CanScan(db, false, now)
		if err != nil {
			t.Fatalf("can scan: %v", err)
		}
		if !ok {
			t.Fatalf("expected scan %d to be allowed", i+1)
		}
		if err := service.RecordScanUsage(db, false, now); err != nil {
			t.Fatalf("record scan usage: %v", err)
		}
	}

	ok, err := service.CanScan(db, false, now)
	if err != nil {
		t.Fatalf("can scan: %v", err)
	}
	if ok {
		t.Fatalf("expected scan to be denied after %d uses", service.DefaultFreeScanLimit)
	}

	// Pro users bypass the limit regardless of counters.
	ok, err = service.CanScan(db, true, now)
	if err != nil {
		t.Fatalf("can scan pro: %v", err)
	}
	if !ok {
		t.Fatalf("expected pro scan to be allowed")
	}
}

func TestProUsageDoesNotIncrementCounters(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	defer db.Close()

	now := time.Date(2026, 3, 14, 9, 0, 0, 0, time.Local)
	for i := 0; i < 10; i++ {
		if err := service.RecordScanUsage(db, true, now); err != nil {
			t.Fatalf("record scan usage: %v", err)
		}
		if err := service.RecordActivityUsage(db, true, now); err != nil {
			t.Fatalf("record activity usage: %v", err)
		}
	}

	state, err := service.QuotaStateFor(db, now)
	if err != nil {
		t.Fatalf("quota state: %v", err)
	}
	if state.ScanCount != 0 || state.ActivityCount != 0 {
		t.Fatalf("pro usage incremented counters: %+v", state)
	}
}

func TestQuotaResetsOnDayChange(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	defer db.Close()

	day1 := time.Date(2026, 3, 14, 9, 0, 0, 0, time.Local)
	day2 := time.Date(2026, 3, 15, 0, 5, 0, 0, time.Local)

	for i := 0; i < service.DefaultFreeScanLimit; i++ {
		if err := service.RecordScanUsage(db, false, day1); err != nil {
			t.Fatalf("record scan usage: %v", err)
		}
	}
	if ok, _ := service.CanScan(db, false, day1); ok {
		t.Fatalf("expected limit reached on day 1")
	}

	ok, err := service.CanScan(db, false, day2)
	if err != nil {
		t.Fatalf("can scan day 2: %v", err)
	}
	if !ok {
		t.Fatalf("expected counters to read as zero on a new day")
	}

	state, err := service.QuotaStateFor(db, day2)
	if err != nil {
		t.Fatalf("quota state: %v", err)
	}
	if state.ScanCount != 0 {
		t.Fatalf("expected scan count 0 on day 2, got %d", state.ScanCount)
	}
}

func TestQuotaLimitsAreConfigurable(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	defer db.Close()

	if err := service.SetConfig(db, service.ConfigFreeScanLimit, "1"); err != nil {
		t.Fatalf("set config: %v", err)
	}

	now := time.Date(2026, 3, 14, 9, 0, 0, 0, time.Local)
	if err := service.RecordScanUsage(db, false, now); err != nil {
		t.Fatalf("record scan usage: %v", err)
	}
	if ok, _ := service.CanScan(db, false, now); ok {
		t.Fatalf("expected configured limit of 1 to deny second scan")
	}
}
