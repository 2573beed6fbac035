package service

import (
	"database/sql"
	"time"
)

type TodayStatus struct {
	Date             string `json:"date"`
	GoalCalories     int    `json:"goal_calories"`
	ConsumedCalories int    `json:"consumed_calories"`
	BurnedCalories   int    `json:"burned_calories"`
	Remaining        int    `json:"remaining_calories"`
	ScanCount        int    `json:"scan_count"`
	ActivityCount    int    `json:"activity_count"`
	WaterCups        int    `json:"water_cups"`
}

// Today summarizes the reconciled day: goal, running balance and counts.
func Today(db *sql.DB, now time.Time) (*TodayStatus, error) {
	if err := requireReconciled(db, now); err != nil {
		return nil, err
	}
	profile, err := LoadProfile(db)
	if err != nil {
		return nil, err
	}

	status := &TodayStatus{
		Date:         DayKeyOf(now).String(),
		GoalCalories: profile.DailyGoalCalories,
	}
	if status.ConsumedCalories, err = TotalConsumed(db); err != nil {
		return nil, err
	}
	if status.BurnedCalories, err = TotalBurned(db); err != nil {
		return nil, err
	}
	if status.Remaining, err = Remaining(db); err != nil {
		return nil, err
	}
	if status.WaterCups, err = WaterCups(db); err != nil {
		return nil, err
	}

	scans, err := TodayScans(db)
	if err != nil {
		return nil, err
	}
	status.ScanCount = len(scans)

	activities, err := TodayActivities(db)
	if err != nil {
		return nil, err
	}
	status.ActivityCount = len(activities)

	return status, nil
}
