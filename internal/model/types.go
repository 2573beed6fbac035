package model

import "time"

type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
)

// Profile is the user's physiological profile and daily calorie goal.
type Profile struct {
	Gender            Gender  `json:"gender"`
	AgeYears          int     `json:"age_years"`
	WeightKg          float64 `json:"weight_kg"`
	DailyGoalCalories int     `json:"daily_goal_calories"`
}

type SlotStatus string

const (
	StatusHealthy   SlotStatus = "healthy"
	StatusModerate  SlotStatus = "moderate"
	StatusUnhealthy SlotStatus = "unhealthy"
	StatusLocked    SlotStatus = "locked"
)

// ActivitySlot is one of the ten burn-equivalence slots attached to a scan.
type ActivitySlot struct {
	Label   string     `json:"label"`
	Status  SlotStatus `json:"status"`
	Summary string     `json:"summary"`
}

// ScanEntry is a scanned meal in today's ledger.
type ScanEntry struct {
	ID          string         `json:"id"`
	ProductName string         `json:"product_name"`
	Calories    int            `json:"calories"`
	Activities  []ActivitySlot `json:"activities"`
	RecordedAt  time.Time      `json:"recorded_at"`
}

// ActivityLogEntry is a manually logged exercise in today's ledger. The
// burned calories are derived once at record time and stored.
type ActivityLogEntry struct {
	ID             string    `json:"id"`
	ActivityType   string    `json:"activity_type"`
	DurationMin    int       `json:"duration_min"`
	CaloriesBurned int       `json:"calories_burned"`
	RecordedAt     time.Time `json:"recorded_at"`
}

// ScanRecord is the permanent archived form of a scan; it survives the daily
// ledger rollover.
type ScanRecord struct {
	ID          string         `json:"id"`
	ProductName string         `json:"product_name"`
	Calories    int            `json:"calories"`
	Activities  []ActivitySlot `json:"activities"`
	RecordedAt  time.Time      `json:"recorded_at"`
}

// ActivityRecord is the permanent archived form of an activity log.
type ActivityRecord struct {
	ID             string    `json:"id"`
	ActivityType   string    `json:"activity_type"`
	DurationMin    int       `json:"duration_min"`
	CaloriesBurned int       `json:"calories_burned"`
	RecordedAt     time.Time `json:"recorded_at"`
}

// QuotaState tracks free-tier usage counters for the current day.
type QuotaState struct {
	DateStamp     string `json:"date_stamp"`
	ScanCount     int    `json:"scan_count"`
	ActivityCount int    `json:"activity_count"`
}
