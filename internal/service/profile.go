package service

import (
	"database/sql"
	"fmt"

	"github.com/redrazor111/burn-back/internal/model"
)

// First-launch defaults. Absence of a saved profile is not an error.
const (
	DefaultGender            = model.GenderMale
	DefaultAgeYears          = 25
	DefaultWeightKg          = 70.0
	DefaultDailyGoalCalories = 2000
)

func defaultProfile() model.Profile {
	return model.Profile{
		Gender:            DefaultGender,
		AgeYears:          DefaultAgeYears,
		WeightKg:          DefaultWeightKg,
		DailyGoalCalories: DefaultDailyGoalCalories,
	}
}

// LoadProfile reads the persisted profile, falling back to the documented
// defaults when nothing has been saved yet.
func LoadProfile(db *sql.DB) (model.Profile, error) {
	var p model.Profile
	err := db.QueryRow(`
SELECT gender, age_years, weight_kg, daily_goal_calories
FROM profile
WHERE id = 1
`).Scan(&p.Gender, &p.AgeYears, &p.WeightKg, &p.DailyGoalCalories)
	if err == sql.ErrNoRows {
		return defaultProfile(), nil
	}
	if err != nil {
		return model.Profile{}, fmt.Errorf("load profile: %w", err)
	}
	return p, nil
}

// SaveProfile validates every field before touching storage; a single bad
// field rejects the whole update and leaves the prior profile untouched.
func SaveProfile(db *sql.DB, p model.Profile) error {
	if err := validateProfile(p); err != nil {
		return err
	}
	_, err := db.Exec(`
INSERT INTO profile(id, gender, age_years, weight_kg, daily_goal_calories, updated_at)
VALUES(1, ?, ?, ?, ?, CURRENT_TIMESTAMP)
ON CONFLICT(id) DO UPDATE SET
  gender=excluded.gender,
  age_years=excluded.age_years,
  weight_kg=excluded.weight_kg,
  daily_goal_calories=excluded.daily_goal_calories,
  updated_at=excluded.updated_at
`, p.Gender, p.AgeYears, p.WeightKg, p.DailyGoalCalories)
	if err != nil {
		return fmt.Errorf("save profile: %w", err)
	}
	return nil
}

func validateProfile(p model.Profile) error {
	if p.Gender != model.GenderMale && p.Gender != model.GenderFemale {
		return &ValidationError{Field: "gender", Reason: "must be male or female"}
	}
	if p.AgeYears < 1 || p.AgeYears > 120 {
		return &ValidationError{Field: "age", Reason: "must be between 1 and 120"}
	}
	if p.WeightKg < 30 {
		return &ValidationError{Field: "weight", Reason: "must be at least 30 kg"}
	}
	if p.DailyGoalCalories < 500 || p.DailyGoalCalories > 10000 {
		return &ValidationError{Field: "daily goal", Reason: "must be between 500 and 10000 calories"}
	}
	return nil
}
