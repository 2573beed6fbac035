// Package burn implements MET-based energy expenditure math. Everything here
// is pure computation over values the caller supplies.
package burn

import (
	"fmt"
	"math"
	"strings"
)

// Activity pairs a fixed exercise type with its MET (Metabolic Equivalent of
// Task) constant. The ten entries mirror the ten burn-equivalence slots
// attached to every meal scan, in slot order.
type Activity struct {
	Key   string
	Label string
	MET   float64
}

var Activities = []Activity{
	{Key: "running", Label: "Running", MET: 10.0},
	{Key: "walking", Label: "Walking", MET: 3.5},
	{Key: "weight_training", Label: "Weight Training", MET: 6.0},
	{Key: "cycling", Label: "Cycling", MET: 7.5},
	{Key: "swimming", Label: "Swimming", MET: 8.0},
	{Key: "hiit", Label: "HIIT", MET: 11.0},
	{Key: "yoga", Label: "Yoga", MET: 2.5},
	{Key: "rowing", Label: "Rowing", MET: 7.0},
	{Key: "jump_rope", Label: "Jump Rope", MET: 12.0},
	{Key: "hiking", Label: "Hiking", MET: 6.5},
}

// ActivityByKey looks up a fixed activity by its type key.
func ActivityByKey(key string) (Activity, bool) {
	key = strings.ToLower(strings.TrimSpace(key))
	for _, a := range Activities {
		if a.Key == key {
			return a, true
		}
	}
	return Activity{}, false
}

// ActivityKeys returns the fixed type keys in slot order.
func ActivityKeys() []string {
	keys := make([]string, 0, len(Activities))
	for _, a := range Activities {
		keys = append(keys, a.Key)
	}
	return keys
}

// CaloriesPerMinute converts a MET value and body weight into kcal burned
// per minute: (MET * kg * 3.5) / 200.
func CaloriesPerMinute(met, weightKg float64) float64 {
	return met * weightKg * 3.5 / 200
}

// DurationToBurn returns the minutes of an activity needed to burn
// targetCalories. Non-positive MET or weight is an error, never a silent
// division by zero.
func DurationToBurn(met, weightKg, targetCalories float64) (float64, error) {
	if met <= 0 {
		return 0, fmt.Errorf("met must be > 0")
	}
	if weightKg <= 0 {
		return 0, fmt.Errorf("weight must be > 0")
	}
	if targetCalories < 0 {
		return 0, fmt.Errorf("target calories must be >= 0")
	}
	return targetCalories / CaloriesPerMinute(met, weightKg), nil
}

// CaloriesBurned returns the whole-calorie burn for a duration, rounding
// half away from zero (514.5 -> 515).
func CaloriesBurned(met, weightKg float64, durationMin int) int {
	return int(math.Round(CaloriesPerMinute(met, weightKg) * float64(durationMin)))
}
