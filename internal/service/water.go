package service

import (
	"database/sql"
	"fmt"
	"time"
)

// Water cups ride on the day state and reset with the daily rollover.

func WaterCups(db *sql.DB) (int, error) {
	var cups int
	err := db.QueryRow(`SELECT water_cups FROM day_state WHERE id = 1`).Scan(&cups)
	if err == sql.ErrNoRows {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("load water cups: %w", err)
	}
	return cups, nil
}

func AddWaterCup(db *sql.DB, now time.Time) (int, error) {
	if err := requireReconciled(db, now); err != nil {
		return 0, err
	}
	if _, err := db.Exec(`UPDATE day_state SET water_cups = water_cups + 1 WHERE id = 1`); err != nil {
		return 0, fmt.Errorf("add water cup: %w", err)
	}
	return WaterCups(db)
}
