package service

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redrazor111/burn-back/internal/model"
)

// When the vision service returns several candidate interpretations of one
// photo, the candidates are parked here until the user confirms one. The
// pending set lives outside the ledger: no quota is consumed and nothing is
// recorded until confirmation.

const pendingScanKey = "pending_scan_candidates"

type PendingCandidate struct {
	ProductName string               `json:"product_name"`
	Calories    int                  `json:"calories"`
	Activities  []model.ActivitySlot `json:"activities"`
}

func SavePendingCandidates(db *sql.DB, candidates []PendingCandidate) error {
	if len(candidates) < 2 {
		return fmt.Errorf("pending set requires at least 2 candidates, got %d", len(candidates))
	}
	raw, err := json.Marshal(candidates)
	if err != nil {
		return fmt.Errorf("marshal pending candidates: %w", err)
	}
	return SetConfig(db, pendingScanKey, string(raw))
}

// LoadPendingCandidates returns the parked set, or an empty slice when
// nothing awaits confirmation.
func LoadPendingCandidates(db *sql.DB) ([]PendingCandidate, error) {
	raw, ok, err := GetConfig(db, pendingScanKey)
	if err != nil {
		return nil, err
	}
	if !ok {
		return []PendingCandidate{}, nil
	}
	candidates := make([]PendingCandidate, 0)
	if err := json.Unmarshal([]byte(raw), &candidates); err != nil {
		return nil, fmt.Errorf("decode pending candidates: %w", err)
	}
	return candidates, nil
}

func ClearPendingCandidates(db *sql.DB) error {
	return DeleteConfig(db, pendingScanKey)
}

// ConfirmPendingCandidate finalizes exactly one candidate into the ledger
// and clears the pending set. choice is 1-based. On quota denial the set is
// kept so the user can retry after upgrading.
func ConfirmPendingCandidate(db *sql.DB, choice int, isPro bool, now time.Time) (model.ScanEntry, error) {
	candidates, err := LoadPendingCandidates(db)
	if err != nil {
		return model.ScanEntry{}, err
	}
	if len(candidates) == 0 {
		return model.ScanEntry{}, fmt.Errorf("no scan awaiting confirmation")
	}
	if choice < 1 || choice > len(candidates) {
		return model.ScanEntry{}, fmt.Errorf("choice must be between 1 and %d", len(candidates))
	}

	picked := candidates[choice-1]
	entry, err := RecordScan(db, ScanInput{
		ProductName: picked.ProductName,
		Calories:    picked.Calories,
		Activities:  picked.Activities,
	}, isPro, now)
	if err != nil && entry.ID == "" {
		return model.ScanEntry{}, err
	}

	if clearErr := ClearPendingCandidates(db); clearErr != nil && err == nil {
		err = clearErr
	}
	return entry, err
}
