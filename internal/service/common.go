package service

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/redrazor111/burn-back/internal/model"
)

func marshalSlots(slots []model.ActivitySlot) (string, error) {
	raw, err := json.Marshal(slots)
	if err != nil {
		return "", fmt.Errorf("marshal activity slots: %w", err)
	}
	return string(raw), nil
}

func unmarshalSlots(raw string) ([]model.ActivitySlot, error) {
	slots := make([]model.ActivitySlot, 0, 10)
	if err := json.Unmarshal([]byte(raw), &slots); err != nil {
		return nil, fmt.Errorf("decode activity slots: %w", err)
	}
	return slots, nil
}

func parseRecordedAt(raw string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse recorded_at: %w", err)
	}
	return t, nil
}
