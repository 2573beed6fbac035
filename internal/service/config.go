package service

import (
	"database/sql"
	"fmt"
	"strconv"
	"strings"
)

const (
	ConfigFreeScanLimit     = "free_scan_limit"
	ConfigFreeActivityLimit = "free_activity_limit"
	ConfigMaxHistory        = "max_history"
	ConfigVisionBaseURL     = "vision_base_url"
	ConfigTier              = "tier"
)

const (
	TierFree = "free"
	TierPro  = "pro"
)

// Quota limits and the history cap are policy, not hard-coded assumptions;
// these are only the fallbacks when app_config has no override.
const (
	DefaultFreeScanLimit     = 3
	DefaultFreeActivityLimit = 5
	DefaultMaxHistory        = 500
)

func SetConfig(db *sql.DB, key, value string) error {
	key = strings.TrimSpace(strings.ToLower(key))
	if key == "" {
		return fmt.Errorf("config key is required")
	}
	_, err := db.Exec(`
INSERT INTO app_config(key, value, updated_at)
VALUES(?, ?, CURRENT_TIMESTAMP)
ON CONFLICT(key) DO UPDATE SET value=excluded.value, updated_at=excluded.updated_at
`, key, strings.TrimSpace(value))
	if err != nil {
		return fmt.Errorf("set config %q: %w", key, err)
	}
	return nil
}

func GetConfig(db *sql.DB, key string) (string, bool, error) {
	key = strings.TrimSpace(strings.ToLower(key))
	if key == "" {
		return "", false, fmt.Errorf("config key is required")
	}
	var value string
	err := db.QueryRow(`SELECT value FROM app_config WHERE key = ?`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("get config %q: %w", key, err)
	}
	return value, true, nil
}

func DeleteConfig(db *sql.DB, key string) error {
	key = strings.TrimSpace(strings.ToLower(key))
	if key == "" {
		return fmt.Errorf("config key is required")
	}
	if _, err := db.Exec(`DELETE FROM app_config WHERE key = ?`, key); err != nil {
		return fmt.Errorf("delete config %q: %w", key, err)
	}
	return nil
}

func ListConfig(db *sql.DB) (map[string]string, error) {
	rows, err := db.Query(`SELECT key, value FROM app_config ORDER BY key ASC`)
	if err != nil {
		return nil, fmt.Errorf("list config: %w", err)
	}
	defer rows.Close()
	out := map[string]string{}
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return nil, fmt.Errorf("scan config: %w", err)
		}
		out[key] = value
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate config: %w", err)
	}
	return out, nil
}

// IsPro reports whether the stored tier is pro. Unset or unrecognized
// values read as free.
func IsPro(db *sql.DB) (bool, error) {
	raw, ok, err := GetConfig(db, ConfigTier)
	if err != nil {
		return false, err
	}
	return ok && strings.EqualFold(strings.TrimSpace(raw), TierPro), nil
}

// SetTier stores the subscription tier, accepting only free or pro.
func SetTier(db *sql.DB, tier string) error {
	tier = strings.ToLower(strings.TrimSpace(tier))
	if tier != TierFree && tier != TierPro {
		return fmt.Errorf("tier must be %q or %q, got %q", TierFree, TierPro, tier)
	}
	return SetConfig(db, ConfigTier, tier)
}

func FreeScanLimit(db *sql.DB) (int, error) {
	return configPositiveInt(db, ConfigFreeScanLimit, DefaultFreeScanLimit)
}

func FreeActivityLimit(db *sql.DB) (int, error) {
	return configPositiveInt(db, ConfigFreeActivityLimit, DefaultFreeActivityLimit)
}

func MaxHistory(db *sql.DB) (int, error) {
	return configPositiveInt(db, ConfigMaxHistory, DefaultMaxHistory)
}

func configPositiveInt(db *sql.DB, key string, fallback int) (int, error) {
	raw, ok, err := GetConfig(db, key)
	if err != nil {
		return 0, err
	}
	if !ok {
		return fallback, nil
	}
	v, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || v <= 0 {
		return 0, fmt.Errorf("config %q must be a positive integer, got %q", key, raw)
	}
	return v, nil
}
