package service

import "time"

// DayKey is a locale-local calendar day ("2006-01-02"). It is the single
// rollover comparison key: the ledger, the quota counters and the history
// grouping all derive their notion of "today" from DayKeyOf so day
// boundaries cannot drift between components.
type DayKey string

func DayKeyOf(t time.Time) DayKey {
	return DayKey(t.Local().Format("2006-01-02"))
}

func (d DayKey) String() string {
	return string(d)
}
