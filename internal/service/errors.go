package service

import (
	"errors"
	"fmt"
)

// Expected, recoverable conditions are sentinel errors so callers can branch
// with errors.Is instead of string matching. A free user hitting a daily cap
// is a normal event, not a bug.
var (
	ErrScanQuotaExceeded     = errors.New("daily scan quota exceeded")
	ErrActivityQuotaExceeded = errors.New("daily activity quota exceeded")
	ErrInvalidDuration       = errors.New("duration must be > 0 minutes")

	// ErrLedgerNotReady means a mutating ledger operation ran before
	// ReconcileDay stamped today. That is a programming error in the caller,
	// surfaced loudly instead of silently reconciling.
	ErrLedgerNotReady = errors.New("daily ledger not reconciled for today")

	// ErrArchiveAppend marks the accepted divergence window: the ledger write
	// committed but the permanent archive append failed. The entry stands;
	// callers report the error without rolling back the user-visible success.
	ErrArchiveAppend = errors.New("history archive append failed")
)

// ValidationError rejects a profile update as a whole; no field is partially
// applied.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}
