package rental

import (
	"time"

	"closet-rental/internal/pkg/clock"
)

// ValidateRange checks a candidate range against today's date and the item's
// current locks. Rules are applied in order and the first failure is returned.
func ValidateRange(candidate DateRange, today time.Time, locks []DateRange) error {
	today = clock.DateOf(today)

	if candidate.Start().Before(today) {
		return ErrPastDate
	}
	if !candidate.IsWellFormed() {
		return ErrInvalidRange
	}
	for _, lock := range locks {
		if candidate.Overlaps(lock) {
			return &ConflictError{Range: lock}
		}
	}
	return nil
}
