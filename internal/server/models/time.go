package models

import (
	"fmt"
	"time"

	"github.com/dmitrijs2005/healthtracker/internal/common"
)

// TimeFormat is the canonical encoding for every stored and emitted
// timestamp: UTC with fixed six-digit fractional seconds. The fixed width
// keeps stored values lexicographically ordered, which the published_at
// cursor range query relies on.
const TimeFormat = "2006-01-02T15:04:05.000000Z07:00"

// FormatTime renders t in the canonical form.
func FormatTime(t time.Time) string {
	return t.UTC().Format(TimeFormat)
}

// ParseTime parses an RFC3339 timestamp with explicit offset and normalizes
// it to UTC. The field name is carried into the error message.
func ParseTime(field, value string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: '%s' must be a valid date (RFC3339), got %q", common.ErrValidation, field, value)
	}
	return t.UTC(), nil
}
