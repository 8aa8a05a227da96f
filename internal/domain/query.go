package domain

import (
	"fmt"
	"time"
)

// The dataset covers a fixed historical window. Dates outside it are
// rejected before any query runs.
var (
	WindowStart = time.Date(2011, time.January, 4, 0, 0, 0, 0, time.UTC)
	WindowEnd   = time.Date(2011, time.December, 31, 0, 0, 0, 0, time.UTC)
)

// List pagination bounds.
const (
	DefaultLimit = 100
	MaxLimit     = 1000
)

// DateRange is an inclusive DataFatura window, expressed as calendar dates.
type DateRange struct {
	From time.Time
	To   time.Time
}

// DefaultRange returns the full supported window.
func DefaultRange() DateRange {
	return DateRange{From: WindowStart, To: WindowEnd}
}

// Validate checks that both bounds fall inside the supported window and
// that the range is not inverted. An inverted range is a caller error,
// never silently corrected.
func (r DateRange) Validate() error {
	for _, d := range []time.Time{r.From, r.To} {
		if d.Before(WindowStart) || d.After(WindowEnd) {
			return fmt.Errorf("%w: %s outside %s..%s", ErrOutOfWindow,
				d.Format("2006-01-02"),
				WindowStart.Format("2006-01-02"),
				WindowEnd.Format("2006-01-02"))
		}
	}
	if r.To.Before(r.From) {
		return ErrInvalidRange
	}
	return nil
}

// ListQuery describes one filtered listing request.
type ListQuery struct {
	Skip  int
	Limit int

	// Optional exact-match predicates; empty means not applied.
	Pais      string
	Categoria string

	Range DateRange
}

// Validate checks pagination bounds and the date range.
func (q ListQuery) Validate() error {
	if q.Skip < 0 {
		return fmt.Errorf("%w: skip must be >= 0", ErrInvalidParam)
	}
	if q.Limit < 1 || q.Limit > MaxLimit {
		return fmt.Errorf("%w: limit must be between 1 and %d", ErrInvalidParam, MaxLimit)
	}
	return q.Range.Validate()
}
