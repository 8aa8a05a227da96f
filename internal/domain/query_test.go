package domain

import (
	"errors"
	"testing"
	"time"
)

func day(month time.Month, d int) time.Time {
	return time.Date(2011, month, d, 0, 0, 0, 0, time.UTC)
}

func TestDateRangeValidate(t *testing.T) {
	t.Run("DefaultRangeValid", func(t *testing.T) {
		if err := DefaultRange().Validate(); err != nil {
			t.Errorf("default range must validate: %v", err)
		}
	})

	t.Run("SingleDay", func(t *testing.T) {
		r := DateRange{From: day(time.June, 15), To: day(time.June, 15)}
		if err := r.Validate(); err != nil {
			t.Errorf("single-day range must validate: %v", err)
		}
	})

	t.Run("Inverted", func(t *testing.T) {
		r := DateRange{From: day(time.June, 15), To: day(time.June, 14)}
		if !errors.Is(r.Validate(), ErrInvalidRange) {
			t.Error("expected ErrInvalidRange for inverted range")
		}
	})

	t.Run("BeforeWindow", func(t *testing.T) {
		r := DateRange{From: time.Date(2011, time.January, 3, 0, 0, 0, 0, time.UTC), To: day(time.June, 1)}
		if !errors.Is(r.Validate(), ErrOutOfWindow) {
			t.Error("expected ErrOutOfWindow for date before window")
		}
	})

	t.Run("AfterWindow", func(t *testing.T) {
		r := DateRange{From: day(time.June, 1), To: time.Date(2012, time.January, 1, 0, 0, 0, 0, time.UTC)}
		if !errors.Is(r.Validate(), ErrOutOfWindow) {
			t.Error("expected ErrOutOfWindow for date after window")
		}
	})

	t.Run("WindowEdges", func(t *testing.T) {
		r := DateRange{From: WindowStart, To: WindowEnd}
		if err := r.Validate(); err != nil {
			t.Errorf("window edges must validate: %v", err)
		}
	})
}

func TestListQueryValidate(t *testing.T) {
	valid := ListQuery{Skip: 0, Limit: 100, Range: DefaultRange()}
	if err := valid.Validate(); err != nil {
		t.Errorf("valid query must validate: %v", err)
	}

	cases := []struct {
		name string
		q    ListQuery
	}{
		{"NegativeSkip", ListQuery{Skip: -1, Limit: 100, Range: DefaultRange()}},
		{"ZeroLimit", ListQuery{Skip: 0, Limit: 0, Range: DefaultRange()}},
		{"LimitAboveMax", ListQuery{Skip: 0, Limit: MaxLimit + 1, Range: DefaultRange()}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if !errors.Is(c.q.Validate(), ErrInvalidParam) {
				t.Errorf("expected ErrInvalidParam for %+v", c.q)
			}
		})
	}

	t.Run("MaxLimitAllowed", func(t *testing.T) {
		q := ListQuery{Skip: 0, Limit: MaxLimit, Range: DefaultRange()}
		if err := q.Validate(); err != nil {
			t.Errorf("limit %d must be allowed: %v", MaxLimit, err)
		}
	})
}
