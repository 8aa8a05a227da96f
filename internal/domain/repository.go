// Package domain defines the core types and interfaces of the
// transactions reporting API.
package domain

import "context"

// Repository is the read-only query surface over the transactions table.
// Implementations own connection checkout and release; every call acquires
// a pooled connection for its duration and returns it on all exit paths.
type Repository interface {
	// ListTransactions returns a contiguous, insertion-ordered slice of the
	// filtered result set. A filter combination that yields no rows is
	// ErrNotFound, not an empty list.
	ListTransactions(ctx context.Context, q ListQuery) ([]*Transaction, error)

	// Summary aggregates all transactions in the range. Zero matching rows
	// is ErrNotFound.
	Summary(ctx context.Context, r DateRange) (*Summary, error)

	// SummaryByCategory returns one aggregate row per distinct product
	// category within the range, ordered by total value descending then
	// category ascending. An empty group set is a valid empty slice.
	SummaryByCategory(ctx context.Context, r DateRange) ([]*CategorySummary, error)

	// SummaryByCountry is the per-country analogue, with distinct customer
	// counts in place of summed quantities.
	SummaryByCountry(ctx context.Context, r DateRange) ([]*CountrySummary, error)

	// Ping verifies database reachability for health checks.
	Ping(ctx context.Context) error

	Close() error
}
