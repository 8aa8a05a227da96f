package repository

import (
	"fmt"
	"strings"
	"time"

	"github.com/retail-insights/transactions-api/internal/domain"
)

// predicate is one WHERE clause term: column, operator, bind value.
// Queries are assembled from predicate lists instead of string
// interpolation so every value stays a bind parameter.
type predicate struct {
	column string
	op     string
	value  any
}

// rangePredicates translates an inclusive calendar-date range into
// timestamp bounds. The upper bound is end-exclusive on the following
// day so rows timestamped later the same day still match.
func rangePredicates(r domain.DateRange) []predicate {
	return []predicate{
		{column: `"DataFatura"`, op: ">=", value: utcDate(r.From)},
		{column: `"DataFatura"`, op: "<", value: utcDate(r.To).AddDate(0, 0, 1)},
	}
}

// listPredicates builds the full predicate set for a listing query:
// the date range always applies, country and category only when set.
func listPredicates(q domain.ListQuery) []predicate {
	preds := rangePredicates(q.Range)
	if q.Pais != "" {
		preds = append(preds, predicate{column: `"Pais"`, op: "=", value: q.Pais})
	}
	if q.Categoria != "" {
		preds = append(preds, predicate{column: `"CategoriaProduto"`, op: "=", value: q.Categoria})
	}
	return preds
}

// buildWhere renders predicates into a WHERE clause with ? placeholders
// and the matching bind arguments, in order.
func buildWhere(preds []predicate) (string, []any) {
	if len(preds) == 0 {
		return "", nil
	}
	terms := make([]string, 0, len(preds))
	args := make([]any, 0, len(preds))
	for _, p := range preds {
		terms = append(terms, fmt.Sprintf("%s %s ?", p.column, p.op))
		args = append(args, p.value)
	}
	return " WHERE " + strings.Join(terms, " AND "), args
}

// rebind converts ? placeholders to $1, $2, etc. for PostgreSQL.
func rebind(driver, query string) string {
	if driver != "postgres" {
		return query
	}

	var result []byte
	n := 1
	for i := 0; i < len(query); i++ {
		if query[i] == '?' {
			result = append(result, '$')
			result = append(result, fmt.Sprintf("%d", n)...)
			n++
		} else {
			result = append(result, query[i])
		}
	}
	return string(result)
}

// utcDate strips any time component, keeping comparisons calendar-exact.
func utcDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
