package api

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/retail-insights/transactions-api/internal/domain"
)

const dateLayout = "2006-01-02"

// parseDateRange reads data_inicio/data_fim, applying the window defaults
// for omitted values. Both bounds are validated against the supported
// window before any query runs.
func parseDateRange(r *http.Request) (domain.DateRange, error) {
	dr := domain.DefaultRange()

	if v := r.URL.Query().Get("data_inicio"); v != "" {
		from, err := time.ParseInLocation(dateLayout, v, time.UTC)
		if err != nil {
			return dr, fmt.Errorf("%w: data_inicio must be an ISO date (YYYY-MM-DD)", domain.ErrInvalidParam)
		}
		dr.From = from
	}
	if v := r.URL.Query().Get("data_fim"); v != "" {
		to, err := time.ParseInLocation(dateLayout, v, time.UTC)
		if err != nil {
			return dr, fmt.Errorf("%w: data_fim must be an ISO date (YYYY-MM-DD)", domain.ErrInvalidParam)
		}
		dr.To = to
	}

	return dr, dr.Validate()
}

// parseListQuery reads pagination and filter parameters for the listing
// endpoint.
func parseListQuery(r *http.Request) (domain.ListQuery, error) {
	q := domain.ListQuery{
		Skip:      0,
		Limit:     domain.DefaultLimit,
		Pais:      r.URL.Query().Get("pais"),
		Categoria: r.URL.Query().Get("categoria"),
	}

	if v := r.URL.Query().Get("skip"); v != "" {
		skip, err := strconv.Atoi(v)
		if err != nil {
			return q, fmt.Errorf("%w: skip must be an integer", domain.ErrInvalidParam)
		}
		q.Skip = skip
	}
	if v := r.URL.Query().Get("limit"); v != "" {
		limit, err := strconv.Atoi(v)
		if err != nil {
			return q, fmt.Errorf("%w: limit must be an integer", domain.ErrInvalidParam)
		}
		q.Limit = limit
	}

	dr, err := parseDateRange(r)
	if err != nil {
		return q, err
	}
	q.Range = dr

	return q, q.Validate()
}
