package http

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"tally/internal/core"
)

// parseYearMonth extracts year and month from query parameters.
// Returns current year/month as defaults if not provided or invalid.
func parseYearMonth(r *http.Request) (year, month int) {
	now := time.Now()
	year = now.Year()
	month = int(now.Month())

	if v := strings.TrimSpace(r.URL.Query().Get("year")); v != "" {
		if y, err := strconv.Atoi(v); err == nil {
			year = y
		}
	}
	if v := strings.TrimSpace(r.URL.Query().Get("month")); v != "" {
		if m, err := strconv.Atoi(v); err == nil {
			month = m
		}
	}

	return year, month
}

// parseFilterQuery builds the filter spec and ordering from query
// parameters. Unknown sort keys fall back to date ascending; bad date
// bounds are reported, not silently dropped.
func parseFilterQuery(r *http.Request) (core.FilterSpec, core.SortKey, core.SortOrder, error) {
	q := r.URL.Query()

	spec := core.FilterSpec{
		Kind:       strings.ToLower(strings.TrimSpace(q.Get("kind"))),
		Category:   strings.TrimSpace(q.Get("category")),
		SearchText: strings.TrimSpace(q.Get("q")),
	}

	if v := strings.TrimSpace(q.Get("from")); v != "" {
		d, err := core.ParseDate(v)
		if err != nil {
			return core.FilterSpec{}, "", "", err
		}
		spec.From = d
	}
	if v := strings.TrimSpace(q.Get("to")); v != "" {
		d, err := core.ParseDate(v)
		if err != nil {
			return core.FilterSpec{}, "", "", err
		}
		spec.To = d
	}

	by := core.SortByDate
	switch strings.ToLower(strings.TrimSpace(q.Get("sort"))) {
	case "amount":
		by = core.SortByAmount
	case "category":
		by = core.SortByCategory
	}

	order := core.Asc
	if strings.ToLower(strings.TrimSpace(q.Get("order"))) == "desc" {
		order = core.Desc
	}

	return spec, by, order, nil
}
