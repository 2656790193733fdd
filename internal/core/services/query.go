package services

import (
	"fmt"
	"time"

	"github.com/cleanit/cleanit_admin/internal/apperrors"
	"github.com/cleanit/cleanit_admin/internal/core/domain"
	"github.com/cleanit/cleanit_admin/internal/core/metrics"
	"github.com/cleanit/cleanit_admin/internal/dto"
)

const dayLayout = "2006-01-02"

// parseDay parses a YYYY-MM-DD query value as local midnight. Empty means unset.
func parseDay(raw, field string, loc *time.Location) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}
	t, err := time.ParseInLocation(dayLayout, raw, loc)
	if err != nil {
		return nil, fmt.Errorf("%w: %s must be YYYY-MM-DD", apperrors.ErrValidation, field)
	}
	return &t, nil
}

// parseStatus validates an optional status filter.
func parseStatus(raw string) (domain.JobStatus, error) {
	if raw == "" {
		return "", nil
	}
	st, err := domain.ParseJobStatus(raw)
	if err != nil {
		return "", fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
	}
	return st, nil
}

// analyticsFilters converts query parameters into the metrics filter stage inputs.
func analyticsFilters(q dto.AnalyticsQuery, loc *time.Location) (metrics.JobFilter, metrics.ReviewFilter, error) {
	status, err := parseStatus(q.Status)
	if err != nil {
		return metrics.JobFilter{}, metrics.ReviewFilter{}, err
	}
	from, err := parseDay(q.From, "from", loc)
	if err != nil {
		return metrics.JobFilter{}, metrics.ReviewFilter{}, err
	}
	to, err := parseDay(q.To, "to", loc)
	if err != nil {
		return metrics.JobFilter{}, metrics.ReviewFilter{}, err
	}
	rng := metrics.DateRange{From: from, To: to}

	jf := metrics.JobFilter{
		Status:     status,
		Range:      rng,
		ClientID:   q.ClientID,
		BuildingID: q.BuildingID,
		WorkerID:   q.WorkerID,
		Search:     q.Search,
	}
	rf := metrics.ReviewFilter{
		BuildingID: q.BuildingID,
		WorkerID:   q.WorkerID,
		ClientID:   q.ClientID,
		MinRating:  q.MinRating,
		Range:      rng,
		Search:     q.Search,
	}
	return jf, rf, nil
}

// dayBounds converts the from/to query values into an inclusive start and an exclusive
// end for store queries. An inverted range is reported as empty.
func dayBounds(fromRaw, toRaw string, loc *time.Location) (from, to *time.Time, empty bool, err error) {
	if from, err = parseDay(fromRaw, "from", loc); err != nil {
		return nil, nil, false, err
	}
	if to, err = parseDay(toRaw, "to", loc); err != nil {
		return nil, nil, false, err
	}
	if to != nil {
		next := to.AddDate(0, 0, 1)
		to = &next
	}
	if from != nil && to != nil && !from.Before(*to) {
		return from, to, true, nil
	}
	return from, to, false, nil
}
