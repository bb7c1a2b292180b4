package queries

import (
	"context"
	"errors"

	"usage-metrics/internal/models"
	"usage-metrics/internal/shared/loggers"
	"usage-metrics/internal/shared/metrics"
	"usage-metrics/internal/shared/validators"
	"usage-metrics/internal/stores"

	"golang.org/x/sync/errgroup"
)

const hoursPerDay = 24

// MetricCountQuery is a raw count query. Bounds are inclusive, formatted YYYY-MM-DDThh.
// The query counts one user's usage when UserID is set, else the whole workspace.
type MetricCountQuery struct {
	WorkspaceID string  `json:"workspaceId" validate:"required"`
	MetricID    string  `json:"metricId" validate:"required"`
	FromDate    string  `json:"fromDate" validate:"required,hourstamp"`
	ToDate      string  `json:"toDate" validate:"required,hourstamp"`
	UserID      *string `json:"userId,omitempty" validate:"omitnil,min=1"`
}

// MetricCountResult echoes the query with the total.
//
// Example JSON:
//
//	{
//	  "workspaceId": "ws-1",
//	  "metricId": "emails-sent",
//	  "fromDate": "2024-01-01T00",
//	  "toDate": "2024-01-31T23",
//	  "count": 5
//	}
type MetricCountResult struct {
	UserID      *string `json:"userId,omitempty"`
	WorkspaceID string  `json:"workspaceId"`
	MetricID    string  `json:"metricId"`
	FromDate    string  `json:"fromDate"`
	ToDate      string  `json:"toDate"`
	Count       int64   `json:"count"`
}

//go:generate mockgen -source=query_service.go -destination=./mocks/query_service_mock.go -package=mocks
type QueryService interface {
	CountMetric(ctx context.Context, query *MetricCountQuery) (*MetricCountResult, error)
}

type queryService struct {
	store            stores.CounterStore
	validate         *validators.Validate
	maxDateRangeDays int
}

func NewQueryService(store stores.CounterStore, maxDateRangeDays int) QueryService {
	return &queryService{
		store:            store,
		validate:         validators.New(),
		maxDateRangeDays: maxDateRangeDays,
	}
}

func (s *queryService) CountMetric(ctx context.Context, query *MetricCountQuery) (*MetricCountResult, error) {
	count, err := s.countMetric(ctx, query)
	metricQueryTotal.WithLabelValues(metrics.ErrorCode(err)).Inc()
	if err != nil {
		return nil, err
	}

	return &MetricCountResult{
		UserID:      query.UserID,
		WorkspaceID: query.WorkspaceID,
		MetricID:    query.MetricID,
		FromDate:    query.FromDate,
		ToDate:      query.ToDate,
		Count:       count,
	}, nil
}

func (s *queryService) countMetric(ctx context.Context, query *MetricCountQuery) (int64, error) {
	spec, err := s.parseQuery(query)
	if err != nil {
		return 0, err
	}

	// whole days, so a range may run up to 23 hours past the limit
	if int(spec.To.Sub(spec.From).Hours())/hoursPerDay > s.maxDateRangeDays {
		return 0, errDateRangeTooLarge(s.maxDateRangeDays)
	}

	segments, err := Decompose(spec.From, spec.To)
	if err != nil {
		return 0, errValidationFailed("fromDate must not be after toDate", err)
	}
	metricSegmentsPerQuery.Observe(float64(len(segments)))

	loggers.Ctx(ctx).Debug().
		Str("series", spec.Series().PartitionKey()).
		Int("segments", len(segments)).
		Msg("reading counter segments")

	return s.sumSegments(ctx, spec.Series(), segments)
}

// sumSegments reads every segment concurrently. Segments are disjoint, so the
// per-segment sums add up to the range total. Any failed read fails the whole sum.
// Dispatched reads run to completion; timeouts belong to the store client.
func (s *queryService) sumSegments(ctx context.Context, series models.CounterSeries, segments []models.RangeSegment) (int64, error) {
	sums := make([]int64, len(segments))
	readCtx := context.WithoutCancel(ctx)

	var g errgroup.Group
	for i, segment := range segments {
		g.Go(func() error {
			sum, err := s.store.RangeSum(readCtx, series, segment)
			if err != nil {
				return err
			}
			sums[i] = sum
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return 0, errCounterStoreReadFailed(err)
	}

	var total int64
	for _, sum := range sums {
		total += sum
	}
	return total, nil
}

func (s *queryService) parseQuery(query *MetricCountQuery) (*models.QuerySpec, error) {
	if query == nil {
		return nil, errValidationFailed("query is required", nil)
	}

	if err := s.validate.Struct(query); err != nil {
		var validationErrs validators.ValidationErrors
		if errors.As(err, &validationErrs) {
			return nil, errValidationFailed(validators.FormatFieldErrors(validationErrs), err)
		}
		return nil, errValidationFailed("invalid query", err)
	}

	from, err := validators.ParseHourStamp(query.FromDate)
	if err != nil {
		return nil, errValidationFailed("fromDate must be YYYY-MM-DDThh", err)
	}
	to, err := validators.ParseHourStamp(query.ToDate)
	if err != nil {
		return nil, errValidationFailed("toDate must be YYYY-MM-DDThh", err)
	}
	if from.After(to) {
		return nil, errValidationFailed("fromDate must not be after toDate", nil)
	}

	spec := &models.QuerySpec{
		Scope:    models.ScopeWorkspace,
		ScopeID:  query.WorkspaceID,
		MetricID: query.MetricID,
		From:     from,
		To:       to,
	}
	if query.UserID != nil {
		spec.Scope = models.ScopeUser
		spec.ScopeID = *query.UserID
	}
	return spec, nil
}
