package http

import (
	"net/http"

	"usage-metrics/internal/queries"
)

type metricCountHandler struct {
	queryService queries.QueryService
}

func NewMetricCountHandler(queryService queries.QueryService) AppHttpHandler {
	return &metricCountHandler{
		queryService: queryService,
	}
}

// Handle processes GET /metric-count?workspaceId=&metricId=&fromDate=&toDate=&userId=
func (h *metricCountHandler) Handle(w http.ResponseWriter, r *http.Request) error {
	params := r.URL.Query()
	query := &queries.MetricCountQuery{
		WorkspaceID: params.Get("workspaceId"),
		MetricID:    params.Get("metricId"),
		FromDate:    params.Get("fromDate"),
		ToDate:      params.Get("toDate"),
	}
	if params.Has("userId") {
		userID := params.Get("userId")
		query.UserID = &userID
	}

	result, err := h.queryService.CountMetric(r.Context(), query)
	if err != nil {
		return err
	}

	writeJSON(w, http.StatusOK, result)
	return nil
}
