package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"usage-metrics/internal/ingestors"
	"usage-metrics/internal/models"
)

// BatchIngestRequest carries queue records the way a queue trigger delivers them.
type BatchIngestRequest struct {
	Records []models.Message `json:"records"`
}

// BatchItemFailure names one record the caller should redeliver.
type BatchItemFailure struct {
	ItemIdentifier string `json:"itemIdentifier"`
}

// BatchIngestResponse is the partial batch response.
//
// Example JSON:
//
//	{
//	  "batchItemFailures": [{"itemIdentifier": "msg-2"}]
//	}
type BatchIngestResponse struct {
	BatchItemFailures []BatchItemFailure `json:"batchItemFailures"`
}

type batchIngestHandler struct {
	ingestionService ingestors.IngestionService
	maxBodyBytes     int64
}

func NewBatchIngestHandler(ingestionService ingestors.IngestionService, maxBodyBytes int64) AppHttpHandler {
	return &batchIngestHandler{
		ingestionService: ingestionService,
		maxBodyBytes:     maxBodyBytes,
	}
}

// Handle processes POST /metric-updates/batch synchronously and reports the
// records whose increments did not all apply.
func (h *batchIngestHandler) Handle(w http.ResponseWriter, r *http.Request) error {
	var req BatchIngestRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, h.maxBodyBytes))
	if err := dec.Decode(&req); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			return errBodyTooLarge(maxBytesErr.Limit, err)
		}
		return errMalformedBody(err)
	}

	result, err := h.ingestionService.Ingest(r.Context(), req.Records)
	if err != nil {
		return err
	}

	resp := BatchIngestResponse{BatchItemFailures: make([]BatchItemFailure, 0, len(result.FailedMessageIDs))}
	for _, id := range result.FailedMessageIDs {
		resp.BatchItemFailures = append(resp.BatchItemFailures, BatchItemFailure{ItemIdentifier: id})
	}
	writeJSON(w, http.StatusOK, resp)
	return nil
}
