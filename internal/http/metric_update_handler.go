package http

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"usage-metrics/internal/events"
	"usage-metrics/internal/models"
	"usage-metrics/internal/shared/svcerrors"
	"usage-metrics/internal/shared/ulid"
	"usage-metrics/internal/streams"
)

// PublishResponse lists the ids assigned to the accepted updates, in request order.
type PublishResponse struct {
	MessageIDs []string `json:"messageIds"`
}

type metricUpdateHandler struct {
	parser       events.MessageParser
	producer     streams.MetricUpdateProducer
	maxBodyBytes int64
}

func NewMetricUpdateHandler(parser events.MessageParser, producer streams.MetricUpdateProducer, maxBodyBytes int64) AppHttpHandler {
	return &metricUpdateHandler{
		parser:       parser,
		producer:     producer,
		maxBodyBytes: maxBodyBytes,
	}
}

// Handle processes POST /metric-updates. The body is one payload object or an
// array of them. Every item is validated before anything is published, so a
// request is either accepted whole or rejected whole.
func (h *metricUpdateHandler) Handle(w http.ResponseWriter, r *http.Request) error {
	key, err := idempotencyKey(r)
	if err != nil {
		return err
	}

	items, err := h.decodeItems(w, r)
	if err != nil {
		return err
	}

	for i, item := range items {
		if _, err := h.parser.Parse(string(item)); err != nil {
			svcErr, ok := svcerrors.AsServiceError(err)
			if !ok {
				svcErr = svcerrors.NewInternalErrorUndefined(err)
			}
			return errInvalidItem(i, svcErr)
		}
	}

	messageIDs := assignMessageIDs(key, len(items))
	messages := make([]models.Message, len(items))
	for i, item := range items {
		messages[i] = models.Message{MessageID: messageIDs[i], Body: string(item)}
	}

	if err := h.producer.Publish(r.Context(), messages); err != nil {
		return err
	}

	writeJSON(w, http.StatusAccepted, PublishResponse{MessageIDs: messageIDs})
	return nil
}

// decodeItems returns the compacted JSON of each posted payload.
func (h *metricUpdateHandler) decodeItems(w http.ResponseWriter, r *http.Request) ([]json.RawMessage, error) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, h.maxBodyBytes))
	if err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			return nil, errBodyTooLarge(maxBytesErr.Limit, err)
		}
		return nil, errMalformedBody(err)
	}

	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return nil, errMalformedBody(errors.New("empty body"))
	}

	var items []json.RawMessage
	if trimmed[0] == '[' {
		if err := json.Unmarshal(trimmed, &items); err != nil {
			return nil, errMalformedBody(err)
		}
		if len(items) == 0 {
			return nil, errMalformedBody(errors.New("empty array"))
		}
	} else {
		items = []json.RawMessage{json.RawMessage(trimmed)}
	}

	for i, item := range items {
		var compacted bytes.Buffer
		if err := json.Compact(&compacted, item); err != nil {
			return nil, errMalformedBody(err)
		}
		items[i] = compacted.Bytes()
	}
	return items, nil
}

// assignMessageIDs derives ids from the idempotency key when one is sent, so a
// retried request republishes under the same ids. Otherwise ids are ULIDs.
func assignMessageIDs(key string, n int) []string {
	switch {
	case key == "":
		return ulid.NewULIDs(n)
	case n == 1:
		return []string{key}
	}
	ids := make([]string, n)
	for i := range ids {
		ids[i] = fmt.Sprintf("%s-%d", key, i)
	}
	return ids
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set(headerContentType, mediaTypeJSON)
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
