package http

import (
	"net/http"

	"usage-metrics/internal/models"
	"usage-metrics/internal/streams"
)

type DeadLetterListResponse struct {
	DeadLetters []*models.DeadLetter `json:"deadLetters"`
}

type deadLetterListHandler struct {
	deadLetterService streams.DeadLetterService
}

func NewDeadLetterListHandler(deadLetterService streams.DeadLetterService) AppHttpHandler {
	return &deadLetterListHandler{deadLetterService: deadLetterService}
}

// Handle processes GET /dead-letters.
func (h *deadLetterListHandler) Handle(w http.ResponseWriter, r *http.Request) error {
	deadLetters, err := h.deadLetterService.List(r.Context())
	if err != nil {
		return err
	}
	writeJSON(w, http.StatusOK, DeadLetterListResponse{DeadLetters: deadLetters})
	return nil
}

type deadLetterReplayHandler struct {
	deadLetterService streams.DeadLetterService
}

func NewDeadLetterReplayHandler(deadLetterService streams.DeadLetterService) AppHttpHandler {
	return &deadLetterReplayHandler{deadLetterService: deadLetterService}
}

// Handle processes POST /dead-letters/replay.
func (h *deadLetterReplayHandler) Handle(w http.ResponseWriter, r *http.Request) error {
	result, err := h.deadLetterService.Replay(r.Context())
	if err != nil {
		return err
	}
	writeJSON(w, http.StatusOK, result)
	return nil
}
