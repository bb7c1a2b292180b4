package events

import (
	"encoding/json"
	"errors"
	"strings"

	"usage-metrics/internal/models"
	"usage-metrics/internal/shared/validators"
)

//go:generate mockgen -source=message_parser.go -destination=./mocks/message_parser_mock.go -package=mocks
type MessageParser interface {
	// Parse decodes and validates one message body. It never panics: every
	// malformed or invalid body yields an invalid_argument *svcerrors.ServiceError.
	Parse(body string) (*models.UpdateEvent, error)
}

type messageParser struct {
	validate *validators.Validate
}

func NewMessageParser() MessageParser {
	return &messageParser{validate: validators.New()}
}

func (p *messageParser) Parse(body string) (*models.UpdateEvent, error) {
	var payload MetricUpdatePayload
	dec := json.NewDecoder(strings.NewReader(body))
	if err := dec.Decode(&payload); err != nil {
		return nil, errMalformedPayload(err)
	}
	if dec.More() {
		return nil, errMalformedPayload(errors.New("trailing data after payload"))
	}

	if err := p.validate.Struct(&payload); err != nil {
		var validationErrs validators.ValidationErrors
		if errors.As(err, &validationErrs) {
			return nil, errInvalidPayload(validators.FormatFieldErrors(validationErrs), err)
		}
		return nil, errInvalidPayload("invalid payload", err)
	}

	timestamp, err := validators.ParseHourStamp(payload.Date)
	if err != nil {
		return nil, errInvalidPayload("date must be YYYY-MM-DDThh", err)
	}

	event := &models.UpdateEvent{
		WorkspaceID: payload.WorkspaceID,
		MetricID:    payload.MetricID,
		Count:       *payload.Count,
		Timestamp:   timestamp,
	}
	if payload.UserID != nil {
		event.UserID = *payload.UserID
	}
	return event, nil
}
