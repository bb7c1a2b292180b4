package events

import (
	"usage-metrics/internal/shared/svcerrors"
)

// MessageParser errors
const (
	codeMalformedPayload = "EVT_1000"
	codeInvalidPayload   = "EVT_1001"
)

func errMalformedPayload(cause error) *svcerrors.ServiceError {
	return svcerrors.NewInvalidArgumentError(codeMalformedPayload, "malformed payload", cause)
}

func errInvalidPayload(msg string, cause error) *svcerrors.ServiceError {
	return svcerrors.NewInvalidArgumentError(codeInvalidPayload, msg, cause)
}
