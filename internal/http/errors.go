package http

import (
	"fmt"

	"usage-metrics/internal/shared/svcerrors"
)

const (
	codeMalformedBody = "API_1000"
	codeBodyTooLarge  = "API_1001"
	codeInvalidItem   = "API_1002"
	codeInvalidHeader = "API_1003"
)

func errMalformedBody(cause error) *svcerrors.ServiceError {
	return svcerrors.NewInvalidArgumentError(codeMalformedBody, "request body is not valid JSON of the expected shape", cause)
}

func errBodyTooLarge(limit int64, cause error) *svcerrors.ServiceError {
	return svcerrors.NewInvalidArgumentError(codeBodyTooLarge, fmt.Sprintf("request body exceeds %d bytes", limit), cause)
}

// errInvalidItem wraps the parser error of the index-th item of a posted array.
func errInvalidItem(index int, cause *svcerrors.ServiceError) *svcerrors.ServiceError {
	return svcerrors.NewInvalidArgumentError(codeInvalidItem, fmt.Sprintf("item at index %d: %s", index, cause.Message), cause)
}

func errInvalidIdempotencyKey(message string) *svcerrors.ServiceError {
	return svcerrors.NewInvalidArgumentError(codeInvalidHeader, message, nil)
}
