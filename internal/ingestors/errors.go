package ingestors

import (
	"fmt"

	"usage-metrics/internal/shared/svcerrors"
)

// IngestionService errors
const (
	codeValidationFailed = "ING_1000"

	codeInternalCounterStoreWriteFailed = "ING_9000"
)

// errValidationFailed returns an error for a batch that cannot be ingested at all.
func errValidationFailed(msg string, cause error) *svcerrors.ServiceError {
	return svcerrors.NewInvalidArgumentError(codeValidationFailed, msg, cause)
}

// errInternalCounterStoreWriteFailed describes one failed bucket increment. It is
// logged and surfaced only through the failed message ids.
func errInternalCounterStoreWriteFailed(cause error) *svcerrors.ServiceError {
	return svcerrors.NewInternalError(codeInternalCounterStoreWriteFailed, fmt.Errorf("counterStoreWriteFailed: %w", cause))
}
