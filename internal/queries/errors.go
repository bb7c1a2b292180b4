package queries

import (
	"fmt"

	"usage-metrics/internal/shared/svcerrors"
)

// QueryService errors
const (
	codeValidationFailed  = "QRY_1000"
	codeDateRangeTooLarge = "QRY_1001"

	codeCounterStoreReadFailed = "QRY_9000"
)

func errValidationFailed(msg string, cause error) *svcerrors.ServiceError {
	return svcerrors.NewInvalidArgumentError(codeValidationFailed, msg, cause)
}

func errDateRangeTooLarge(maxDays int) *svcerrors.ServiceError {
	return svcerrors.NewInvalidArgumentError(codeDateRangeTooLarge, fmt.Sprintf("date range must not exceed %d days", maxDays), nil)
}

// errCounterStoreReadFailed is returned when any segment read fails; no partial count is reported.
func errCounterStoreReadFailed(cause error) *svcerrors.ServiceError {
	return svcerrors.NewUnavailableError(codeCounterStoreReadFailed, "counter store unavailable", fmt.Errorf("counterStoreReadFailed: %w", cause))
}
