package streams

import (
	"fmt"

	"usage-metrics/internal/shared/svcerrors"
)

const (
	codeMaxAttemptsExceeded = "STR_1000"
	codeBatchRejected       = "STR_1001"
	codeShutdownUnapplied   = "STR_1002"

	codeInternalDeadLetterWriteFailed = "STR_9000"
	codeInternalDeadLetterReadFailed  = "STR_9001"
	codeInternalPublishFailed         = "STR_9002"
)

func errInternalDeadLetterWriteFailed(cause error) *svcerrors.ServiceError {
	return svcerrors.NewInternalError(codeInternalDeadLetterWriteFailed, fmt.Errorf("deadLetterWriteFailed: %w", cause))
}

func errInternalDeadLetterReadFailed(cause error) *svcerrors.ServiceError {
	return svcerrors.NewInternalError(codeInternalDeadLetterReadFailed, fmt.Errorf("deadLetterReadFailed: %w", cause))
}

func errInternalPublishFailed(cause error) *svcerrors.ServiceError {
	return svcerrors.NewInternalError(codeInternalPublishFailed, fmt.Errorf("publishFailed: %w", cause))
}
