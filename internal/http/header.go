package http

import (
	"net/http"
	"strings"
)

const (
	headerRequestID      = "X-Request-ID"
	headerIdempotencyKey = "Idempotency-Key"
	headerContentType    = "Content-Type"

	mediaTypeJSON = "application/json"

	// maxIdempotencyKeyLen leaves room for the "-<index>" suffix of array items.
	maxIdempotencyKeyLen = 128
)

func requestID(r *http.Request) string {
	return strings.TrimSpace(r.Header.Get(headerRequestID))
}

func setRequestID(r *http.Request, requestID string) {
	r.Header.Set(headerRequestID, requestID)
}

// idempotencyKey returns the trimmed Idempotency-Key header, or "" when absent.
// Keys must be visible ASCII so derived message ids stay safe as log values and file names.
func idempotencyKey(r *http.Request) (string, error) {
	key := strings.TrimSpace(r.Header.Get(headerIdempotencyKey))
	if len(key) > maxIdempotencyKeyLen {
		return "", errInvalidIdempotencyKey("Idempotency-Key must be at most 128 characters")
	}
	for i := 0; i < len(key); i++ {
		if key[i] <= ' ' || key[i] > '~' || key[i] == '/' || key[i] == '\\' {
			return "", errInvalidIdempotencyKey("Idempotency-Key must be visible ASCII without slashes")
		}
	}
	return key, nil
}
