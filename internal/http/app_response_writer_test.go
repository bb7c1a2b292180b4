package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"usage-metrics/internal/shared/svcerrors"

	"github.com/stretchr/testify/assert"
)

func TestAppResponseWriter_ServiceErrorDetails(t *testing.T) {
	t.Parallel()

	appWriter := newAppResponseWriter(httptest.NewRecorder(), 1)
	assert.Equal(t, "", appWriter.ErrorCode())
	assert.Equal(t, "", appWriter.ErrorCategory())

	appWriter.SetServiceError(svcerrors.NewUnavailableError("QRY_9000", "counter store unavailable", nil))
	assert.Equal(t, "QRY_9000", appWriter.ErrorCode())
	assert.Equal(t, "unavailable", appWriter.ErrorCategory())

	appWriter.SetServiceError(nil)
	assert.Equal(t, "", appWriter.ErrorCode())
}

func TestAppResponseWriter_StatusOrOK(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		write    func(w *appResponseWriter)
		expected int
	}{
		{name: "nothing written", write: func(*appResponseWriter) {}, expected: http.StatusOK},
		{name: "body only", write: func(w *appResponseWriter) { _, _ = w.Write([]byte("ok")) }, expected: http.StatusOK},
		{name: "accepted", write: func(w *appResponseWriter) { w.WriteHeader(http.StatusAccepted) }, expected: http.StatusAccepted},
		{
			name: "status kept after body",
			write: func(w *appResponseWriter) {
				w.WriteHeader(http.StatusServiceUnavailable)
				_, _ = w.Write([]byte("down"))
			},
			expected: http.StatusServiceUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := httptest.NewRecorder()
			appWriter := newAppResponseWriter(rr, 1)

			tt.write(appWriter)

			assert.Equal(t, tt.expected, appWriter.StatusOrOK())
			assert.Equal(t, tt.expected, rr.Code)
		})
	}
}

func TestResponseDetails_PlainWriter(t *testing.T) {
	t.Parallel()

	status, code, category := responseDetails(httptest.NewRecorder())

	assert.Equal(t, http.StatusOK, status)
	assert.Empty(t, code)
	assert.Empty(t, category)
}
