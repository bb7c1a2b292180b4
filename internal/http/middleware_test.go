package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"usage-metrics/internal/shared/loggers"
	"usage-metrics/internal/shared/svcerrors"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// captureRouter builds a router with the full middleware chain logging into a buffer.
func captureRouter(t *testing.T, level string) (*chi.Mux, *bytes.Buffer) {
	t.Helper()
	var logs bytes.Buffer
	logger, err := loggers.NewWithWriter(level, &logs)
	require.NoError(t, err)

	router := chi.NewRouter()
	setupMiddleware(router, logger)
	return router, &logs
}

func TestMwRequestID(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		providedID string
	}{
		{name: "generated", providedID: ""},
		{name: "provided", providedID: "req-12345"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var seenID string
			handler := mwRequestID(loggers.Nop())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				seenID = requestID(r)
				assert.NotNil(t, loggers.Ctx(r.Context()))
			}))

			req := httptest.NewRequest(http.MethodGet, "/metric-count", nil)
			if tt.providedID != "" {
				req.Header.Set(headerRequestID, tt.providedID)
			}
			handler.ServeHTTP(httptest.NewRecorder(), req)

			if tt.providedID == "" {
				assert.Len(t, seenID, 26, "generated request id should be a ULID")
			} else {
				assert.Equal(t, tt.providedID, seenID)
			}
		})
	}
}

func TestMwRecoverer(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		panic any
	}{
		{name: "string value", panic: "boom"},
		{name: "error value", panic: assert.AnError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, logs := captureRouter(t, "info")
			router.Get("/panic", func(http.ResponseWriter, *http.Request) { panic(tt.panic) })

			req := httptest.NewRequest(http.MethodGet, "/panic", nil)
			req.Header.Set(headerRequestID, "req-panic")
			rr := httptest.NewRecorder()

			require.NotPanics(t, func() { router.ServeHTTP(rr, req) })

			assert.Equal(t, http.StatusInternalServerError, rr.Code)
			assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))
			var errorResponse ErrorResponse
			require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &errorResponse))
			assert.Equal(t, ErrorResponse{
				RequestID:        "req-panic",
				ErrorCategory:    "internal",
				ErrorCode:        "SYS_9000",
				ErrorDescription: "internal server error",
			}, errorResponse)
			assert.Contains(t, logs.String(), "http panic recovered")
			assert.Contains(t, logs.String(), `"error_stack"`)
		})
	}
}

func TestMwRecoverer_PassesThroughWhenNoPanic(t *testing.T) {
	t.Parallel()

	router, _ := captureRouter(t, "info")
	router.Get("/ok", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("ok"))
	})

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/ok", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "ok", rr.Body.String())
}

func TestMwRequestCompletionLog(t *testing.T) {
	t.Parallel()

	router, logs := captureRouter(t, "info")
	router.Post("/metric-updates", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusAccepted)
	})
	router.Get("/metric-count", errorHandlingAdapter(AppHttpHandlerFunc(func(http.ResponseWriter, *http.Request) error {
		return svcerrors.NewInvalidArgumentError("QRY_1000", "workspaceId is required", nil)
	})))
	router.Get("/dead-letters", errorHandlingAdapter(AppHttpHandlerFunc(func(http.ResponseWriter, *http.Request) error {
		return svcerrors.NewUnavailableError("QRY_9000", "counter store unavailable", assert.AnError)
	})))

	tests := []struct {
		name          string
		method        string
		path          string
		expectedLevel string
		expectedParts []string
	}{
		{
			name:          "accepted",
			method:        http.MethodPost,
			path:          "/metric-updates",
			expectedLevel: zerolog.InfoLevel.String(),
			expectedParts: []string{`"http_status":202`, `"http_route":"/metric-updates"`, `"client":"curl/8.4.0"`},
		},
		{
			name:          "client error",
			method:        http.MethodGet,
			path:          "/metric-count?workspaceId=",
			expectedLevel: zerolog.WarnLevel.String(),
			expectedParts: []string{`"http_status":400`, `"error_code":"QRY_1000"`, `"error_category":"invalid_argument"`},
		},
		{
			name:          "server error",
			method:        http.MethodGet,
			path:          "/dead-letters",
			expectedLevel: zerolog.ErrorLevel.String(),
			expectedParts: []string{`"http_status":503`, `"error_code":"QRY_9000"`},
		},
	}

	for _, tt := range tests {
		logs.Reset()
		req := httptest.NewRequest(tt.method, tt.path, nil)
		req.Header.Set("User-Agent", "curl/8.4.0")
		router.ServeHTTP(httptest.NewRecorder(), req)

		line := lastLogLine(t, logs)
		assert.Equal(t, "request completed", line["message"], tt.name)
		assert.Equal(t, tt.expectedLevel, line["level"], tt.name)
		raw, err := json.Marshal(line)
		require.NoError(t, err)
		for _, part := range tt.expectedParts {
			assert.Contains(t, string(raw), part, tt.name)
		}
	}
}

func TestCompletionLevel(t *testing.T) {
	t.Parallel()

	assert.Equal(t, zerolog.InfoLevel, completionLevel(http.StatusOK))
	assert.Equal(t, zerolog.InfoLevel, completionLevel(http.StatusAccepted))
	assert.Equal(t, zerolog.WarnLevel, completionLevel(http.StatusUnsupportedMediaType))
	assert.Equal(t, zerolog.ErrorLevel, completionLevel(http.StatusServiceUnavailable))
}

func TestClientName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		ua       string
		expected string
	}{
		{name: "empty", ua: "", expected: "unknown"},
		{name: "curl", ua: "curl/8.4.0", expected: "curl/8.4.0"},
		{
			name:     "chrome",
			ua:       "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
			expected: "Chrome/120.0.0.0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, clientName(tt.ua))
		})
	}
}

func lastLogLine(t *testing.T, logs *bytes.Buffer) map[string]any {
	t.Helper()
	lines := bytes.Split(bytes.TrimSpace(logs.Bytes()), []byte("\n"))
	require.NotEmpty(t, lines)
	var line map[string]any
	require.NoError(t, json.Unmarshal(lines[len(lines)-1], &line))
	return line
}
