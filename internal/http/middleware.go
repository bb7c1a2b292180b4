package http

import (
	"fmt"
	"net/http"
	"runtime/debug"
	"strconv"
	"time"

	"usage-metrics/internal/shared/loggers"
	"usage-metrics/internal/shared/svcerrors"
	"usage-metrics/internal/shared/ulid"

	"github.com/go-chi/chi/v5"
	"github.com/mileusna/useragent"
	"github.com/rs/zerolog"
)

func setupMiddleware(router *chi.Mux, httpLogger loggers.Logger) {
	router.Use(mwRequestID(httpLogger))
	router.Use(mwAppResponseWriter)
	router.Use(mwPrometheus)
	router.Use(mwRequestCompletionLog)
	router.Use(mwRecoverer)
}

func mwAppResponseWriter(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		next.ServeHTTP(newAppResponseWriter(w, r.ProtoMajor), r)
	})
}

// mwPrometheus labels requests by chi route pattern so ids in query strings or
// paths never become label values.
func mwPrometheus(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)

		route := routePattern(r)
		status, errorCode, _ := responseDetails(w)
		statusStr := strconv.Itoa(status)

		metricRequestsTotal.WithLabelValues(r.Method, route, statusStr, errorCode).Inc()
		metricRequestDuration.WithLabelValues(r.Method, route, statusStr).Observe(time.Since(start).Seconds())
	})
}

// mwRequestID reuses the caller's X-Request-ID or mints a ULID, and stores a
// request-scoped logger in the context.
func mwRequestID(httpLogger loggers.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			reqID := requestID(r)
			if reqID == "" {
				reqID = ulid.NewULID()
				setRequestID(r, reqID)
			}
			ctx := httpLogger.With().
				Str(loggers.FieldRequestID, reqID).
				Logger().WithContext(r.Context())

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// mwRequestCompletionLog writes one access log line per request: info for
// success, warn for client errors, error for server errors.
func mwRequestCompletionLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		defer func() {
			status, errorCode, errorCategory := responseDetails(w)

			event := loggers.Ctx(r.Context()).WithLevel(completionLevel(status)).
				Str(loggers.FieldHttpMethod, r.Method).
				Str(loggers.FieldHttpRoute, routePattern(r)).
				Str(loggers.FieldHttpPath, r.URL.Path).
				Int(loggers.FieldHttpStatus, status).
				Str(loggers.FieldClient, clientName(r.UserAgent())).
				Int64(loggers.FieldDuration, time.Since(start).Milliseconds())
			if errorCode != "" {
				event = event.
					Str(loggers.FieldErrorCode, errorCode).
					Str(loggers.FieldErrorCategory, errorCategory)
			}
			event.Msg("request completed")
		}()

		next.ServeHTTP(w, r)
	})
}

func mwRecoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			p := recover()
			if p == nil {
				return
			}
			if p == http.ErrAbortHandler {
				panic(p)
			}

			loggers.Ctx(r.Context()).Error().
				Bytes(loggers.FieldErrorStack, debug.Stack()).
				Msgf("http panic recovered: %v", p)

			panicErr, ok := p.(error)
			if !ok {
				panicErr = fmt.Errorf("%v", p)
			}
			writeErrorResponse(w, r, svcerrors.NewInternalErrorPanic(panicErr))
		}()

		next.ServeHTTP(w, r)
	})
}

func completionLevel(status int) zerolog.Level {
	switch {
	case status >= http.StatusInternalServerError:
		return zerolog.ErrorLevel
	case status >= http.StatusBadRequest:
		return zerolog.WarnLevel
	default:
		return zerolog.InfoLevel
	}
}

// routePattern is the matched chi pattern, or the raw path outside a chi router.
func routePattern(r *http.Request) string {
	if rctx := chi.RouteContext(r.Context()); rctx != nil {
		if pattern := rctx.RoutePattern(); pattern != "" {
			return pattern
		}
	}
	return r.URL.Path
}

// clientName reduces a User-Agent header to "name/version" for access logs.
func clientName(ua string) string {
	if ua == "" {
		return "unknown"
	}
	parsed := useragent.Parse(ua)
	switch {
	case parsed.Name == "":
		return "unknown"
	case parsed.Version == "":
		return parsed.Name
	default:
		return parsed.Name + "/" + parsed.Version
	}
}
