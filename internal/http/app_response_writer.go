package http

import (
	"net/http"

	"usage-metrics/internal/shared/svcerrors"

	"github.com/go-chi/chi/v5/middleware"
)

// appResponseWriter records the status and the service error of a response so
// the metrics and access log middlewares can label it.
type appResponseWriter struct {
	middleware.WrapResponseWriter
	svcError *svcerrors.ServiceError
}

func newAppResponseWriter(w http.ResponseWriter, protoMajor int) *appResponseWriter {
	return &appResponseWriter{
		WrapResponseWriter: middleware.NewWrapResponseWriter(w, protoMajor),
	}
}

func (w *appResponseWriter) SetServiceError(svcError *svcerrors.ServiceError) {
	w.svcError = svcError
}

func (w *appResponseWriter) ErrorCode() string {
	if w.svcError != nil {
		return w.svcError.Code
	}
	return ""
}

func (w *appResponseWriter) ErrorCategory() string {
	if w.svcError != nil {
		return w.svcError.Category
	}
	return ""
}

// StatusOrOK is the written status, or 200 when the handler wrote only a body or nothing.
func (w *appResponseWriter) StatusOrOK() int {
	if status := w.Status(); status != 0 {
		return status
	}
	return http.StatusOK
}

// responseDetails extracts status and error code from w when it is an appResponseWriter.
func responseDetails(w http.ResponseWriter) (status int, errorCode, errorCategory string) {
	if appWriter, ok := w.(*appResponseWriter); ok {
		return appWriter.StatusOrOK(), appWriter.ErrorCode(), appWriter.ErrorCategory()
	}
	return http.StatusOK, "", ""
}
