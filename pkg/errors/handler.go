package errors

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// ErrorResponse is the JSON body of a failed demo API request. The dashboard
// shows Error verbatim, so it carries the human-readable message.
type ErrorResponse struct {
	Error     string                 `json:"error"`
	Type      string                 `json:"type"`
	Code      string                 `json:"code,omitempty"`
	Details   map[string]interface{} `json:"details,omitempty"`
	RequestID string                 `json:"requestId,omitempty"`
}

// ErrorHandler turns errors into JSON responses and logs them
type ErrorHandler struct {
	logger *zap.Logger
	debug  bool
}

// NewErrorHandler creates a new error handler. In debug mode responses carry
// stack traces and the text of unexpected errors.
func NewErrorHandler(logger *zap.Logger, debug bool) *ErrorHandler {
	return &ErrorHandler{
		logger: logger,
		debug:  debug,
	}
}

// Handle writes the response for err. A nil err writes nothing.
func (h *ErrorHandler) Handle(w http.ResponseWriter, r *http.Request, err error) {
	if err == nil {
		return
	}

	status, body := h.respond(err)
	body.RequestID = middleware.GetReqID(r.Context())
	h.log(r, err, status, body)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if encErr := json.NewEncoder(w).Encode(body); encErr != nil {
		h.logger.Error("Failed to encode error response", zap.Error(encErr))
	}
}

// respond maps err onto a status and body. Anything that is not an AppError
// is reported as an opaque internal error.
func (h *ErrorHandler) respond(err error) (int, ErrorResponse) {
	appErr := GetAppError(err)
	if appErr == nil {
		body := ErrorResponse{
			Error: "An internal error occurred",
			Type:  string(ErrorTypeInternal),
		}
		if h.debug {
			body.Error = err.Error()
		}
		return http.StatusInternalServerError, body
	}

	status := appErr.HTTPStatus
	if status == 0 {
		status = http.StatusInternalServerError
	}

	body := ErrorResponse{
		Error: appErr.Message,
		Type:  string(appErr.Type),
		Code:  appErr.Code,
	}
	if len(appErr.Details) > 0 || (h.debug && appErr.StackTrace != "") {
		body.Details = make(map[string]interface{}, len(appErr.Details)+1)
		for k, v := range appErr.Details {
			body.Details[k] = v
		}
		if h.debug && appErr.StackTrace != "" {
			body.Details["stack_trace"] = appErr.StackTrace
		}
	}
	return status, body
}

// log records server errors at error level and client errors at warn
func (h *ErrorHandler) log(r *http.Request, err error, status int, body ErrorResponse) {
	fields := []zap.Field{
		zap.String("errorType", body.Type),
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path),
		zap.Int("status", status),
		zap.String("requestID", body.RequestID),
		zap.Error(err),
	}
	if body.Code != "" {
		fields = append(fields, zap.String("errorCode", body.Code))
	}

	if status >= http.StatusInternalServerError {
		h.logger.Error("Request failed", fields...)
		return
	}
	h.logger.Warn("Request rejected", fields...)
}

// Middleware returns an HTTP middleware that turns panics into error responses
func (h *ErrorHandler) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				h.Handle(w, r, NewInternalError(fmt.Sprintf("panic: %v", rec)))
			}
		}()

		next.ServeHTTP(w, r)
	})
}
