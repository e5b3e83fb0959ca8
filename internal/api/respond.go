package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/belac-fun/belac-backend/internal/metrics"
	"github.com/belac-fun/belac-backend/internal/store"
)

// endpoint declares how a route reports failures. Validation errors are
// always 400 and missing entities 404; any other error either degrades to
// fallback with status 200 (degradeOnError) or becomes a 500 with errorMessage.
type endpoint struct {
	name            string
	degradeOnError  bool
	fallback        func() any
	errorMessage    string
	notFoundMessage string
}

// apiFunc returns the status and body to send, or an error for the endpoint policy to handle.
type apiFunc func(r *http.Request) (int, any, error)

// requestError is a client error carrying its own status.
type requestError struct {
	status  int
	message string
}

func (e *requestError) Error() string { return e.message }

func badRequest(message string) error {
	return &requestError{status: http.StatusBadRequest, message: message}
}

func (h *APIHandler) handle(e endpoint, fn apiFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status, body, err := fn(r)
		if err != nil {
			h.writeError(w, r, e, err)
			return
		}
		writeJSON(w, status, body)
	}
}

func (h *APIHandler) writeError(w http.ResponseWriter, r *http.Request, e endpoint, err error) {
	var reqErr *requestError
	if errors.As(err, &reqErr) {
		writeJSON(w, reqErr.status, errorBody(reqErr.message))
		return
	}

	if errors.Is(err, store.ErrNotFound) {
		message := e.notFoundMessage
		if message == "" {
			message = "Not found"
		}
		writeJSON(w, http.StatusNotFound, errorBody(message))
		return
	}

	fields := []zap.Field{
		zap.String("endpoint", e.name),
		zap.String("request_id", middleware.GetReqID(r.Context())),
		zap.Error(err),
	}
	if e.degradeOnError && e.fallback != nil {
		h.logger.Warn("store failure on read endpoint, serving empty response", fields...)
		metrics.RecordDegradedResponse(e.name)
		writeJSON(w, http.StatusOK, e.fallback())
		return
	}

	h.logger.Error("request failed", fields...)
	message := e.errorMessage
	if message == "" {
		message = "Internal server error"
	}
	writeJSON(w, http.StatusInternalServerError, errorBody(message))
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func errorBody(message string) map[string]string {
	return map[string]string{"error": message}
}

// listBody is the {<plural>: rows, count} read shape.
func listBody(key string, rows any, count int) map[string]any {
	return map[string]any{key: rows, "count": count}
}

// successBody is the {success: true, <entity>: row} mutation shape.
func successBody(key string, value any) map[string]any {
	return map[string]any{"success": true, key: value}
}
