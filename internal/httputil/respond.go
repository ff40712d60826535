package httputil

import (
	"encoding/json"
	"net/http"
	"time"
)

// ErrorResponse is the envelope returned by every failing endpoint.
type ErrorResponse struct {
	Code    string       `json:"code"`
	Message string       `json:"message"`
	Details ErrorDetails `json:"details"`
}

// ErrorDetails carries request context for the error.
type ErrorDetails struct {
	Timestamp time.Time `json:"timestamp"`
	Endpoint  string    `json:"endpoint"`
}

// JSON writes v as a JSON response with the given status code.
func JSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		_ = json.NewEncoder(w).Encode(v)
	}
}

// Error writes a structured error response. The endpoint is taken from the
// request so clients can correlate failures with the call they made.
func Error(w http.ResponseWriter, r *http.Request, status int, code, message string) {
	JSON(w, status, ErrorResponse{
		Code:    code,
		Message: message,
		Details: ErrorDetails{
			Timestamp: time.Now().UTC(),
			Endpoint:  r.Method + " " + r.URL.Path,
		},
	})
}
