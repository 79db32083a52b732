// Package respond writes the engine's JSON bodies. The API distinguishes two
// failure kinds only: invalid input (400) and transient infrastructure
// trouble (500, safe to retry). Idempotent-conflict outcomes such as an
// already-activated chakra are ordinary results and never pass through here
// as errors.
package respond

import (
	"encoding/json"
	"net/http"
)

// Problem is the body shape shared by every non-2xx response.
type Problem struct {
	Error   string `json:"error"`
	Code    int    `json:"code"`
	Message string `json:"message,omitempty"`
}

// JSON marshals v before touching the ResponseWriter, so an encoding failure
// still yields a well-formed 500 instead of a truncated body after the status
// line has gone out.
func JSON(w http.ResponseWriter, status int, v interface{}) {
	body, err := json.Marshal(v)
	if err != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"Internal Server Error","code":500}`))
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(body)
}

// BadRequest rejects invalid caller input; retrying without changing the
// request will not succeed.
func BadRequest(w http.ResponseWriter, message string) {
	problem(w, http.StatusBadRequest, message)
}

// InternalError reports a transient failure; the caller may retry, and the
// ledger's uniqueness key makes retried writes safe.
func InternalError(w http.ResponseWriter, message string) {
	problem(w, http.StatusInternalServerError, message)
}

func problem(w http.ResponseWriter, status int, message string) {
	JSON(w, status, Problem{
		Error:   http.StatusText(status),
		Code:    status,
		Message: message,
	})
}
