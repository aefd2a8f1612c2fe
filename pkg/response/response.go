// Package response renders the JSON envelope used across the API.
//
// Every body carries a "success" flag and usually a human-readable
// "message"; endpoint-specific keys (user, products, token, ...) are merged
// in via Payload. All failure outcomes use non-2xx status codes.
package response

import (
	"encoding/json"
	"net/http"
)

// Payload holds the endpoint-specific keys merged into the envelope.
type Payload map[string]interface{}

func write(w http.ResponseWriter, status int, body map[string]interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body) //nolint:errcheck
}

// Success sends a success envelope with the given status and message.
func Success(w http.ResponseWriter, status int, message string, extra Payload) {
	body := map[string]interface{}{"success": true}
	if message != "" {
		body["message"] = message
	}
	for k, v := range extra {
		body[k] = v
	}
	write(w, status, body)
}

// OK is Success with a 200 status.
func OK(w http.ResponseWriter, message string, extra Payload) {
	Success(w, http.StatusOK, message, extra)
}

// Created is Success with a 201 status.
func Created(w http.ResponseWriter, message string, extra Payload) {
	Success(w, http.StatusCreated, message, extra)
}

// Fail sends a failure envelope. Failures are always non-2xx.
func Fail(w http.ResponseWriter, status int, message string) {
	write(w, status, map[string]interface{}{
		"success": false,
		"message": message,
	})
}

// ValidationError sends a 422 with field-level error messages.
func ValidationError(w http.ResponseWriter, errs map[string]string) {
	write(w, http.StatusUnprocessableEntity, map[string]interface{}{
		"success": false,
		"message": "Validation failed",
		"errors":  errs,
	})
}

// Unauthorized sends a 401.
func Unauthorized(w http.ResponseWriter, message string) {
	if message == "" {
		message = "Unauthorized"
	}
	Fail(w, http.StatusUnauthorized, message)
}

// NotFound sends a 404.
func NotFound(w http.ResponseWriter, message string) {
	if message == "" {
		message = "Not found"
	}
	Fail(w, http.StatusNotFound, message)
}

// ServerError sends a 500. The underlying error goes to the log, never to
// the client.
func ServerError(w http.ResponseWriter, message string) {
	if message == "" {
		message = "Internal Server Error"
	}
	Fail(w, http.StatusInternalServerError, message)
}
