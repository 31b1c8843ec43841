package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
)

// Error kinds carried in ErrorResponse.Error.
const (
	kindInvalidJSON = "invalid_json"
	kindValidation  = "validation_error"
	kindNotFound    = "not_found"
	kindInternal    = "internal_error"
)

const maxBodyBytes = 1 << 20

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, kind, message string) {
	writeJSON(w, status, ErrorResponse{
		Error:   kind,
		Message: message,
	})
}

// writeInternal reports an unexpected failure with its raw text.
func writeInternal(w http.ResponseWriter, err error) {
	writeError(w, http.StatusInternalServerError, kindInternal, err.Error())
}

// decodeJSON reads a JSON object from the request body into dst.
// It writes a 400 response and returns false when the body is unusable.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	err := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes)).Decode(dst)
	if err == nil {
		return true
	}
	msg := "invalid JSON body"
	if errors.Is(err, io.EOF) {
		msg = "request body is required"
	}
	writeError(w, http.StatusBadRequest, kindInvalidJSON, msg)
	return false
}
