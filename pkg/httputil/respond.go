package httputil

import (
	"encoding/json"
	"net/http"

	"github.com/matzehuels/stickfigures/pkg/errors"
)

// errorBody is the JSON shape of an error response.
type errorBody struct {
	Code  errors.Code `json:"code"`
	Error string      `json:"error"`
}

// WriteJSON writes v as JSON with the given status.
func WriteJSON(w http.ResponseWriter, status int, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	return WriteRaw(w, status, "application/json", data)
}

// WriteRaw writes body with the given status and content type.
func WriteRaw(w http.ResponseWriter, status int, contentType string, body []byte) error {
	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(status)
	_, err := w.Write(body)
	return err
}

// WriteError writes err as a JSON error body and returns the status used.
func WriteError(w http.ResponseWriter, err error) int {
	code := errors.GetCode(err)
	if code == "" {
		code = errors.ErrCodeInternal
	}
	status := StatusFor(code)
	_ = WriteJSON(w, status, errorBody{Code: code, Error: errors.UserMessage(err)})
	return status
}

// StatusFor maps an error code to an HTTP status.
func StatusFor(code errors.Code) int {
	switch code {
	case errors.ErrCodeInvalidInput, errors.ErrCodeInvalidKey:
		return http.StatusBadRequest
	case errors.ErrCodeNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
