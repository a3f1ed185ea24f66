package httpx

import (
	"encoding/json"
	"net/http"
)

// Envelope is the JSON shape every endpoint responds with: a success flag, a
// human readable message and optional operation-specific payload fields.
type Envelope map[string]any

// WriteJSON writes the given payload as a JSON response.
func WriteJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

// Success writes a success envelope with optional extra payload fields.
func Success(w http.ResponseWriter, status int, message string, extra Envelope) {
	body := Envelope{
		"success": true,
		"message": message,
	}
	for k, v := range extra {
		body[k] = v
	}

	WriteJSON(w, status, body)
}

// Fail writes an error envelope.
func Fail(w http.ResponseWriter, status int, message string) {
	WriteJSON(w, status, Envelope{
		"success": false,
		"message": message,
	})
}

// FailFields writes a validation error envelope with field-level detail.
func FailFields(w http.ResponseWriter, fields map[string]string) {
	WriteJSON(w, http.StatusBadRequest, Envelope{
		"success": false,
		"message": "Validation error",
		"errors":  fields,
	})
}

// DecodeJSON decodes a JSON request body into dst.
func DecodeJSON(r *http.Request, dst any) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(dst)
}
