package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

// Error payload messages shared across the auth and files endpoints. The
// strings are part of the public API contract and must not drift.
const (
	msgWrongJSON         = "Wrong JSON format"
	msgWrongForm         = "Wrong form format"
	msgInvalidID         = "Invalid ID format"
	msgInvalidParams     = "Invalid URL params"
	msgNoAccess          = "User have no access to this content"
	msgFilenameLength    = "Filename must have length between 1 and 50"
	msgNotAuthorized     = "User not authorized"
	msgAlreadyAuthorized = "User already authorized"
	msgPasswordLength    = "Password must have length between 8 and 32 symbols"
	msgPasswordsMismatch = "Passwords do not match"
	msgWrongCredentials  = "Wrong credentials"
	msgEmailTaken        = "User with this email already exists"
	msgServerError       = "Server error"
)

func writeJSON(w http.ResponseWriter, statusCode int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	err := json.NewEncoder(w).Encode(payload)
	if err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

// statusError writes the `{"status": ...}` error envelope used by the
// auth and files endpoints.
func statusError(w http.ResponseWriter, statusCode int, message string) {
	writeJSON(w, statusCode, map[string]string{"status": message})
}

// emptySuccess is the JSON `null` the mutation endpoints answer with.
func emptySuccess(w http.ResponseWriter) {
	writeJSON(w, http.StatusOK, nil)
}
