package handler

import (
	"encoding/json"
	"net/http"
)

// MessageEnvelope is the generic response wrapper.
type MessageEnvelope struct {
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

// CountEnvelope wraps the waitlist count response.
type CountEnvelope struct {
	Count int `json:"count"`
}

// SubmitEnvelope wraps a successful waitlist submission.
type SubmitEnvelope struct {
	OK    bool `json:"ok"`
	Count int  `json:"count"`
}

// StatusEnvelope is the diagnostic endpoint's response. Every field is
// populated on every call; the endpoint never fails.
type StatusEnvelope struct {
	Backend          string   `json:"backend"`
	Database         string   `json:"database"`
	DatabaseURL      string   `json:"database_url"`
	DatabaseName     string   `json:"database_name"`
	ConnectionStatus string   `json:"connection_status"`
	Collections      []string `json:"collections"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, MessageEnvelope{Error: msg})
}
