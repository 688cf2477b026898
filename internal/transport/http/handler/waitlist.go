package handler

import (
	"encoding/json"
	"errors"
	"log"
	"net"
	"net/http"

	"github.com/waitlist-api/internal/application/waitlist"
	"github.com/waitlist-api/internal/domain"
	"github.com/waitlist-api/internal/pkg/validate"
)

// WaitlistHandler handles the waitlist count and submit endpoints.
type WaitlistHandler struct {
	svc waitlist.Service
}

func NewWaitlistHandler(svc waitlist.Service) *WaitlistHandler {
	return &WaitlistHandler{svc: svc}
}

func (h *WaitlistHandler) Count(w http.ResponseWriter, r *http.Request) {
	n, err := h.svc.Count(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, CountEnvelope{Count: n})
}

func (h *WaitlistHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req domain.SubmitWaitlistRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	n, err := h.svc.Submit(r.Context(), req, clientIP(r))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, SubmitEnvelope{OK: true, Count: n})
}

// writeDomainError maps the closed error-kind set onto fixed status codes and
// static messages. The wrapped detail is logged, never sent to the client.
func writeDomainError(w http.ResponseWriter, err error) {
	var status int
	var kind error
	switch {
	case errors.Is(err, domain.ErrValidation):
		status, kind = http.StatusBadRequest, domain.ErrValidation
	case errors.Is(err, domain.ErrVerificationFailed):
		status, kind = http.StatusBadRequest, domain.ErrVerificationFailed
	case errors.Is(err, domain.ErrConfig):
		status, kind = http.StatusInternalServerError, domain.ErrConfig
	case errors.Is(err, domain.ErrVerificationUpstream):
		status, kind = http.StatusInternalServerError, domain.ErrVerificationUpstream
	default:
		status, kind = http.StatusInternalServerError, domain.ErrStorage
	}
	if status == http.StatusInternalServerError {
		log.Printf("waitlist: %v", err)
	}
	writeError(w, status, kind.Error())
}

// clientIP extracts the caller's address, best-effort. The RealIP middleware
// has already rewritten RemoteAddr when a forwarding header is present.
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
