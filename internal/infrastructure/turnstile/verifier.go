package turnstile

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/waitlist-api/internal/domain"
)

// verifyTimeout bounds the outbound siteverify call.
const verifyTimeout = 6 * time.Second

// Verifier checks Turnstile tokens against Cloudflare's siteverify endpoint.
type Verifier struct {
	secret    string
	verifyURL string
	client    *http.Client
}

func NewVerifier(secret, verifyURL string) *Verifier {
	return &Verifier{
		secret:    secret,
		verifyURL: verifyURL,
		client:    &http.Client{Timeout: verifyTimeout},
	}
}

type verifyResponse struct {
	Success    bool     `json:"success"`
	ErrorCodes []string `json:"error-codes"`
}

// Verify posts the token to siteverify and interprets the success field.
// remoteIP is forwarded when known; an empty value is simply omitted.
// Returns a domain.ErrVerificationFailed-wrapped error when the service
// rejects the token, and domain.ErrVerificationUpstream when the call itself
// fails.
func (v *Verifier) Verify(ctx context.Context, token, remoteIP string) error {
	form := url.Values{
		"secret":   {v.secret},
		"response": {token},
	}
	if remoteIP != "" {
		form.Set("remoteip", remoteIP)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, v.verifyURL, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("build siteverify request: %w", domain.ErrVerificationUpstream)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := v.client.Do(req)
	if err != nil {
		return fmt.Errorf("siteverify call failed: %w", domain.ErrVerificationUpstream)
	}
	defer resp.Body.Close()

	var vr verifyResponse
	if err := json.NewDecoder(resp.Body).Decode(&vr); err != nil {
		return fmt.Errorf("siteverify returned malformed JSON: %w", domain.ErrVerificationUpstream)
	}
	if !vr.Success {
		return fmt.Errorf("token rejected (%s): %w", strings.Join(vr.ErrorCodes, ","), domain.ErrVerificationFailed)
	}
	return nil
}
