package domain

import "errors"

// Sentinel errors forming the closed error-kind set.
// Services wrap these so handlers can map each kind to a fixed HTTP status
// code without leaking infrastructure error text into responses.
var (
	// ErrConfig marks a missing deployment-time setting (e.g. the captcha
	// secret). A client cannot fix this; it maps to 500.
	ErrConfig = errors.New("not configured")
	// ErrValidation marks a malformed request body; maps to 400.
	ErrValidation = errors.New("invalid request")
	// ErrVerificationFailed means the captcha service answered but rejected
	// the token; maps to 400.
	ErrVerificationFailed = errors.New("verification failed")
	// ErrVerificationUpstream means the captcha service could not be reached
	// or answered garbage; maps to 500.
	ErrVerificationUpstream = errors.New("verification error")
	// ErrStorage marks any document-store failure; maps to 500.
	ErrStorage = errors.New("storage error")
)
