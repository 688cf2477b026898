package waitlist

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/waitlist-api/internal/domain"
	"github.com/waitlist-api/internal/pkg/id"
)

type Service interface {
	// Count returns the total number of waitlist entries.
	Count(ctx context.Context) (int, error)
	// Submit verifies the captcha token and records the signup, then returns
	// the post-write entry count. Verification must succeed before anything
	// is written.
	Submit(ctx context.Context, req domain.SubmitWaitlistRequest, remoteIP string) (int, error)
}

type waitlistStore interface {
	PutIfAbsent(ctx context.Context, e *domain.WaitlistEntry) (bool, error)
	TouchUpdatedAt(ctx context.Context, email string, at time.Time) error
	Count(ctx context.Context) (int, error)
}

// CaptchaVerifier checks a captcha token before any write is allowed.
type CaptchaVerifier interface {
	Verify(ctx context.Context, token, remoteIP string) error
}

type service struct {
	repo     waitlistStore
	verifier CaptchaVerifier
}

// NewService builds the waitlist service. verifier may be nil when no secret
// is configured; submissions then fail with domain.ErrConfig before any
// outbound call is attempted.
func NewService(repo waitlistStore, verifier CaptchaVerifier) Service {
	return &service{repo: repo, verifier: verifier}
}

func (s *service) Count(ctx context.Context) (int, error) {
	n, err := s.repo.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("count waitlist: %w", domain.ErrStorage)
	}
	return n, nil
}

func (s *service) Submit(ctx context.Context, req domain.SubmitWaitlistRequest, remoteIP string) (int, error) {
	if s.verifier == nil {
		return 0, fmt.Errorf("captcha secret missing: %w", domain.ErrConfig)
	}
	if err := s.verifier.Verify(ctx, req.Token, remoteIP); err != nil {
		return 0, err
	}

	now := time.Now().UTC()
	entry := &domain.WaitlistEntry{
		EntryID:      id.New(),
		Email:        strings.ToLower(req.Email),
		City:         orDefault(req.City, domain.DefaultCity),
		Source:       orDefault(req.Source, domain.DefaultSource),
		SubscribedAt: now,
	}

	created, err := s.repo.PutIfAbsent(ctx, entry)
	if err != nil {
		return 0, fmt.Errorf("store waitlist entry: %w", domain.ErrStorage)
	}
	if !created {
		// Duplicate submission: only updated_at moves.
		if err := s.repo.TouchUpdatedAt(ctx, entry.Email, now); err != nil {
			return 0, fmt.Errorf("touch waitlist entry: %w", domain.ErrStorage)
		}
	}

	n, err := s.repo.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("count waitlist: %w", domain.ErrStorage)
	}
	return n, nil
}

func orDefault(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}
