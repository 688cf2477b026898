package http

import (
	"context"
	"time"

	"github.com/waitlist-api/internal/domain"
	"github.com/waitlist-api/internal/infrastructure/dynamo"
	"github.com/waitlist-api/internal/infrastructure/turnstile"
)

// Deps holds all infrastructure dependencies for the router.
type Deps struct {
	WaitlistRepo *dynamo.WaitlistRepo
	Diag         *dynamo.Diag
	Verifier     *turnstile.Verifier
}

// WaitlistStore is the minimal interface the router requires from the
// waitlist table.
type WaitlistStore interface {
	PutIfAbsent(ctx context.Context, e *domain.WaitlistEntry) (bool, error)
	TouchUpdatedAt(ctx context.Context, email string, at time.Time) error
	Count(ctx context.Context) (int, error)
}

// StoreProbe is the minimal interface the diagnostic endpoint requires from
// the document store.
type StoreProbe interface {
	ListCollections(ctx context.Context, limit int32) ([]string, error)
}
