package domain

import "time"

// Fallback values applied when a submission omits the optional fields.
const (
	DefaultCity   = "Milano"
	DefaultSource = "landing"
)

// WaitlistEntry is a single signup document. Email is the partition key and
// is always stored lowercase, so at most one entry exists per address.
type WaitlistEntry struct {
	EntryID      string     `json:"id" dynamodbav:"entry_id"`
	Email        string     `json:"email" dynamodbav:"email"`
	City         string     `json:"city" dynamodbav:"city"`
	Source       string     `json:"source" dynamodbav:"source"`
	SubscribedAt time.Time  `json:"subscribed_at" dynamodbav:"subscribed_at"`
	UpdatedAt    *time.Time `json:"updated_at,omitempty" dynamodbav:"updated_at,omitempty"`
}

type SubmitWaitlistRequest struct {
	Email  string `json:"email" validate:"required,email"`
	Token  string `json:"token" validate:"required"`
	City   string `json:"city"`
	Source string `json:"source"`
}
