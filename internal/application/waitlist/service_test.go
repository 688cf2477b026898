package waitlist

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/waitlist-api/internal/domain"
)

// --- mocks ---

type mockWaitlistStore struct{ mock.Mock }

func (m *mockWaitlistStore) PutIfAbsent(ctx context.Context, e *domain.WaitlistEntry) (bool, error) {
	args := m.Called(ctx, e)
	return args.Bool(0), args.Error(1)
}
func (m *mockWaitlistStore) TouchUpdatedAt(ctx context.Context, email string, at time.Time) error {
	return m.Called(ctx, email, at).Error(0)
}
func (m *mockWaitlistStore) Count(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

type mockVerifier struct{ mock.Mock }

func (m *mockVerifier) Verify(ctx context.Context, token, remoteIP string) error {
	return m.Called(ctx, token, remoteIP).Error(0)
}

// --- helpers ---

func baseReq() domain.SubmitWaitlistRequest {
	return domain.SubmitWaitlistRequest{
		Email: "a@b.com",
		Token: "valid",
	}
}

func passingVerifier() *mockVerifier {
	v := &mockVerifier{}
	v.On("Verify", mock.Anything, mock.Anything, mock.Anything).Return(nil)
	return v
}

// --- Submit tests ---

func TestSubmit_FirstEntry(t *testing.T) {
	store := &mockWaitlistStore{}
	store.On("PutIfAbsent", mock.Anything, mock.MatchedBy(func(e *domain.WaitlistEntry) bool {
		return e.Email == "a@b.com" &&
			e.City == domain.DefaultCity &&
			e.Source == domain.DefaultSource &&
			e.EntryID != "" &&
			!e.SubscribedAt.IsZero() &&
			e.UpdatedAt == nil
	})).Return(true, nil)
	store.On("Count", mock.Anything).Return(1, nil)

	svc := NewService(store, passingVerifier())
	n, err := svc.Submit(context.Background(), baseReq(), "1.2.3.4")

	require.NoError(t, err)
	assert.Equal(t, 1, n)
	store.AssertNotCalled(t, "TouchUpdatedAt", mock.Anything, mock.Anything, mock.Anything)
	store.AssertExpectations(t)
}

func TestSubmit_DuplicateTouchesUpdatedAtOnly(t *testing.T) {
	store := &mockWaitlistStore{}
	store.On("PutIfAbsent", mock.Anything, mock.Anything).Return(false, nil)
	store.On("TouchUpdatedAt", mock.Anything, "a@b.com", mock.Anything).Return(nil)
	store.On("Count", mock.Anything).Return(1, nil)

	svc := NewService(store, passingVerifier())
	n, err := svc.Submit(context.Background(), baseReq(), "")

	require.NoError(t, err)
	assert.Equal(t, 1, n)
	store.AssertExpectations(t)
}

func TestSubmit_NormalizesEmail(t *testing.T) {
	store := &mockWaitlistStore{}
	store.On("PutIfAbsent", mock.Anything, mock.MatchedBy(func(e *domain.WaitlistEntry) bool {
		return e.Email == "foo@example.com"
	})).Return(true, nil)
	store.On("Count", mock.Anything).Return(1, nil)

	req := baseReq()
	req.Email = "Foo@Example.com"

	svc := NewService(store, passingVerifier())
	_, err := svc.Submit(context.Background(), req, "")

	require.NoError(t, err)
	store.AssertExpectations(t)
}

func TestSubmit_KeepsProvidedCityAndSource(t *testing.T) {
	store := &mockWaitlistStore{}
	store.On("PutIfAbsent", mock.Anything, mock.MatchedBy(func(e *domain.WaitlistEntry) bool {
		return e.City == "Torino" && e.Source == "referral"
	})).Return(true, nil)
	store.On("Count", mock.Anything).Return(1, nil)

	req := baseReq()
	req.City = "Torino"
	req.Source = "referral"

	svc := NewService(store, passingVerifier())
	_, err := svc.Submit(context.Background(), req, "")

	require.NoError(t, err)
	store.AssertExpectations(t)
}

func TestSubmit_NoVerifierConfigured(t *testing.T) {
	store := &mockWaitlistStore{}

	svc := NewService(store, nil)
	_, err := svc.Submit(context.Background(), baseReq(), "")

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrConfig))
	store.AssertNotCalled(t, "PutIfAbsent", mock.Anything, mock.Anything)
	store.AssertNotCalled(t, "Count", mock.Anything)
}

func TestSubmit_CaptchaRejected_NoWrite(t *testing.T) {
	store := &mockWaitlistStore{}
	v := &mockVerifier{}
	v.On("Verify", mock.Anything, "bad", "1.2.3.4").
		Return(fmt.Errorf("token rejected: %w", domain.ErrVerificationFailed))

	req := baseReq()
	req.Token = "bad"

	svc := NewService(store, v)
	_, err := svc.Submit(context.Background(), req, "1.2.3.4")

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrVerificationFailed))
	store.AssertNotCalled(t, "PutIfAbsent", mock.Anything, mock.Anything)
	v.AssertExpectations(t)
}

func TestSubmit_CaptchaUpstreamError_NoWrite(t *testing.T) {
	store := &mockWaitlistStore{}
	v := &mockVerifier{}
	v.On("Verify", mock.Anything, mock.Anything, mock.Anything).
		Return(fmt.Errorf("siteverify call failed: %w", domain.ErrVerificationUpstream))

	svc := NewService(store, v)
	_, err := svc.Submit(context.Background(), baseReq(), "")

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrVerificationUpstream))
	store.AssertNotCalled(t, "PutIfAbsent", mock.Anything, mock.Anything)
}

func TestSubmit_StoreFailure(t *testing.T) {
	store := &mockWaitlistStore{}
	store.On("PutIfAbsent", mock.Anything, mock.Anything).Return(false, errors.New("table missing"))

	svc := NewService(store, passingVerifier())
	_, err := svc.Submit(context.Background(), baseReq(), "")

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrStorage))
}

// --- Count tests ---

func TestCount(t *testing.T) {
	store := &mockWaitlistStore{}
	store.On("Count", mock.Anything).Return(42, nil)

	svc := NewService(store, nil)
	n, err := svc.Count(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 42, n)
}

func TestCount_StoreFailure(t *testing.T) {
	store := &mockWaitlistStore{}
	store.On("Count", mock.Anything).Return(0, errors.New("connection refused"))

	svc := NewService(store, nil)
	_, err := svc.Count(context.Background())

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrStorage))
}
