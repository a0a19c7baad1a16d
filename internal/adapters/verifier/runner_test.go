package verifier

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	apperrors "github.com/ecomsuite/storefront-client/internal/errors"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type fakeSession struct {
	mu            sync.Mutex
	authenticated bool
	verifyErr     error
	verifyOK      bool
	verifies      int
}

func (f *fakeSession) IsAuthenticated() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.authenticated
}

func (f *fakeSession) VerifyToken(context.Context) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.verifies++
	return f.verifyOK, f.verifyErr
}

func (f *fakeSession) verifyCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.verifies
}

func TestNewRunner_RequiresSession(t *testing.T) {
	_, err := NewRunner(RunnerOptions{})
	require.Error(t, err)
}

func TestRunner_VerifiesWhileAuthenticated(t *testing.T) {
	session := &fakeSession{authenticated: true, verifyOK: true}
	runner, err := NewRunner(RunnerOptions{Session: session, Interval: 5 * time.Millisecond})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- runner.Run(ctx) }()

	require.Eventually(t, func() bool {
		return session.verifyCount() >= 3
	}, time.Second, time.Millisecond)

	cancel()
	require.NoError(t, <-done)
}

func TestRunner_SkipsWhenSignedOut(t *testing.T) {
	session := &fakeSession{authenticated: false}
	runner, err := NewRunner(RunnerOptions{Session: session, Interval: time.Millisecond})
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()
	require.Error(t, runner.Run(ctx)) // deadline exceeded, not Canceled

	assert.Zero(t, session.verifyCount())
}

func TestRunner_KeepsGoingOnTransientError(t *testing.T) {
	session := &fakeSession{
		authenticated: true,
		verifyErr:     apperrors.Transient("connection refused"),
	}
	runner, err := NewRunner(RunnerOptions{Session: session, Interval: time.Millisecond})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- runner.Run(ctx) }()

	require.Eventually(t, func() bool {
		return session.verifyCount() >= 2
	}, time.Second, time.Millisecond)

	cancel()
	require.NoError(t, <-done)
}
