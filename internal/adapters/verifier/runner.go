// Package verifier provides an adapter that periodically revalidates the
// stored credential against the server while the process runs.
package verifier

import (
	"context"
	"errors"
	"log/slog"
	"time"
)

// SessionVerifier is the slice of the session manager the runner needs.
type SessionVerifier interface {
	IsAuthenticated() bool
	VerifyToken(ctx context.Context) (bool, error)
}

// Runner calls VerifyToken at a fixed interval. A rejected token is handled
// inside the session manager; transient verification errors are logged and
// the loop keeps going.
type Runner struct {
	session  SessionVerifier
	interval time.Duration
	logger   *slog.Logger
}

// RunnerOptions holds the dependencies for creating a Runner.
type RunnerOptions struct {
	Session  SessionVerifier
	Interval time.Duration
	Logger   *slog.Logger
}

// NewRunner creates a new verification runner.
func NewRunner(opts RunnerOptions) (*Runner, error) {
	if opts.Session == nil {
		return nil, errors.New("session verifier is required")
	}
	interval := opts.Interval
	if interval <= 0 {
		interval = 5 * time.Minute
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Runner{
		session:  opts.Session,
		interval: interval,
		logger:   logger.With("component", "verifier"),
	}, nil
}

// Run starts the verification loop and runs until the context is cancelled.
func (r *Runner) Run(ctx context.Context) error {
	r.logger.Debug("starting token verification loop", "interval", r.interval)

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			r.logger.Debug("token verification loop stopping", "reason", ctx.Err())
			if errors.Is(ctx.Err(), context.Canceled) {
				return nil
			}
			return ctx.Err()

		case <-ticker.C:
			if !r.session.IsAuthenticated() {
				continue
			}
			ok, err := r.session.VerifyToken(ctx)
			switch {
			case err != nil:
				r.logger.Warn("token verification failed, will retry", "error", err)
			case !ok:
				r.logger.Info("token no longer valid, session cleared")
			}
		}
	}
}
