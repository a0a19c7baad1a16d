package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	apperrors "github.com/ecomsuite/storefront-client/internal/errors"

	domainauth "github.com/ecomsuite/storefront-client/internal/domain/auth"
	"github.com/ecomsuite/storefront-client/internal/ports"
)

// ProfileServiceOptions groups dependencies for ProfileService.
type ProfileServiceOptions struct {
	API     ports.UserAPI
	Session *SessionManager
	Logger  *slog.Logger
}

// ProfileService manages the signed-in user's account details, keeping the
// session's cached user in step with server-side edits.
type ProfileService struct {
	api     ports.UserAPI
	session *SessionManager
	logger  *slog.Logger
}

// NewProfileService constructs a ProfileService.
func NewProfileService(opts ProfileServiceOptions) (*ProfileService, error) {
	if opts.API == nil {
		return nil, errors.New("profile service requires a user API")
	}
	if opts.Session == nil {
		return nil, errors.New("profile service requires a session manager")
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &ProfileService{
		api:     opts.API,
		session: opts.Session,
		logger:  logger.With("component", "profile"),
	}, nil
}

// UpdateProfile applies a profile edit and refreshes the session snapshot
// with the user the server returns.
func (s *ProfileService) UpdateProfile(ctx context.Context, in ports.ProfileUpdate) (domainauth.User, error) {
	user, err := s.api.UpdateProfile(ctx, in)
	if err != nil {
		return domainauth.User{}, fmt.Errorf("update profile: %w", err)
	}
	s.session.SetUser(ctx, user)
	return user, nil
}

// ChangePassword changes the signed-in user's password. The server keeps the
// current credential valid, so the session is untouched.
func (s *ProfileService) ChangePassword(ctx context.Context, in ports.PasswordChange) error {
	if in.Password != in.PasswordConfirmation {
		return apperrors.ValidationField("password_confirmation", "passwords do not match")
	}
	if strength := domainauth.CheckPasswordStrength(in.Password); strength == domainauth.PasswordWeak {
		return apperrors.ValidationField("password", "password is too weak")
	}
	if err := s.api.ChangePassword(ctx, in); err != nil {
		return fmt.Errorf("change password: %w", err)
	}
	return nil
}
