package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	apperrors "github.com/ecomsuite/storefront-client/internal/errors"

	domainauth "github.com/ecomsuite/storefront-client/internal/domain/auth"
	"github.com/ecomsuite/storefront-client/internal/ports"
)

// AuthEventType identifies a session lifecycle transition.
type AuthEventType string

const (
	// EventAuthenticated fires after a session has been committed to storage,
	// whether from a fresh login, a registration, or a restored snapshot.
	EventAuthenticated AuthEventType = "authenticated"
	// EventLoggedOut fires after a user-initiated logout has cleared the session.
	EventLoggedOut AuthEventType = "logged_out"
	// EventSessionExpired fires after the session was cleared because the
	// server rejected the credential.
	EventSessionExpired AuthEventType = "session_expired"
)

// AuthEvent is delivered to subscribers on session transitions. Events are
// emitted only after the corresponding storage commit.
type AuthEvent struct {
	Type AuthEventType
	User domainauth.User
}

// SessionManagerOptions groups dependencies for SessionManager.
type SessionManagerOptions struct {
	API       ports.AuthAPI
	Store     ports.KVStore
	Navigator ports.Navigator
	Logger    *slog.Logger

	// LoginPath is the navigation target after a forced sign-out.
	LoginPath string
	// Clock overrides time.Now in tests.
	Clock func() time.Time
}

// SessionManager owns the token and current-user state. The token and user
// are persisted and cleared as a single snapshot, so observers never see a
// token without its user.
type SessionManager struct {
	api       ports.AuthAPI
	store     ports.KVStore
	navigator ports.Navigator
	logger    *slog.Logger
	loginPath string
	now       func() time.Time

	mu      sync.Mutex
	session *domainauth.Session
	subs    map[chan AuthEvent]struct{}
}

// NewSessionManager constructs a SessionManager.
func NewSessionManager(opts SessionManagerOptions) (*SessionManager, error) {
	if opts.API == nil {
		return nil, errors.New("session manager requires an auth API")
	}
	if opts.Store == nil {
		return nil, errors.New("session manager requires a store")
	}

	navigator := opts.Navigator
	if navigator == nil {
		navigator = ports.NopNavigator{}
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	loginPath := opts.LoginPath
	if loginPath == "" {
		loginPath = "/login"
	}
	now := opts.Clock
	if now == nil {
		now = time.Now
	}

	return &SessionManager{
		api:       opts.API,
		store:     opts.Store,
		navigator: navigator,
		logger:    logger.With("component", "session"),
		loginPath: loginPath,
		now:       now,
		subs:      make(map[chan AuthEvent]struct{}),
	}, nil
}

// Login exchanges credentials for a session. The session is persisted before
// the authenticated event fires; on error no local state changes.
func (s *SessionManager) Login(ctx context.Context, email, password string) (domainauth.Session, error) {
	result, err := s.api.Login(ctx, ports.Credentials{
		Email:      email,
		Password:   password,
		DeviceName: s.deviceName(ctx),
	})
	if err != nil {
		return domainauth.Session{}, fmt.Errorf("login: %w", err)
	}
	return s.commit(ctx, result)
}

// Register creates an account and, like Login, establishes a session.
func (s *SessionManager) Register(ctx context.Context, in ports.RegisterInput) (domainauth.Session, error) {
	in.DeviceName = s.deviceName(ctx)
	result, err := s.api.Register(ctx, in)
	if err != nil {
		return domainauth.Session{}, fmt.Errorf("register: %w", err)
	}
	return s.commit(ctx, result)
}

// Logout revokes the credential server-side on a best-effort basis, then
// clears the local session unconditionally.
func (s *SessionManager) Logout(ctx context.Context) error {
	if !s.IsAuthenticated() {
		return nil
	}
	if err := s.api.Logout(ctx); err != nil {
		s.logger.Warn("remote logout failed, clearing local session anyway", "error", err)
	}
	s.clear(ctx, EventLoggedOut)
	s.navigator.NavigateTo(s.loginPath, "")
	return nil
}

// IsAuthenticated reports whether a non-expired session is held. No network.
func (s *SessionManager) IsAuthenticated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.session != nil && s.session.Valid(s.now())
}

// CurrentUser returns the signed-in user, if any.
func (s *SessionManager) CurrentUser() (domainauth.User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.session == nil {
		return domainauth.User{}, false
	}
	return s.session.User, true
}

// Token returns the bearer credential, or "" when signed out.
func (s *SessionManager) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.session == nil {
		return ""
	}
	return s.session.Token
}

// VerifyToken asks the server whether the held credential is still good. A
// definitive rejection clears the session; a transport failure leaves it
// untouched so a flaky network never signs the user out.
func (s *SessionManager) VerifyToken(ctx context.Context) (bool, error) {
	if !s.IsAuthenticated() {
		return false, nil
	}
	err := s.api.VerifyToken(ctx)
	if err == nil {
		return true, nil
	}
	if apperrors.IsUnauthorized(err) {
		s.logger.Info("stored token rejected by server")
		s.clear(ctx, EventSessionExpired)
		return false, nil
	}
	return false, fmt.Errorf("verify token: %w", err)
}

// RestoreSession loads the persisted snapshot at startup and revalidates it
// against the server. It reports whether a session is held afterwards.
func (s *SessionManager) RestoreSession(ctx context.Context) (bool, error) {
	raw, err := s.store.Get(ctx, ports.KeySession)
	if errors.Is(err, ports.ErrKeyNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("load session snapshot: %w", err)
	}

	var sess domainauth.Session
	if err := json.Unmarshal(raw, &sess); err != nil {
		s.logger.Warn("discarding unreadable session snapshot", "error", err)
		s.deleteSnapshot(ctx)
		return false, nil
	}
	if !sess.Valid(s.now()) {
		s.deleteSnapshot(ctx)
		return false, nil
	}

	s.mu.Lock()
	s.session = &sess
	s.mu.Unlock()

	user, err := s.api.CurrentUser(ctx)
	switch {
	case err == nil:
		s.mu.Lock()
		if s.session != nil {
			s.session.User = user
			sess = *s.session
		}
		s.mu.Unlock()
		if err := s.persist(ctx, sess); err != nil {
			s.logger.Warn("persisting refreshed session failed", "error", err)
		}
	case apperrors.IsUnauthorized(err):
		s.clear(ctx, EventSessionExpired)
		return false, nil
	default:
		s.logger.Warn("profile refresh failed, keeping stored session", "error", err)
	}

	s.emit(AuthEvent{Type: EventAuthenticated, User: sess.User})
	return true, nil
}

// ForgotPassword starts the password reset flow for an email address.
func (s *SessionManager) ForgotPassword(ctx context.Context, email string) error {
	if err := s.api.ForgotPassword(ctx, email); err != nil {
		return fmt.Errorf("forgot password: %w", err)
	}
	return nil
}

// ResetPassword completes a password reset using the emailed token.
func (s *SessionManager) ResetPassword(ctx context.Context, in ports.ResetPasswordInput) error {
	if err := s.api.ResetPassword(ctx, in); err != nil {
		return fmt.Errorf("reset password: %w", err)
	}
	return nil
}

// SetUser replaces the cached user inside the committed session, e.g. after a
// profile edit. No-op when signed out.
func (s *SessionManager) SetUser(ctx context.Context, user domainauth.User) {
	s.mu.Lock()
	if s.session == nil {
		s.mu.Unlock()
		return
	}
	s.session.User = user
	sess := *s.session
	s.mu.Unlock()

	if err := s.persist(ctx, sess); err != nil {
		s.logger.Warn("persisting updated user failed", "error", err)
	}
}

// HandleUnauthorized reacts to a server 401 observed anywhere in the client:
// clear the session and send the user to the login entry point, remembering
// where they were. Safe to call repeatedly; only the first call after a
// sign-in does anything.
func (s *SessionManager) HandleUnauthorized() {
	s.mu.Lock()
	hadSession := s.session != nil
	s.mu.Unlock()
	if !hadSession {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	s.clear(ctx, EventSessionExpired)

	if current := s.navigator.CurrentPath(); current != s.loginPath {
		s.navigator.NavigateTo(s.loginPath, current)
	}
}

// Subscribe registers for session lifecycle events. The returned function
// removes the subscription and closes the channel. Slow consumers miss
// events rather than blocking the session manager.
func (s *SessionManager) Subscribe() (func(), <-chan AuthEvent) {
	ch := make(chan AuthEvent, 8)

	s.mu.Lock()
	s.subs[ch] = struct{}{}
	s.mu.Unlock()

	unsub := func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if _, ok := s.subs[ch]; !ok {
			return
		}
		delete(s.subs, ch)
		close(ch)
	}
	return unsub, ch
}

// commit persists the snapshot, installs it in memory, and only then emits.
func (s *SessionManager) commit(ctx context.Context, result ports.AuthResult) (domainauth.Session, error) {
	sess := domainauth.Session{
		Token:     result.Token,
		User:      result.User,
		ExpiresAt: result.ExpiresAt,
	}
	if err := s.persist(ctx, sess); err != nil {
		return domainauth.Session{}, fmt.Errorf("persist session: %w", err)
	}

	s.mu.Lock()
	s.session = &sess
	s.mu.Unlock()

	s.emit(AuthEvent{Type: EventAuthenticated, User: sess.User})
	return sess, nil
}

func (s *SessionManager) persist(ctx context.Context, sess domainauth.Session) error {
	raw, err := json.Marshal(sess)
	if err != nil {
		return err
	}
	return s.store.Set(ctx, ports.KeySession, raw)
}

// clear drops the session from memory and storage as one transition, then
// emits. Callers decide which event the clear represents.
func (s *SessionManager) clear(ctx context.Context, event AuthEventType) {
	s.mu.Lock()
	if s.session == nil {
		s.mu.Unlock()
		return
	}
	user := s.session.User
	s.session = nil
	s.mu.Unlock()

	s.deleteSnapshot(ctx)
	s.emit(AuthEvent{Type: event, User: user})
}

func (s *SessionManager) deleteSnapshot(ctx context.Context) {
	if err := s.store.Delete(ctx, ports.KeySession); err != nil {
		s.logger.Warn("deleting session snapshot failed", "error", err)
	}
}

func (s *SessionManager) emit(event AuthEvent) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for ch := range s.subs {
		select {
		case ch <- event:
		default:
			s.logger.Warn("dropping session event for slow subscriber", "event", event.Type)
		}
	}
}

// deviceName returns the stable per-install identifier sent as device_name,
// minting one on first use.
func (s *SessionManager) deviceName(ctx context.Context) string {
	raw, err := s.store.Get(ctx, ports.KeyDeviceID)
	if err == nil && len(raw) > 0 {
		return string(raw)
	}
	id := uuid.NewString()
	if err := s.store.Set(ctx, ports.KeyDeviceID, []byte(id)); err != nil {
		s.logger.Warn("persisting device id failed", "error", err)
	}
	return id
}
