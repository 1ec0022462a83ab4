package session

import (
	"context"
	"strconv"
	"sync"
	"time"

	"servicehub/internal/events"
	apperrors "servicehub/pkg/errors"
	"servicehub/pkg/logger"
	"servicehub/pkg/model"
	"servicehub/pkg/sanitizer"
)

// AuthAPI is the slice of the REST backend the session needs.
type AuthAPI interface {
	Login(ctx context.Context, creds model.Credentials) (*model.AuthResponse, error)
	Register(ctx context.Context, data model.RegisterData) (*model.AuthResponse, error)
	Profile(ctx context.Context, token string) (*model.User, error)
}

// Store holds the authenticated identity and its credential. One Store is
// created per front door (per request in the gateway, per process in the
// CLI) and injected wherever the current user is needed.
type Store struct {
	api       AuthAPI
	tokens    TokenStore
	validator *RegisterValidator
	events    events.Publisher
	log       *logger.Logger
	now       func() time.Time

	mu    sync.RWMutex
	user  *model.User
	token string
}

type Option func(*Store)

func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

func WithPublisher(p events.Publisher) Option {
	return func(s *Store) { s.events = p }
}

// New builds a Store and restores any persisted credential. A credential
// that cannot be restored is discarded and the Store starts anonymous.
func New(ctx context.Context, api AuthAPI, tokens TokenStore, log *logger.Logger, opts ...Option) *Store {
	s := &Store{
		api:       api,
		tokens:    tokens,
		validator: NewRegisterValidator(),
		events:    events.Noop{},
		log:       log,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}

	if err := s.Restore(ctx); err != nil {
		s.log.Warn("Discarded persisted session", "error", err)
	}
	return s
}

func (s *Store) Login(ctx context.Context, email, password string) (*model.User, error) {
	creds := model.Credentials{
		Email:    sanitizer.NormalizeEmail(email),
		Password: password,
	}
	if violations := s.validator.validate.Struct(&creds); len(violations) > 0 {
		return nil, apperrors.Validation("login form is invalid", violations)
	}

	resp, err := s.api.Login(ctx, creds)
	if err != nil {
		s.log.Warn("Login failed", "email", creds.Email, "error", err)
		return nil, asAuthError(err, "login failed")
	}

	s.establish(resp)
	s.log.Info("User logged in", "user_id", resp.User.ID, "role", resp.User.Role)
	return s.Current(), nil
}

// Register validates the form locally and only then calls the backend. All
// violations are reported together.
func (s *Store) Register(ctx context.Context, data model.RegisterData) (*model.User, error) {
	s.validator.Normalize(&data)
	if violations := s.validator.Validate(&data); len(violations) > 0 {
		return nil, apperrors.Validation("registration form is invalid", violations)
	}

	resp, err := s.api.Register(ctx, data)
	if err != nil {
		s.log.Warn("Registration failed", "email", data.Email, "role", data.Role, "error", err)
		return nil, asAuthError(err, "registration failed")
	}

	s.establish(resp)
	s.log.Info("User registered", "user_id", resp.User.ID, "role", resp.User.Role)

	s.events.Publish(ctx, events.Event{
		Type:       events.SessionRegistered,
		Key:        strconv.FormatInt(resp.User.ID, 10),
		ActorID:    resp.User.ID,
		OccurredAt: s.now(),
		Payload:    map[string]any{"role": resp.User.Role},
	})
	return s.Current(), nil
}

// Logout forgets the identity and the persisted credential. Calling it on an
// anonymous Store is a no-op.
func (s *Store) Logout() error {
	s.mu.Lock()
	s.user = nil
	s.token = ""
	s.mu.Unlock()

	if err := s.tokens.Clear(); err != nil {
		s.log.Error("Failed to remove persisted token", "error", err)
		return apperrors.Internal("failed to remove persisted token", err)
	}
	return nil
}

// Restore resolves a persisted credential to an identity. Any failure logs
// the user out.
func (s *Store) Restore(ctx context.Context) error {
	token, err := s.tokens.Load()
	if err != nil {
		_ = s.Logout()
		return apperrors.Auth("stored session could not be read", err)
	}
	if token == "" {
		return nil
	}

	if tokenExpired(token, s.now()) {
		_ = s.Logout()
		return apperrors.Auth("session expired, please log in again", nil)
	}

	user, err := s.api.Profile(ctx, token)
	if err != nil {
		_ = s.Logout()
		return asAuthError(err, "session could not be restored")
	}

	s.mu.Lock()
	s.user = user
	s.token = token
	s.mu.Unlock()

	s.log.Debug("Session restored", "user_id", user.ID)
	return nil
}

// Current returns a copy of the identity, or nil when anonymous.
func (s *Store) Current() *model.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return nil
	}
	u := *s.user
	return &u
}

func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

func (s *Store) Authenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user != nil && s.token != ""
}

// Credential is handed to the REST client and consulted on every call.
func (s *Store) Credential() string {
	return s.Token()
}

// Require returns the identity when it has the given role.
func (s *Store) Require(role model.Role) (*model.User, error) {
	user := s.Current()
	if user == nil || !s.Authenticated() {
		return nil, apperrors.Unauthorized("please log in to continue")
	}
	if user.Role != role {
		return nil, apperrors.Forbidden("this action requires a " + string(role) + " account")
	}
	return user, nil
}

// RefreshIdentity copies the editable identity fields of user onto the
// current identity when both refer to the same account.
func (s *Store) RefreshIdentity(user model.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.user == nil || s.user.ID != user.ID {
		return
	}
	s.user.Name = user.Name
	s.user.Phone = user.Phone
	s.user.Location = user.Location
}

func (s *Store) establish(resp *model.AuthResponse) {
	user := resp.User

	s.mu.Lock()
	s.user = &user
	s.token = resp.Token
	s.mu.Unlock()

	if err := s.tokens.Save(resp.Token); err != nil {
		s.log.Error("Failed to persist token", "user_id", user.ID, "error", err)
	}
}

// asAuthError keeps the backend's message. Network failures become auth
// errors too, wrapping the transport error as the cause.
func asAuthError(err error, fallback string) error {
	if apperrors.IsAuth(err) {
		return err
	}
	appErr := apperrors.AsAppError(err)
	msg := appErr.Message
	if appErr.Code == apperrors.CodeInternal || msg == "" {
		msg = fallback
	}
	return apperrors.Auth(msg, err)
}
