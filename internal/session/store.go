// Package session owns the signed-in identity. Guards and dashboards read it
// through Reader; only Login and Logout write it.
package session

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"hoteldesk/internal/domain"
	"hoteldesk/pkg/sdk"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
)

// LoginFailedMessage is all a user is told when a login does not succeed.
const LoginFailedMessage = "Login failed"

var ErrLoginFailed = errors.New("login failed")

type Reader interface {
	Current() (domain.Session, bool)
}

type Authenticator interface {
	Login(ctx context.Context, email, password string) (*sdk.LoginResponse, error)
}

// TokenHolder receives the bearer token of the active session.
type TokenHolder interface {
	SetToken(token string)
}

type Store struct {
	mu      sync.RWMutex
	current *domain.Session

	repo   domain.SessionRepository
	auth   Authenticator
	tokens TokenHolder
	logger *zap.Logger
	now    func() time.Time
}

type Option func(*Store)

func WithTokenHolder(t TokenHolder) Option {
	return func(s *Store) { s.tokens = t }
}

func WithLogger(l *zap.Logger) Option {
	return func(s *Store) { s.logger = l }
}

func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// NewStore restores a persisted session if there is one that has not expired.
func NewStore(repo domain.SessionRepository, auth Authenticator, opts ...Option) (*Store, error) {
	s := &Store{
		repo:   repo,
		auth:   auth,
		logger: zap.NewNop(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}

	saved, err := repo.LoadSession()
	if err != nil {
		return nil, fmt.Errorf("error restoring session: %w", err)
	}
	if saved == nil {
		return s, nil
	}
	if s.expired(saved.AuthToken) {
		s.logger.Info("persisted session expired", zap.String("user_id", saved.SubjectID))
		if err := repo.ClearSession(); err != nil {
			return nil, fmt.Errorf("error clearing expired session: %w", err)
		}
		return s, nil
	}

	s.current = saved
	s.setToken(saved.AuthToken)
	s.logger.Info("session restored", zap.String("user_id", saved.SubjectID), zap.String("role", string(saved.Role)))
	return s, nil
}

// Login authenticates against the backend and makes the result the active
// session. It returns the pending redirect recorded by the guard, consumed
// so it is only ever used once, or "" when there is none.
func (s *Store) Login(ctx context.Context, email, password string) (domain.Session, string, error) {
	email = strings.TrimSpace(email)

	resp, err := s.auth.Login(ctx, email, password)
	if err != nil {
		s.logger.Warn("login rejected", zap.String("email", email), zap.Error(err))
		return domain.Session{}, "", fmt.Errorf("%w: %w", ErrLoginFailed, err)
	}
	if resp.Token == "" {
		s.logger.Warn("login response carried no token", zap.String("email", email))
		return domain.Session{}, "", fmt.Errorf("%w: empty token", ErrLoginFailed)
	}
	role, ok := domain.ParseRole(resp.Role)
	if !ok {
		s.logger.Warn("login response carried unknown role", zap.String("email", email), zap.String("role", resp.Role))
		return domain.Session{}, "", fmt.Errorf("%w: unknown role %q", ErrLoginFailed, resp.Role)
	}

	sess := domain.Session{
		SubjectID:   resp.ID.String(),
		DisplayName: resp.Name,
		Email:       email,
		Role:        role,
		AuthToken:   resp.Token,
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.repo.SaveSession(sess); err != nil {
		return domain.Session{}, "", fmt.Errorf("error saving session: %w", err)
	}
	s.current = &sess
	s.setToken(sess.AuthToken)

	redirect, err := s.repo.TakePendingRedirect()
	if err != nil {
		s.logger.Warn("could not read pending redirect", zap.Error(err))
		redirect = ""
	}

	s.logger.Info("signed in", zap.String("user_id", sess.SubjectID), zap.String("role", string(role)))
	return sess, redirect, nil
}

func (s *Store) Logout() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.clearLocked()
}

// Current reports the active session. A session whose token has expired is
// destroyed on the spot and reported as absent.
func (s *Store) Current() (domain.Session, bool) {
	s.mu.RLock()
	cur := s.current
	s.mu.RUnlock()

	if cur == nil {
		return domain.Session{}, false
	}
	if !s.expired(cur.AuthToken) {
		return *cur, true
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == cur {
		s.logger.Info("session expired", zap.String("user_id", cur.SubjectID))
		if err := s.clearLocked(); err != nil {
			s.logger.Warn("could not clear expired session", zap.Error(err))
		}
	}
	return domain.Session{}, false
}

// RememberRedirect records where to go after the next successful login.
func (s *Store) RememberRedirect(path string) error {
	return s.repo.SetPendingRedirect(path)
}

func (s *Store) clearLocked() error {
	s.current = nil
	s.setToken("")
	if err := s.repo.ClearSession(); err != nil {
		return fmt.Errorf("error clearing session: %w", err)
	}
	return nil
}

func (s *Store) setToken(token string) {
	if s.tokens != nil {
		s.tokens.SetToken(token)
	}
}

// expired is true only for a JWT whose exp claim has passed. Tokens that are
// not JWTs, or carry no exp, never expire on this side.
func (s *Store) expired(token string) bool {
	if token == "" {
		return false
	}
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return !s.now().Before(exp.Time)
}
