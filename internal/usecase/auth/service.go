package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	domsession "example.com/fieldops/internal/domain/session"
)

// Identity is what the backend returns for a successful login.
type Identity struct {
	Token  string
	UserID int64
	Name   string
	Email  string
	Role   string
}

type Authenticator interface {
	Login(ctx context.Context, email, password string) (*Identity, error)
}

// Claims are the parts of the backend token the dashboard cares about.
type Claims struct {
	UserID    int64
	Role      string
	ExpiresAt time.Time
}

type TokenInspector interface {
	Inspect(token string) (*Claims, error)
}

// KeyHasher issues opaque cookie keys and hashes them for storage.
type KeyHasher interface {
	NewKey() string
	Hash(key string) string
}

type Service struct {
	sessions domsession.Repository
	authn    Authenticator
	tokens   TokenInspector
	keys     KeyHasher
	ttl      time.Duration
	now      func() time.Time

	mu       sync.Mutex
	onLogout []func(sessionID string)
}

func NewService(
	sessions domsession.Repository,
	authn Authenticator,
	tokens TokenInspector,
	keys KeyHasher,
	ttl time.Duration,
) *Service {
	return &Service{
		sessions: sessions,
		authn:    authn,
		tokens:   tokens,
		keys:     keys,
		ttl:      ttl,
		now:      time.Now,
	}
}

// OnLogout registers fn to run with the session id whenever a session ends.
func (s *Service) OnLogout(fn func(sessionID string)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onLogout = append(s.onLogout, fn)
}

type LoginInput struct {
	Email    string
	Password string
}

type LoginResult struct {
	Key     string
	Session *domsession.Session
}

func (s *Service) Login(ctx context.Context, in LoginInput) (*LoginResult, error) {
	email := strings.TrimSpace(strings.ToLower(in.Email))
	if email == "" || in.Password == "" {
		return nil, domsession.ErrInvalidCredential
	}

	id, err := s.authn.Login(ctx, email, in.Password)
	if err != nil {
		return nil, err
	}

	claims, err := s.tokens.Inspect(id.Token)
	if err != nil {
		return nil, fmt.Errorf("inspect backend token: %w", domsession.ErrUnauthenticated)
	}

	roleName := claims.Role
	if roleName == "" {
		roleName = id.Role
	}
	role, err := domsession.ParseRole(roleName)
	if err != nil {
		return nil, err
	}

	now := s.now()
	expires := now.Add(s.ttl)
	if !claims.ExpiresAt.IsZero() && claims.ExpiresAt.Before(expires) {
		expires = claims.ExpiresAt
	}
	if !expires.After(now) {
		return nil, domsession.ErrSessionExpired
	}

	userID := id.UserID
	if userID == 0 {
		userID = claims.UserID
	}

	key := s.keys.NewKey()
	sess := &domsession.Session{
		ID:        s.keys.Hash(key),
		UserID:    userID,
		Name:      id.Name,
		Email:     email,
		Role:      role,
		Token:     id.Token,
		ExpiresAt: expires,
		CreatedAt: now,
	}
	if err := s.sessions.Create(ctx, sess); err != nil {
		return nil, fmt.Errorf("store session: %w", err)
	}

	return &LoginResult{Key: key, Session: sess}, nil
}

// Load resolves the session behind a cookie key. Expired sessions are
// removed and reported as ErrSessionExpired.
func (s *Service) Load(ctx context.Context, key string) (*domsession.Session, error) {
	if key == "" {
		return nil, domsession.ErrUnauthenticated
	}
	id := s.keys.Hash(key)
	sess, err := s.sessions.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domsession.ErrSessionNotFound) {
			return nil, domsession.ErrUnauthenticated
		}
		return nil, err
	}
	if sess.Expired(s.now()) {
		_ = s.end(ctx, id)
		return nil, domsession.ErrSessionExpired
	}
	return sess, nil
}

func (s *Service) Logout(ctx context.Context, key string) error {
	if key == "" {
		return nil
	}
	return s.end(ctx, s.keys.Hash(key))
}

// End terminates a session by its stored id, e.g. after the backend
// rejected its token.
func (s *Service) End(ctx context.Context, sessionID string) error {
	return s.end(ctx, sessionID)
}

func (s *Service) end(ctx context.Context, id string) error {
	err := s.sessions.Delete(ctx, id)
	if errors.Is(err, domsession.ErrSessionNotFound) {
		err = nil
	}

	s.mu.Lock()
	hooks := append([]func(string){}, s.onLogout...)
	s.mu.Unlock()
	for _, fn := range hooks {
		fn(id)
	}
	return err
}

// Purge drops every expired session and returns how many were removed.
func (s *Service) Purge(ctx context.Context) (int64, error) {
	return s.sessions.DeleteExpired(ctx, s.now())
}
