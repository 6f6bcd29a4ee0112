package session

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"sync"
	"time"

	"courtbook/internal/dependencies/clock"
	"courtbook/internal/model"
)

// ErrInvalidSession is returned for an unknown or expired token
var ErrInvalidSession = errors.New("invalid or expired session")

// Session is the snapshot of a logged-in user for one client.
// Sessions live only in memory; they are never persisted and end with
// the process, mirroring browser-session scope.
type Session struct {
	Token     string
	User      model.User
	CreatedAt time.Time
	ExpiresAt time.Time
}

// Config holds configuration for the session store
type Config struct {
	SessionDuration time.Duration
}

// DefaultConfig returns default session configuration
func DefaultConfig() Config {
	return Config{
		SessionDuration: 24 * time.Hour,
	}
}

// Store tracks active sessions by token
type Store struct {
	clock clock.Clock

	mu       sync.RWMutex
	sessions map[string]*Session

	sessionDuration time.Duration
}

// New creates a session store
func New(clk clock.Clock, cfg Config) *Store {
	if cfg.SessionDuration == 0 {
		cfg.SessionDuration = DefaultConfig().SessionDuration
	}
	return &Store{
		clock:           clk,
		sessions:        make(map[string]*Session),
		sessionDuration: cfg.SessionDuration,
	}
}

// Login stores the user as an active session and returns its handle
func (s *Store) Login(user *model.User) *Session {
	token := generateToken()
	now := s.clock.Now()

	session := &Session{
		Token:     token,
		User:      *user,
		CreatedAt: now,
		ExpiresAt: now.Add(s.sessionDuration),
	}

	s.mu.Lock()
	s.sessions[token] = session
	s.mu.Unlock()

	return session
}

// CurrentUser returns the logged-in user for a token
func (s *Store) CurrentUser(token string) (*model.User, error) {
	session, err := s.Validate(token)
	if err != nil {
		return nil, err
	}
	user := session.User
	return &user, nil
}

// Validate checks a token and returns its session
func (s *Store) Validate(token string) (*Session, error) {
	s.mu.RLock()
	session, ok := s.sessions[token]
	s.mu.RUnlock()

	if !ok {
		return nil, ErrInvalidSession
	}

	if s.clock.Now().After(session.ExpiresAt) {
		s.mu.Lock()
		delete(s.sessions, token)
		s.mu.Unlock()
		return nil, ErrInvalidSession
	}

	return session, nil
}

// IsAuthenticated reports whether a token maps to a live session
func (s *Store) IsAuthenticated(token string) bool {
	_, err := s.Validate(token)
	return err == nil
}

// Logout clears the session for a token
func (s *Store) Logout(token string) {
	s.mu.Lock()
	delete(s.sessions, token)
	s.mu.Unlock()
}

// CleanExpired removes expired sessions (call periodically)
func (s *Store) CleanExpired() {
	now := s.clock.Now()
	s.mu.Lock()
	defer s.mu.Unlock()

	for token, session := range s.sessions {
		if now.After(session.ExpiresAt) {
			delete(s.sessions, token)
		}
	}
}

func generateToken() string {
	b := make([]byte, 16)
	_, _ = rand.Read(b)
	return "sess_" + base64.RawURLEncoding.EncodeToString(b)
}
