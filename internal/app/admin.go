package app

import (
	"context"
	"log/slog"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/basedfin/quotecast/internal/domain"
	"github.com/basedfin/quotecast/internal/ports"
)

// SessionState is the lock state of an admin session.
type SessionState int

const (
	// SessionLocked is the initial state of every session. No mutation
	// is permitted.
	SessionLocked SessionState = iota

	// SessionUnlocked permits quote curation and secret changes.
	SessionUnlocked
)

// String returns a human-readable name for the state.
func (s SessionState) String() string {
	switch s {
	case SessionLocked:
		return "locked"
	case SessionUnlocked:
		return "unlocked"
	default:
		return "unknown"
	}
}

// AdminSession gates quote curation behind the shared admin secret.
// A fresh session always starts locked, and closing the panel drops the
// unlocked state: reopening requires authenticating again. The comparison
// is exact string equality against the stored secret; there is no hashing,
// rate limiting, or lockout.
type AdminSession struct {
	mu      sync.Mutex
	state   SessionState
	library *Library
	store   ports.QuoteStore
	logger  *slog.Logger
}

// AdminSessionConfig contains configuration for admin sessions.
type AdminSessionConfig struct {
	Library *Library
	Store   ports.QuoteStore
	Logger  *slog.Logger
}

// NewAdminSession creates a locked session. Panics if Library or Store is nil.
func NewAdminSession(cfg AdminSessionConfig) *AdminSession {
	if cfg.Library == nil {
		panic("AdminSession: Library is required")
	}

	if cfg.Store == nil {
		panic("AdminSession: Store is required")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &AdminSession{
		state:   SessionLocked,
		library: cfg.Library,
		store:   cfg.Store,
		logger:  logger,
	}
}

// State returns the current lock state.
func (s *AdminSession) State() SessionState {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.state
}

// Unlock transitions the session to unlocked when password matches the
// stored secret. A wrong password leaves the session locked.
func (s *AdminSession) Unlock(ctx context.Context, password string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if password != s.store.LoadSecret(ctx) {
		s.logger.InfoContext(ctx, "admin unlock rejected")
		return domain.NewValidationError("password", "incorrect password")
	}

	s.state = SessionUnlocked
	s.logger.InfoContext(ctx, "admin session unlocked")

	return nil
}

// Close locks the session. The next open always starts locked again.
func (s *AdminSession) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state = SessionLocked
}

// AddQuote prepends a quote to the list. Requires an unlocked session.
func (s *AdminSession) AddQuote(ctx context.Context, text string) error {
	if err := s.requireUnlocked("add quote"); err != nil {
		return err
	}

	return s.library.Add(ctx, text)
}

// DeleteQuote removes the quote at index. Requires an unlocked session and
// an explicit confirmation; without confirmation nothing is mutated.
func (s *AdminSession) DeleteQuote(ctx context.Context, index int, confirmed bool) error {
	if err := s.requireUnlocked("delete quote"); err != nil {
		return err
	}

	if !confirmed {
		return domain.NewValidationError("confirm", "deletion requires confirmation")
	}

	return s.library.Delete(ctx, index)
}

// ResetQuotes overwrites the list with the built-in defaults. Requires an
// unlocked session and an explicit confirmation.
func (s *AdminSession) ResetQuotes(ctx context.Context, confirmed bool) error {
	if err := s.requireUnlocked("reset quotes"); err != nil {
		return err
	}

	if !confirmed {
		return domain.NewValidationError("confirm", "reset requires confirmation")
	}

	return s.library.Reset(ctx)
}

// SetSecret replaces the admin secret. The trimmed secret must be at least
// domain.MinSecretLength characters; the previous secret stops
// authenticating immediately. Only the update operation enforces the
// length rule — the built-in default secret is exempt.
func (s *AdminSession) SetSecret(ctx context.Context, secret string) error {
	if err := s.requireUnlocked("change secret"); err != nil {
		return err
	}

	trimmed := strings.TrimSpace(secret)
	if len(trimmed) < domain.MinSecretLength {
		return domain.NewValidationError("secret", "secret must be at least 4 characters")
	}

	if err := s.store.SaveSecret(ctx, trimmed); err != nil {
		// Fail-soft per the persistence contract; the change may not
		// survive a restart.
		s.logger.WarnContext(ctx, "admin secret not persisted",
			slog.Any("error", err),
		)
	}

	s.logger.InfoContext(ctx, "admin secret changed")

	return nil
}

// requireUnlocked returns a locked error naming op unless the session is
// unlocked.
func (s *AdminSession) requireUnlocked(op string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != SessionUnlocked {
		return domain.NewLockedError(op)
	}

	return nil
}

// SessionManager tracks open admin sessions by opaque token so the HTTP
// adapter can correlate requests with a panel session. Tokens live in
// memory only; a restart forgets every session.
type SessionManager struct {
	mu       sync.Mutex
	sessions map[string]*AdminSession
	cfg      AdminSessionConfig
}

// NewSessionManager creates an empty session manager.
func NewSessionManager(cfg AdminSessionConfig) *SessionManager {
	return &SessionManager{
		sessions: make(map[string]*AdminSession),
		cfg:      cfg,
	}
}

// Unlock opens a fresh session, authenticates it, and returns an opaque
// token on success. A failed attempt leaves nothing behind.
func (m *SessionManager) Unlock(ctx context.Context, password string) (string, error) {
	sess := NewAdminSession(m.cfg)
	if err := sess.Unlock(ctx, password); err != nil {
		return "", err
	}

	token := uuid.NewString()

	m.mu.Lock()
	m.sessions[token] = sess
	m.mu.Unlock()

	return token, nil
}

// Session returns the session for token, or nil when the token is unknown.
func (m *SessionManager) Session(token string) *AdminSession {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.sessions[token]
}

// Close locks and forgets the session for token. Unknown tokens are a no-op.
func (m *SessionManager) Close(token string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if sess, ok := m.sessions[token]; ok {
		sess.Close()
		delete(m.sessions, token)
	}
}
