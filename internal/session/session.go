// package session owns the authenticated identity of the client.
//
// The current session lives in memory and is written through to a
// persister on every change, so a later Hydrate restores it. A missing
// or malformed saved session never fails hydration: the store simply
// starts unauthenticated, mirroring a first run.
package session

import (
	"context"
	"encoding/json"
	"fmt"
	"net/mail"
	"strings"
	"sync"

	"github.com/Flammans/artanova/internal/models"
	"github.com/Flammans/artanova/internal/services"
	"github.com/Flammans/artanova/internal/shared"
	"github.com/charmbracelet/log"
)

// sessionKey is the persister key holding the serialized session.
const sessionKey = "user"

// minPasswordLen is enforced client-side before any network call.
const minPasswordLen = 8

// Persister stores the serialized session between runs.
// localstore.KV satisfies this.
type Persister interface {
	Get(key string) (string, bool, error)
	Set(key, value string) error
	Delete(key string) error
}

// Store holds the current session and coordinates login, registration,
// logout, and hydration from the persister.
type Store struct {
	mu        sync.RWMutex
	current   models.Session
	persister Persister
	auth      services.Authenticator
	logger    *log.Logger
	watchers  []func(models.Session)
}

// NewStore creates a Store. The persister and authenticator are required;
// a nil logger falls back to the default logger.
func NewStore(persister Persister, auth services.Authenticator, logger *log.Logger) *Store {
	if logger == nil {
		logger = log.Default()
	}
	return &Store{persister: persister, auth: auth, logger: logger}
}

// Hydrate loads the saved session from the persister.
//
// Absent or unreadable saved state leaves the store unauthenticated and
// returns nil. Only persister I/O failures surface as errors.
func (s *Store) Hydrate() error {
	raw, ok, err := s.persister.Get(sessionKey)
	if err != nil {
		return fmt.Errorf("failed to load saved session: %w", err)
	}
	if !ok {
		return nil
	}

	var sess models.Session
	if err := json.Unmarshal([]byte(raw), &sess); err != nil {
		s.logger.Warn("discarding malformed saved session", "error", err)
		s.discardSaved()
		return nil
	}
	if err := sess.Validate(); err != nil {
		s.logger.Warn("discarding invalid saved session", "error", err)
		s.discardSaved()
		return nil
	}

	s.set(sess)
	return nil
}

// Login authenticates with the remote API and saves the resulting session.
// On any failure the previous session, if one exists, is left untouched.
func (s *Store) Login(ctx context.Context, email, password string) (models.Session, error) {
	if err := validateCredentials(email, password); err != nil {
		return models.Session{}, err
	}

	sess, err := s.auth.Login(ctx, email, password)
	if err != nil {
		return models.Session{}, err
	}

	if err := s.save(sess); err != nil {
		return models.Session{}, err
	}
	return sess, nil
}

// Register creates a new account and saves the resulting session.
func (s *Store) Register(ctx context.Context, name, email, password string) (models.Session, error) {
	if strings.TrimSpace(name) == "" {
		return models.Session{}, fmt.Errorf("%w: name is required", shared.ErrInvalidInput)
	}
	if err := validateCredentials(email, password); err != nil {
		return models.Session{}, err
	}

	sess, err := s.auth.Join(ctx, name, email, password)
	if err != nil {
		return models.Session{}, err
	}

	if err := s.save(sess); err != nil {
		return models.Session{}, err
	}
	return sess, nil
}

// Logout clears the session in memory and removes the saved copy.
// It always leaves the store unauthenticated, even if the persister fails.
func (s *Store) Logout() {
	s.discardSaved()
	s.set(models.Session{})
}

// IsAuthenticated reports whether a session with a token is present.
func (s *Store) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current.Authenticated()
}

// Current returns a copy of the current session.
func (s *Store) Current() models.Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Token returns the current bearer token, or "" when unauthenticated.
// Store satisfies [services.TokenSource].
func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current.Token
}

// Subscribe registers fn to be called with a session snapshot after every
// change, including logout.
func (s *Store) Subscribe(fn func(models.Session)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.watchers = append(s.watchers, fn)
}

// save validates, persists, then publishes the session.
// The write-through happens before the in-memory swap so a persister
// failure never leaves memory and disk disagreeing.
func (s *Store) save(sess models.Session) error {
	if err := sess.Validate(); err != nil {
		return fmt.Errorf("%w: %v", shared.ErrAuthFailed, err)
	}

	raw, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("failed to serialize session: %w", err)
	}
	if err := s.persister.Set(sessionKey, string(raw)); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}

	s.set(sess)
	return nil
}

// set swaps the in-memory session and notifies watchers.
func (s *Store) set(sess models.Session) {
	s.mu.Lock()
	s.current = sess
	watchers := make([]func(models.Session), len(s.watchers))
	copy(watchers, s.watchers)
	s.mu.Unlock()

	for _, fn := range watchers {
		fn(sess)
	}
}

// discardSaved best-effort removes the persisted session.
func (s *Store) discardSaved() {
	if err := s.persister.Delete(sessionKey); err != nil {
		s.logger.Warn("failed to remove saved session", "error", err)
	}
}

// validateCredentials applies the client-side rules shared by login and
// registration: a parseable email address and a minimum-length password.
func validateCredentials(email, password string) error {
	if _, err := mail.ParseAddress(email); err != nil {
		return fmt.Errorf("%w: invalid email address", shared.ErrInvalidInput)
	}
	if len(password) < minPasswordLen {
		return fmt.Errorf("%w: password must be at least %d characters", shared.ErrInvalidInput, minPasswordLen)
	}
	return nil
}
