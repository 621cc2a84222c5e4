package service

import (
	"log/slog"
	"sync"
	"unicode/utf8"

	"github.com/goccy/go-json"
	"github.com/mmcdole/reel/internal/domain"
)

// minPasswordLen is the login acceptance rule. There is no real
// authentication behind it.
const minPasswordLen = 4

// SessionService holds the single client session and mirrors it into the
// key/value store.
type SessionService struct {
	store    domain.KeyValueStore
	observer domain.StateObserver
	logger   *slog.Logger

	mu      sync.RWMutex
	session *domain.Session

	restoreOnce sync.Once
}

// NewSessionService creates a new SessionService. observer may be nil.
func NewSessionService(store domain.KeyValueStore, observer domain.StateObserver, logger *slog.Logger) *SessionService {
	if logger == nil {
		logger = slog.Default()
	}
	if observer == nil {
		observer = domain.NoOpObserver{}
	}
	return &SessionService{store: store, observer: observer, logger: logger}
}

// Restore loads the persisted session. Only the first call has any effect.
func (s *SessionService) Restore() {
	s.restoreOnce.Do(func() {
		raw, ok := s.store.Get(domain.KeySession)
		if !ok {
			s.logger.Debug("no stored session")
			return
		}

		var sess domain.Session
		if err := json.Unmarshal([]byte(raw), &sess); err != nil || sess.Username == "" {
			s.logger.Warn("discarding unreadable session", "error", err)
			if err := s.store.Remove(domain.KeySession); err != nil {
				s.logger.Warn("failed to remove session", "error", err)
			}
			return
		}

		s.mu.Lock()
		s.session = &sess
		s.mu.Unlock()

		s.logger.Info("session restored", "username", sess.Username)
		s.observer.OnChange(domain.Change{Store: domain.StoreSession, Action: "restored"})
	})
}

// Login accepts any non-empty username with a password of at least four
// characters. Failures return a *domain.ValidationError wrapping
// domain.ErrInvalidCredentials.
func (s *SessionService) Login(username, password string) error {
	if username == "" || utf8.RuneCountInString(password) < minPasswordLen {
		s.logger.Info("login rejected", "username", username)
		return &domain.ValidationError{Reason: "invalid credentials", Err: domain.ErrInvalidCredentials}
	}

	sess := domain.Session{Username: username, Authenticated: true}

	s.mu.Lock()
	s.session = &sess
	s.mu.Unlock()

	if data, err := json.Marshal(sess); err != nil {
		s.logger.Warn("failed to encode session", "error", err)
	} else if err := s.store.Set(domain.KeySession, string(data)); err != nil {
		s.logger.Warn("failed to persist session", "error", err)
	}

	s.logger.Info("logged in", "username", username)
	s.observer.OnChange(domain.Change{Store: domain.StoreSession, Action: "login"})
	return nil
}

// Logout clears the session in memory and in the store.
func (s *SessionService) Logout() {
	s.mu.Lock()
	s.session = nil
	s.mu.Unlock()

	if err := s.store.Remove(domain.KeySession); err != nil {
		s.logger.Warn("failed to remove session", "error", err)
	}

	s.logger.Info("logged out")
	s.observer.OnChange(domain.Change{Store: domain.StoreSession, Action: "logout"})
}

// Current returns the active session, if any.
func (s *SessionService) Current() (domain.Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.session == nil {
		return domain.Session{}, false
	}
	return *s.session, true
}

// IsAuthenticated reports whether a session is active.
func (s *SessionService) IsAuthenticated() bool {
	sess, ok := s.Current()
	return ok && sess.Authenticated
}
