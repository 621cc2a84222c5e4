package service

import (
	"log/slog"
	"sync"

	"github.com/mmcdole/reel/internal/domain"
)

// ThemeService holds the color scheme and persists changes.
type ThemeService struct {
	store    domain.KeyValueStore
	observer domain.StateObserver
	logger   *slog.Logger

	mu    sync.RWMutex
	theme domain.Theme
}

// NewThemeService creates a new ThemeService. observer may be nil.
func NewThemeService(store domain.KeyValueStore, observer domain.StateObserver, logger *slog.Logger) *ThemeService {
	if logger == nil {
		logger = slog.Default()
	}
	if observer == nil {
		observer = domain.NoOpObserver{}
	}
	return &ThemeService{store: store, observer: observer, logger: logger, theme: domain.ThemeDark}
}

// Restore reads the stored theme, falling back to def when the stored value
// is missing or unknown. An unknown def falls back to dark.
func (s *ThemeService) Restore(def string) domain.Theme {
	theme, ok := domain.ParseTheme(def)
	if !ok {
		theme = domain.ThemeDark
	}
	if raw, found := s.store.Get(domain.KeyTheme); found {
		if stored, ok := domain.ParseTheme(raw); ok {
			theme = stored
		} else {
			s.logger.Warn("ignoring unknown stored theme", "value", raw)
		}
	}

	s.mu.Lock()
	s.theme = theme
	s.mu.Unlock()
	return theme
}

// Toggle switches between light and dark and persists the result.
func (s *ThemeService) Toggle() domain.Theme {
	s.mu.Lock()
	s.theme = s.theme.Toggle()
	theme := s.theme
	s.mu.Unlock()

	if err := s.store.Set(domain.KeyTheme, string(theme)); err != nil {
		s.logger.Warn("failed to persist theme", "error", err)
	}
	s.observer.OnChange(domain.Change{Store: domain.StoreTheme, Action: "toggled"})
	return theme
}

// Current returns the active theme.
func (s *ThemeService) Current() domain.Theme {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.theme
}
