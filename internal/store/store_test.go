package store

import (
	"path/filepath"
	"testing"

	"github.com/mmcdole/reel/internal/domain"
)

func TestPrefStore_SetGetRemoveSurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "reel.db")

	s, err := NewPrefStore(path)
	if err != nil {
		t.Fatalf("NewPrefStore returned error: %v", err)
	}
	if !s.Persistent() {
		t.Fatal("file-backed store should be persistent")
	}
	if err := s.Set(domain.KeyTheme, "light"); err != nil {
		t.Fatalf("Set returned error: %v", err)
	}
	if err := s.Set(domain.KeyLastSearch, "dune"); err != nil {
		t.Fatalf("Set returned error: %v", err)
	}
	if err := s.Remove(domain.KeyLastSearch); err != nil {
		t.Fatalf("Remove returned error: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close returned error: %v", err)
	}

	reopened, err := NewPrefStore(path)
	if err != nil {
		t.Fatalf("reopen returned error: %v", err)
	}
	t.Cleanup(func() { _ = reopened.Close() })

	if v, ok := reopened.Get(domain.KeyTheme); !ok || v != "light" {
		t.Fatalf("Get(theme) = %q, %v; want light, true", v, ok)
	}
	if v, ok := reopened.Get(domain.KeyLastSearch); ok {
		t.Fatalf("Get(last_search) = %q, want missing", v)
	}
}

func TestPrefStore_MissingKeyIsNotAnError(t *testing.T) {
	s, err := NewPrefStore(filepath.Join(t.TempDir(), "reel.db"))
	if err != nil {
		t.Fatalf("NewPrefStore returned error: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })

	if v, ok := s.Get(domain.KeySession); ok || v != "" {
		t.Fatalf("Get(missing) = %q, %v", v, ok)
	}
	if err := s.Remove(domain.KeySession); err != nil {
		t.Fatalf("Remove(missing) returned error: %v", err)
	}
}

func TestPrefStore_MemoryOnly(t *testing.T) {
	s, err := NewPrefStore("")
	if err != nil {
		t.Fatalf("NewPrefStore returned error: %v", err)
	}
	if s.Persistent() {
		t.Fatal("memory store should not be persistent")
	}
	if err := s.Set(domain.KeyFavorites, "[]"); err != nil {
		t.Fatalf("Set returned error: %v", err)
	}
	if v, ok := s.Get(domain.KeyFavorites); !ok || v != "[]" {
		t.Fatalf("Get = %q, %v", v, ok)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close returned error: %v", err)
	}
}

func TestPrefStore_Clear(t *testing.T) {
	for _, path := range []string{"", filepath.Join(t.TempDir(), "reel.db")} {
		s, err := NewPrefStore(path)
		if err != nil {
			t.Fatalf("NewPrefStore(%q) returned error: %v", path, err)
		}
		for _, k := range domain.PersistedKeys {
			if err := s.Set(k, "x"); err != nil {
				t.Fatalf("Set(%q) returned error: %v", k, err)
			}
		}
		if got := s.Keys(); len(got) != len(domain.PersistedKeys) {
			t.Fatalf("Keys = %v, want %d keys", got, len(domain.PersistedKeys))
		}

		if err := s.Clear(); err != nil {
			t.Fatalf("Clear returned error: %v", err)
		}
		if got := s.Keys(); len(got) != 0 {
			t.Fatalf("Keys after Clear = %v", got)
		}
		if _, ok := s.Get(domain.KeyTheme); ok {
			t.Fatal("Get after Clear should miss")
		}
		// The bucket must be usable again.
		if err := s.Set(domain.KeyTheme, "dark"); err != nil {
			t.Fatalf("Set after Clear returned error: %v", err)
		}
		_ = s.Close()
	}
}
