package service

import (
	"errors"
	"testing"

	"github.com/mmcdole/reel/internal/domain"
)

func TestLogin_AcceptanceRule(t *testing.T) {
	tests := []struct {
		name     string
		username string
		password string
		wantOK   bool
	}{
		{"empty username", "", "anything", false},
		{"whitespace username is non-empty", "   ", "anything", true},
		{"short password", "alice", "abc", false},
		{"minimum password", "alice", "abcd", true},
		{"multibyte password counts runes", "alice", "ééé", false},
		{"multibyte password", "alice", "éééé", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newMemStore()
			svc := NewSessionService(store, nil, testLogger())

			err := svc.Login(tt.username, tt.password)
			if tt.wantOK {
				if err != nil {
					t.Fatalf("Login returned error: %v", err)
				}
				if !svc.IsAuthenticated() {
					t.Fatal("IsAuthenticated = false after successful login")
				}
				if _, ok := store.Get(domain.KeySession); !ok {
					t.Fatal("session not persisted")
				}
				return
			}

			var verr *domain.ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("error = %v, want *domain.ValidationError", err)
			}
			if !errors.Is(err, domain.ErrInvalidCredentials) {
				t.Fatalf("error = %v, want ErrInvalidCredentials", err)
			}
			if err.Error() != "invalid credentials" {
				t.Fatalf("message = %q, want invalid credentials", err.Error())
			}
			if svc.IsAuthenticated() {
				t.Fatal("IsAuthenticated = true after failed login")
			}
			if _, ok := store.Get(domain.KeySession); ok {
				t.Fatal("failed login wrote a session")
			}
		})
	}
}

func TestSession_RestoreAndLogout(t *testing.T) {
	store := newMemStore()
	first := NewSessionService(store, nil, testLogger())
	if err := first.Login("alice", "abcd"); err != nil {
		t.Fatalf("Login returned error: %v", err)
	}

	rec := &recorder{}
	second := NewSessionService(store, rec, testLogger())
	second.Restore()

	sess, ok := second.Current()
	if !ok || sess.Username != "alice" || !sess.Authenticated {
		t.Fatalf("Current = %+v, %v; want alice authenticated", sess, ok)
	}

	second.Logout()
	if second.IsAuthenticated() {
		t.Fatal("still authenticated after Logout")
	}
	if _, ok := store.Get(domain.KeySession); ok {
		t.Fatal("session key not removed by Logout")
	}

	got := rec.actions()
	if len(got) != 2 || got[0] != "restored" || got[1] != "logout" {
		t.Fatalf("actions = %v, want [restored logout]", got)
	}
}

func TestSession_RestoreRunsOnce(t *testing.T) {
	store := newMemStore()
	_ = store.Set(domain.KeySession, `{"username":"bob","isAuthenticated":true}`)

	svc := NewSessionService(store, nil, testLogger())
	svc.Restore()
	svc.Logout()

	_ = store.Set(domain.KeySession, `{"username":"carol","isAuthenticated":true}`)
	svc.Restore()

	if svc.IsAuthenticated() {
		t.Fatal("second Restore should have no effect")
	}
}

func TestSession_RestoreDiscardsCorruptValue(t *testing.T) {
	store := newMemStore()
	_ = store.Set(domain.KeySession, "{not json")

	svc := NewSessionService(store, nil, testLogger())
	svc.Restore()

	if svc.IsAuthenticated() {
		t.Fatal("corrupt session restored as authenticated")
	}
	if _, ok := store.Get(domain.KeySession); ok {
		t.Fatal("corrupt session value not removed")
	}
}

func TestSession_PersistFailureStillLogsIn(t *testing.T) {
	store := newMemStore()
	store.setErr = errBoom

	svc := NewSessionService(store, nil, testLogger())
	if err := svc.Login("alice", "abcd"); err != nil {
		t.Fatalf("Login returned error: %v", err)
	}
	if !svc.IsAuthenticated() {
		t.Fatal("in-memory session should survive a persistence failure")
	}
}
