package components

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func TestLoginForm_FocusAndSubmit(t *testing.T) {
	f := NewLoginForm()
	if f.Focused() != 0 {
		t.Fatalf("Focused = %d, want username", f.Focused())
	}

	var submitted bool
	f, _, _ = f.Update(keyRunes("alice"))
	f, _, submitted = f.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if submitted {
		t.Fatal("enter on the username field submitted the form")
	}
	if f.Focused() != 1 {
		t.Fatalf("Focused = %d, want password", f.Focused())
	}

	f, _, _ = f.Update(keyRunes("hunter2"))
	f, _, submitted = f.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if !submitted {
		t.Fatal("enter on the password field did not submit")
	}

	user, pass := f.Values()
	if user != "alice" || pass != "hunter2" {
		t.Fatalf("Values = %q, %q", user, pass)
	}
}

func TestLoginForm_TabTogglesFocus(t *testing.T) {
	f := NewLoginForm()
	f, _, _ = f.Update(tea.KeyMsg{Type: tea.KeyTab})
	if f.Focused() != 1 {
		t.Fatalf("Focused after tab = %d, want 1", f.Focused())
	}
	f, _, _ = f.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	if f.Focused() != 0 {
		t.Fatalf("Focused after shift+tab = %d, want 0", f.Focused())
	}
}

func TestLoginForm_Reset(t *testing.T) {
	f := NewLoginForm()
	f, _, _ = f.Update(keyRunes("bob"))
	f.SetError("bad")
	f.Reset()

	user, pass := f.Values()
	if user != "" || pass != "" {
		t.Fatalf("Values after Reset = %q, %q", user, pass)
	}
	if f.Focused() != 0 {
		t.Fatalf("Focused after Reset = %d, want 0", f.Focused())
	}
}

func TestSearchBar_SubmitAndCancel(t *testing.T) {
	s := NewSearchBar()
	if s.IsVisible() {
		t.Fatal("new search bar is visible")
	}

	s.Show("Search movies", "")
	s, _, _ = s.Update(keyRunes("heat"))
	var submitted bool
	s, _, submitted = s.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if !submitted || s.IsVisible() {
		t.Fatalf("submitted = %v visible = %v", submitted, s.IsVisible())
	}
	if s.Value() != "heat" {
		t.Fatalf("Value = %q, want heat", s.Value())
	}

	s.Show("Search movies", "heat")
	s, _, submitted = s.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if submitted || s.IsVisible() {
		t.Fatal("esc should hide without submitting")
	}
}
