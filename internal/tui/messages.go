package tui

import (
	"github.com/mmcdole/reel/internal/domain"
)

// Message types for the TUI

// ErrMsg represents an error
type ErrMsg struct {
	Err     error
	Context string
}

// Error implements the error interface
func (e ErrMsg) Error() string {
	if e.Context != "" {
		return e.Context + ": " + e.Err.Error()
	}
	return e.Err.Error()
}

// StateChangedMsg carries a store notification from the ChannelObserver
type StateChangedMsg struct {
	Change domain.Change
}

// FetchKind names a catalog list fetch
type FetchKind int

const (
	FetchTrending FetchKind = iota
	FetchSearch
)

// FetchDoneMsg signals that a catalog fetch returned. The outcome is read
// from the catalog snapshot.
type FetchDoneMsg struct {
	Kind  FetchKind
	Query string
}

// DetailLoadedMsg signals that a movie detail record is ready
type DetailLoadedMsg struct {
	ID     int
	Detail *domain.MovieDetail
}

// DetailFailedMsg signals that a movie detail record could not be fetched
type DetailFailedMsg struct {
	ID  int
	Err error
}

// URLOpenedMsg signals that an external program was started for a URL
type URLOpenedMsg struct {
	What string // "trailer" or "website"
}

// ClearStatusMsg signals to clear the status message
type ClearStatusMsg struct {
	// seq identifies the status it clears; newer statuses survive
	seq int
}
