package tui

import (
	"context"
	"errors"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/reel/internal/domain"
	"github.com/mmcdole/reel/internal/service"
)

// Command factories for async operations. Catalog requests carry no
// deadline of their own; the HTTP client's platform defaults apply.

// URLOpener starts an external program for a URL
type URLOpener interface {
	OpenTrailer(rawURL string) error
	OpenPage(rawURL string) error
}

// LoadTrendingCmd fetches the trending list
func LoadTrendingCmd(svc *service.CatalogService) tea.Cmd {
	return func() tea.Msg {
		svc.LoadTrending(context.Background())
		return FetchDoneMsg{Kind: FetchTrending}
	}
}

// SearchCmd runs a catalog search
func SearchCmd(svc *service.CatalogService, query string) tea.Cmd {
	return func() tea.Msg {
		svc.Search(context.Background(), query)
		return FetchDoneMsg{Kind: FetchSearch, Query: query}
	}
}

// LoadDetailCmd fetches the detail record for a movie
func LoadDetailCmd(svc *service.DetailService, id int) tea.Cmd {
	return func() tea.Msg {
		detail, err := svc.Get(context.Background(), id)
		if err != nil {
			return DetailFailedMsg{ID: id, Err: err}
		}
		return DetailLoadedMsg{ID: id, Detail: detail}
	}
}

// OpenTrailerCmd opens a trailer URL in a video player or the browser
func OpenTrailerCmd(opener URLOpener, rawURL string) tea.Cmd {
	return func() tea.Msg {
		if opener == nil {
			return ErrMsg{Err: errors.New("no opener configured"), Context: "opening trailer"}
		}
		if err := opener.OpenTrailer(rawURL); err != nil {
			return ErrMsg{Err: err, Context: "opening trailer"}
		}
		return URLOpenedMsg{What: "trailer"}
	}
}

// OpenPageCmd opens a web page in the system browser
func OpenPageCmd(opener URLOpener, rawURL string) tea.Cmd {
	return func() tea.Msg {
		if opener == nil {
			return ErrMsg{Err: errors.New("no opener configured"), Context: "opening website"}
		}
		if err := opener.OpenPage(rawURL); err != nil {
			return ErrMsg{Err: err, Context: "opening website"}
		}
		return URLOpenedMsg{What: "website"}
	}
}

// WaitForChangeCmd waits for the next store notification.
// It returns nil once the channel is closed.
func WaitForChangeCmd(ch <-chan domain.Change) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		change, ok := <-ch
		if !ok {
			return nil
		}
		return StateChangedMsg{Change: change}
	}
}

// ClearStatusCmd clears the status message identified by seq after d
func ClearStatusCmd(seq int, d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return ClearStatusMsg{seq: seq}
	})
}
