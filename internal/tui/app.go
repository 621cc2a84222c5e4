package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/reel/internal/domain"
	"github.com/mmcdole/reel/internal/filter"
	"github.com/mmcdole/reel/internal/service"
	"github.com/mmcdole/reel/internal/tui/components"
	"github.com/mmcdole/reel/internal/tui/styles"
)

// Screen identifies the page being shown
type Screen int

const (
	ScreenLogin Screen = iota
	ScreenHome
	ScreenFavorites
	ScreenDetail
	ScreenNotFound
)

// String returns the screen name shown in the header
func (s Screen) String() string {
	switch s {
	case ScreenLogin:
		return "Sign in"
	case ScreenHome:
		return "Discover"
	case ScreenFavorites:
		return "Favorites"
	case ScreenDetail:
		return "Details"
	default:
		return "Not found"
	}
}

// Layout constants
const (
	// ChromeHeight is the header line plus the footer line
	ChromeHeight = 2

	statusDuration      = 3 * time.Second
	errorStatusDuration = 5 * time.Second
)

// Services are the process-wide stores the model reads and drives
type Services struct {
	Session *service.SessionService
	Catalog *service.CatalogService
	Theme   *service.ThemeService
	Detail  *service.DetailService
	Opener  URLOpener

	// ImageBaseURL is the image host for poster links; "" uses the TMDB default
	ImageBaseURL string

	// Changes delivers store notifications from a ChannelObserver; may be nil
	Changes <-chan domain.Change
}

// Model is the main Bubble Tea model for the application
type Model struct {
	svc Services

	// Application state
	Screen Screen
	backTo Screen // screen the detail page returns to
	Ready  bool

	// UI Components
	Login         components.LoginForm
	Home          *components.MovieList
	FavoritesList *components.MovieList
	SearchBar     components.SearchBar
	Detail        components.DetailView
	help          help.Model
	spinner       spinner.Model

	// Dimensions
	Width  int
	Height int

	// Modal state
	ShowHelp      bool
	ConfirmLogout bool

	// Data
	snapshot      service.CatalogSnapshot
	favQuery      string // fuzzy query applied to the favorites page
	detailID      int    // movie the detail page is waiting for
	notFoundErr   error
	restoredQuery string // last search from the previous run, re-run at startup

	// Status line
	StatusMsg   string
	StatusIsErr bool
	statusSeq   int

	now func() time.Time
}

// NewModel creates a new application model. Unauthenticated sessions start
// on the login screen. restoredQuery is re-run once the home screen loads.
func NewModel(svc Services, restoredQuery string) Model {
	sp := spinner.New(spinner.WithSpinner(spinner.Dot))
	sp.Style = styles.SpinnerStyle

	home := components.NewMovieList("Trending Today")
	home.SetFavoriteFunc(svc.Catalog.IsFavorite)

	favorites := components.NewMovieList("Favorites")
	favorites.SetFavoriteFunc(svc.Catalog.IsFavorite)

	detail := components.NewDetailView()
	detail.SetImageBase(svc.ImageBaseURL)

	m := Model{
		svc:           svc,
		Screen:        ScreenHome,
		Login:         components.NewLoginForm(),
		Home:          home,
		FavoritesList: favorites,
		SearchBar:     components.NewSearchBar(),
		Detail:        detail,
		help:          help.New(),
		spinner:       sp,
		restoredQuery: strings.TrimSpace(restoredQuery),
		now:           time.Now,
	}
	if !svc.Session.IsAuthenticated() {
		m.Screen = ScreenLogin
	}
	m.refresh()
	return m
}

// Init initializes the application
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.spinner.Tick}
	if cmd := WaitForChangeCmd(m.svc.Changes); cmd != nil {
		cmds = append(cmds, cmd)
	}
	if m.Screen == ScreenLogin {
		cmds = append(cmds, textinput.Blink)
	} else {
		cmds = append(cmds, m.startCatalog())
	}
	return tea.Batch(cmds...)
}

// startCatalog loads whatever the home screen still lacks: trending on
// first entry and the restored last search. The restored search runs once.
func (m *Model) startCatalog() tea.Cmd {
	var cmds []tea.Cmd
	if !m.snapshot.TrendingLoaded && !m.snapshot.Loading {
		cmds = append(cmds, LoadTrendingCmd(m.svc.Catalog))
	}
	if m.restoredQuery != "" && m.snapshot.Query == "" {
		cmds = append(cmds, SearchCmd(m.svc.Catalog, m.restoredQuery))
	}
	m.restoredQuery = ""
	return tea.Batch(cmds...)
}

// Update handles all messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		m.Ready = true
		m.updateLayout()
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		m.Home.SetSpinnerView(m.spinner.View())
		return m, cmd

	case StateChangedMsg:
		var cmd tea.Cmd
		switch msg.Change.Store {
		case domain.StoreTheme:
			m.applyTheme(m.svc.Theme.Current())
		case domain.StoreSession:
			if !m.svc.Session.IsAuthenticated() && m.Screen != ScreenLogin {
				cmd = m.toLogin()
			}
		}
		m.refresh()
		return m, tea.Batch(cmd, WaitForChangeCmd(m.svc.Changes))

	case FetchDoneMsg:
		m.refresh()
		if m.snapshot.Error != "" && !m.snapshot.Loading {
			next := m.setStatus(m.snapshot.Error, true)
			return m, next
		}
		return m, nil

	case DetailLoadedMsg:
		if m.Screen != ScreenDetail || msg.ID != m.detailID {
			return m, nil
		}
		m.Detail.SetDetail(msg.Detail)
		m.Detail.SetFavorite(m.svc.Catalog.IsFavorite(msg.ID))
		return m, nil

	case DetailFailedMsg:
		if m.Screen != ScreenDetail || msg.ID != m.detailID {
			return m, nil
		}
		m.notFoundErr = msg.Err
		m.Screen = ScreenNotFound
		return m, nil

	case URLOpenedMsg:
		next := m.setStatus("Opened "+msg.What, false)
		return m, next

	case ErrMsg:
		next := m.setStatus(msg.Error(), true)
		return m, next

	case ClearStatusMsg:
		if msg.seq == m.statusSeq {
			m.StatusMsg = ""
			m.StatusIsErr = false
		}
		return m, nil
	}

	// Cursor blink and other input plumbing
	cmd := m.routeToInput(msg)
	return m, cmd
}

// routeToInput forwards a non-key message to whichever text input has focus
func (m *Model) routeToInput(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch {
	case m.SearchBar.IsVisible():
		m.SearchBar, cmd, _ = m.SearchBar.Update(msg)
	case m.Screen == ScreenLogin:
		m.Login, cmd, _ = m.Login.Update(msg)
	default:
		if list := m.activeList(); list != nil && list.IsFilterTyping() {
			cmd = list.Update(msg)
		}
	}
	return cmd
}

func (m Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, Keys.Force) {
		return m, tea.Quit
	}

	if m.ShowHelp {
		m.ShowHelp = false
		return m, nil
	}

	if m.ConfirmLogout {
		switch {
		case key.Matches(msg, Keys.Confirm):
			m.ConfirmLogout = false
			m.svc.Session.Logout()
			next := m.toLogin()
			return m, next
		case key.Matches(msg, Keys.Deny):
			m.ConfirmLogout = false
		}
		return m, nil
	}

	if m.SearchBar.IsVisible() {
		var cmd tea.Cmd
		var submitted bool
		m.SearchBar, cmd, submitted = m.SearchBar.Update(msg)
		if submitted {
			next := tea.Batch(cmd, m.submitSearch(m.SearchBar.Value()))
			return m, next
		}
		return m, cmd
	}

	if m.Screen == ScreenLogin {
		return m.handleLoginKeys(msg)
	}

	// Typing into a quick filter swallows every key
	if list := m.activeList(); list != nil && list.IsFilterTyping() {
		return m, list.Update(msg)
	}

	switch {
	case key.Matches(msg, Keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, Keys.Help):
		m.ShowHelp = true
		return m, nil
	case key.Matches(msg, Keys.Theme):
		theme := m.svc.Theme.Toggle()
		m.applyTheme(theme)
		next := m.setStatus("Theme: "+string(theme), false)
		return m, next
	case key.Matches(msg, Keys.Logout):
		m.ConfirmLogout = true
		return m, nil
	}

	switch m.Screen {
	case ScreenHome:
		return m.handleHomeKeys(msg)
	case ScreenFavorites:
		return m.handleFavoritesKeys(msg)
	case ScreenDetail:
		return m.handleDetailKeys(msg)
	default:
		return m.handleNotFoundKeys(msg)
	}
}

func (m Model) handleLoginKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	var submitted bool
	m.Login, cmd, submitted = m.Login.Update(msg)
	if !submitted {
		return m, cmd
	}

	username, password := m.Login.Values()
	if err := m.svc.Session.Login(username, password); err != nil {
		m.Login.SetError("Enter a username and a password of at least 4 characters")
		next := m.setStatus("Login failed", true)
		return m, next
	}

	m.Login.Reset()
	m.Screen = ScreenHome
	m.refresh()

	sess, _ := m.svc.Session.Current()
	status := m.setStatus("Welcome, "+sess.Username, false)
	load := m.startCatalog()
	return m, tea.Batch(status, load)
}

func (m Model) handleHomeKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, Keys.Enter):
		return m.openDetail(m.Home)

	case key.Matches(msg, Keys.Search):
		next := m.SearchBar.Show("Search movies", m.snapshot.Query)
		return m, next

	case key.Matches(msg, Keys.Filter):
		return m, m.Home.ToggleFilter()

	case key.Matches(msg, Keys.Back):
		if m.Home.IsFiltering() {
			m.Home.ClearFilter()
			return m, nil
		}
		if m.snapshot.Query != "" {
			next := m.clearSearch()
			return m, next
		}
		return m, nil

	case key.Matches(msg, Keys.ClearSearch):
		if m.snapshot.Query == "" {
			return m, nil
		}
		next := m.clearSearch()
		return m, next

	case key.Matches(msg, Keys.Reload):
		return m, LoadTrendingCmd(m.svc.Catalog)

	case key.Matches(msg, Keys.Favorite):
		if mv, ok := m.Home.SelectedMovie(); ok {
			next := m.toggleFavorite(mv)
			return m, next
		}
		return m, nil

	case key.Matches(msg, Keys.Favorites):
		m.Screen = ScreenFavorites
		m.refresh()
		return m, nil

	case key.Matches(msg, Keys.CycleGenre):
		m.svc.Catalog.SetFilter(filter.NextGenre(m.snapshot.Filter))
		m.refresh()
		return m, nil

	case key.Matches(msg, Keys.CycleYear):
		m.svc.Catalog.SetFilter(filter.NextYear(m.snapshot.Filter, m.now()))
		m.refresh()
		return m, nil

	case key.Matches(msg, Keys.CycleRating):
		m.svc.Catalog.SetFilter(filter.NextRating(m.snapshot.Filter))
		m.refresh()
		return m, nil

	case key.Matches(msg, Keys.ClearFilters):
		m.svc.Catalog.ClearFilters()
		m.refresh()
		return m, nil
	}

	return m, m.Home.Update(msg)
}

func (m Model) handleFavoritesKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, Keys.Enter):
		return m.openDetail(m.FavoritesList)

	case key.Matches(msg, Keys.Search):
		next := m.SearchBar.Show("Search favorites", m.favQuery)
		return m, next

	case key.Matches(msg, Keys.Filter):
		return m, m.FavoritesList.ToggleFilter()

	case key.Matches(msg, Keys.Back):
		switch {
		case m.FavoritesList.IsFiltering():
			m.FavoritesList.ClearFilter()
		case m.favQuery != "":
			m.favQuery = ""
			m.refresh()
		default:
			m.Screen = ScreenHome
			m.refresh()
		}
		return m, nil

	case key.Matches(msg, Keys.ClearSearch):
		m.favQuery = ""
		m.refresh()
		return m, nil

	case key.Matches(msg, Keys.Favorites):
		m.Screen = ScreenHome
		m.refresh()
		return m, nil

	case key.Matches(msg, Keys.Favorite):
		if mv, ok := m.FavoritesList.SelectedMovie(); ok {
			next := m.toggleFavorite(mv)
			return m, next
		}
		return m, nil
	}

	return m, m.FavoritesList.Update(msg)
}

func (m Model) handleDetailKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	detail := m.Detail.Detail()

	switch {
	case key.Matches(msg, Keys.Back):
		m.Screen = m.backTo
		m.refresh()
		return m, nil

	case key.Matches(msg, Keys.Reload):
		// Drop the cached record and fetch it again
		m.svc.Detail.Invalidate(m.detailID)
		m.Detail.SetLoading()
		return m, LoadDetailCmd(m.svc.Detail, m.detailID)

	case key.Matches(msg, Keys.Favorite):
		if detail == nil {
			return m, nil
		}
		cmd := m.toggleFavorite(detail.Movie)
		m.Detail.SetFavorite(m.svc.Catalog.IsFavorite(detail.ID))
		return m, cmd

	case key.Matches(msg, Keys.Trailer):
		if detail == nil {
			return m, nil
		}
		if v, ok := detail.Trailer(); ok {
			return m, OpenTrailerCmd(m.svc.Opener, v.URL())
		}
		next := m.setStatus("No trailer available", true)
		return m, next

	case key.Matches(msg, Keys.Website):
		if detail == nil {
			return m, nil
		}
		if detail.Homepage != "" {
			return m, OpenPageCmd(m.svc.Opener, detail.Homepage)
		}
		next := m.setStatus("No website available", true)
		return m, next
	}

	var cmd tea.Cmd
	m.Detail, cmd = m.Detail.Update(msg)
	return m, cmd
}

func (m Model) handleNotFoundKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, Keys.Back) || key.Matches(msg, Keys.Enter) {
		m.Screen = ScreenHome
		m.notFoundErr = nil
		m.refresh()
	}
	return m, nil
}

// openDetail switches to the detail page for the list's selected movie
func (m Model) openDetail(list *components.MovieList) (tea.Model, tea.Cmd) {
	mv, ok := list.SelectedMovie()
	if !ok {
		return m, nil
	}
	m.backTo = m.Screen
	m.Screen = ScreenDetail
	m.detailID = mv.ID
	m.Detail.SetLoading()
	m.Detail.SetFavorite(m.svc.Catalog.IsFavorite(mv.ID))
	return m, LoadDetailCmd(m.svc.Detail, mv.ID)
}

func (m *Model) toggleFavorite(mv domain.Movie) tea.Cmd {
	added := m.svc.Catalog.ToggleFavorite(mv)
	m.refresh()
	if added {
		return m.setStatus(fmt.Sprintf("Added %q to favorites", mv.Title), false)
	}
	return m.setStatus(fmt.Sprintf("Removed %q from favorites", mv.Title), false)
}

// submitSearch applies a search bar query to the current screen
func (m *Model) submitSearch(query string) tea.Cmd {
	if m.Screen == ScreenFavorites {
		m.favQuery = strings.TrimSpace(query)
		m.FavoritesList.ClearFilter()
		m.refresh()
		return nil
	}

	if strings.TrimSpace(query) == "" {
		// Blank queries clear without a network call
		m.svc.Catalog.Search(context.Background(), query)
		m.refresh()
		return nil
	}
	m.restoredQuery = ""
	m.Home.ClearFilter()
	return SearchCmd(m.svc.Catalog, query)
}

func (m *Model) clearSearch() tea.Cmd {
	m.restoredQuery = ""
	m.svc.Catalog.ClearSearch()
	m.refresh()
	return m.setStatus("Search cleared", false)
}

// toLogin routes to the login screen with an empty form
func (m *Model) toLogin() tea.Cmd {
	m.Screen = ScreenLogin
	m.restoredQuery = ""
	m.ShowHelp = false
	m.SearchBar.Hide()
	return tea.Batch(m.Login.Reset(), m.setStatus("Logged out", false))
}

func (m *Model) applyTheme(theme domain.Theme) {
	styles.Apply(theme)
	m.spinner.Style = styles.SpinnerStyle
	m.Home.SetSpinnerView(m.spinner.View())
}

// setStatus shows an ephemeral status line and schedules its removal
func (m *Model) setStatus(text string, isErr bool) tea.Cmd {
	m.statusSeq++
	m.StatusMsg = text
	m.StatusIsErr = isErr
	d := statusDuration
	if isErr {
		d = errorStatusDuration
	}
	return ClearStatusCmd(m.statusSeq, d)
}

// refresh re-reads the stores into the list components
func (m *Model) refresh() {
	m.snapshot = m.svc.Catalog.Snapshot()

	active := m.snapshot.Active()
	displayed := m.snapshot.Displayed()

	title := "Trending Today"
	empty := "No movies"
	if m.snapshot.Query != "" {
		title = fmt.Sprintf("Results for %q", m.snapshot.Query)
		empty = "No movies found"
	}
	if len(active) > 0 && len(displayed) == 0 {
		empty = "No movies match the selected filters"
	}
	m.Home.SetTitle(title)
	m.Home.SetEmptyText(empty)
	m.Home.SetLoading(m.snapshot.Loading && len(active) == 0)
	m.Home.SetMovies(displayed)

	favorites := m.svc.Catalog.FavoritesMatching(m.favQuery)
	favTitle := fmt.Sprintf("Favorites (%d)", len(m.snapshot.Favorites))
	favEmpty := "No favorites yet. Press b on a movie to add it."
	if m.favQuery != "" {
		favTitle = fmt.Sprintf("Favorites matching %q", m.favQuery)
		favEmpty = "No favorites match"
	}
	m.FavoritesList.SetTitle(favTitle)
	m.FavoritesList.SetEmptyText(favEmpty)
	m.FavoritesList.SetMovies(favorites)

	if d := m.Detail.Detail(); d != nil {
		m.Detail.SetFavorite(m.svc.Catalog.IsFavorite(d.ID))
	}
}

// activeList returns the list shown on the current screen, if any
func (m Model) activeList() *components.MovieList {
	switch m.Screen {
	case ScreenHome:
		return m.Home
	case ScreenFavorites:
		return m.FavoritesList
	default:
		return nil
	}
}

func (m *Model) updateLayout() {
	contentHeight := m.Height - ChromeHeight
	m.Home.SetSize(m.Width, m.homeListHeight())
	m.FavoritesList.SetSize(m.Width, contentHeight)
	m.Detail.SetSize(m.Width, contentHeight)
	m.help.Width = m.Width
}

// homeListHeight is the content height less the filter bar and error line
func (m Model) homeListHeight() int {
	h := m.Height - ChromeHeight - 1
	if m.snapshot.Error != "" {
		h--
	}
	return max(h, 3)
}
