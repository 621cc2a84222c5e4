package service

import (
	"context"
	"log/slog"
	"sort"
	"strings"
	"sync"

	"github.com/goccy/go-json"
	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/mmcdole/reel/internal/domain"
	"github.com/mmcdole/reel/internal/filter"
)

// Error messages recorded in CatalogSnapshot.Error
const (
	ErrTextTrending = "Failed to fetch trending movies"
	ErrTextSearch   = "Failed to search movies"
)

// CatalogSnapshot is a point-in-time copy of the catalog state. It shares
// nothing with the service.
type CatalogSnapshot struct {
	Trending      []domain.Movie
	SearchResults []domain.Movie
	Favorites     []domain.Movie
	Query         string
	Filter        domain.FilterSelection
	Loading       bool
	Error         string

	// TrendingLoaded is true once any trending fetch has succeeded.
	TrendingLoaded bool
}

// Active returns the list the home screen shows: search results while a
// query is set, otherwise trending.
func (s CatalogSnapshot) Active() []domain.Movie {
	if s.Query != "" {
		return s.SearchResults
	}
	return s.Trending
}

// Displayed returns Active narrowed by the filter selection.
func (s CatalogSnapshot) Displayed() []domain.Movie {
	return filter.Apply(s.Active(), s.Filter)
}

// listState tracks in-flight fetches for one list. Each fetch takes the
// next generation; only the holder of the current generation may write.
type listState struct {
	gen      uint64
	inFlight bool
}

func (l *listState) begin() uint64 {
	l.gen++
	l.inFlight = true
	return l.gen
}

// supersede invalidates any pending fetch without starting a new one.
func (l *listState) supersede() {
	l.gen++
	l.inFlight = false
}

func (l *listState) current(gen uint64) bool {
	return l.gen == gen
}

// CatalogService owns trending and search results, favorites, the filter
// selection and the loading/error status. Fetch results from superseded
// requests are dropped.
type CatalogService struct {
	client   domain.CatalogClient
	store    domain.KeyValueStore
	observer domain.StateObserver
	logger   *slog.Logger

	mu             sync.RWMutex
	trending       []domain.Movie
	trendingLoaded bool
	searchResults  []domain.Movie
	query          string
	favorites      []domain.Movie
	selection      domain.FilterSelection
	errText        string

	trendingReq listState
	searchReq   listState
}

// NewCatalogService creates a new CatalogService. observer may be nil.
func NewCatalogService(client domain.CatalogClient, store domain.KeyValueStore, observer domain.StateObserver, logger *slog.Logger) *CatalogService {
	if logger == nil {
		logger = slog.Default()
	}
	if observer == nil {
		observer = domain.NoOpObserver{}
	}
	return &CatalogService{
		client:   client,
		store:    store,
		observer: observer,
		logger:   logger,
	}
}

// Restore loads favorites and the last search query from the store and
// returns the query so the caller can re-run it. Unreadable favorites are
// treated as none.
func (s *CatalogService) Restore() string {
	var favorites []domain.Movie
	if raw, ok := s.store.Get(domain.KeyFavorites); ok {
		if err := json.Unmarshal([]byte(raw), &favorites); err != nil {
			s.logger.Warn("discarding unreadable favorites", "error", err)
			favorites = nil
		}
	}
	favorites = dedupeByID(favorites)

	lastSearch, _ := s.store.Get(domain.KeyLastSearch)
	lastSearch = strings.TrimSpace(lastSearch)

	s.mu.Lock()
	s.favorites = favorites
	s.mu.Unlock()

	s.logger.Debug("catalog restored", "favorites", len(favorites), "lastSearch", lastSearch)
	s.notify("restored")
	return lastSearch
}

// LoadTrending fetches the current day's trending list. On failure the
// previous list is kept and Error is set.
func (s *CatalogService) LoadTrending(ctx context.Context) {
	s.mu.Lock()
	gen := s.trendingReq.begin()
	s.errText = ""
	s.mu.Unlock()
	s.notify("trending_started")

	s.logger.Debug("fetching trending", "gen", gen)
	movies, err := s.client.FetchTrending(ctx)

	s.mu.Lock()
	if !s.trendingReq.current(gen) {
		s.mu.Unlock()
		s.logger.Debug("dropping stale trending result", "gen", gen)
		return
	}
	s.trendingReq.inFlight = false
	if err != nil {
		s.errText = ErrTextTrending
		s.mu.Unlock()
		s.logger.Error("failed to fetch trending", "error", err)
		s.notify("trending_failed")
		return
	}
	s.trending = movies
	s.trendingLoaded = true
	s.errText = ""
	s.mu.Unlock()

	s.logger.Info("fetched trending", "count", len(movies))
	s.notify("trending_loaded")
}

// Search fetches movies matching query. A blank query clears the results
// and the query without a network call. On success the raw query is
// persisted as the last search.
func (s *CatalogService) Search(ctx context.Context, query string) {
	if strings.TrimSpace(query) == "" {
		s.mu.Lock()
		s.searchReq.supersede()
		s.searchResults = nil
		s.query = ""
		s.mu.Unlock()
		s.notify("search_cleared")
		return
	}

	s.mu.Lock()
	gen := s.searchReq.begin()
	s.query = query
	s.errText = ""
	s.mu.Unlock()
	s.notify("search_started")

	s.logger.Debug("searching", "query", query, "gen", gen)
	movies, err := s.client.FetchByQuery(ctx, query)

	s.mu.Lock()
	if !s.searchReq.current(gen) {
		s.mu.Unlock()
		s.logger.Debug("dropping stale search result", "query", query, "gen", gen)
		return
	}
	s.searchReq.inFlight = false
	if err != nil {
		s.errText = ErrTextSearch
		s.mu.Unlock()
		s.logger.Error("failed to search", "query", query, "error", err)
		s.notify("search_failed")
		return
	}
	s.searchResults = movies
	s.errText = ""
	s.mu.Unlock()

	if err := s.store.Set(domain.KeyLastSearch, query); err != nil {
		s.logger.Warn("failed to persist last search", "error", err)
	}

	s.logger.Info("search complete", "query", query, "count", len(movies))
	s.notify("search_loaded")
}

// ClearSearch drops search results and the query, and forgets the last
// search.
func (s *CatalogService) ClearSearch() {
	s.mu.Lock()
	s.searchReq.supersede()
	s.searchResults = nil
	s.query = ""
	s.mu.Unlock()

	if err := s.store.Remove(domain.KeyLastSearch); err != nil {
		s.logger.Warn("failed to remove last search", "error", err)
	}
	s.notify("search_cleared")
}

// ToggleFavorite adds the movie if absent and removes it if present, then
// overwrites the persisted favorites. It returns whether the movie is now a
// favorite.
func (s *CatalogService) ToggleFavorite(movie domain.Movie) bool {
	s.mu.Lock()
	idx := indexByID(s.favorites, movie.ID)
	added := idx < 0
	next := make([]domain.Movie, 0, len(s.favorites)+1)
	if added {
		next = append(next, s.favorites...)
		next = append(next, movie.Clone())
	} else {
		next = append(next, s.favorites[:idx]...)
		next = append(next, s.favorites[idx+1:]...)
	}
	s.favorites = next
	s.persistFavoritesLocked()
	s.mu.Unlock()

	s.logger.Debug("favorite toggled", "id", movie.ID, "added", added)
	s.notify("favorite_toggled")
	return added
}

// persistFavoritesLocked writes the whole favorites set. Caller holds mu.
func (s *CatalogService) persistFavoritesLocked() {
	favorites := s.favorites
	if favorites == nil {
		favorites = []domain.Movie{}
	}
	data, err := json.Marshal(favorites)
	if err != nil {
		s.logger.Warn("failed to encode favorites", "error", err)
		return
	}
	if err := s.store.Set(domain.KeyFavorites, string(data)); err != nil {
		s.logger.Warn("failed to persist favorites", "error", err)
	}
}

// IsFavorite reports whether id is in the favorites set.
func (s *CatalogService) IsFavorite(id int) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return indexByID(s.favorites, id) >= 0
}

// Favorites returns the favorites in the order they were added.
func (s *CatalogService) Favorites() []domain.Movie {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return domain.CloneMovies(s.favorites)
}

// FavoritesMatching ranks favorites by fuzzy title match, closest first.
// A blank query returns every favorite in insertion order.
func (s *CatalogService) FavoritesMatching(query string) []domain.Movie {
	favorites := s.Favorites()
	query = strings.TrimSpace(query)
	if query == "" {
		return favorites
	}

	titles := make([]string, len(favorites))
	for i, m := range favorites {
		titles[i] = m.Title
	}

	matches := fuzzy.RankFindFold(query, titles)
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Distance < matches[j].Distance
	})

	results := make([]domain.Movie, 0, len(matches))
	for _, match := range matches {
		results = append(results, favorites[match.OriginalIndex])
	}
	return results
}

// SetFilter merges patch into the current selection.
func (s *CatalogService) SetFilter(patch domain.FilterPatch) {
	s.mu.Lock()
	s.selection = s.selection.Merge(patch)
	s.mu.Unlock()
	s.notify("filter_changed")
}

// ClearFilters resets the selection to empty.
func (s *CatalogService) ClearFilters() {
	s.mu.Lock()
	s.selection = domain.FilterSelection{}
	s.mu.Unlock()
	s.notify("filter_cleared")
}

// Active returns search results while a query is set, otherwise trending.
func (s *CatalogService) Active() []domain.Movie {
	return s.Snapshot().Active()
}

// Displayed returns the active list narrowed by the filter selection.
func (s *CatalogService) Displayed() []domain.Movie {
	return s.Snapshot().Displayed()
}

// Snapshot returns a deep copy of the current state.
func (s *CatalogService) Snapshot() CatalogSnapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return CatalogSnapshot{
		Trending:       domain.CloneMovies(s.trending),
		SearchResults:  domain.CloneMovies(s.searchResults),
		Favorites:      domain.CloneMovies(s.favorites),
		Query:          s.query,
		Filter:         s.selection.Clone(),
		Loading:        s.trendingReq.inFlight || s.searchReq.inFlight,
		Error:          s.errText,
		TrendingLoaded: s.trendingLoaded,
	}
}

func (s *CatalogService) notify(action string) {
	s.observer.OnChange(domain.Change{Store: domain.StoreCatalog, Action: action})
}

func indexByID(movies []domain.Movie, id int) int {
	for i, m := range movies {
		if m.ID == id {
			return i
		}
	}
	return -1
}

// dedupeByID keeps the first occurrence of each id.
func dedupeByID(movies []domain.Movie) []domain.Movie {
	if len(movies) == 0 {
		return movies
	}
	seen := make(map[int]bool, len(movies))
	out := make([]domain.Movie, 0, len(movies))
	for _, m := range movies {
		if seen[m.ID] {
			continue
		}
		seen[m.ID] = true
		out = append(out, m)
	}
	return out
}
