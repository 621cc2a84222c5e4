package service

import (
	"context"
	"reflect"
	"sync"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/mmcdole/reel/internal/domain"
)

func movie(id int, title string, genres ...int) domain.Movie {
	return domain.Movie{ID: id, Title: title, ReleaseDate: "2024-01-01", VoteAverage: 7, GenreIDs: genres}
}

func movieIDs(movies []domain.Movie) []int {
	out := make([]int, 0, len(movies))
	for _, m := range movies {
		out = append(out, m.ID)
	}
	return out
}

func waitFor(t *testing.T, what string, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatalf("timed out waiting for %s", what)
		}
		time.Sleep(time.Millisecond)
	}
}

func persistedFavorites(t *testing.T, store *memStore) []int {
	t.Helper()
	raw, ok := store.Get(domain.KeyFavorites)
	if !ok {
		return []int{}
	}
	var movies []domain.Movie
	if err := json.Unmarshal([]byte(raw), &movies); err != nil {
		t.Fatalf("persisted favorites unreadable: %v", err)
	}
	return movieIDs(movies)
}

func TestLoadTrending_Success(t *testing.T) {
	client := &fakeCatalog{trending: []domain.Movie{movie(1, "One", 28), movie(2, "Two", 18)}}
	rec := &recorder{}
	svc := NewCatalogService(client, newMemStore(), rec, testLogger())

	svc.LoadTrending(context.Background())

	snap := svc.Snapshot()
	if !reflect.DeepEqual(movieIDs(snap.Trending), []int{1, 2}) {
		t.Fatalf("Trending = %v", movieIDs(snap.Trending))
	}
	if snap.Loading || snap.Error != "" || !snap.TrendingLoaded {
		t.Fatalf("snapshot = %+v", snap)
	}
	if got := rec.actions(); !reflect.DeepEqual(got, []string{"trending_started", "trending_loaded"}) {
		t.Fatalf("actions = %v", got)
	}
}

func TestLoadTrending_FailureKeepsPriorList(t *testing.T) {
	client := &fakeCatalog{trending: []domain.Movie{movie(1, "One"), movie(2, "Two")}}
	svc := NewCatalogService(client, newMemStore(), nil, testLogger())

	svc.LoadTrending(context.Background())
	client.setErr(errBoom)
	svc.LoadTrending(context.Background())

	snap := svc.Snapshot()
	if !reflect.DeepEqual(movieIDs(snap.Trending), []int{1, 2}) {
		t.Fatalf("Trending = %v, want prior list kept", movieIDs(snap.Trending))
	}
	if snap.Error == "" {
		t.Fatal("Error is empty after failed fetch")
	}
	if snap.Loading {
		t.Fatal("Loading still true after failure")
	}

	client.setErr(nil)
	svc.LoadTrending(context.Background())
	if snap := svc.Snapshot(); snap.Error != "" {
		t.Fatalf("Error = %q after successful retry, want cleared", snap.Error)
	}
}

func TestLoadTrending_FailureBeforeAnyLoadLeavesEmpty(t *testing.T) {
	client := &fakeCatalog{err: errBoom}
	svc := NewCatalogService(client, newMemStore(), nil, testLogger())

	svc.LoadTrending(context.Background())

	snap := svc.Snapshot()
	if len(snap.Trending) != 0 || snap.TrendingLoaded {
		t.Fatalf("snapshot = %+v, want empty trending", snap)
	}
	if snap.Error != ErrTextTrending {
		t.Fatalf("Error = %q, want %q", snap.Error, ErrTextTrending)
	}
}

func TestSearch_BlankQueryMakesNoCall(t *testing.T) {
	client := &fakeCatalog{results: map[string][]domain.Movie{"dune": {movie(5, "Dune")}}}
	store := newMemStore()
	svc := NewCatalogService(client, store, nil, testLogger())

	svc.Search(context.Background(), "dune")
	svc.Search(context.Background(), "   ")

	if _, searches, _ := client.calls(); searches != 1 {
		t.Fatalf("search calls = %d, want 1", searches)
	}
	snap := svc.Snapshot()
	if snap.Query != "" || len(snap.SearchResults) != 0 {
		t.Fatalf("snapshot = %+v, want search cleared", snap)
	}
	// A blank search clears results but keeps the last persisted query.
	if v, _ := store.Get(domain.KeyLastSearch); v != "dune" {
		t.Fatalf("last search = %q, want dune", v)
	}
}

func TestSearch_PersistsQueryAndSwitchesActiveList(t *testing.T) {
	client := &fakeCatalog{
		trending: []domain.Movie{movie(1, "One")},
		results:  map[string][]domain.Movie{"alien": {movie(7, "Alien"), movie(8, "Aliens")}},
	}
	store := newMemStore()
	svc := NewCatalogService(client, store, nil, testLogger())

	svc.LoadTrending(context.Background())
	if got := movieIDs(svc.Active()); !reflect.DeepEqual(got, []int{1}) {
		t.Fatalf("Active before search = %v", got)
	}

	svc.Search(context.Background(), "alien")
	if v, _ := store.Get(domain.KeyLastSearch); v != "alien" {
		t.Fatalf("last search = %q, want alien", v)
	}
	if got := movieIDs(svc.Active()); !reflect.DeepEqual(got, []int{7, 8}) {
		t.Fatalf("Active after search = %v", got)
	}

	svc.ClearSearch()
	if _, ok := store.Get(domain.KeyLastSearch); ok {
		t.Fatal("ClearSearch did not remove last search")
	}
	if got := movieIDs(svc.Active()); !reflect.DeepEqual(got, []int{1}) {
		t.Fatalf("Active after clear = %v", got)
	}
}

func TestSearch_FailureDoesNotPersistQuery(t *testing.T) {
	client := &fakeCatalog{err: errBoom}
	store := newMemStore()
	svc := NewCatalogService(client, store, nil, testLogger())

	svc.Search(context.Background(), "heat")

	if _, ok := store.Get(domain.KeyLastSearch); ok {
		t.Fatal("failed search persisted its query")
	}
	if snap := svc.Snapshot(); snap.Error != ErrTextSearch {
		t.Fatalf("Error = %q, want %q", snap.Error, ErrTextSearch)
	}
}

// gatedCatalog blocks each search until its query's gate is closed.
type gatedCatalog struct {
	fakeCatalog
	gates map[string]chan struct{}
}

func (g *gatedCatalog) FetchByQuery(ctx context.Context, text string) ([]domain.Movie, error) {
	select {
	case <-g.gates[text]:
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	return g.fakeCatalog.FetchByQuery(ctx, text)
}

// trendingReply is one scripted FetchTrending outcome.
type trendingReply struct {
	movies []domain.Movie
	err    error
}

// sequencedCatalog answers the nth FetchTrending call from replies[n],
// blocking until that reply is sent.
type sequencedCatalog struct {
	fakeCatalog
	mu      sync.Mutex
	started int
	replies []chan trendingReply
}

func (s *sequencedCatalog) FetchTrending(ctx context.Context) ([]domain.Movie, error) {
	s.mu.Lock()
	ch := s.replies[s.started]
	s.started++
	s.mu.Unlock()

	select {
	case r := <-ch:
		return r.movies, r.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (s *sequencedCatalog) startedCalls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.started
}

func TestLoadTrending_StaleResultIsDropped(t *testing.T) {
	tests := []struct {
		name  string
		older trendingReply
	}{
		{"older success", trendingReply{movies: []domain.Movie{movie(1, "Older")}}},
		{"older failure", trendingReply{err: errBoom}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := &sequencedCatalog{replies: []chan trendingReply{
				make(chan trendingReply, 1),
				make(chan trendingReply, 1),
			}}
			svc := NewCatalogService(client, newMemStore(), nil, testLogger())
			ctx := context.Background()

			olderDone := make(chan struct{})
			newerDone := make(chan struct{})
			go func() {
				defer close(olderDone)
				svc.LoadTrending(ctx)
			}()
			waitFor(t, "older load to start", func() bool { return client.startedCalls() == 1 })

			go func() {
				defer close(newerDone)
				svc.LoadTrending(ctx)
			}()
			waitFor(t, "newer load to start", func() bool { return client.startedCalls() == 2 })

			// Newer finishes first, then the superseded one
			client.replies[1] <- trendingReply{movies: []domain.Movie{movie(2, "Newer")}}
			<-newerDone
			client.replies[0] <- tt.older
			<-olderDone

			snap := svc.Snapshot()
			if got := movieIDs(snap.Trending); !reflect.DeepEqual(got, []int{2}) {
				t.Fatalf("Trending = %v, want the newer load", got)
			}
			if snap.Error != "" {
				t.Fatalf("Error = %q, want none", snap.Error)
			}
			if snap.Loading {
				t.Fatal("Loading = true after both loads finished")
			}
		})
	}
}

func TestSearch_StaleResultIsDropped(t *testing.T) {
	client := &gatedCatalog{
		fakeCatalog: fakeCatalog{results: map[string][]domain.Movie{
			"old": {movie(1, "Old")},
			"new": {movie(2, "New")},
		}},
		gates: map[string]chan struct{}{
			"old": make(chan struct{}),
			"new": make(chan struct{}),
		},
	}
	store := newMemStore()
	svc := NewCatalogService(client, store, nil, testLogger())
	ctx := context.Background()

	var wg sync.WaitGroup
	oldDone := make(chan struct{})
	wg.Add(2)
	go func() {
		defer wg.Done()
		defer close(oldDone)
		svc.Search(ctx, "old")
	}()
	waitFor(t, "old search to start", func() bool { return svc.Snapshot().Query == "old" })

	go func() {
		defer wg.Done()
		svc.Search(ctx, "new")
	}()
	waitFor(t, "new search to start", func() bool { return svc.Snapshot().Query == "new" })

	close(client.gates["new"])
	waitFor(t, "new results", func() bool { return len(svc.Snapshot().SearchResults) == 1 })

	close(client.gates["old"])
	<-oldDone
	wg.Wait()

	snap := svc.Snapshot()
	if got := movieIDs(snap.SearchResults); !reflect.DeepEqual(got, []int{2}) {
		t.Fatalf("SearchResults = %v, want the newer search", got)
	}
	if snap.Query != "new" || snap.Loading {
		t.Fatalf("snapshot = %+v", snap)
	}
	if v, _ := store.Get(domain.KeyLastSearch); v != "new" {
		t.Fatalf("last search = %q, want new", v)
	}
}

func TestSearch_ClearSupersedesPendingSearch(t *testing.T) {
	client := &gatedCatalog{
		fakeCatalog: fakeCatalog{results: map[string][]domain.Movie{"slow": {movie(3, "Slow")}}},
		gates:       map[string]chan struct{}{"slow": make(chan struct{})},
	}
	svc := NewCatalogService(client, newMemStore(), nil, testLogger())

	done := make(chan struct{})
	go func() {
		defer close(done)
		svc.Search(context.Background(), "slow")
	}()
	waitFor(t, "search to start", func() bool { return svc.Snapshot().Loading })

	svc.ClearSearch()
	if svc.Snapshot().Loading {
		t.Fatal("Loading still true after ClearSearch")
	}

	close(client.gates["slow"])
	<-done

	snap := svc.Snapshot()
	if len(snap.SearchResults) != 0 || snap.Query != "" {
		t.Fatalf("pending search resurrected results: %+v", snap)
	}
}

func TestToggleFavorite_IsItsOwnInverse(t *testing.T) {
	store := newMemStore()
	svc := NewCatalogService(&fakeCatalog{}, store, nil, testLogger())
	m := movie(42, "Answer")

	if !svc.ToggleFavorite(m) {
		t.Fatal("first toggle should add")
	}
	if got, want := persistedFavorites(t, store), movieIDs(svc.Favorites()); !reflect.DeepEqual(got, want) {
		t.Fatalf("persisted %v, in memory %v", got, want)
	}
	if !svc.IsFavorite(42) {
		t.Fatal("IsFavorite = false after add")
	}

	if svc.ToggleFavorite(m) {
		t.Fatal("second toggle should remove")
	}
	if got := movieIDs(svc.Favorites()); len(got) != 0 {
		t.Fatalf("Favorites = %v, want empty", got)
	}
	if got := persistedFavorites(t, store); len(got) != 0 {
		t.Fatalf("persisted favorites = %v, want empty", got)
	}
}

func TestToggleFavorite_PreservesOrderAndRestores(t *testing.T) {
	store := newMemStore()
	svc := NewCatalogService(&fakeCatalog{}, store, nil, testLogger())
	for _, m := range []domain.Movie{movie(1, "A"), movie(2, "B"), movie(3, "C")} {
		svc.ToggleFavorite(m)
	}
	svc.ToggleFavorite(movie(2, "B"))

	restored := NewCatalogService(&fakeCatalog{}, store, nil, testLogger())
	restored.Restore()
	if got := movieIDs(restored.Favorites()); !reflect.DeepEqual(got, []int{1, 3}) {
		t.Fatalf("restored favorites = %v, want [1 3]", got)
	}
}

func TestRestore_DedupesFavoritesAndReturnsLastSearch(t *testing.T) {
	store := newMemStore()
	_ = store.Set(domain.KeyFavorites, `[{"id":1,"title":"A"},{"id":1,"title":"A again"},{"id":2,"title":"B"}]`)
	_ = store.Set(domain.KeyLastSearch, "blade runner")

	svc := NewCatalogService(&fakeCatalog{}, store, nil, testLogger())
	if q := svc.Restore(); q != "blade runner" {
		t.Fatalf("Restore = %q, want blade runner", q)
	}
	favs := svc.Favorites()
	if !reflect.DeepEqual(movieIDs(favs), []int{1, 2}) || favs[0].Title != "A" {
		t.Fatalf("favorites = %+v", favs)
	}
}

func TestRestore_CorruptFavoritesTreatedAsNone(t *testing.T) {
	store := newMemStore()
	_ = store.Set(domain.KeyFavorites, "not json")

	svc := NewCatalogService(&fakeCatalog{}, store, nil, testLogger())
	svc.Restore()
	if len(svc.Favorites()) != 0 {
		t.Fatal("corrupt favorites should restore as empty")
	}
}

func TestFilters_NarrowDisplayedOnly(t *testing.T) {
	client := &fakeCatalog{trending: []domain.Movie{movie(1, "One", 28), movie(2, "Two", 18)}}
	svc := NewCatalogService(client, newMemStore(), nil, testLogger())
	svc.LoadTrending(context.Background())

	svc.SetFilter(domain.FilterPatch{}.WithGenre(28))
	if got := movieIDs(svc.Displayed()); !reflect.DeepEqual(got, []int{1}) {
		t.Fatalf("Displayed = %v, want [1]", got)
	}
	if got := movieIDs(svc.Active()); !reflect.DeepEqual(got, []int{1, 2}) {
		t.Fatalf("Active = %v, filter must not touch the list", got)
	}

	svc.SetFilter(domain.FilterPatch{}.WithMinRating(9))
	if got := svc.Displayed(); len(got) != 0 {
		t.Fatalf("Displayed = %v, want empty", movieIDs(got))
	}
	if g := svc.Snapshot().Filter.Genre; g == nil || *g != 28 {
		t.Fatal("SetFilter dropped an untouched field")
	}

	svc.ClearFilters()
	if !svc.Snapshot().Filter.IsEmpty() {
		t.Fatal("ClearFilters left criteria set")
	}
	if got := movieIDs(svc.Displayed()); !reflect.DeepEqual(got, []int{1, 2}) {
		t.Fatalf("Displayed after clear = %v", got)
	}
}

func TestFavoritesMatching(t *testing.T) {
	svc := NewCatalogService(&fakeCatalog{}, newMemStore(), nil, testLogger())
	for _, m := range []domain.Movie{movie(1, "The Matrix"), movie(2, "Heat"), movie(3, "Matrix")} {
		svc.ToggleFavorite(m)
	}

	if got := movieIDs(svc.FavoritesMatching("")); !reflect.DeepEqual(got, []int{1, 2, 3}) {
		t.Fatalf("blank query = %v, want all in order", got)
	}
	got := movieIDs(svc.FavoritesMatching("matrix"))
	if !reflect.DeepEqual(got, []int{3, 1}) {
		t.Fatalf("matching = %v, want closest first [3 1]", got)
	}
}

func TestSnapshot_IsDeepCopy(t *testing.T) {
	client := &fakeCatalog{trending: []domain.Movie{movie(1, "One", 28)}}
	svc := NewCatalogService(client, newMemStore(), nil, testLogger())
	svc.LoadTrending(context.Background())
	svc.SetFilter(domain.FilterPatch{}.WithYear("2024"))

	snap := svc.Snapshot()
	snap.Trending[0].GenreIDs[0] = 99
	snap.Trending[0].Title = "mutated"
	*snap.Filter.Year = "1999"

	again := svc.Snapshot()
	if again.Trending[0].Title != "One" || again.Trending[0].GenreIDs[0] != 28 {
		t.Fatal("Snapshot shares list storage with the service")
	}
	if *again.Filter.Year != "2024" {
		t.Fatal("Snapshot shares filter pointers with the service")
	}
}
