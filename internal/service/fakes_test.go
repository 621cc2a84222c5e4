package service

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"

	"github.com/mmcdole/reel/internal/domain"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// memStore is an in-memory domain.KeyValueStore.
type memStore struct {
	mu     sync.Mutex
	values map[string]string
	setErr error
}

func newMemStore() *memStore {
	return &memStore{values: make(map[string]string)}
}

func (m *memStore) Get(key string) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.values[key]
	return v, ok
}

func (m *memStore) Set(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.setErr != nil {
		return m.setErr
	}
	m.values[key] = value
	return nil
}

func (m *memStore) Remove(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.values, key)
	return nil
}

// fakeCatalog answers from canned lists. A non-nil gate blocks each call
// until a value is received on it.
type fakeCatalog struct {
	mu       sync.Mutex
	trending []domain.Movie
	results  map[string][]domain.Movie
	details  map[int]*domain.MovieDetail
	err      error

	gate chan struct{}

	trendingCalls int
	searchCalls   int
	detailCalls   int
}

var errBoom = errors.New("boom")

func (f *fakeCatalog) wait(ctx context.Context) error {
	if f.gate == nil {
		return nil
	}
	select {
	case <-f.gate:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (f *fakeCatalog) FetchTrending(ctx context.Context) ([]domain.Movie, error) {
	f.mu.Lock()
	f.trendingCalls++
	movies, err := domain.CloneMovies(f.trending), f.err
	f.mu.Unlock()

	if werr := f.wait(ctx); werr != nil {
		return nil, werr
	}
	if err != nil {
		return nil, &domain.RemoteError{Op: "trending", Status: 500, Err: err}
	}
	return movies, nil
}

func (f *fakeCatalog) FetchByQuery(ctx context.Context, text string) ([]domain.Movie, error) {
	f.mu.Lock()
	f.searchCalls++
	movies, err := domain.CloneMovies(f.results[text]), f.err
	f.mu.Unlock()

	if werr := f.wait(ctx); werr != nil {
		return nil, werr
	}
	if err != nil {
		return nil, &domain.RemoteError{Op: "search", Status: 500, Err: err}
	}
	if movies == nil {
		movies = []domain.Movie{}
	}
	return movies, nil
}

func (f *fakeCatalog) FetchDetail(ctx context.Context, id int) (*domain.MovieDetail, error) {
	f.mu.Lock()
	f.detailCalls++
	d, ok := f.details[id]
	f.mu.Unlock()

	if werr := f.wait(ctx); werr != nil {
		return nil, werr
	}
	if !ok {
		return nil, &domain.RemoteError{Op: "detail", Status: 404, Err: domain.ErrMovieNotFound}
	}
	copied := *d
	return &copied, nil
}

func (f *fakeCatalog) setErr(err error) {
	f.mu.Lock()
	f.err = err
	f.mu.Unlock()
}

func (f *fakeCatalog) calls() (trending, search, detail int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.trendingCalls, f.searchCalls, f.detailCalls
}

// recorder collects change notifications.
type recorder struct {
	mu      sync.Mutex
	changes []domain.Change
}

func (r *recorder) OnChange(c domain.Change) {
	r.mu.Lock()
	r.changes = append(r.changes, c)
	r.mu.Unlock()
}

func (r *recorder) actions() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.changes))
	for i, c := range r.changes {
		out[i] = c.Action
	}
	return out
}
