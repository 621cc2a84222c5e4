package service

import (
	"context"
	"log/slog"
	"strconv"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/mmcdole/reel/internal/domain"
	"golang.org/x/sync/singleflight"
)

const (
	detailCacheSize = 128
	detailCacheTTL  = 10 * time.Minute
)

type cachedDetail struct {
	detail    *domain.MovieDetail
	expiresAt time.Time
}

// DetailService fetches movie details on demand. Results are kept in a
// small TTL'd LRU and concurrent requests for the same id share one fetch.
// Failures are never cached.
type DetailService struct {
	client domain.CatalogClient
	logger *slog.Logger

	cache *lru.Cache[int, cachedDetail]
	ttl   time.Duration
	group singleflight.Group
	now   func() time.Time
}

// NewDetailService creates a new DetailService.
func NewDetailService(client domain.CatalogClient, logger *slog.Logger) *DetailService {
	if logger == nil {
		logger = slog.Default()
	}
	// lru.New only fails for a non-positive size.
	cache, _ := lru.New[int, cachedDetail](detailCacheSize)
	return &DetailService{
		client: client,
		logger: logger,
		cache:  cache,
		ttl:    detailCacheTTL,
		now:    time.Now,
	}
}

// Get returns the detail record for id. The returned value is a copy the
// caller may keep.
func (s *DetailService) Get(ctx context.Context, id int) (*domain.MovieDetail, error) {
	if d, ok := s.lookup(id); ok {
		s.logger.Debug("detail cache hit", "id", id)
		return d, nil
	}

	v, err, shared := s.group.Do(strconv.Itoa(id), func() (interface{}, error) {
		// Another caller may have filled the cache while we waited.
		if d, ok := s.lookup(id); ok {
			return d, nil
		}
		s.logger.Debug("fetching detail", "id", id)
		d, err := s.client.FetchDetail(ctx, id)
		if err != nil {
			return nil, err
		}
		s.cache.Add(id, cachedDetail{detail: d, expiresAt: s.now().Add(s.ttl)})
		return d, nil
	})
	if err != nil {
		s.logger.Error("failed to fetch detail", "id", id, "error", err)
		return nil, err
	}
	if shared {
		s.logger.Debug("detail fetch shared", "id", id)
	}
	return cloneDetail(v.(*domain.MovieDetail)), nil
}

// Invalidate drops any cached record for id.
func (s *DetailService) Invalidate(id int) {
	s.cache.Remove(id)
}

func (s *DetailService) lookup(id int) (*domain.MovieDetail, bool) {
	entry, ok := s.cache.Get(id)
	if !ok {
		return nil, false
	}
	if s.now().After(entry.expiresAt) {
		s.cache.Remove(id)
		return nil, false
	}
	return cloneDetail(entry.detail), true
}

func cloneDetail(d *domain.MovieDetail) *domain.MovieDetail {
	c := *d
	c.Movie = d.Movie.Clone()
	c.Genres = append([]domain.Genre(nil), d.Genres...)
	c.Videos = append([]domain.Video(nil), d.Videos...)
	c.Cast = append([]domain.CastMember(nil), d.Cast...)
	c.Crew = append([]domain.CrewMember(nil), d.Crew...)
	if d.Runtime != nil {
		rt := *d.Runtime
		c.Runtime = &rt
	}
	return &c
}
