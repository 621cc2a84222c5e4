package domain

import "context"

// CatalogClient is the remote movie catalog. Each call is a single blocking
// GET; implementations return *RemoteError on failure.
type CatalogClient interface {
	FetchTrending(ctx context.Context) ([]Movie, error)
	FetchByQuery(ctx context.Context, text string) ([]Movie, error)
	FetchDetail(ctx context.Context, id int) (*MovieDetail, error)
}

// KeyValueStore persists string values under fixed keys.
// A missing key is reported as ok=false, never as an error.
type KeyValueStore interface {
	Get(key string) (string, bool)
	Set(key, value string) error
	Remove(key string) error
}
