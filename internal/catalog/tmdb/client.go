package tmdb

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/goccy/go-json"
	"github.com/mmcdole/reel/internal/domain"
)

const (
	DefaultBaseURL      = "https://api.themoviedb.org/3"
	DefaultImageBaseURL = "https://image.tmdb.org/t/p"
	userAgent           = "Reel/1.0"

	// maxErrorBody caps how much of a failed response is kept for logging
	maxErrorBody = 512
)

// Operation names carried by domain.RemoteError
const (
	OpTrending = "trending"
	OpSearch   = "search"
	OpDetail   = "detail"
)

// Client implements domain.CatalogClient for the TMDB v3 API
type Client struct {
	baseURL    *url.URL
	apiKey     string
	language   string
	httpClient *http.Client
	logger     *slog.Logger
}

// Ensure Client implements CatalogClient at compile time.
var _ domain.CatalogClient = (*Client)(nil)

// NewClient creates a new TMDB API client. language may be empty.
// The http.Client carries no timeout of its own; callers bound requests with
// their context.
func NewClient(baseURL, apiKey, language string, logger *slog.Logger) (*Client, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if strings.TrimSpace(apiKey) == "" {
		return nil, domain.ErrMissingAPIKey
	}
	base, err := parseBaseURL(baseURL)
	if err != nil {
		return nil, err
	}
	return &Client{
		baseURL:    base,
		apiKey:     apiKey,
		language:   strings.TrimSpace(language),
		httpClient: &http.Client{},
		logger:     logger,
	}, nil
}

// FetchTrending returns the current day's trending movies (first page).
func (c *Client) FetchTrending(ctx context.Context) ([]domain.Movie, error) {
	var resp listResponse
	if err := c.doRequest(ctx, OpTrending, "/trending/movie/day", nil, &resp); err != nil {
		return nil, err
	}
	return MapMovies(resp.Results), nil
}

// FetchByQuery returns movies whose titles match text (first page).
func (c *Client) FetchByQuery(ctx context.Context, text string) ([]domain.Movie, error) {
	query := url.Values{}
	query.Set("query", text)

	var resp listResponse
	if err := c.doRequest(ctx, OpSearch, "/search/movie", query, &resp); err != nil {
		return nil, err
	}
	return MapMovies(resp.Results), nil
}

// FetchDetail returns the full record for a movie, including videos and credits.
func (c *Client) FetchDetail(ctx context.Context, id int) (*domain.MovieDetail, error) {
	if id <= 0 {
		return nil, &domain.RemoteError{Op: OpDetail, Err: domain.ErrMovieNotFound}
	}
	query := url.Values{}
	query.Set("append_to_response", "videos,credits")

	var resp detailDTO
	path := "/movie/" + strconv.Itoa(id)
	if err := c.doRequest(ctx, OpDetail, path, query, &resp); err != nil {
		return nil, err
	}
	return MapDetail(resp), nil
}

// doRequest performs a credentialed GET and decodes a validated JSON body into dest
func (c *Client) doRequest(ctx context.Context, op, path string, query url.Values, dest any) error {
	if query == nil {
		query = url.Values{}
	}
	query.Set("api_key", c.apiKey)
	if c.language != "" {
		query.Set("language", c.language)
	}

	reqURL := c.baseURL.JoinPath(path)
	reqURL.RawQuery = query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL.String(), nil)
	if err != nil {
		return &domain.RemoteError{Op: op, Err: fmt.Errorf("create request: %w", err)}
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)

	// The query string carries the credential; log the path only.
	c.logger.Debug("tmdb request", "op", op, "path", path)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("tmdb request failed", "op", op, "error", err)
		if ctxErr := ctx.Err(); ctxErr != nil {
			return &domain.RemoteError{Op: op, Err: ctxErr}
		}
		return &domain.RemoteError{Op: op, Err: fmt.Errorf("%w: %v", domain.ErrCatalogUnreachable, redact(err, c.apiKey))}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		c.logger.Error("tmdb request error", "op", op, "status", resp.StatusCode, "body", string(body))
		if resp.StatusCode == http.StatusNotFound && op == OpDetail {
			return &domain.RemoteError{Op: op, Status: resp.StatusCode, Err: domain.ErrMovieNotFound}
		}
		return &domain.RemoteError{Op: op, Status: resp.StatusCode, Err: fmt.Errorf("unexpected status code: %d", resp.StatusCode)}
	}

	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		c.logger.Error("JSON parse error", "op", op, "error", err)
		return &domain.RemoteError{Op: op, Status: resp.StatusCode, Err: fmt.Errorf("decode response: %w", err)}
	}
	if err := checkShape(dest); err != nil {
		c.logger.Error("response shape rejected", "op", op, "error", err)
		return &domain.RemoteError{Op: op, Status: resp.StatusCode, Err: err}
	}
	return nil
}

// ImageURL builds an image URL for a poster/backdrop/profile path.
// Returns "" for an empty path. size is a TMDB size such as "w500" or "original".
func ImageURL(base, size, path string) string {
	if path == "" {
		return ""
	}
	if base == "" {
		base = DefaultImageBaseURL
	}
	if size == "" {
		size = "original"
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return strings.TrimRight(base, "/") + "/" + size + path
}

func parseBaseURL(raw string) (*url.URL, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		trimmed = DefaultBaseURL
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "https://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse catalog base url %q: %w", raw, err)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("parse catalog base url %q: missing host", raw)
	}
	u.Path = strings.TrimRight(u.Path, "/")
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}

// redact strips the api key from transport errors, which embed the full URL.
func redact(err error, apiKey string) error {
	var uerr *url.Error
	if apiKey == "" || !errors.As(err, &uerr) {
		return err
	}
	return errors.New(strings.ReplaceAll(err.Error(), apiKey, "REDACTED"))
}
