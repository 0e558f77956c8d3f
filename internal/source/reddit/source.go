package reddit

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"
)

const SourceName = "reddit"

// Config holds reddit source configuration.
type Config struct {
	BaseURL        string
	Limit          int
	Timeout        time.Duration
	MaxAttempts    int
	InitialBackoff time.Duration
	MaxBackoff     time.Duration
}

// Source fetches a bounded batch of top posts from the reddit ranked-listing
// endpoint.
type Source struct {
	httpClient     *http.Client
	baseURL        string
	limit          int
	maxAttempts    int
	initialBackoff time.Duration
	maxBackoff     time.Duration
	logger         *slog.Logger
}

// New creates a new reddit source.
func New(cfg Config, logger *slog.Logger) *Source {
	if cfg.MaxAttempts < 1 {
		cfg.MaxAttempts = 1
	}
	return &Source{
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		baseURL:        cfg.BaseURL,
		limit:          cfg.Limit,
		maxAttempts:    cfg.MaxAttempts,
		initialBackoff: cfg.InitialBackoff,
		maxBackoff:     cfg.MaxBackoff,
		logger:         logger.With("source", SourceName),
	}
}

// Name returns the source identifier, which is also its source-feed name.
func (s *Source) Name() string {
	return SourceName
}

// Fetch retrieves the current top posts as raw items keyed by the fields
// reddit itself exposes.
func (s *Source) Fetch(ctx context.Context) ([]map[string]any, error) {
	url := fmt.Sprintf("%s/r/popular/top.json?count=%d", s.baseURL, s.limit)

	resp, err := s.fetchListing(ctx, url)
	if err != nil {
		return nil, err
	}

	items := make([]map[string]any, 0, len(resp.Data.Children))
	for _, c := range resp.Data.Children {
		items = append(items, map[string]any{
			"id":        c.Data.ID,
			"title":     c.Data.Title,
			"url":       c.Data.URL,
			"author":    c.Data.Author,
			"subreddit": c.Data.Subreddit,
			"thumbnail": c.Data.Thumbnail,
		})
	}

	s.logger.Debug("fetched listing", "items", len(items))

	return items, nil
}

func (s *Source) fetchListing(ctx context.Context, url string) (*listing, error) {
	var resp *listing
	var err error

	for attempt := 1; attempt <= s.maxAttempts; attempt++ {
		resp, err = s.doRequest(ctx, url)
		if err == nil {
			return resp, nil
		}

		if attempt == s.maxAttempts {
			break
		}

		backoff := s.calculateBackoff(attempt)
		s.logger.Warn("request failed, retrying",
			"attempt", attempt,
			"backoff", backoff,
			"error", err,
		)

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(backoff):
		}
	}

	return nil, fmt.Errorf("after %d attempts: %w", s.maxAttempts, err)
}

func (s *Source) doRequest(ctx context.Context, url string) (*listing, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "feedhub/1.0")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status: %d", resp.StatusCode)
	}

	var l listing
	if err := json.NewDecoder(resp.Body).Decode(&l); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	return &l, nil
}

func (s *Source) calculateBackoff(attempt int) time.Duration {
	backoff := s.initialBackoff
	for i := 1; i < attempt; i++ {
		backoff *= 2
	}
	if backoff > s.maxBackoff {
		backoff = s.maxBackoff
	}
	return backoff
}
