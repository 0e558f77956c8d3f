// Package bbc pulls the BBC news syndication feed.
package bbc

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/mmcdole/gofeed"
)

const SourceName = "bbc"

// Config holds BBC source configuration.
type Config struct {
	FeedURL string
	Timeout time.Duration
}

// Source fetches and parses the BBC news RSS document.
type Source struct {
	parser  *gofeed.Parser
	feedURL string
	timeout time.Duration
	logger  *slog.Logger
}

// New creates a new BBC source.
func New(cfg Config, logger *slog.Logger) *Source {
	return &Source{
		parser:  gofeed.NewParser(),
		feedURL: cfg.FeedURL,
		timeout: cfg.Timeout,
		logger:  logger.With("source", SourceName),
	}
}

// Name returns the source identifier, which is also its source-feed name.
func (s *Source) Name() string {
	return SourceName
}

// Fetch retrieves the feed document and returns its entries as raw items.
func (s *Source) Fetch(ctx context.Context) ([]map[string]any, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	feed, err := s.parser.ParseURLWithContext(s.feedURL, ctx)
	if err != nil {
		return nil, fmt.Errorf("parse feed: %w", err)
	}

	items := make([]map[string]any, 0, len(feed.Items))
	for _, item := range feed.Items {
		raw := map[string]any{
			"link":           item.Link,
			"title":          item.Title,
			"contentSnippet": item.Description,
		}
		if item.PublishedParsed != nil {
			raw["isoDate"] = item.PublishedParsed.UTC().Format(time.RFC3339)
		} else if item.Published != "" {
			raw["isoDate"] = item.Published
		}
		items = append(items, raw)
	}

	s.logger.Debug("fetched feed", "feed_title", feed.Title, "items", len(items))

	return items, nil
}
