package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"feedhub/internal/domain"
	"feedhub/internal/normalize"
)

// IngestService drives one pull-based source: fetch a batch, normalize each
// item and append it to the source's feed. One instance per source.
type IngestService struct {
	source     Source
	users      UserStore
	activities ActivityStore
	publisher  Publisher
	logger     *slog.Logger
}

func NewIngestService(
	source Source,
	users UserStore,
	activities ActivityStore,
	publisher Publisher,
	logger *slog.Logger,
) *IngestService {
	return &IngestService{
		source:     source,
		users:      users,
		activities: activities,
		publisher:  publisher,
		logger:     logger.With("source", source.Name()),
	}
}

func (s *IngestService) Name() string {
	return s.source.Name()
}

// IngestOnce runs a single ingestion invocation. Per-item failures are
// counted and skipped; a fetch-level failure aborts the invocation with
// ErrUpstreamUnavailable and submits nothing. Safe to invoke repeatedly: the
// storage layer deduplicates re-ingested items.
func (s *IngestService) IngestOnce(ctx context.Context) (*domain.IngestStats, error) {
	start := time.Now()
	name := s.source.Name()

	s.logger.Info("starting ingestion")

	if err := s.users.EnsureUser(ctx, name, name); err != nil {
		return nil, fmt.Errorf("ensure source user: %w", err)
	}

	raws, err := s.source.Fetch(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrUpstreamUnavailable, err)
	}

	feed := domain.SourceFeed(name)
	stats := &domain.IngestStats{
		Source:  name,
		Fetched: len(raws),
	}

	for _, raw := range raws {
		activity, err := normalize.Normalize(normalize.SourceType(name), raw)
		if err != nil {
			stats.Failed++
			s.logger.Warn("skipping malformed item", "error", err)
			continue
		}

		if _, err := s.activities.Append(ctx, feed, &activity); err != nil {
			stats.Failed++
			s.logger.Warn("append failed", "object", activity.Object, "error", err)
			continue
		}
		stats.Submitted++

		if s.publisher != nil {
			if err := s.publisher.Publish(ctx, feed, &activity); err != nil {
				s.logger.Warn("publish failed", "object", activity.Object, "error", err)
			} else {
				stats.Published++
			}
		}
	}

	stats.Duration = time.Since(start)

	s.logger.Info("ingestion completed",
		"fetched", stats.Fetched,
		"submitted", stats.Submitted,
		"failed", stats.Failed,
		"published", stats.Published,
		"duration", stats.Duration,
	)

	return stats, nil
}
