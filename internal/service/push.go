package service

import (
	"context"
	"fmt"
	"log/slog"

	"feedhub/internal/domain"
	"feedhub/internal/normalize"
)

// PushService ingests single externally-pushed payloads (webhooks). No
// batching state across calls; re-delivery of the same logical item creates
// no duplicate visible activity because the storage layer deduplicates.
type PushService struct {
	activities ActivityStore
	publisher  Publisher
	logger     *slog.Logger
}

func NewPushService(activities ActivityStore, publisher Publisher, logger *slog.Logger) *PushService {
	return &PushService{
		activities: activities,
		publisher:  publisher,
		logger:     logger,
	}
}

// IngestPushed normalizes and appends exactly one pushed item. Fails with
// ErrMalformedInput when required fields are missing and with
// ErrStoreUnavailable when the append cannot reach the feed engine.
func (s *PushService) IngestPushed(ctx context.Context, st normalize.SourceType, raw map[string]any) error {
	activity, err := normalize.Normalize(st, raw)
	if err != nil {
		return err
	}

	feed := domain.SourceFeed(activity.Actor)
	if _, err := s.activities.Append(ctx, feed, &activity); err != nil {
		return fmt.Errorf("append pushed item: %w", err)
	}

	if s.publisher != nil {
		if err := s.publisher.Publish(ctx, feed, &activity); err != nil {
			s.logger.Warn("publish failed", "source", activity.Actor, "object", activity.Object, "error", err)
		}
	}

	s.logger.Info("ingested pushed item", "source", activity.Actor, "object", activity.Object)

	return nil
}
