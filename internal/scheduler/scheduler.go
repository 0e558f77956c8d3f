package scheduler

import (
	"context"
	"log/slog"
	"time"

	"feedhub/internal/domain"
)

// Ingester defines the interface for recurring pull-based ingestion.
type Ingester interface {
	Name() string
	IngestOnce(ctx context.Context) (*domain.IngestStats, error)
}

type Scheduler struct {
	ingesters []Ingester
	interval  time.Duration
	timeout   time.Duration
	logger    *slog.Logger
}

func NewScheduler(ingesters []Ingester, interval time.Duration, logger *slog.Logger) *Scheduler {
	return &Scheduler{
		ingesters: ingesters,
		interval:  interval,
		timeout:   5 * time.Minute,
		logger:    logger,
	}
}

func (s *Scheduler) Start(ctx context.Context) error {
	s.logger.Info("scheduler started", "interval", s.interval, "sources", len(s.ingesters))

	s.runAll(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("scheduler stopped")
			return ctx.Err()
		case <-ticker.C:
			s.runAll(ctx)
		}
	}
}

// runAll drives every ingester once. Sources are independent, so one
// failing invocation never blocks the others.
func (s *Scheduler) runAll(ctx context.Context) {
	for _, ing := range s.ingesters {
		ingestCtx, cancel := context.WithTimeout(ctx, s.timeout)
		if _, err := ing.IngestOnce(ingestCtx); err != nil {
			s.logger.Error("ingestion failed", "source", ing.Name(), "error", err)
		}
		cancel()
	}
}
