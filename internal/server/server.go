// Package server exposes the HTTP surface: registration, the manual
// ingestion trigger, per-source webhooks and feed reads. Handlers collapse
// the internal error taxonomy to a single {error} shape; external clients
// only need success or failure.
package server

import (
	"context"
	"errors"
	"log/slog"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	"feedhub/internal/domain"
	"feedhub/internal/normalize"
)

// Registrar handles user registration.
type Registrar interface {
	Register(ctx context.Context, rawUsername string) (*domain.Registration, error)
}

// PullIngester runs one pull-based ingestion invocation.
type PullIngester interface {
	Name() string
	IngestOnce(ctx context.Context) (*domain.IngestStats, error)
}

// PushIngester ingests one externally-pushed payload.
type PushIngester interface {
	IngestPushed(ctx context.Context, st normalize.SourceType, raw map[string]any) error
}

// FeedReader reads a feed's activities from the feed engine.
type FeedReader interface {
	Feed(ctx context.Context, feed domain.FeedKey, limit int) ([]domain.Activity, error)
}

// Config carries the collaborators the HTTP surface delegates to.
type Config struct {
	Registrar Registrar
	Ingesters []PullIngester
	Push      PushIngester
	Feeds     FeedReader

	// APIKey is handed to registering clients alongside their token.
	APIKey string

	Logger *slog.Logger
}

// New returns a fiber.App serving the feedhub HTTP surface.
func New(cfg *Config) *fiber.App {
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
	})

	app.Use(requestid.New())

	app.Use(func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		cfg.Logger.Info("request",
			"method", c.Method(),
			"route", c.Route().Path,
			"status", c.Response().StatusCode(),
			"latency", time.Since(start),
		)
		return err
	})

	app.Post("/registration", func(c *fiber.Ctx) error {
		var body struct {
			Username string `json:"username"`
		}
		if err := c.BodyParser(&body); err != nil {
			return fail(c, err)
		}

		reg, err := cfg.Registrar.Register(c.UserContext(), body.Username)
		if err != nil {
			return fail(c, err)
		}

		return c.JSON(fiber.Map{
			"token":    reg.Token,
			"apiKey":   cfg.APIKey,
			"username": reg.Username,
		})
	})

	app.Post("/initialize", func(c *fiber.Ctx) error {
		results := make([]*domain.IngestStats, 0, len(cfg.Ingesters))
		for _, ing := range cfg.Ingesters {
			stats, err := ing.IngestOnce(c.UserContext())
			if err != nil {
				return fail(c, err)
			}
			results = append(results, stats)
		}
		return c.JSON(fiber.Map{"sources": results})
	})

	for _, st := range normalize.SourceTypes() {
		st := st
		app.Post("/"+string(st)+"-webhook", func(c *fiber.Ctx) error {
			raw := map[string]any{}
			if err := c.BodyParser(&raw); err != nil {
				return fail(c, err)
			}
			if err := cfg.Push.IngestPushed(c.UserContext(), st, raw); err != nil {
				return fail(c, err)
			}
			return c.SendStatus(fiber.StatusOK)
		})
	}

	app.Get("/feed/:group/:name", func(c *fiber.Ctx) error {
		limit, err := strconv.Atoi(c.Query("limit", "25"))
		if err != nil || limit < 1 || limit > 100 {
			limit = 25
		}

		key := domain.FeedKey{Group: c.Params("group"), Name: c.Params("name")}
		activities, err := cfg.Feeds.Feed(c.UserContext(), key, limit)
		if err != nil {
			if errors.Is(err, domain.ErrInvalidFeedKey) {
				return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
			}
			return fail(c, err)
		}
		if activities == nil {
			activities = []domain.Activity{}
		}
		return c.JSON(fiber.Map{"activities": activities})
	})

	return app
}

func fail(c *fiber.Ctx, err error) error {
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
}
