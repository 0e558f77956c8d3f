package service

//go:generate mockgen -source=interfaces.go -destination=mocks/mocks.go -package=mocks

import (
	"context"

	"feedhub/internal/domain"
)

// UserStore manages identities in the feed engine.
type UserStore interface {
	// EnsureUser is an idempotent create-or-noop.
	EnsureUser(ctx context.Context, id, displayName string) error
}

// ActivityStore appends activities to feeds in the feed engine.
type ActivityStore interface {
	// Append adds an activity to a feed. Appending an activity whose dedup
	// identity already exists in the feed succeeds and returns the existing
	// activity id.
	Append(ctx context.Context, feed domain.FeedKey, activity *domain.Activity) (int64, error)
}

// FollowStore manages follow edges between feeds in the feed engine.
type FollowStore interface {
	// Follow is idempotent: re-following leaves exactly one edge.
	Follow(ctx context.Context, follower, target domain.FeedKey) error
	Unfollow(ctx context.Context, follower, target domain.FeedKey) error
}

// Source fetches a bounded batch of raw items from one external content
// source. Name doubles as the source-feed name and the normalizer source
// type.
type Source interface {
	Name() string
	Fetch(ctx context.Context) ([]map[string]any, error)
}

// TokenIssuer mints the opaque token a client uses to read its own feed.
// Deterministic per id; no network round trip.
type TokenIssuer interface {
	Token(id string) string
}

type TransactionManager interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// Publisher emits appended activities to downstream consumers.
type Publisher interface {
	Publish(ctx context.Context, feed domain.FeedKey, activity *domain.Activity) error
	Close() error
}
