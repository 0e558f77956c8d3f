package postgres

import (
	"context"

	"github.com/jmoiron/sqlx"

	"feedhub/internal/domain"
)

type FollowStore struct {
	db *sqlx.DB
}

func NewFollowStore(db *sqlx.DB) *FollowStore {
	return &FollowStore{db: db}
}

// Follow makes target's activities visible in follower's composed feed.
// Re-following leaves exactly one edge.
func (s *FollowStore) Follow(ctx context.Context, follower, target domain.FeedKey) error {
	if err := follower.Validate(); err != nil {
		return err
	}
	if err := target.Validate(); err != nil {
		return err
	}

	query := `
		INSERT INTO follows (follower_group, follower_name, target_group, target_name)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT DO NOTHING`

	exec := GetExecutor(ctx, s.db)
	if _, err := exec.ExecContext(ctx, query, follower.Group, follower.Name, target.Group, target.Name); err != nil {
		return storeErr(err)
	}
	return nil
}

// Unfollow removes the edge; removing a missing edge is a noop.
func (s *FollowStore) Unfollow(ctx context.Context, follower, target domain.FeedKey) error {
	if err := follower.Validate(); err != nil {
		return err
	}
	if err := target.Validate(); err != nil {
		return err
	}

	query := `
		DELETE FROM follows
		WHERE follower_group = $1 AND follower_name = $2
		  AND target_group = $3 AND target_name = $4`

	exec := GetExecutor(ctx, s.db)
	if _, err := exec.ExecContext(ctx, query, follower.Group, follower.Name, target.Group, target.Name); err != nil {
		return storeErr(err)
	}
	return nil
}
