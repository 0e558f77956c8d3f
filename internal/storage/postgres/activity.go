package postgres

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/jmoiron/sqlx"

	"feedhub/internal/domain"
)

type ActivityStore struct {
	db *sqlx.DB
}

func NewActivityStore(db *sqlx.DB) *ActivityStore {
	return &ActivityStore{db: db}
}

// Append adds an activity to a feed. The feed's dedup identity is
// coalesce(foreign_id, object); re-appending an existing activity succeeds
// and returns the id of the activity already in the feed.
func (s *ActivityStore) Append(ctx context.Context, feed domain.FeedKey, activity *domain.Activity) (int64, error) {
	if err := feed.Validate(); err != nil {
		return 0, err
	}
	if err := activity.Validate(); err != nil {
		return 0, err
	}

	extra := []byte("{}")
	if len(activity.Extra) > 0 {
		var err error
		extra, err = json.Marshal(activity.Extra)
		if err != nil {
			return 0, fmt.Errorf("%w: encode extra: %v", domain.ErrMalformedInput, err)
		}
	}

	query := `
		INSERT INTO activities (
			feed_group, feed_name, actor, verb, object, title, foreign_id, extra
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8
		)
		ON CONFLICT (feed_group, feed_name, dedup_id) DO NOTHING
		RETURNING id`

	exec := GetExecutor(ctx, s.db)

	var id int64
	err := exec.QueryRowxContext(ctx, query,
		feed.Group,
		feed.Name,
		activity.Actor,
		activity.Verb,
		activity.Object,
		activity.Title,
		activity.ForeignID,
		extra,
	).Scan(&id)

	if err == sql.ErrNoRows {
		err = exec.QueryRowxContext(ctx,
			"SELECT id FROM activities WHERE feed_group = $1 AND feed_name = $2 AND dedup_id = $3",
			feed.Group, feed.Name, activity.DedupID(),
		).Scan(&id)
	}

	if err != nil {
		return 0, storeErr(err)
	}

	return id, nil
}

type activityRow struct {
	Actor     string `db:"actor"`
	Verb      string `db:"verb"`
	Object    string `db:"object"`
	Title     string `db:"title"`
	ForeignID string `db:"foreign_id"`
	Extra     []byte `db:"extra"`
}

// Feed reads a feed's activities newest-first. Source feeds return their own
// activities; user feeds return the union of the source feeds the user
// follows.
func (s *ActivityStore) Feed(ctx context.Context, feed domain.FeedKey, limit int) ([]domain.Activity, error) {
	if err := feed.Validate(); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = 25
	}

	var query string
	if feed.Group == "user" {
		query = `
			SELECT a.actor, a.verb, a.object, a.title, a.foreign_id, a.extra
			FROM activities a
			INNER JOIN follows f
				ON f.target_group = a.feed_group AND f.target_name = a.feed_name
			WHERE f.follower_group = $1 AND f.follower_name = $2
			ORDER BY a.created_at DESC, a.id DESC
			LIMIT $3`
	} else {
		query = `
			SELECT actor, verb, object, title, foreign_id, extra
			FROM activities
			WHERE feed_group = $1 AND feed_name = $2
			ORDER BY created_at DESC, id DESC
			LIMIT $3`
	}

	exec := GetExecutor(ctx, s.db)
	rows, err := exec.QueryxContext(ctx, query, feed.Group, feed.Name, limit)
	if err != nil {
		return nil, storeErr(err)
	}
	defer rows.Close()

	var activities []domain.Activity
	for rows.Next() {
		var row activityRow
		if err := rows.StructScan(&row); err != nil {
			return nil, storeErr(err)
		}

		activity := domain.Activity{
			Actor:     row.Actor,
			Verb:      row.Verb,
			Object:    row.Object,
			Title:     row.Title,
			ForeignID: row.ForeignID,
		}
		if len(row.Extra) > 0 && !bytes.Equal(row.Extra, []byte("{}")) {
			if err := json.Unmarshal(row.Extra, &activity.Extra); err != nil {
				return nil, fmt.Errorf("decode extra: %w", err)
			}
		}
		activities = append(activities, activity)
	}

	if err := rows.Err(); err != nil {
		return nil, storeErr(err)
	}

	return activities, nil
}
