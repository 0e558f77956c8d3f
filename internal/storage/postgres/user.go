package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"feedhub/internal/domain"
)

type UserStore struct {
	db *sqlx.DB
}

func NewUserStore(db *sqlx.DB) *UserStore {
	return &UserStore{db: db}
}

// EnsureUser creates the user if it does not exist yet. Calling it again for
// the same id is a noop.
func (s *UserStore) EnsureUser(ctx context.Context, id, displayName string) error {
	if id == "" {
		return fmt.Errorf("%w: empty user id", domain.ErrMalformedInput)
	}

	query := `
		INSERT INTO users (id, display_name)
		VALUES ($1, $2)
		ON CONFLICT (id) DO NOTHING`

	exec := GetExecutor(ctx, s.db)
	if _, err := exec.ExecContext(ctx, query, id, displayName); err != nil {
		return storeErr(err)
	}
	return nil
}

func storeErr(err error) error {
	return fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
}
