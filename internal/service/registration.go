package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"feedhub/internal/domain"
)

// RegistrationService creates a user identity and composes its feed by
// following every configured source feed. The set of followed sources is
// fixed at deploy time.
type RegistrationService struct {
	users   UserStore
	follows FollowStore
	tx      TransactionManager
	tokens  TokenIssuer
	sources []string
	logger  *slog.Logger
}

func NewRegistrationService(
	users UserStore,
	follows FollowStore,
	tx TransactionManager,
	tokens TokenIssuer,
	sourceFeeds []string,
	logger *slog.Logger,
) *RegistrationService {
	return &RegistrationService{
		users:   users,
		follows: follows,
		tx:      tx,
		tokens:  tokens,
		sources: sourceFeeds,
		logger:  logger,
	}
}

// Register normalizes the raw username, ensures the user exists, follows
// every configured source feed and returns the issued token. Every step is
// idempotent, so a caller may safely retry after a failure; a follow failure
// surfaces as ErrRegistrationIncomplete.
func (s *RegistrationService) Register(ctx context.Context, rawUsername string) (*domain.Registration, error) {
	if strings.TrimSpace(rawUsername) == "" {
		return nil, fmt.Errorf("%w: empty username", domain.ErrMalformedInput)
	}
	username := domain.NormalizeUsername(rawUsername)

	if err := s.users.EnsureUser(ctx, username, username); err != nil {
		return nil, fmt.Errorf("ensure user: %w", err)
	}

	userFeed := domain.UserFeed(username)

	err := s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		for _, source := range s.sources {
			if err := s.follows.Follow(ctx, userFeed, domain.SourceFeed(source)); err != nil {
				return fmt.Errorf("follow %s: %w", source, err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrRegistrationIncomplete, err)
	}

	s.logger.Info("registered user", "username", username, "follows", len(s.sources))

	return &domain.Registration{
		Username: username,
		Token:    s.tokens.Token(username),
	}, nil
}
