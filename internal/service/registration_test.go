package service

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"feedhub/internal/domain"
	"feedhub/internal/service/mocks"
)

var sourceFeeds = []string{"reddit", "nyt", "bbc"}

type RegistrationServiceTestSuite struct {
	suite.Suite
	ctrl *gomock.Controller

	users     *mocks.MockUserStore
	follows   *mocks.MockFollowStore
	txManager *mocks.MockTransactionManager
	tokens    *mocks.MockTokenIssuer

	service *RegistrationService
}

func (s *RegistrationServiceTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())

	s.users = mocks.NewMockUserStore(s.ctrl)
	s.follows = mocks.NewMockFollowStore(s.ctrl)
	s.txManager = mocks.NewMockTransactionManager(s.ctrl)
	s.tokens = mocks.NewMockTokenIssuer(s.ctrl)

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))

	s.service = NewRegistrationService(s.users, s.follows, s.txManager, s.tokens, sourceFeeds, logger)
}

func (s *RegistrationServiceTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func TestRegistrationServiceTestSuite(t *testing.T) {
	suite.Run(t, new(RegistrationServiceTestSuite))
}

func (s *RegistrationServiceTestSuite) passThroughTx(ctx context.Context) {
	s.txManager.EXPECT().WithTransaction(ctx, gomock.Any()).DoAndReturn(
		func(ctx context.Context, fn func(context.Context) error) error {
			return fn(ctx)
		},
	)
}

func (s *RegistrationServiceTestSuite) TestRegister_FollowsAllConfiguredSources() {
	ctx := context.Background()
	userFeed := domain.UserFeed("jane_doe")

	s.users.EXPECT().EnsureUser(ctx, "jane_doe", "jane_doe").Return(nil)
	s.passThroughTx(ctx)
	for _, source := range sourceFeeds {
		s.follows.EXPECT().Follow(ctx, userFeed, domain.SourceFeed(source)).Return(nil)
	}
	s.tokens.EXPECT().Token("jane_doe").Return("tok-jane")

	reg, err := s.service.Register(ctx, "Jane Doe")

	s.NoError(err)
	s.Equal("jane_doe", reg.Username)
	s.Equal("tok-jane", reg.Token)
}

func (s *RegistrationServiceTestSuite) TestRegister_RetrySucceeds() {
	// A second identical request re-confirms existing state and succeeds.
	ctx := context.Background()
	userFeed := domain.UserFeed("jane_doe")

	for range 2 {
		s.users.EXPECT().EnsureUser(ctx, "jane_doe", "jane_doe").Return(nil)
		s.passThroughTx(ctx)
		for _, source := range sourceFeeds {
			s.follows.EXPECT().Follow(ctx, userFeed, domain.SourceFeed(source)).Return(nil)
		}
		s.tokens.EXPECT().Token("jane_doe").Return("tok-jane")
	}

	first, err := s.service.Register(ctx, "Jane Doe")
	s.NoError(err)

	second, err := s.service.Register(ctx, "jane_doe")
	s.NoError(err)
	s.Equal(first, second)
}

func (s *RegistrationServiceTestSuite) TestRegister_FollowFailure() {
	ctx := context.Background()
	userFeed := domain.UserFeed("bob")

	s.users.EXPECT().EnsureUser(ctx, "bob", "bob").Return(nil)
	s.passThroughTx(ctx)

	storeErr := fmt.Errorf("%w: connection refused", domain.ErrStoreUnavailable)
	s.follows.EXPECT().Follow(ctx, userFeed, domain.SourceFeed("reddit")).Return(storeErr)

	reg, err := s.service.Register(ctx, "Bob")

	s.Nil(reg)
	s.ErrorIs(err, domain.ErrRegistrationIncomplete)
}

func (s *RegistrationServiceTestSuite) TestRegister_EnsureUserFailure() {
	ctx := context.Background()

	storeErr := fmt.Errorf("%w: connection refused", domain.ErrStoreUnavailable)
	s.users.EXPECT().EnsureUser(ctx, "bob", "bob").Return(storeErr)

	reg, err := s.service.Register(ctx, "Bob")

	s.Nil(reg)
	s.ErrorIs(err, domain.ErrStoreUnavailable)
}

func (s *RegistrationServiceTestSuite) TestRegister_EmptyUsername() {
	reg, err := s.service.Register(context.Background(), "   ")

	s.Nil(reg)
	s.ErrorIs(err, domain.ErrMalformedInput)
}
