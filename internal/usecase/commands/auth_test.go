//go:build unit

package commands_test

import (
	"context"
	"testing"
	"time"

	"metromobiles/internal/domain/user"
	"metromobiles/internal/infra"
	"metromobiles/internal/pkg/jwt"
	"metromobiles/internal/pkg/password"
	"metromobiles/internal/usecase/commands"
	"metromobiles/internal/usecase/queries"
	"metromobiles/internal/usecase/shared"
	readstoremock "metromobiles/tests/mock/readstore"
	repositorymock "metromobiles/tests/mock/repository"
	sharedmock "metromobiles/tests/mock/shared"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type AuthCommandsTestSuite struct {
	suite.Suite
	ctx           context.Context
	mockCtrl      *gomock.Controller
	mockUow       *sharedmock.MockUnitOfWork
	mockTx        *sharedmock.MockTx
	mockUsers     *repositorymock.MockUserRepository
	mockReadStore *readstoremock.MockUserReadStore
	jwtService    *jwt.Service
	cmds          commands.AuthCommands
}

func (s *AuthCommandsTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.mockCtrl = gomock.NewController(s.T())
	s.mockUow = sharedmock.NewMockUnitOfWork(s.mockCtrl)
	s.mockTx = sharedmock.NewMockTx(s.mockCtrl)
	s.mockUsers = repositorymock.NewMockUserRepository(s.mockCtrl)
	s.mockReadStore = readstoremock.NewMockUserReadStore(s.mockCtrl)
	s.jwtService = jwt.NewService("test-secret", time.Hour)
	s.cmds = commands.NewAuthCommands(s.mockUow, s.mockReadStore, s.jwtService)

	s.mockTx.EXPECT().Users().Return(s.mockUsers).AnyTimes()
	s.mockUow.EXPECT().Within(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, fn func(context.Context, shared.Tx) error) error {
			return fn(ctx, s.mockTx)
		}).AnyTimes()
}

func (s *AuthCommandsTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestAuthCommandsSuite(t *testing.T) {
	suite.Run(t, new(AuthCommandsTestSuite))
}

func notFoundErr() error {
	return infra.WrapRepoErr("user not found", nil, infra.KindNotFound)
}

func activeView(email string) *queries.AuthorizedUserView {
	return &queries.AuthorizedUserView{
		ID:       uuid.New(),
		Name:     "Asha",
		Email:    email,
		Role:     "customer",
		IsActive: true,
	}
}

func (s *AuthCommandsTestSuite) credentials(email, pw string) user.Credentials {
	c, err := user.NewCredentials(email, pw)
	s.Require().NoError(err)
	return c
}

func (s *AuthCommandsTestSuite) TestRegister() {
	email := "asha@example.com"

	s.Run("success: creates the user and issues a token", func() {
		s.mockReadStore.EXPECT().FindByEmail(gomock.Any(), email).
			Return(nil, "", notFoundErr())
		s.mockUsers.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)

		result, err := s.cmds.Register(s.ctx, "Asha", s.credentials(email, "secret1"))
		s.Require().NoError(err)
		s.NotEmpty(result.Token)
		s.Equal(email, result.User.Email)
		s.Equal("customer", result.User.Role)

		// 発行したトークンは自分の鍵で検証できる
		claims, err := s.jwtService.ValidateToken(result.Token)
		s.Require().NoError(err)
		s.Equal(result.User.ID, claims.UserID)
	})

	s.Run("error: taken email", func() {
		s.mockReadStore.EXPECT().FindByEmail(gomock.Any(), email).
			Return(activeView(email), "some-hash", nil)

		_, err := s.cmds.Register(s.ctx, "Asha", s.credentials(email, "secret1"))
		s.Require().ErrorIs(err, commands.ErrEmailTaken)
	})

	s.Run("error: duplicate key on insert maps to taken email", func() {
		// 読み取りと書き込みの間に他のリクエストが同じメールで登録し得る
		s.mockReadStore.EXPECT().FindByEmail(gomock.Any(), email).
			Return(nil, "", notFoundErr())
		s.mockUsers.EXPECT().Create(gomock.Any(), gomock.Any()).
			Return(infra.WrapRepoErr("duplicate", nil, infra.KindDuplicateKey))

		_, err := s.cmds.Register(s.ctx, "Asha", s.credentials(email, "secret1"))
		s.Require().ErrorIs(err, commands.ErrEmailTaken)
	})

	s.Run("error: empty name", func() {
		_, err := s.cmds.Register(s.ctx, "", s.credentials(email, "secret1"))
		s.Require().ErrorIs(err, commands.ErrAuthenticationFailed)
	})
}

func (s *AuthCommandsTestSuite) TestLogin() {
	email := "asha@example.com"
	hash, err := password.HashPassword("secret1")
	s.Require().NoError(err)

	s.Run("success: updates last login and issues a token", func() {
		view := activeView(email)
		s.mockReadStore.EXPECT().FindByEmail(gomock.Any(), email).
			Return(view, hash, nil)
		s.mockUsers.EXPECT().UpdateLastLogin(gomock.Any(), view.ID).Return(nil)

		result, err := s.cmds.Login(s.ctx, s.credentials(email, "secret1"))
		s.Require().NoError(err)
		s.NotEmpty(result.Token)
		s.Equal(view.ID, result.User.ID)
	})

	s.Run("error: wrong password", func() {
		s.mockReadStore.EXPECT().FindByEmail(gomock.Any(), email).
			Return(activeView(email), hash, nil)

		_, err := s.cmds.Login(s.ctx, s.credentials(email, "wrong-1"))
		s.Require().ErrorIs(err, commands.ErrInvalidCredentials)
	})

	s.Run("error: unknown email gets the same answer as a wrong password", func() {
		s.mockReadStore.EXPECT().FindByEmail(gomock.Any(), email).
			Return(nil, "", notFoundErr())

		_, err := s.cmds.Login(s.ctx, s.credentials(email, "secret1"))
		s.Require().ErrorIs(err, commands.ErrInvalidCredentials)
	})

	s.Run("error: inactive account", func() {
		view := activeView(email)
		view.IsActive = false
		s.mockReadStore.EXPECT().FindByEmail(gomock.Any(), email).
			Return(view, hash, nil)

		_, err := s.cmds.Login(s.ctx, s.credentials(email, "secret1"))
		s.Require().ErrorIs(err, commands.ErrUserInactive)
	})

	s.Run("success: login survives a failed last-login touch", func() {
		view := activeView(email)
		s.mockReadStore.EXPECT().FindByEmail(gomock.Any(), email).
			Return(view, hash, nil)
		s.mockUsers.EXPECT().UpdateLastLogin(gomock.Any(), view.ID).
			Return(infra.WrapRepoErr("write failed", nil))

		result, err := s.cmds.Login(s.ctx, s.credentials(email, "secret1"))
		s.Require().NoError(err)
		s.NotEmpty(result.Token)
	})
}

func (s *AuthCommandsTestSuite) TestGoogleSignIn() {
	profile := commands.GoogleProfile{
		Email:    "asha@example.com",
		Name:     "Asha",
		Picture:  "https://lh3.example.com/p.jpg",
		GoogleID: "g-123",
	}

	s.Run("success: first sign-in mints an account", func() {
		s.mockReadStore.EXPECT().FindByEmail(gomock.Any(), profile.Email).
			Return(nil, "", notFoundErr())
		s.mockUsers.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)

		result, err := s.cmds.GoogleSignIn(s.ctx, profile)
		s.Require().NoError(err)
		s.Equal(profile.Email, result.User.Email)
		s.Equal(profile.Picture, result.User.Picture)
		s.Equal("customer", result.User.Role)
	})

	s.Run("success: returning user links the identity", func() {
		view := activeView(profile.Email)
		s.mockReadStore.EXPECT().FindByEmail(gomock.Any(), profile.Email).
			Return(view, "", nil)
		s.mockUsers.EXPECT().LinkGoogle(gomock.Any(), view.ID, profile.GoogleID, profile.Picture).
			Return(nil)
		s.mockUsers.EXPECT().UpdateLastLogin(gomock.Any(), view.ID).Return(nil)

		result, err := s.cmds.GoogleSignIn(s.ctx, profile)
		s.Require().NoError(err)
		s.Equal(view.ID, result.User.ID)
	})

	s.Run("error: inactive account", func() {
		view := activeView(profile.Email)
		view.IsActive = false
		s.mockReadStore.EXPECT().FindByEmail(gomock.Any(), profile.Email).
			Return(view, "", nil)

		_, err := s.cmds.GoogleSignIn(s.ctx, profile)
		s.Require().ErrorIs(err, commands.ErrUserInactive)
	})

	s.Run("error: invalid email in the profile", func() {
		bad := profile
		bad.Email = "not-an-email"

		_, err := s.cmds.GoogleSignIn(s.ctx, bad)
		s.Require().ErrorIs(err, commands.ErrAuthenticationFailed)
	})
}
