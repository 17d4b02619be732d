package usecase

import (
	"context"
	"testing"

	"github.com/MorgandeCesso/regulus-back/config"
	mailMocks "github.com/MorgandeCesso/regulus-back/internal/mail/mocks"
	"github.com/MorgandeCesso/regulus-back/internal/user"
	models "github.com/MorgandeCesso/regulus-back/internal/user/model"
	userMocks "github.com/MorgandeCesso/regulus-back/internal/user/mocks"
	appErrors "github.com/MorgandeCesso/regulus-back/pkg/errors"
	"github.com/MorgandeCesso/regulus-back/pkg/logger"
	"github.com/MorgandeCesso/regulus-back/pkg/token"
	"github.com/MorgandeCesso/regulus-back/pkg/utils"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.NewLogger(&config.Config{
		LoggerMode: config.LoggerMode{Development: true, Level: "error"},
	})
	require.NoError(t, err)
	return log
}

func jwtConfig() config.JWT {
	return config.JWT{
		AccessSecret:     "access-secret",
		RefreshSecret:    "refresh-secret",
		AccessExpiresIn:  15,
		RefreshExpiresIn: 7,
	}
}

func newFixture(t *testing.T) (*UserUsecase, *userMocks.MockUserRepository, *mailMocks.MockSender) {
	t.Helper()
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	repo := userMocks.NewMockUserRepository(ctrl)
	sender := mailMocks.NewMockSender(ctrl)
	uc := NewUserUsecase(repo, token.NewManager(jwtConfig()), sender, newTestLogger(t))
	return uc, repo, sender
}

func strPtr(s string) *string { return &s }

func TestUserUsecase_Register(t *testing.T) {
	ctx := context.Background()

	t.Run("success without email", func(t *testing.T) {
		uc, repo, _ := newFixture(t)

		repo.EXPECT().UsernameExists(ctx, "alice").Return(false, nil)
		repo.EXPECT().CreateUser(ctx, gomock.Any()).DoAndReturn(
			func(_ context.Context, u *models.User) error {
				u.ID = 1
				return nil
			})

		dto, err := uc.Register(ctx, user.RegisterCommand{
			Username: "alice",
			Password: "password123",
		})
		require.NoError(t, err)
		assert.Equal(t, int64(1), dto.ID)
		assert.Equal(t, "alice", dto.Username)
		assert.False(t, dto.EmailVerified)
	})

	t.Run("success with email sends verification code", func(t *testing.T) {
		uc, repo, sender := newFixture(t)

		repo.EXPECT().UsernameExists(ctx, "alice").Return(false, nil)
		repo.EXPECT().EmailExists(ctx, "alice@example.com").Return(false, nil)
		repo.EXPECT().CreateUser(ctx, gomock.Any()).DoAndReturn(
			func(_ context.Context, u *models.User) error {
				require.NotNil(t, u.VerificationCode)
				u.ID = 2
				return nil
			})
		sender.EXPECT().SendVerificationCode(ctx, "alice@example.com", gomock.Any()).Return(nil)

		dto, err := uc.Register(ctx, user.RegisterCommand{
			Username: "alice",
			Password: "password123",
			Email:    strPtr("alice@example.com"),
		})
		require.NoError(t, err)
		assert.False(t, dto.EmailVerified)
	})

	t.Run("username taken", func(t *testing.T) {
		uc, repo, _ := newFixture(t)

		repo.EXPECT().UsernameExists(ctx, "alice").Return(true, nil)

		_, err := uc.Register(ctx, user.RegisterCommand{Username: "alice", Password: "password123"})
		assert.ErrorIs(t, err, appErrors.ErrUsernameTaken)
	})

	t.Run("email taken", func(t *testing.T) {
		uc, repo, _ := newFixture(t)

		repo.EXPECT().UsernameExists(ctx, "alice").Return(false, nil)
		repo.EXPECT().EmailExists(ctx, "alice@example.com").Return(true, nil)

		_, err := uc.Register(ctx, user.RegisterCommand{
			Username: "alice",
			Password: "password123",
			Email:    strPtr("alice@example.com"),
		})
		assert.ErrorIs(t, err, appErrors.ErrEmailTaken)
	})

	t.Run("invalid username", func(t *testing.T) {
		uc, _, _ := newFixture(t)

		_, err := uc.Register(ctx, user.RegisterCommand{Username: "a!", Password: "password123"})
		assert.ErrorIs(t, err, appErrors.ErrInvalidUsername)
	})

	t.Run("short password", func(t *testing.T) {
		uc, _, _ := newFixture(t)

		_, err := uc.Register(ctx, user.RegisterCommand{Username: "alice", Password: "short"})
		assert.ErrorIs(t, err, appErrors.ErrInvalidPassword)
	})
}

func TestUserUsecase_Login(t *testing.T) {
	ctx := context.Background()

	hash, err := utils.HashPassword("password123")
	require.NoError(t, err)

	stored := &models.User{ID: 1, Username: "alice", HashedPassword: hash}

	t.Run("success persists refresh token", func(t *testing.T) {
		uc, repo, _ := newFixture(t)

		var persisted *string
		repo.EXPECT().GetUserByUsername(ctx, "alice").Return(stored, nil)
		repo.EXPECT().UpdateRefreshToken(ctx, int64(1), gomock.Any()).DoAndReturn(
			func(_ context.Context, _ int64, tok *string) error {
				persisted = tok
				return nil
			})

		pair, err := uc.Login(ctx, user.LoginCommand{Username: "alice", Password: "password123"})
		require.NoError(t, err)
		assert.NotEmpty(t, pair.AccessToken)
		assert.Equal(t, "bearer", pair.TokenType)
		require.NotNil(t, persisted)
		assert.Equal(t, pair.RefreshToken, *persisted)
	})

	t.Run("wrong password", func(t *testing.T) {
		uc, repo, _ := newFixture(t)

		repo.EXPECT().GetUserByUsername(ctx, "alice").Return(stored, nil)

		_, err := uc.Login(ctx, user.LoginCommand{Username: "alice", Password: "nope-nope"})
		assert.ErrorIs(t, err, appErrors.ErrInvalidCredentials)
	})

	t.Run("unknown user", func(t *testing.T) {
		uc, repo, _ := newFixture(t)

		repo.EXPECT().GetUserByUsername(ctx, "ghost").Return(nil, appErrors.ErrUserNotFound)

		_, err := uc.Login(ctx, user.LoginCommand{Username: "ghost", Password: "password123"})
		assert.ErrorIs(t, err, appErrors.ErrInvalidCredentials)
	})
}

func TestUserUsecase_Refresh(t *testing.T) {
	ctx := context.Background()
	tokens := token.NewManager(jwtConfig())

	// an access token that is already expired but carries a valid signature
	expiredCfg := jwtConfig()
	expiredCfg.AccessExpiresIn = -1
	expiredAccess, err := token.NewManager(expiredCfg).GenerateAccessToken("alice")
	require.NoError(t, err)

	validRefresh, err := tokens.GenerateRefreshToken("alice")
	require.NoError(t, err)

	t.Run("expired access with valid stored refresh", func(t *testing.T) {
		uc, repo, _ := newFixture(t)

		repo.EXPECT().GetUserByUsername(ctx, "alice").Return(&models.User{
			ID:           1,
			Username:     "alice",
			RefreshToken: &validRefresh,
		}, nil)

		pair, err := uc.Refresh(ctx, expiredAccess)
		require.NoError(t, err)
		assert.Empty(t, pair.RefreshToken, "refresh is not rotated")

		subject, err := tokens.ParseAccessToken(pair.AccessToken)
		require.NoError(t, err)
		assert.Equal(t, "alice", subject)
	})

	t.Run("fails after logout", func(t *testing.T) {
		uc, repo, _ := newFixture(t)

		repo.EXPECT().GetUserByUsername(ctx, "alice").Return(&models.User{
			ID:       1,
			Username: "alice",
		}, nil)

		_, err := uc.Refresh(ctx, expiredAccess)
		assert.ErrorIs(t, err, appErrors.ErrInvalidRefreshToken)
	})

	t.Run("fails when stored refresh expired", func(t *testing.T) {
		uc, repo, _ := newFixture(t)

		staleCfg := jwtConfig()
		staleCfg.RefreshExpiresIn = -1
		staleRefresh, err := token.NewManager(staleCfg).GenerateRefreshToken("alice")
		require.NoError(t, err)

		repo.EXPECT().GetUserByUsername(ctx, "alice").Return(&models.User{
			ID:           1,
			Username:     "alice",
			RefreshToken: &staleRefresh,
		}, nil)

		_, err = uc.Refresh(ctx, expiredAccess)
		assert.ErrorIs(t, err, appErrors.ErrInvalidRefreshToken)
	})

	t.Run("fails on garbage access token", func(t *testing.T) {
		uc, _, _ := newFixture(t)

		_, err := uc.Refresh(ctx, "not-a-jwt")
		assert.ErrorIs(t, err, appErrors.ErrInvalidAccessToken)
	})
}

func TestUserUsecase_Logout(t *testing.T) {
	ctx := context.Background()
	uc, repo, _ := newFixture(t)

	repo.EXPECT().UpdateRefreshToken(ctx, int64(1), nil).Return(nil)

	require.NoError(t, uc.Logout(ctx, 1))
}

func TestUserUsecase_VerifyEmail(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		uc, repo, _ := newFixture(t)

		repo.EXPECT().GetUserByEmail(ctx, "alice@example.com").Return(&models.User{
			ID:               1,
			Username:         "alice",
			Email:            strPtr("alice@example.com"),
			VerificationCode: strPtr("a1b2c3d4"),
		}, nil)
		repo.EXPECT().MarkEmailVerified(ctx, int64(1)).Return(nil)

		dto, err := uc.VerifyEmail(ctx, user.VerifyEmailCommand{
			Email: "alice@example.com",
			Code:  "a1b2c3d4",
		})
		require.NoError(t, err)
		assert.True(t, dto.EmailVerified)
	})

	t.Run("wrong code", func(t *testing.T) {
		uc, repo, _ := newFixture(t)

		repo.EXPECT().GetUserByEmail(ctx, "alice@example.com").Return(&models.User{
			ID:               1,
			Username:         "alice",
			Email:            strPtr("alice@example.com"),
			VerificationCode: strPtr("a1b2c3d4"),
		}, nil)

		_, err := uc.VerifyEmail(ctx, user.VerifyEmailCommand{
			Email: "alice@example.com",
			Code:  "ffffffff",
		})
		assert.ErrorIs(t, err, appErrors.ErrInvalidVerificationCode)
	})
}
