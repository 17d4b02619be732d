package usecase

import (
	"context"
	"regexp"

	"github.com/MorgandeCesso/regulus-back/internal/mail"
	"github.com/MorgandeCesso/regulus-back/internal/user"
	models "github.com/MorgandeCesso/regulus-back/internal/user/model"
	"github.com/MorgandeCesso/regulus-back/pkg/errors"
	"github.com/MorgandeCesso/regulus-back/pkg/logger"
	"github.com/MorgandeCesso/regulus-back/pkg/token"
	"github.com/MorgandeCesso/regulus-back/pkg/utils"
)

type UserUsecase struct {
	repo   user.UserRepository
	tokens *token.Manager
	mail   mail.Sender
	logger *logger.Logger
}

func NewUserUsecase(repo user.UserRepository, tokens *token.Manager, sender mail.Sender, logger *logger.Logger) *UserUsecase {
	return &UserUsecase{repo: repo, tokens: tokens, mail: sender, logger: logger}
}

var usernameRegex = regexp.MustCompile(`^[a-zA-Z0-9_]{3,50}$`)

func validateUsername(username string) error {
	if !usernameRegex.MatchString(username) {
		return errors.ErrInvalidUsername
	}
	return nil
}

func (uc *UserUsecase) Register(ctx context.Context, cmd user.RegisterCommand) (*user.UserDTO, error) {
	if err := validateUsername(cmd.Username); err != nil {
		return nil, err
	}
	if len(cmd.Password) < 8 {
		return nil, errors.ErrInvalidPassword
	}

	if exists, err := uc.repo.UsernameExists(ctx, cmd.Username); err != nil {
		uc.logger.Error("database error checking username", "err", err)
		return nil, errors.Internal("internal server error")
	} else if exists {
		return nil, errors.ErrUsernameTaken
	}

	if cmd.Email != nil {
		if exists, err := uc.repo.EmailExists(ctx, *cmd.Email); err != nil {
			uc.logger.Error("database error checking email", "err", err)
			return nil, errors.Internal("internal server error")
		} else if exists {
			return nil, errors.ErrEmailTaken
		}
	}

	hash, err := utils.HashPassword(cmd.Password)
	if err != nil {
		uc.logger.Error("failed to hash password", "err", err)
		return nil, errors.ErrRegistrationFailed(err)
	}

	u := &models.User{
		Username:       cmd.Username,
		Email:          cmd.Email,
		HashedPassword: hash,
	}

	if cmd.Email != nil {
		code, err := utils.GenerateVerificationCode()
		if err != nil {
			uc.logger.Error("failed to generate verification code", "err", err)
			return nil, errors.ErrRegistrationFailed(err)
		}
		u.VerificationCode = &code
	}

	if err := uc.repo.CreateUser(ctx, u); err != nil {
		uc.logger.Errorf("error while saving user in db: %v", err)
		return nil, errors.ErrRegistrationFailed(errors.Internal("database error"))
	}

	if u.Email != nil && u.VerificationCode != nil {
		if err := uc.mail.SendVerificationCode(ctx, *u.Email, *u.VerificationCode); err != nil {
			uc.logger.Error("failed to send verification email", "email", *u.Email, "err", err)
			return nil, errors.Wrap(errors.CodeInternal, "failed to send verification email", err)
		}
	}

	return &user.UserDTO{
		ID:            u.ID,
		Username:      u.Username,
		Email:         u.Email,
		EmailVerified: u.EmailVerified,
	}, nil
}

func (uc *UserUsecase) Login(ctx context.Context, cmd user.LoginCommand) (*user.TokenPairDTO, error) {
	u, err := uc.repo.GetUserByUsername(ctx, cmd.Username)
	if err != nil || u == nil {
		return nil, errors.ErrInvalidCredentials
	}
	if !utils.VerifyPassword(u.HashedPassword, cmd.Password) {
		return nil, errors.ErrInvalidCredentials
	}

	accessToken, err := uc.tokens.GenerateAccessToken(u.Username)
	if err != nil {
		uc.logger.Error("failed to sign access token", "err", err)
		return nil, errors.ErrLoginFailed(err)
	}
	refreshToken, err := uc.tokens.GenerateRefreshToken(u.Username)
	if err != nil {
		uc.logger.Error("failed to sign refresh token", "err", err)
		return nil, errors.ErrLoginFailed(err)
	}

	if err := uc.repo.UpdateRefreshToken(ctx, u.ID, &refreshToken); err != nil {
		uc.logger.Error("failed to persist refresh token", "user_id", u.ID, "err", err)
		return nil, errors.Internal("internal server error")
	}

	return &user.TokenPairDTO{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		TokenType:    "bearer",
	}, nil
}

// Refresh identifies the session owner from the (possibly expired) access
// token, then validates the refresh token stored on the user row. On success a
// fresh access token is issued; the stored refresh token stays untouched.
func (uc *UserUsecase) Refresh(ctx context.Context, accessToken string) (*user.TokenPairDTO, error) {
	username, err := uc.tokens.Subject(accessToken)
	if err != nil {
		return nil, errors.ErrInvalidAccessToken
	}

	u, err := uc.repo.GetUserByUsername(ctx, username)
	if err != nil || u == nil {
		return nil, errors.ErrInvalidRefreshToken
	}
	if u.RefreshToken == nil {
		return nil, errors.ErrInvalidRefreshToken
	}

	storedSubject, err := uc.tokens.ParseRefreshToken(*u.RefreshToken)
	if err != nil || storedSubject != u.Username {
		return nil, errors.ErrInvalidRefreshToken
	}

	newAccessToken, err := uc.tokens.GenerateAccessToken(u.Username)
	if err != nil {
		uc.logger.Error("failed to sign access token", "err", err)
		return nil, errors.Internal("internal server error")
	}

	return &user.TokenPairDTO{
		AccessToken: newAccessToken,
		TokenType:   "bearer",
	}, nil
}

func (uc *UserUsecase) Logout(ctx context.Context, userID int64) error {
	if err := uc.repo.UpdateRefreshToken(ctx, userID, nil); err != nil {
		uc.logger.Error("failed to clear refresh token", "user_id", userID, "err", err)
		return errors.Internal("internal server error")
	}
	return nil
}

func (uc *UserUsecase) VerifyEmail(ctx context.Context, cmd user.VerifyEmailCommand) (*user.EmailVerificationDTO, error) {
	u, err := uc.repo.GetUserByEmail(ctx, cmd.Email)
	if err != nil || u == nil {
		return nil, errors.ErrUserNotFound
	}
	if u.Email == nil {
		return nil, errors.ErrEmailMissing
	}
	if u.VerificationCode == nil || *u.VerificationCode != cmd.Code {
		return nil, errors.ErrInvalidVerificationCode
	}

	if err := uc.repo.MarkEmailVerified(ctx, u.ID); err != nil {
		uc.logger.Error("failed to mark email verified", "user_id", u.ID, "err", err)
		return nil, errors.Internal("internal server error")
	}

	return &user.EmailVerificationDTO{
		Email:         *u.Email,
		EmailVerified: true,
		Message:       "email verified",
	}, nil
}

func (uc *UserUsecase) GetByUsername(ctx context.Context, username string) (*user.UserDTO, error) {
	u, err := uc.repo.GetUserByUsername(ctx, username)
	if err != nil || u == nil {
		return nil, errors.ErrUserNotFound
	}
	return &user.UserDTO{
		ID:            u.ID,
		Username:      u.Username,
		Email:         u.Email,
		EmailVerified: u.EmailVerified,
	}, nil
}
