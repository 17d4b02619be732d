package user

import (
	"context"
)

type UserUsecase interface {
	// Register a new user; email is optional and triggers a verification mail
	Register(ctx context.Context, cmd RegisterCommand) (*UserDTO, error)

	// Login with username + password; persists the refresh token server-side
	Login(ctx context.Context, cmd LoginCommand) (*TokenPairDTO, error)

	// Refresh mints a new access token from an expired-or-valid access token,
	// validated against the stored refresh token. The refresh token itself
	// stays in place until logout or expiry.
	Refresh(ctx context.Context, accessToken string) (*TokenPairDTO, error)

	// Logout clears the stored refresh token, ending the session
	Logout(ctx context.Context, userID int64) error

	VerifyEmail(ctx context.Context, cmd VerifyEmailCommand) (*EmailVerificationDTO, error)

	// GetByUsername resolves the authenticated user for the request guard
	GetByUsername(ctx context.Context, username string) (*UserDTO, error)
}
