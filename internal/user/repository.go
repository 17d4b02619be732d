package user

import (
	"context"

	User "github.com/MorgandeCesso/regulus-back/internal/user/model"
)

type UserRepository interface {
	CreateUser(ctx context.Context, user *User.User) error
	GetUserByID(ctx context.Context, id int64) (*User.User, error)
	GetUserByUsername(ctx context.Context, username string) (*User.User, error)
	GetUserByEmail(ctx context.Context, email string) (*User.User, error)
	UsernameExists(ctx context.Context, username string) (bool, error)
	EmailExists(ctx context.Context, email string) (bool, error)

	// UpdateRefreshToken stores the new session credential; nil clears it
	UpdateRefreshToken(ctx context.Context, userID int64, token *string) error

	// MarkEmailVerified flips the flag and drops the verification code
	MarkEmailVerified(ctx context.Context, userID int64) error

	GetVectorStore(ctx context.Context, userID int64) (*User.VectorStore, error)
	SaveVectorStore(ctx context.Context, store *User.VectorStore) error
}
