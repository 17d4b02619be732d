package models

import (
	"time"
)

type User struct {
	ID int64 `bun:",pk,autoincrement"`

	// Username = unique login handle
	Username string `bun:",unique,notnull"`

	// Email is optional; verification happens via a mailed code
	Email            *string `bun:",unique,nullzero"`
	EmailVerified    bool    `bun:",notnull,default:false"`
	VerificationCode *string `bun:",nullzero"`

	HashedPassword string `bun:",notnull"`

	// RefreshToken is the single valid rotation credential for this user's
	// session. Rotated on login, cleared on logout.
	RefreshToken *string `bun:",nullzero"`

	CreatedAt time.Time `bun:",nullzero,notnull,default:current_timestamp"`
	UpdatedAt time.Time `bun:",nullzero,notnull,default:current_timestamp"`
}

type UserWithToken struct {
	User         *User
	Token        string
	RefreshToken string
}
