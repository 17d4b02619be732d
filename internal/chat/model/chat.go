package model

import (
	"time"

	user "github.com/MorgandeCesso/regulus-back/internal/user/model"
)

type Chat struct {
	ID     int64      `bun:",pk,autoincrement"`
	UserID int64      `bun:",notnull"`
	User   *user.User `bun:"rel:belongs-to,join:user_id=id"`

	// Title is nil until the first exchange generates one
	Title *string `bun:",nullzero"`

	// ThreadID correlates the chat with its remote conversation context;
	// nil until the first message creates the thread
	ThreadID *string `bun:",nullzero"`

	CreatedAt time.Time `bun:",nullzero,notnull,default:current_timestamp"`
	UpdatedAt time.Time `bun:",nullzero,notnull,default:current_timestamp"`
}
