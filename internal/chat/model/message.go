package model

import (
	"time"
)

type Message struct {
	ID     int64 `bun:",pk,autoincrement"`
	ChatID int64 `bun:",notnull"`
	Chat   *Chat `bun:"rel:belongs-to,join:chat_id=id"`

	Content     string `bun:",notnull"`
	IsSentByBot bool   `bun:",notnull,default:false"`

	CreatedAt time.Time `bun:",nullzero,notnull,default:current_timestamp"`
}
