package model

import (
	"time"

	user "github.com/MorgandeCesso/regulus-back/internal/user/model"
)

// File records an upload that has been indexed into the owner's vector store.
type File struct {
	ID     int64 `bun:",pk,autoincrement"`
	ChatID int64 `bun:",notnull"`
	Chat   *Chat `bun:"rel:belongs-to,join:chat_id=id"`

	VectorStoreID int64             `bun:",notnull"`
	VectorStore   *user.VectorStore `bun:"rel:belongs-to,join:vector_store_id=id"`

	// RemoteID is the provider-side file id
	RemoteID string `bun:",notnull"`
	Filename string `bun:",notnull"`

	CreatedAt time.Time `bun:",nullzero,notnull,default:current_timestamp"`
}
