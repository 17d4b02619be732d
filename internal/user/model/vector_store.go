package models

import (
	"time"
)

// VectorStore correlates a user with their remote file index. At most one per
// user; created lazily on the first file upload.
type VectorStore struct {
	ID     int64 `bun:",pk,autoincrement"`
	UserID int64 `bun:",unique,notnull"`
	User   *User `bun:"rel:belongs-to,join:user_id=id"`

	RemoteID string `bun:",unique,notnull"`

	CreatedAt time.Time `bun:",nullzero,notnull,default:current_timestamp"`
}
