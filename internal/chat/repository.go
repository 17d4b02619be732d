package chat

import (
	"context"

	"github.com/MorgandeCesso/regulus-back/internal/chat/model"
)

type ChatRepository interface {
	CreateChat(ctx context.Context, chat *model.Chat) error
	GetChatByID(ctx context.Context, id int64) (*model.Chat, error)
	// ListChats returns a page ordered by most-recently-updated plus the total count
	ListChats(ctx context.Context, userID int64, limit, offset int) ([]model.Chat, int, error)
	UpdateChatTitle(ctx context.Context, chatID int64, title string) error
	UpdateChatThread(ctx context.Context, chatID int64, threadID *string) error
	// DeleteChat removes the chat with its messages and file records in one tx
	DeleteChat(ctx context.Context, chatID int64) error

	// CreateMessage appends a message and bumps the chat's updated_at in one tx
	CreateMessage(ctx context.Context, message *model.Message) error
	ListMessages(ctx context.Context, chatID int64, limit, offset int) ([]model.Message, int, error)
	DeleteMessages(ctx context.Context, chatID int64) error

	CreateFile(ctx context.Context, file *model.File) error
	GetFileByID(ctx context.Context, id int64) (*model.File, error)
	ListFiles(ctx context.Context, chatID int64) ([]model.File, error)
	DeleteFile(ctx context.Context, id int64) error
}
