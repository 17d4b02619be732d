package chat

import (
	"context"
)

type ChatUsecase interface {
	// CreateChat creates a local chat row; the remote thread appears lazily
	// with the first message
	CreateChat(ctx context.Context, userID int64, title *string) (*ChatDTO, error)

	// SendMessage drives the whole exchange: chat/thread provisioning, the
	// user message, the assistant reply, and title generation after the
	// first exchange
	SendMessage(ctx context.Context, cmd SendMessageCommand) (*SendMessageDTO, error)

	ListChats(ctx context.Context, userID int64, limit, offset int) (*PaginatedChatsDTO, error)
	ListMessages(ctx context.Context, userID, chatID int64, limit, offset int) (*PaginatedMessagesDTO, error)

	// DeleteChat releases remote resources best-effort, then cascades locally
	DeleteChat(ctx context.Context, userID, chatID int64) error

	// ResetChat swaps the remote thread for a fresh one and clears messages
	ResetChat(ctx context.Context, userID, chatID int64) (*ChatDTO, error)

	UploadFile(ctx context.Context, cmd UploadFileCommand) (*FileDTO, error)
	ListFiles(ctx context.Context, userID, chatID int64) ([]FileDTO, error)
	DeleteFile(ctx context.Context, userID, chatID, fileID int64) error
}
