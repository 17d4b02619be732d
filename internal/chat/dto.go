package chat

import (
	"time"
)

// Input commands
type SendMessageCommand struct {
	UserID   int64
	Username string // forwarded to the assistant so it can address the user
	ChatID   *int64 // nil starts a new chat
	Content  string
}

type UploadFileCommand struct {
	UserID   int64
	ChatID   int64
	Filename string
	Content  []byte
}

// Output DTOs
type ChatDTO struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	Title     *string   `json:"title"`
	ThreadID  *string   `json:"thread_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

/// ChatBriefDTO is the list-view shape: id, title, recency
type ChatBriefDTO struct {
	ID        int64     `json:"id"`
	Title     *string   `json:"title"`
	UpdatedAt time.Time `json:"updated_at"`
}

type MessageDTO struct {
	ID          int64     `json:"id"`
	ChatID      int64     `json:"chat_id"`
	Content     string    `json:"content"`
	IsSentByBot bool      `json:"is_sent_by_bot"`
	CreatedAt   time.Time `json:"created_at"`
}

type PaginatedChatsDTO struct {
	Items  []ChatBriefDTO `json:"items"`
	Total  int            `json:"total"`
	Limit  int            `json:"limit"`
	Offset int            `json:"offset"`
}

type PaginatedMessagesDTO struct {
	Items  []MessageDTO `json:"items"`
	Total  int          `json:"total"`
	Limit  int          `json:"limit"`
	Offset int          `json:"offset"`
}

type SendMessageDTO struct {
	ChatID   int64  `json:"chat_id"`
	Response string `json:"response"`
}

type FileDTO struct {
	ID        int64     `json:"id"`
	Filename  string    `json:"filename"`
	CreatedAt time.Time `json:"created_at"`
}
