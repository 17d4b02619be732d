package assistant

import "context"

// Bridge is the remote-assistant contract the chat flows depend on. One
// implementation talks to the OpenAI Assistants API; tests use a mock.
type Bridge interface {
	// StartConversation creates a remote thread and returns its id
	StartConversation(ctx context.Context) (string, error)

	// SendMessage posts the user message, runs the assistant over the thread
	// (addressing the user by name) and returns the rendered reply, with
	// citation markers rewritten to bracketed indices plus a source list
	SendMessage(ctx context.Context, threadID, content, userName string) (string, error)

	// EndConversation deletes the remote thread
	EndConversation(ctx context.Context, threadID string) error

	// CreateVectorStore provisions a remote file index
	CreateVectorStore(ctx context.Context, name string) (string, error)

	// AttachFile uploads content and links it into the vector store, waiting
	// until indexing completes; returns the remote file id
	AttachFile(ctx context.Context, vectorStoreID, filename string, content []byte) (string, error)

	// DetachFile unlinks the file from the store and deletes it remotely
	DetachFile(ctx context.Context, vectorStoreID, fileID string) error

	// GenerateTitle asks the title-namer assistant for a short chat title;
	// any failure falls back to a fixed default
	GenerateTitle(ctx context.Context, userMessage, assistantReply string) string
}
