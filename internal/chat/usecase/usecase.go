package usecase

import (
	"context"
	stderrors "errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/MorgandeCesso/regulus-back/internal/assistant"
	"github.com/MorgandeCesso/regulus-back/internal/chat"
	"github.com/MorgandeCesso/regulus-back/internal/chat/model"
	chatRepo "github.com/MorgandeCesso/regulus-back/internal/chat/repository"
	"github.com/MorgandeCesso/regulus-back/internal/user"
	userModels "github.com/MorgandeCesso/regulus-back/internal/user/model"
	userRepo "github.com/MorgandeCesso/regulus-back/internal/user/repository"
	"github.com/MorgandeCesso/regulus-back/pkg/errors"
	"github.com/MorgandeCesso/regulus-back/pkg/logger"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// allowedExtensions is the upload allow-list, checked before any remote call.
var allowedExtensions = map[string]bool{
	".pdf":  true,
	".txt":  true,
	".md":   true,
	".doc":  true,
	".docx": true,
	".csv":  true,
	".json": true,
}

type ChatUsecase struct {
	repo   chat.ChatRepository
	users  user.UserRepository
	bridge assistant.Bridge
	logger *logger.Logger
}

func NewChatUsecase(repo chat.ChatRepository, users user.UserRepository, bridge assistant.Bridge, logger *logger.Logger) *ChatUsecase {
	return &ChatUsecase{repo: repo, users: users, bridge: bridge, logger: logger}
}

func (uc *ChatUsecase) CreateChat(ctx context.Context, userID int64, title *string) (*chat.ChatDTO, error) {
	c := &model.Chat{
		UserID: userID,
		Title:  title,
	}
	if err := uc.repo.CreateChat(ctx, c); err != nil {
		uc.logger.Error("failed to create chat", "user_id", userID, "err", err)
		return nil, errors.Internal("internal server error")
	}
	return chatToDTO(c), nil
}

func (uc *ChatUsecase) SendMessage(ctx context.Context, cmd chat.SendMessageCommand) (*chat.SendMessageDTO, error) {
	content := strings.TrimSpace(cmd.Content)
	if content == "" {
		return nil, errors.ErrEmptyMessage
	}

	var c *model.Chat
	if cmd.ChatID == nil {
		created, err := uc.CreateChat(ctx, cmd.UserID, nil)
		if err != nil {
			return nil, err
		}
		c = &model.Chat{ID: created.ID, UserID: created.UserID}
	} else {
		owned, err := uc.ownedChat(ctx, cmd.UserID, *cmd.ChatID)
		if err != nil {
			return nil, err
		}
		c = owned
	}

	threadID, err := uc.ensureThread(ctx, c)
	if err != nil {
		return nil, err
	}

	// a chat without a title has not completed its first exchange yet
	firstExchange := c.Title == nil

	userMsg := &model.Message{
		ChatID:      c.ID,
		Content:     content,
		IsSentByBot: false,
	}
	if err := uc.repo.CreateMessage(ctx, userMsg); err != nil {
		uc.logger.Error("failed to store user message", "chat_id", c.ID, "err", err)
		return nil, errors.Internal("internal server error")
	}

	reply, err := uc.bridge.SendMessage(ctx, threadID, content, cmd.Username)
	if err != nil {
		uc.logger.Error("assistant reply failed", "chat_id", c.ID, "thread_id", threadID, "err", err)
		return nil, errors.ErrAssistantFailed(err)
	}

	botMsg := &model.Message{
		ChatID:      c.ID,
		Content:     reply,
		IsSentByBot: true,
	}
	if err := uc.repo.CreateMessage(ctx, botMsg); err != nil {
		uc.logger.Error("failed to store assistant message", "chat_id", c.ID, "err", err)
		return nil, errors.Internal("internal server error")
	}

	if firstExchange {
		title := uc.bridge.GenerateTitle(ctx, content, reply)
		if err := uc.repo.UpdateChatTitle(ctx, c.ID, title); err != nil {
			uc.logger.Warn("failed to save generated title", "chat_id", c.ID, "err", err)
		}
	}

	return &chat.SendMessageDTO{
		ChatID:   c.ID,
		Response: reply,
	}, nil
}

func (uc *ChatUsecase) ListChats(ctx context.Context, userID int64, limit, offset int) (*chat.PaginatedChatsDTO, error) {
	limit, offset = sanitizePage(limit, offset)

	chats, total, err := uc.repo.ListChats(ctx, userID, limit, offset)
	if err != nil {
		uc.logger.Error("failed to list chats", "user_id", userID, "err", err)
		return nil, errors.Internal("internal server error")
	}

	items := make([]chat.ChatBriefDTO, 0, len(chats))
	for _, c := range chats {
		items = append(items, chat.ChatBriefDTO{
			ID:        c.ID,
			Title:     c.Title,
			UpdatedAt: c.UpdatedAt,
		})
	}

	return &chat.PaginatedChatsDTO{
		Items:  items,
		Total:  total,
		Limit:  limit,
		Offset: offset,
	}, nil
}

func (uc *ChatUsecase) ListMessages(ctx context.Context, userID, chatID int64, limit, offset int) (*chat.PaginatedMessagesDTO, error) {
	if _, err := uc.ownedChat(ctx, userID, chatID); err != nil {
		return nil, err
	}
	limit, offset = sanitizePage(limit, offset)

	messages, total, err := uc.repo.ListMessages(ctx, chatID, limit, offset)
	if err != nil {
		uc.logger.Error("failed to list messages", "chat_id", chatID, "err", err)
		return nil, errors.Internal("internal server error")
	}

	items := make([]chat.MessageDTO, 0, len(messages))
	for _, m := range messages {
		items = append(items, chat.MessageDTO{
			ID:          m.ID,
			ChatID:      m.ChatID,
			Content:     m.Content,
			IsSentByBot: m.IsSentByBot,
			CreatedAt:   m.CreatedAt,
		})
	}

	return &chat.PaginatedMessagesDTO{
		Items:  items,
		Total:  total,
		Limit:  limit,
		Offset: offset,
	}, nil
}

// DeleteChat releases the remote thread and files best-effort before the local
// cascade. Remote failures are logged and do not block local deletion.
func (uc *ChatUsecase) DeleteChat(ctx context.Context, userID, chatID int64) error {
	c, err := uc.ownedChat(ctx, userID, chatID)
	if err != nil {
		return err
	}

	if c.ThreadID != nil {
		if err := uc.bridge.EndConversation(ctx, *c.ThreadID); err != nil {
			uc.logger.Warn("failed to delete remote thread", "chat_id", chatID, "thread_id", *c.ThreadID, "err", err)
		}
	}

	files, err := uc.repo.ListFiles(ctx, chatID)
	if err != nil {
		uc.logger.Error("failed to list chat files", "chat_id", chatID, "err", err)
		return errors.Internal("internal server error")
	}
	if len(files) > 0 {
		store, err := uc.users.GetVectorStore(ctx, userID)
		if err != nil {
			uc.logger.Warn("vector store lookup failed, skipping remote file cleanup", "user_id", userID, "err", err)
		} else {
			for _, f := range files {
				if err := uc.bridge.DetachFile(ctx, store.RemoteID, f.RemoteID); err != nil {
					uc.logger.Warn("failed to delete remote file", "file_id", f.RemoteID, "err", err)
				}
			}
		}
	}

	if err := uc.repo.DeleteChat(ctx, chatID); err != nil {
		uc.logger.Error("failed to delete chat", "chat_id", chatID, "err", err)
		return errors.Internal("internal server error")
	}
	return nil
}

// ResetChat replaces the remote thread with a fresh one and clears local
// messages; the title survives.
func (uc *ChatUsecase) ResetChat(ctx context.Context, userID, chatID int64) (*chat.ChatDTO, error) {
	c, err := uc.ownedChat(ctx, userID, chatID)
	if err != nil {
		return nil, err
	}

	if c.ThreadID != nil {
		if err := uc.bridge.EndConversation(ctx, *c.ThreadID); err != nil {
			uc.logger.Warn("failed to delete remote thread", "chat_id", chatID, "thread_id", *c.ThreadID, "err", err)
		}
	}

	threadID, err := uc.bridge.StartConversation(ctx)
	if err != nil {
		uc.logger.Error("failed to create replacement thread", "chat_id", chatID, "err", err)
		return nil, errors.ErrAssistantFailed(err)
	}
	if err := uc.repo.UpdateChatThread(ctx, chatID, &threadID); err != nil {
		uc.logger.Error("failed to persist replacement thread", "chat_id", chatID, "err", err)
		return nil, errors.Internal("internal server error")
	}
	if err := uc.repo.DeleteMessages(ctx, chatID); err != nil {
		uc.logger.Error("failed to clear messages", "chat_id", chatID, "err", err)
		return nil, errors.Internal("internal server error")
	}

	c.ThreadID = &threadID
	return chatToDTO(c), nil
}

func (uc *ChatUsecase) UploadFile(ctx context.Context, cmd chat.UploadFileCommand) (*chat.FileDTO, error) {
	ext := strings.ToLower(filepath.Ext(cmd.Filename))
	if !allowedExtensions[ext] {
		return nil, errors.ErrUnsupportedFileType
	}
	if len(cmd.Content) == 0 {
		return nil, errors.ErrEmptyFile
	}

	if _, err := uc.ownedChat(ctx, cmd.UserID, cmd.ChatID); err != nil {
		return nil, err
	}

	store, err := uc.ensureVectorStore(ctx, cmd.UserID)
	if err != nil {
		return nil, err
	}

	remoteFileID, err := uc.bridge.AttachFile(ctx, store.RemoteID, cmd.Filename, cmd.Content)
	if err != nil {
		uc.logger.Error("failed to attach file", "chat_id", cmd.ChatID, "filename", cmd.Filename, "err", err)
		return nil, errors.ErrAssistantFailed(err)
	}

	f := &model.File{
		ChatID:        cmd.ChatID,
		VectorStoreID: store.ID,
		RemoteID:      remoteFileID,
		Filename:      cmd.Filename,
	}
	if err := uc.repo.CreateFile(ctx, f); err != nil {
		uc.logger.Error("failed to store file record", "chat_id", cmd.ChatID, "err", err)
		return nil, errors.Internal("internal server error")
	}

	return &chat.FileDTO{
		ID:        f.ID,
		Filename:  f.Filename,
		CreatedAt: f.CreatedAt,
	}, nil
}

func (uc *ChatUsecase) ListFiles(ctx context.Context, userID, chatID int64) ([]chat.FileDTO, error) {
	if _, err := uc.ownedChat(ctx, userID, chatID); err != nil {
		return nil, err
	}

	files, err := uc.repo.ListFiles(ctx, chatID)
	if err != nil {
		uc.logger.Error("failed to list files", "chat_id", chatID, "err", err)
		return nil, errors.Internal("internal server error")
	}

	items := make([]chat.FileDTO, 0, len(files))
	for _, f := range files {
		items = append(items, chat.FileDTO{
			ID:        f.ID,
			Filename:  f.Filename,
			CreatedAt: f.CreatedAt,
		})
	}
	return items, nil
}

func (uc *ChatUsecase) DeleteFile(ctx context.Context, userID, chatID, fileID int64) error {
	if _, err := uc.ownedChat(ctx, userID, chatID); err != nil {
		return err
	}

	f, err := uc.repo.GetFileByID(ctx, fileID)
	if err != nil {
		if isNotFound(err) {
			return errors.ErrFileNotFound
		}
		uc.logger.Error("failed to load file", "file_id", fileID, "err", err)
		return errors.Internal("internal server error")
	}
	if f.ChatID != chatID {
		return errors.ErrFileNotFound
	}

	store, err := uc.users.GetVectorStore(ctx, userID)
	if err != nil {
		uc.logger.Warn("vector store lookup failed, skipping remote file cleanup", "user_id", userID, "err", err)
	} else if err := uc.bridge.DetachFile(ctx, store.RemoteID, f.RemoteID); err != nil {
		uc.logger.Warn("failed to delete remote file", "file_id", f.RemoteID, "err", err)
	}

	if err := uc.repo.DeleteFile(ctx, fileID); err != nil {
		uc.logger.Error("failed to delete file record", "file_id", fileID, "err", err)
		return errors.Internal("internal server error")
	}
	return nil
}

// ownedChat loads the chat and enforces that it belongs to the caller.
func (uc *ChatUsecase) ownedChat(ctx context.Context, userID, chatID int64) (*model.Chat, error) {
	c, err := uc.repo.GetChatByID(ctx, chatID)
	if err != nil {
		if isNotFound(err) {
			return nil, errors.ErrChatNotFound
		}
		uc.logger.Error("failed to load chat", "chat_id", chatID, "err", err)
		return nil, errors.Internal("internal server error")
	}
	if c.UserID != userID {
		return nil, errors.ErrChatAccessDenied
	}
	return c, nil
}

// ensureThread lazily creates the remote thread for a chat.
func (uc *ChatUsecase) ensureThread(ctx context.Context, c *model.Chat) (string, error) {
	if c.ThreadID != nil {
		return *c.ThreadID, nil
	}

	threadID, err := uc.bridge.StartConversation(ctx)
	if err != nil {
		uc.logger.Error("failed to create thread", "chat_id", c.ID, "err", err)
		return "", errors.ErrAssistantFailed(err)
	}
	if err := uc.repo.UpdateChatThread(ctx, c.ID, &threadID); err != nil {
		uc.logger.Error("failed to persist thread id", "chat_id", c.ID, "err", err)
		return "", errors.Internal("internal server error")
	}
	c.ThreadID = &threadID
	return threadID, nil
}

// ensureVectorStore lazily provisions the user's remote file index.
func (uc *ChatUsecase) ensureVectorStore(ctx context.Context, userID int64) (*userModels.VectorStore, error) {
	store, err := uc.users.GetVectorStore(ctx, userID)
	if err == nil {
		return store, nil
	}
	if !stderrors.Is(err, userRepo.ErrVectorStoreNotFound) {
		uc.logger.Error("failed to load vector store", "user_id", userID, "err", err)
		return nil, errors.Internal("internal server error")
	}

	remoteID, err := uc.bridge.CreateVectorStore(ctx, fmt.Sprintf("user-%d", userID))
	if err != nil {
		uc.logger.Error("failed to create vector store", "user_id", userID, "err", err)
		return nil, errors.ErrAssistantFailed(err)
	}

	store = &userModels.VectorStore{
		UserID:   userID,
		RemoteID: remoteID,
	}
	if err := uc.users.SaveVectorStore(ctx, store); err != nil {
		uc.logger.Error("failed to persist vector store", "user_id", userID, "err", err)
		return nil, errors.Internal("internal server error")
	}
	return store, nil
}

func chatToDTO(c *model.Chat) *chat.ChatDTO {
	return &chat.ChatDTO{
		ID:        c.ID,
		UserID:    c.UserID,
		Title:     c.Title,
		ThreadID:  c.ThreadID,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

func sanitizePage(limit, offset int) (int, int) {
	if limit <= 0 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}

func isNotFound(err error) bool {
	return stderrors.Is(err, chatRepo.ErrChatNotFound) || stderrors.Is(err, chatRepo.ErrFileNotFound)
}
