package repository

import (
	"context"
	"database/sql"

	"github.com/MorgandeCesso/regulus-back/internal/chat/model"
	"github.com/MorgandeCesso/regulus-back/pkg/logger"

	"github.com/pkg/errors"
	"github.com/uptrace/bun"
)

type ChatRepository struct {
	db     *bun.DB
	logger *logger.Logger
}

var (
	ErrChatNotFound = errors.New("chat not found")
	ErrFileNotFound = errors.New("file not found")
)

func NewChatRepository(db *bun.DB, logger *logger.Logger) *ChatRepository {
	return &ChatRepository{
		db:     db,
		logger: logger,
	}
}

func (r *ChatRepository) CreateChat(ctx context.Context, chat *model.Chat) error {

	_, err := r.db.NewInsert().Model(chat).Returning("*").Exec(ctx)
	if err != nil {
		return errors.Wrap(err, "chatRepo.CreateChat.Insert: ")
	}
	return nil
}

func (r *ChatRepository) GetChatByID(ctx context.Context, id int64) (*model.Chat, error) {

	chat := new(model.Chat)
	err := r.db.NewSelect().Model(chat).Where("id = ?", id).Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrChatNotFound
		}
		return nil, errors.Wrap(err, "chatRepo.GetChatByID.Scan: ")
	}
	return chat, nil
}

func (r *ChatRepository) ListChats(ctx context.Context, userID int64, limit, offset int) ([]model.Chat, int, error) {

	var chats []model.Chat
	total, err := r.db.NewSelect().
		Model(&chats).
		Where("user_id = ?", userID).
		Order("updated_at DESC").
		Limit(limit).
		Offset(offset).
		ScanAndCount(ctx)
	if err != nil {
		return nil, 0, errors.Wrap(err, "chatRepo.ListChats.ScanAndCount: ")
	}
	return chats, total, nil
}

func (r *ChatRepository) UpdateChatTitle(ctx context.Context, chatID int64, title string) error {
	_, err := r.db.NewUpdate().
		Model((*model.Chat)(nil)).
		Set("title = ?", title).
		Where("id = ?", chatID).
		Exec(ctx)
	if err != nil {
		return errors.Wrap(err, "chatRepo.UpdateChatTitle.Update: ")
	}
	return nil
}

func (r *ChatRepository) UpdateChatThread(ctx context.Context, chatID int64, threadID *string) error {
	_, err := r.db.NewUpdate().
		Model((*model.Chat)(nil)).
		Set("thread_id = ?", threadID).
		Where("id = ?", chatID).
		Exec(ctx)
	if err != nil {
		return errors.Wrap(err, "chatRepo.UpdateChatThread.Update: ")
	}
	return nil
}

func (r *ChatRepository) DeleteChat(ctx context.Context, chatID int64) error {
	err := r.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		if _, err := tx.NewDelete().Model((*model.File)(nil)).Where("chat_id = ?", chatID).Exec(ctx); err != nil {
			return errors.Wrap(err, "delete files")
		}
		if _, err := tx.NewDelete().Model((*model.Message)(nil)).Where("chat_id = ?", chatID).Exec(ctx); err != nil {
			return errors.Wrap(err, "delete messages")
		}
		if _, err := tx.NewDelete().Model((*model.Chat)(nil)).Where("id = ?", chatID).Exec(ctx); err != nil {
			return errors.Wrap(err, "delete chat")
		}
		return nil
	})
	if err != nil {
		return errors.Wrap(err, "chatRepo.DeleteChat.Tx: ")
	}
	return nil
}

// CreateMessage inserts the message and bumps the owning chat's updated_at to
// the message's created_at, in one transaction.
func (r *ChatRepository) CreateMessage(ctx context.Context, message *model.Message) error {
	err := r.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		if _, err := tx.NewInsert().Model(message).Returning("*").Exec(ctx); err != nil {
			return errors.Wrap(err, "insert message")
		}
		if _, err := tx.NewUpdate().
			Model((*model.Chat)(nil)).
			Set("updated_at = ?", message.CreatedAt).
			Where("id = ?", message.ChatID).
			Exec(ctx); err != nil {
			return errors.Wrap(err, "bump chat updated_at")
		}
		return nil
	})
	if err != nil {
		return errors.Wrap(err, "chatRepo.CreateMessage.Tx: ")
	}
	return nil
}

func (r *ChatRepository) ListMessages(ctx context.Context, chatID int64, limit, offset int) ([]model.Message, int, error) {

	var messages []model.Message
	total, err := r.db.NewSelect().
		Model(&messages).
		Where("chat_id = ?", chatID).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		ScanAndCount(ctx)
	if err != nil {
		return nil, 0, errors.Wrap(err, "chatRepo.ListMessages.ScanAndCount: ")
	}
	return messages, total, nil
}

func (r *ChatRepository) DeleteMessages(ctx context.Context, chatID int64) error {
	_, err := r.db.NewDelete().Model((*model.Message)(nil)).Where("chat_id = ?", chatID).Exec(ctx)
	if err != nil {
		return errors.Wrap(err, "chatRepo.DeleteMessages.Delete: ")
	}
	return nil
}

func (r *ChatRepository) CreateFile(ctx context.Context, file *model.File) error {
	_, err := r.db.NewInsert().Model(file).Returning("*").Exec(ctx)
	if err != nil {
		return errors.Wrap(err, "chatRepo.CreateFile.Insert: ")
	}
	return nil
}

func (r *ChatRepository) GetFileByID(ctx context.Context, id int64) (*model.File, error) {

	file := new(model.File)
	err := r.db.NewSelect().Model(file).Where("id = ?", id).Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrFileNotFound
		}
		return nil, errors.Wrap(err, "chatRepo.GetFileByID.Scan: ")
	}
	return file, nil
}

func (r *ChatRepository) ListFiles(ctx context.Context, chatID int64) ([]model.File, error) {

	var files []model.File
	err := r.db.NewSelect().
		Model(&files).
		Where("chat_id = ?", chatID).
		Order("created_at DESC").
		Scan(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "chatRepo.ListFiles.Scan: ")
	}
	return files, nil
}

func (r *ChatRepository) DeleteFile(ctx context.Context, id int64) error {
	_, err := r.db.NewDelete().Model((*model.File)(nil)).Where("id = ?", id).Exec(ctx)
	if err != nil {
		return errors.Wrap(err, "chatRepo.DeleteFile.Delete: ")
	}
	return nil
}
