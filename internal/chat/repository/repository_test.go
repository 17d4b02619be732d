package repository

import (
	"context"
	"database/sql"
	"log"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go/modules/postgres"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"

	"github.com/MorgandeCesso/regulus-back/internal/chat/model"
	userModels "github.com/MorgandeCesso/regulus-back/internal/user/model"
)

var testDB *bun.DB

func TestMain(m *testing.M) {
	ctx := context.Background()

	pgContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("regulus"),
		postgres.WithUsername("regulus"),
		postgres.WithPassword("password"),
		postgres.BasicWaitStrategies(),
	)
	if err != nil {
		log.Printf("failed to start container: %s", err)
		return
	}

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable", "application_name=test")
	if err != nil {
		log.Printf("failed to get connection string: %v", err)
	}

	connector := pgdriver.NewConnector(pgdriver.WithDSN(connStr))
	sqlDB := sql.OpenDB(connector)
	testDB = bun.NewDB(sqlDB, pgdialect.New())

	if err := sqlDB.PingContext(ctx); err != nil {
		log.Fatalf("failed to ping db: %v", err)
	}

	tables := []any{
		(*userModels.User)(nil),
		(*userModels.VectorStore)(nil),
		(*model.Chat)(nil),
		(*model.Message)(nil),
		(*model.File)(nil),
	}
	for _, t := range tables {
		if _, err := testDB.NewCreateTable().Model(t).IfNotExists().Exec(ctx); err != nil {
			testDB.Close()
			log.Fatalf("failed to create table for %T: %v", t, err)
		}
	}

	code := m.Run()

	testDB.Close()
	if err := pgContainer.Terminate(ctx); err != nil {
		log.Printf("failed to terminate container: %s", err)
	}

	os.Exit(code)
}

func truncateChats(t *testing.T) {
	t.Cleanup(func() {
		_, err := testDB.ExecContext(context.Background(), `TRUNCATE TABLE chats, messages, files RESTART IDENTITY CASCADE`)
		require.NoError(t, err)
	})
}

func Test_CreateChat(t *testing.T) {
	truncateChats(t)
	repo := NewChatRepository(testDB, nil)

	chat := model.Chat{UserID: 1}
	err := repo.CreateChat(context.Background(), &chat)
	require.NoError(t, err)
	assert.NotZero(t, chat.ID)
	assert.Nil(t, chat.Title)
	assert.Nil(t, chat.ThreadID)
	assert.False(t, chat.CreatedAt.IsZero())
}

func Test_GetChatByID(t *testing.T) {
	truncateChats(t)
	repo := NewChatRepository(testDB, nil)

	chat := model.Chat{UserID: 1}
	require.NoError(t, repo.CreateChat(context.Background(), &chat))

	fetched, err := repo.GetChatByID(context.Background(), chat.ID)
	require.NoError(t, err)
	assert.Equal(t, chat.ID, fetched.ID)
	assert.Equal(t, int64(1), fetched.UserID)

	_, err = repo.GetChatByID(context.Background(), 12345)
	assert.ErrorIs(t, err, ErrChatNotFound)
}

func Test_ListChats_Pagination(t *testing.T) {
	truncateChats(t)
	repo := NewChatRepository(testDB, nil)

	base := time.Now().UTC().Truncate(time.Second)
	ids := make([]int64, 0, 3)
	for i := 0; i < 3; i++ {
		chat := model.Chat{
			UserID:    1,
			UpdatedAt: base.Add(time.Duration(i) * time.Minute),
		}
		require.NoError(t, repo.CreateChat(context.Background(), &chat))
		ids = append(ids, chat.ID)
	}
	// another user's chat must not leak into the listing
	other := model.Chat{UserID: 2}
	require.NoError(t, repo.CreateChat(context.Background(), &other))

	chats, total, err := repo.ListChats(context.Background(), 1, 1, 1)
	require.NoError(t, err)
	assert.Equal(t, 3, total, "total counts all chats, not just the page")
	require.Len(t, chats, 1)
	assert.Equal(t, ids[1], chats[0].ID, "ordered by recency, second page")
}

func Test_UpdateChatTitle(t *testing.T) {
	truncateChats(t)
	repo := NewChatRepository(testDB, nil)

	chat := model.Chat{UserID: 1}
	require.NoError(t, repo.CreateChat(context.Background(), &chat))

	require.NoError(t, repo.UpdateChatTitle(context.Background(), chat.ID, "Greeting"))

	fetched, err := repo.GetChatByID(context.Background(), chat.ID)
	require.NoError(t, err)
	require.NotNil(t, fetched.Title)
	assert.Equal(t, "Greeting", *fetched.Title)
}

func Test_UpdateChatThread(t *testing.T) {
	truncateChats(t)
	repo := NewChatRepository(testDB, nil)

	chat := model.Chat{UserID: 1}
	require.NoError(t, repo.CreateChat(context.Background(), &chat))

	threadID := "thread-1"
	require.NoError(t, repo.UpdateChatThread(context.Background(), chat.ID, &threadID))

	fetched, err := repo.GetChatByID(context.Background(), chat.ID)
	require.NoError(t, err)
	require.NotNil(t, fetched.ThreadID)
	assert.Equal(t, "thread-1", *fetched.ThreadID)
}

func Test_CreateMessage_BumpsChatRecency(t *testing.T) {
	truncateChats(t)
	repo := NewChatRepository(testDB, nil)

	chat := model.Chat{UserID: 1}
	require.NoError(t, repo.CreateChat(context.Background(), &chat))

	msg := model.Message{ChatID: chat.ID, Content: "hello"}
	require.NoError(t, repo.CreateMessage(context.Background(), &msg))
	assert.NotZero(t, msg.ID)
	assert.False(t, msg.CreatedAt.IsZero())

	fetched, err := repo.GetChatByID(context.Background(), chat.ID)
	require.NoError(t, err)
	assert.False(t, fetched.UpdatedAt.Before(msg.CreatedAt), "chat recency must cover its newest message")
}

func Test_ListMessages(t *testing.T) {
	truncateChats(t)
	repo := NewChatRepository(testDB, nil)

	chat := model.Chat{UserID: 1}
	require.NoError(t, repo.CreateChat(context.Background(), &chat))

	contents := []string{"first", "second", "third"}
	for _, c := range contents {
		msg := model.Message{ChatID: chat.ID, Content: c, IsSentByBot: c == "second"}
		require.NoError(t, repo.CreateMessage(context.Background(), &msg))
	}

	messages, total, err := repo.ListMessages(context.Background(), chat.ID, 10, 0)
	require.NoError(t, err)
	assert.Equal(t, 3, total)
	require.Len(t, messages, 3)
}

func Test_DeleteMessages(t *testing.T) {
	truncateChats(t)
	repo := NewChatRepository(testDB, nil)

	chat := model.Chat{UserID: 1}
	require.NoError(t, repo.CreateChat(context.Background(), &chat))

	msg := model.Message{ChatID: chat.ID, Content: "hello"}
	require.NoError(t, repo.CreateMessage(context.Background(), &msg))

	require.NoError(t, repo.DeleteMessages(context.Background(), chat.ID))

	_, total, err := repo.ListMessages(context.Background(), chat.ID, 10, 0)
	require.NoError(t, err)
	assert.Zero(t, total)

	// the chat itself survives a message wipe
	_, err = repo.GetChatByID(context.Background(), chat.ID)
	require.NoError(t, err)
}

func Test_DeleteChat_Cascades(t *testing.T) {
	truncateChats(t)
	repo := NewChatRepository(testDB, nil)

	chat := model.Chat{UserID: 1}
	require.NoError(t, repo.CreateChat(context.Background(), &chat))

	for _, c := range []string{"hello", "hi"} {
		msg := model.Message{ChatID: chat.ID, Content: c}
		require.NoError(t, repo.CreateMessage(context.Background(), &msg))
	}
	file := model.File{ChatID: chat.ID, VectorStoreID: 1, RemoteID: "file-remote-1", Filename: "notes.pdf"}
	require.NoError(t, repo.CreateFile(context.Background(), &file))

	require.NoError(t, repo.DeleteChat(context.Background(), chat.ID))

	_, err := repo.GetChatByID(context.Background(), chat.ID)
	assert.ErrorIs(t, err, ErrChatNotFound)

	_, total, err := repo.ListMessages(context.Background(), chat.ID, 10, 0)
	require.NoError(t, err)
	assert.Zero(t, total)

	files, err := repo.ListFiles(context.Background(), chat.ID)
	require.NoError(t, err)
	assert.Empty(t, files)
}

func Test_Files(t *testing.T) {
	truncateChats(t)
	repo := NewChatRepository(testDB, nil)

	chat := model.Chat{UserID: 1}
	require.NoError(t, repo.CreateChat(context.Background(), &chat))

	file := model.File{ChatID: chat.ID, VectorStoreID: 1, RemoteID: "file-remote-1", Filename: "notes.pdf"}
	require.NoError(t, repo.CreateFile(context.Background(), &file))
	assert.NotZero(t, file.ID)

	fetched, err := repo.GetFileByID(context.Background(), file.ID)
	require.NoError(t, err)
	assert.Equal(t, "notes.pdf", fetched.Filename)

	files, err := repo.ListFiles(context.Background(), chat.ID)
	require.NoError(t, err)
	require.Len(t, files, 1)

	require.NoError(t, repo.DeleteFile(context.Background(), file.ID))

	_, err = repo.GetFileByID(context.Background(), file.ID)
	assert.ErrorIs(t, err, ErrFileNotFound)
}
