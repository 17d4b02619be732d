package repository

import (
	"context"
	"database/sql"
	"log"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go/modules/postgres"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"

	models "github.com/MorgandeCesso/regulus-back/internal/user/model"
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
		(*models.User)(nil),
		(*models.VectorStore)(nil),
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

func truncateUsers(t *testing.T) {
	t.Cleanup(func() {
		_, err := testDB.ExecContext(context.Background(), `TRUNCATE TABLE users, vector_stores RESTART IDENTITY CASCADE`)
		require.NoError(t, err)
	})
}

func strPtr(s string) *string { return &s }

func Test_CreateUser(t *testing.T) {
	truncateUsers(t)
	repo := NewUserRepository(testDB, nil)

	user := models.User{Username: "alice", HashedPassword: "hash"}
	err := repo.CreateUser(context.Background(), &user)
	require.NoError(t, err)
	assert.NotZero(t, user.ID)
	assert.False(t, user.CreatedAt.IsZero())

	t.Run("duplicate username is rejected", func(t *testing.T) {
		dup := models.User{Username: "alice", HashedPassword: "hash"}
		err := repo.CreateUser(context.Background(), &dup)
		assert.Error(t, err)
	})
}

func Test_GetUserByUsername(t *testing.T) {
	truncateUsers(t)
	repo := NewUserRepository(testDB, nil)

	user := models.User{Username: "alice", HashedPassword: "hash"}
	require.NoError(t, repo.CreateUser(context.Background(), &user))

	fetched, err := repo.GetUserByUsername(context.Background(), "alice")
	require.NoError(t, err)
	assert.Equal(t, user.ID, fetched.ID)
	assert.Equal(t, "alice", fetched.Username)

	_, err = repo.GetUserByUsername(context.Background(), "ghost")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func Test_GetUserByEmail(t *testing.T) {
	truncateUsers(t)
	repo := NewUserRepository(testDB, nil)

	user := models.User{Username: "alice", Email: strPtr("alice@example.com"), HashedPassword: "hash"}
	require.NoError(t, repo.CreateUser(context.Background(), &user))

	fetched, err := repo.GetUserByEmail(context.Background(), "alice@example.com")
	require.NoError(t, err)
	assert.Equal(t, user.ID, fetched.ID)

	_, err = repo.GetUserByEmail(context.Background(), "nobody@example.com")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func Test_UsernameExists(t *testing.T) {
	truncateUsers(t)
	repo := NewUserRepository(testDB, nil)

	user := models.User{Username: "alice", HashedPassword: "hash"}
	require.NoError(t, repo.CreateUser(context.Background(), &user))

	exists, err := repo.UsernameExists(context.Background(), "alice")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.UsernameExists(context.Background(), "ghost")
	require.NoError(t, err)
	assert.False(t, exists)
}

func Test_EmailExists(t *testing.T) {
	truncateUsers(t)
	repo := NewUserRepository(testDB, nil)

	user := models.User{Username: "alice", Email: strPtr("alice@example.com"), HashedPassword: "hash"}
	require.NoError(t, repo.CreateUser(context.Background(), &user))

	exists, err := repo.EmailExists(context.Background(), "alice@example.com")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.EmailExists(context.Background(), "nobody@example.com")
	require.NoError(t, err)
	assert.False(t, exists)
}

func Test_UpdateRefreshToken(t *testing.T) {
	truncateUsers(t)
	repo := NewUserRepository(testDB, nil)

	user := models.User{Username: "alice", HashedPassword: "hash"}
	require.NoError(t, repo.CreateUser(context.Background(), &user))

	require.NoError(t, repo.UpdateRefreshToken(context.Background(), user.ID, strPtr("refresh-token")))

	fetched, err := repo.GetUserByID(context.Background(), user.ID)
	require.NoError(t, err)
	require.NotNil(t, fetched.RefreshToken)
	assert.Equal(t, "refresh-token", *fetched.RefreshToken)

	t.Run("clearing the token logs the session out", func(t *testing.T) {
		require.NoError(t, repo.UpdateRefreshToken(context.Background(), user.ID, nil))

		fetched, err := repo.GetUserByID(context.Background(), user.ID)
		require.NoError(t, err)
		assert.Nil(t, fetched.RefreshToken)
	})
}

func Test_MarkEmailVerified(t *testing.T) {
	truncateUsers(t)
	repo := NewUserRepository(testDB, nil)

	user := models.User{
		Username:         "alice",
		Email:            strPtr("alice@example.com"),
		VerificationCode: strPtr("a1b2c3d4"),
		HashedPassword:   "hash",
	}
	require.NoError(t, repo.CreateUser(context.Background(), &user))

	require.NoError(t, repo.MarkEmailVerified(context.Background(), user.ID))

	fetched, err := repo.GetUserByID(context.Background(), user.ID)
	require.NoError(t, err)
	assert.True(t, fetched.EmailVerified)
	assert.Nil(t, fetched.VerificationCode, "used code must not be replayable")
}

func Test_SaveVectorStore(t *testing.T) {
	truncateUsers(t)
	repo := NewUserRepository(testDB, nil)

	user := models.User{Username: "alice", HashedPassword: "hash"}
	require.NoError(t, repo.CreateUser(context.Background(), &user))

	store := models.VectorStore{UserID: user.ID, RemoteID: "vs-1"}
	require.NoError(t, repo.SaveVectorStore(context.Background(), &store))
	assert.NotZero(t, store.ID)

	t.Run("second save for the same user updates in place", func(t *testing.T) {
		replacement := models.VectorStore{UserID: user.ID, RemoteID: "vs-2"}
		require.NoError(t, repo.SaveVectorStore(context.Background(), &replacement))

		fetched, err := repo.GetVectorStore(context.Background(), user.ID)
		require.NoError(t, err)
		assert.Equal(t, store.ID, fetched.ID)
		assert.Equal(t, "vs-2", fetched.RemoteID)
	})
}

func Test_GetVectorStore_NotFound(t *testing.T) {
	truncateUsers(t)
	repo := NewUserRepository(testDB, nil)

	_, err := repo.GetVectorStore(context.Background(), 12345)
	assert.ErrorIs(t, err, ErrVectorStoreNotFound)
}
