package repository

import (
	"context"
	"database/sql"

	User "github.com/MorgandeCesso/regulus-back/internal/user/model"
	"github.com/MorgandeCesso/regulus-back/pkg/logger"

	"github.com/pkg/errors"
	"github.com/uptrace/bun"
)

type UserRepository struct {
	db     *bun.DB
	logger *logger.Logger
}

var (
	ErrUserNotFound        = errors.New("user not found")
	ErrVectorStoreNotFound = errors.New("vector store not found")
)

func NewUserRepository(db *bun.DB, logger *logger.Logger) *UserRepository {
	return &UserRepository{
		db:     db,
		logger: logger,
	}
}

func (r *UserRepository) CreateUser(ctx context.Context, user *User.User) error {

	_, err := r.db.NewInsert().Model(user).Returning("*").Exec(ctx)
	if err != nil {
		return errors.Wrap(err, "userRepo.CreateUser.Insert: ")
	}
	return nil
}

func (r *UserRepository) GetUserByID(ctx context.Context, id int64) (*User.User, error) {

	user := new(User.User)
	err := r.db.NewSelect().Model(user).Where("id = ?", id).Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, errors.Wrap(err, "userRepo.GetUserByID.Scan: ")
	}
	return user, nil
}

func (r *UserRepository) GetUserByUsername(ctx context.Context, username string) (*User.User, error) {

	user := new(User.User)
	err := r.db.NewSelect().Model(user).Where("username = ?", username).Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, errors.Wrap(err, "userRepo.GetUserByUsername.Scan: ")
	}
	return user, nil
}

func (r *UserRepository) GetUserByEmail(ctx context.Context, email string) (*User.User, error) {

	user := new(User.User)
	err := r.db.NewSelect().Model(user).Where("email = ?", email).Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, errors.Wrap(err, "userRepo.GetUserByEmail.Scan: ")
	}
	return user, nil
}

func (r *UserRepository) UsernameExists(ctx context.Context, username string) (bool, error) {
	exists, err := r.db.NewSelect().
		Model((*User.User)(nil)).
		Where("username = ?", username).
		Exists(ctx)
	if err != nil {
		return false, errors.Wrap(err, "userRepo.UsernameExists: ")
	}
	return exists, nil
}

func (r *UserRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	exists, err := r.db.NewSelect().
		Model((*User.User)(nil)).
		Where("email = ?", email).
		Exists(ctx)
	if err != nil {
		return false, errors.Wrap(err, "userRepo.EmailExists: ")
	}
	return exists, nil
}

func (r *UserRepository) UpdateRefreshToken(ctx context.Context, userID int64, token *string) error {
	_, err := r.db.NewUpdate().
		Model((*User.User)(nil)).
		Set("refresh_token = ?", token).
		Set("updated_at = current_timestamp").
		Where("id = ?", userID).
		Exec(ctx)
	if err != nil {
		return errors.Wrap(err, "userRepo.UpdateRefreshToken.Update: ")
	}
	return nil
}

func (r *UserRepository) MarkEmailVerified(ctx context.Context, userID int64) error {
	_, err := r.db.NewUpdate().
		Model((*User.User)(nil)).
		Set("email_verified = ?", true).
		Set("verification_code = NULL").
		Set("updated_at = current_timestamp").
		Where("id = ?", userID).
		Exec(ctx)
	if err != nil {
		return errors.Wrap(err, "userRepo.MarkEmailVerified.Update: ")
	}
	return nil
}

func (r *UserRepository) GetVectorStore(ctx context.Context, userID int64) (*User.VectorStore, error) {

	store := new(User.VectorStore)
	err := r.db.NewSelect().Model(store).Where("user_id = ?", userID).Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrVectorStoreNotFound
		}
		return nil, errors.Wrap(err, "userRepo.GetVectorStore.Scan: ")
	}
	return store, nil
}

func (r *UserRepository) SaveVectorStore(ctx context.Context, store *User.VectorStore) error {
	_, err := r.db.NewInsert().
		Model(store).
		On("CONFLICT (user_id) DO UPDATE").
		Set("remote_id = EXCLUDED.remote_id").
		Returning("*").
		Exec(ctx)
	if err != nil {
		return errors.Wrap(err, "userRepo.SaveVectorStore.Exec: ")
	}
	return nil
}
