package db

import (
	"context"
	"database/sql"
	"strings"

	"github.com/MorgandeCesso/regulus-back/config"
	chatModels "github.com/MorgandeCesso/regulus-back/internal/chat/model"
	userModels "github.com/MorgandeCesso/regulus-back/internal/user/model"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
)

// Connect opens a bun handle over pgdriver and verifies connectivity with a
// ping. SQLAlchemy-style "+asyncpg" DSNs from legacy .env files are normalized.
func Connect(ctx context.Context, cfg config.BunConfig) (*bun.DB, error) {
	dsn := normalizeDSN(cfg.DSN)

	connector := pgdriver.NewConnector(pgdriver.WithDSN(dsn))
	sqlDB := sql.OpenDB(connector)

	db := bun.NewDB(sqlDB, pgdialect.New())
	db.RegisterModel(Models()...)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

// Models lists every persisted entity in FK order (parents first).
func Models() []any {
	return []any{
		(*userModels.User)(nil),
		(*userModels.VectorStore)(nil),
		(*chatModels.Chat)(nil),
		(*chatModels.Message)(nil),
		(*chatModels.File)(nil),
	}
}

// InitSchema creates missing tables on startup. Versioned migrations are owned
// by the ops side; this keeps a fresh database usable in one step, the same way
// the test harness bootstraps its containers.
func InitSchema(ctx context.Context, db *bun.DB) error {
	for _, m := range Models() {
		if _, err := db.NewCreateTable().Model(m).IfNotExists().Exec(ctx); err != nil {
			return err
		}
	}
	return nil
}

func normalizeDSN(dsn string) string {
	s := strings.TrimSpace(dsn)
	s = strings.Replace(s, "postgresql+asyncpg://", "postgresql://", 1)
	s = strings.Replace(s, "postgres+asyncpg://", "postgres://", 1)
	return s
}
