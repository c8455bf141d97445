package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/mattn/go-sqlite3"
	"github.com/playtronix/ticline-backend/internal/entity"
)

type sqliteAccountRepository struct {
	conn *sql.DB
}

func NewSQLiteAccountRepository(conn *sql.DB) AccountRepository {
	return &sqliteAccountRepository{
		conn: conn,
	}
}

func (that *sqliteAccountRepository) Create(ctx context.Context, account *entity.Account) error {
	query := `INSERT INTO accounts (username, password_hash, created_at) VALUES (?, ?, ?)`

	_, err := that.conn.ExecContext(ctx, query, account.Username, account.PasswordHash, account.CreatedAt)

	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) && sqliteErr.Code == sqlite3.ErrConstraint {
		return ErrAccountExists
	}
	if err != nil {
		return fmt.Errorf("can't save account: %w", err)
	}

	return nil
}

func (that *sqliteAccountRepository) GetByUsername(ctx context.Context, username string) (*entity.Account, error) {
	query := `SELECT username, password_hash, created_at FROM accounts WHERE username = ?`

	var account entity.Account

	err := that.conn.QueryRowContext(ctx, query, username).Scan(&account.Username, &account.PasswordHash, &account.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrAccountNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("can't find account: %w", err)
	}

	return &account, nil
}
