package repository

import (
	"context"
	"errors"

	"github.com/playtronix/ticline-backend/internal/entity"
)

var (
	ErrAccountNotFound = errors.New("account not found")
	ErrAccountExists   = errors.New("account already exists")
)

type AccountRepository interface {
	Create(ctx context.Context, account *entity.Account) error
	GetByUsername(ctx context.Context, username string) (*entity.Account, error)
}
