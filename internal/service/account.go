package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/playtronix/ticline-backend/internal/entity"
	"golang.org/x/crypto/bcrypt"
)

var ErrWrongPassword = errors.New("wrong password")

type AccountService interface {
	Register(ctx context.Context, username, password string) error
	Authenticate(ctx context.Context, username, password string) error
}

type accountRepo interface {
	Create(ctx context.Context, account *entity.Account) error
	GetByUsername(ctx context.Context, username string) (*entity.Account, error)
}

type accountService struct {
	accountRepo accountRepo
}

func NewAccountService(accountRepo accountRepo) AccountService {
	return &accountService{
		accountRepo: accountRepo,
	}
}

func (that *accountService) Register(ctx context.Context, username, password string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("could not hash password: %w", err)
	}

	account := &entity.Account{
		Username:     username,
		PasswordHash: string(hash),
		CreatedAt:    time.Now().UTC(),
	}

	if err = that.accountRepo.Create(ctx, account); err != nil {
		return fmt.Errorf("could not create account: %w", err)
	}

	return nil
}

func (that *accountService) Authenticate(ctx context.Context, username, password string) error {
	account, err := that.accountRepo.GetByUsername(ctx, username)
	if err != nil {
		return fmt.Errorf("could not get account by username: %w", err)
	}

	err = bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password))
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return ErrWrongPassword
	}
	if err != nil {
		return fmt.Errorf("could not verify password: %w", err)
	}

	return nil
}
