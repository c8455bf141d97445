package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/playtronix/ticline-backend/internal/entity"
	"github.com/redis/go-redis/v9"
)

type redisAccountRepository struct {
	client *redis.Client
}

func NewRedisAccountRepository(client *redis.Client) AccountRepository {
	return &redisAccountRepository{
		client: client,
	}
}

func (that *redisAccountRepository) Create(ctx context.Context, account *entity.Account) error {
	accountJSON, err := json.Marshal(account)
	if err != nil {
		return fmt.Errorf("failed to marshal account: %w", err)
	}

	accountKey := "account:" + account.Username

	created, err := that.client.SetNX(ctx, accountKey, accountJSON, 0).Result()
	if err != nil {
		return fmt.Errorf("failed to set account: %w", err)
	}

	if !created {
		return ErrAccountExists
	}

	return nil
}

func (that *redisAccountRepository) GetByUsername(ctx context.Context, username string) (*entity.Account, error) {
	accountKey := "account:" + username

	response, err := that.client.Get(ctx, accountKey).Result()

	if errors.Is(err, redis.Nil) {
		return nil, ErrAccountNotFound
	}

	if err != nil {
		return nil, fmt.Errorf("failed to get account by username: %w", err)
	}

	var account entity.Account
	if err = json.Unmarshal([]byte(response), &account); err != nil {
		return nil, fmt.Errorf("failed to unmarshal account: %w", err)
	}

	return &account, nil
}
