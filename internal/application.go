package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/playtronix/ticline-backend/internal/config"
	"github.com/playtronix/ticline-backend/internal/hub"
	"github.com/playtronix/ticline-backend/internal/repository"
	"github.com/playtronix/ticline-backend/internal/repository/storage"
	"github.com/playtronix/ticline-backend/internal/service"
	"github.com/playtronix/ticline-backend/internal/transport/rest"
	"github.com/playtronix/ticline-backend/internal/transport/tcp"
)

var ErrUnknownAccountsBackend = errors.New("unknown accounts backend")

// RunApp - runs the application.
func RunApp(logger *slog.Logger, conf *config.Config) error {
	log := logger.With("component", "app")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigs
		log.Info("Received signal, shutting down", "signal", sig)
		cancel()
	}()

	if err := conf.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	accountRepo, closeStorage, err := newAccountRepository(ctx, conf)
	if err != nil {
		return fmt.Errorf("could not open accounts storage: %w", err)
	}

	defer func() {
		if err = closeStorage(); err != nil {
			log.Error("could not close accounts storage", "error", err)
		}
	}()

	accounts := service.NewAccountService(accountRepo)
	gameHub := hub.New(logger, accounts)

	// run HTTP server
	httpErrCh := make(chan error, 1)
	go func() {
		log.Info("Starting HTTP server", "port", conf.HTTPPort)
		if httpErr := rest.New(logger, gameHub).Start(ctx, conf.HTTPPort); httpErr != nil {
			log.Error("HTTP server error", "error", httpErr)
			httpErrCh <- httpErr
		}
	}()

	// run TCP game server
	tcpErrCh := make(chan error, 1)
	go func() {
		log.Info("Starting TCP server", "port", conf.TCPPort)
		if tcpErr := tcp.New(logger, gameHub).Start(ctx, conf.TCPPort); tcpErr != nil {
			log.Error("TCP server error", "error", tcpErr)
			tcpErrCh <- tcpErr
		}
	}()

	select {
	case err = <-httpErrCh:
		return fmt.Errorf("HTTP server error: %w", err)
	case err = <-tcpErrCh:
		return fmt.Errorf("TCP server error: %w", err)
	case <-ctx.Done():
		log.Info("Application context canceled, shutting down")
		return nil
	}
}

// newAccountRepository - opens the account storage backend named in the config.
func newAccountRepository(ctx context.Context, conf *config.Config) (repository.AccountRepository, func() error, error) {
	switch conf.Accounts.Backend {
	case config.BackendSQLite:
		sqliteStorage, err := storage.NewSQLiteStorage(conf.Accounts.SQLitePath)
		if err != nil {
			return nil, nil, fmt.Errorf("could not connect to sqlite storage: %w", err)
		}

		if err = sqliteStorage.Init(ctx); err != nil {
			_ = sqliteStorage.Close()
			return nil, nil, fmt.Errorf("could not init sqlite storage: %w", err)
		}

		return repository.NewSQLiteAccountRepository(sqliteStorage.Connection), sqliteStorage.Close, nil

	case config.BackendRedis:
		redisStorage, err := storage.NewRedisStorage(ctx, conf.Accounts.Redis.GetRedisAddr())
		if err != nil {
			return nil, nil, fmt.Errorf("could not connect to redis storage: %w", err)
		}

		return repository.NewRedisAccountRepository(redisStorage.Connection), redisStorage.Close, nil

	default:
		return nil, nil, fmt.Errorf("%w: %s", ErrUnknownAccountsBackend, conf.Accounts.Backend)
	}
}
