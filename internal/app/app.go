// Package app assembles each service from its configuration.
package app

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"

	"microsvc/internal/config"
	"microsvc/internal/domain"
	"microsvc/internal/handler"
	"microsvc/internal/repository"
	"microsvc/internal/server"
	"microsvc/internal/service"
	"microsvc/internal/shortcode"
)

// Service is a runnable server plus the resources to release after it stops.
type Service struct {
	Server *server.Server
	close  []func() error
}

// Close releases the service's storage handles.
func (s *Service) Close() error {
	var firstErr error
	for i := len(s.close) - 1; i >= 0; i-- {
		if err := s.close[i](); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

func serverConfig(cfg *config.Config) server.Config {
	return server.Config{Port: cfg.Port, ShutdownTimeout: cfg.ShutdownTimeout}
}

// NewUserService opens the users database, migrates it and builds the
// user management server.
func NewUserService(cfg *config.Config, log logrus.FieldLogger) (*Service, error) {
	db, err := repository.OpenDB(cfg.DBDriver, cfg.DBDSN)
	if err != nil {
		return nil, err
	}
	svc := &Service{close: []func() error{func() error { return repository.CloseDB(db) }}}

	if err := repository.Migrate(db); err != nil {
		_ = svc.Close()
		return nil, err
	}
	log.WithField("driver", cfg.DBDriver).Info("users database ready")

	users := service.NewUserService(repository.NewGormUserRepository(db), cfg.BcryptCost)
	svc.Server = server.New(serverConfig(cfg), log, server.UserRoutes(handler.NewUserHandler(users)))
	return svc, nil
}

// NewShortener builds the URL shortener over the configured link store.
func NewShortener(cfg *config.Config, log logrus.FieldLogger) (*Service, error) {
	svc := &Service{}

	var links repository.LinkRepository
	switch cfg.LinkStore {
	case config.LinkStoreRedis:
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := client.Ping(ctx).Err(); err != nil {
			_ = client.Close()
			return nil, fmt.Errorf("connect to redis at %s: %w", cfg.RedisAddr, err)
		}
		svc.close = append(svc.close, client.Close)
		links = repository.NewRedisLinkRepository(client, cfg.RedisKeyPrefix)
	default:
		links = repository.NewMemoryRepository()
	}
	log.WithField("store", cfg.LinkStore).Info("link store ready")

	urls := service.NewURLService(links, shortcode.NewGenerator(cfg.CodeLength), domain.SystemClock{})
	svc.Server = server.New(serverConfig(cfg), log, server.LinkRoutes(handler.NewLinkHandler(urls, cfg.BaseURL)))
	return svc, nil
}

// MigrateUsers creates or updates the users table and exits.
func MigrateUsers(cfg *config.Config) error {
	db, err := repository.OpenDB(cfg.DBDriver, cfg.DBDSN)
	if err != nil {
		return err
	}
	defer repository.CloseDB(db)

	return repository.Migrate(db)
}
