// Package store persists conversation sessions between turns.
package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/ruralpay/assistant/internal/config"
	"github.com/ruralpay/assistant/internal/database"
	"github.com/ruralpay/assistant/internal/models"
)

// ErrNotFound is returned when no session exists for a conversation.
var ErrNotFound = errors.New("session not found")

// SessionStore loads and saves sessions keyed by conversation id.
type SessionStore interface {
	Load(ctx context.Context, conversationID string) (*models.Session, error)
	Save(ctx context.Context, s *models.Session) error
	Delete(ctx context.Context, conversationID string) error
	Close() error
}

const (
	DriverMemory   = "memory"
	DriverRedis    = "redis"
	DriverPostgres = "postgres"
	DriverBolt     = "bolt"
)

// Open builds the store selected by cfg.Driver.
func Open(ctx context.Context, cfg config.StorageConfig, ttl time.Duration, logger *zap.Logger) (SessionStore, error) {
	switch cfg.Driver {
	case "", DriverMemory:
		return NewMemoryStore(), nil

	case DriverRedis:
		client, err := database.InitRedis(ctx, logger)
		if err != nil {
			return nil, err
		}
		return NewRedisStore(client, ttl), nil

	case DriverPostgres:
		db, err := database.InitDB(logger)
		if err != nil {
			return nil, err
		}
		s := NewPostgresStore(db)
		if err := s.EnsureSchema(ctx); err != nil {
			db.Close()
			return nil, err
		}
		return s, nil

	case DriverBolt:
		db, err := database.OpenBolt(cfg.BoltPath, logger, sessionBucket)
		if err != nil {
			return nil, err
		}
		return NewBoltStore(db), nil

	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
	}
}
