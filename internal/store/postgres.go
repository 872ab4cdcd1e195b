package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/ruralpay/assistant/internal/models"
)

const createSessionsTable = `CREATE TABLE IF NOT EXISTS conversation_sessions (
	conversation_id TEXT PRIMARY KEY,
	session JSONB NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL
)`

// PostgresStore keeps one JSONB row per conversation.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (p *PostgresStore) EnsureSchema(ctx context.Context) error {
	if _, err := p.db.ExecContext(ctx, createSessionsTable); err != nil {
		return fmt.Errorf("create sessions table: %w", err)
	}
	return nil
}

func (p *PostgresStore) Load(ctx context.Context, conversationID string) (*models.Session, error) {
	var s models.Session
	err := p.db.QueryRowContext(ctx,
		"SELECT session FROM conversation_sessions WHERE conversation_id = $1",
		conversationID,
	).Scan(&s)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}
	return &s, nil
}

func (p *PostgresStore) Save(ctx context.Context, s *models.Session) error {
	_, err := p.db.ExecContext(ctx, `
		INSERT INTO conversation_sessions (conversation_id, session, updated_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (conversation_id)
		DO UPDATE SET session = EXCLUDED.session, updated_at = EXCLUDED.updated_at`,
		s.ConversationID, *s, s.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

func (p *PostgresStore) Delete(ctx context.Context, conversationID string) error {
	_, err := p.db.ExecContext(ctx, "DELETE FROM conversation_sessions WHERE conversation_id = $1", conversationID)
	return err
}

func (p *PostgresStore) Close() error {
	return p.db.Close()
}
