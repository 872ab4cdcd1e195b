package store

import (
	"context"
	"encoding/json"

	bolt "github.com/boltdb/bolt"

	"github.com/ruralpay/assistant/internal/models"
)

const sessionBucket = "sessions"

// BoltStore keeps sessions in an embedded single-file database. The bucket
// must already exist; database.OpenBolt creates it.
type BoltStore struct {
	db *bolt.DB
}

func NewBoltStore(db *bolt.DB) *BoltStore {
	return &BoltStore{db: db}
}

func (b *BoltStore) Load(ctx context.Context, conversationID string) (*models.Session, error) {
	var s models.Session

	err := b.db.View(func(tx *bolt.Tx) error {
		v := tx.Bucket([]byte(sessionBucket)).Get([]byte(conversationID))
		if v == nil {
			return ErrNotFound
		}
		return json.Unmarshal(v, &s)
	})
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (b *BoltStore) Save(ctx context.Context, s *models.Session) error {
	data, err := json.Marshal(s)
	if err != nil {
		return err
	}
	return b.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(sessionBucket)).Put([]byte(s.ConversationID), data)
	})
}

// Delete is a no-op for unknown conversations.
func (b *BoltStore) Delete(ctx context.Context, conversationID string) error {
	return b.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(sessionBucket)).Delete([]byte(conversationID))
	})
}

func (b *BoltStore) Close() error {
	return b.db.Close()
}
