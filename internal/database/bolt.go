package database

import (
	"fmt"
	"time"

	"github.com/boltdb/bolt"
	"go.uber.org/zap"
)

// OpenBolt opens (or creates) the embedded database file and ensures the
// given buckets exist.
func OpenBolt(path string, logger *zap.Logger, buckets ...string) (*bolt.DB, error) {
	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("error opening bolt file %s: %w", path, err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		for _, name := range buckets {
			if _, err := tx.CreateBucketIfNotExists([]byte(name)); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("error creating bolt buckets: %w", err)
	}

	logger.Info("bolt database opened", zap.String("path", path))
	return db, nil
}
