package database

import (
	"path/filepath"
	"testing"

	"github.com/boltdb/bolt"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestGetConfig_DSN(t *testing.T) {
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("DB_NAME", "sessions")
	defer viper.Reset()

	cfg := GetConfig()
	assert.Equal(t, "host=db.internal port=5432 user=postgres password=password dbname=sessions sslmode=disable", cfg.DSN())
	assert.Equal(t, 25, cfg.MaxOpenConns)
}

func TestOpenBolt_CreatesBuckets(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")

	db, err := OpenBolt(path, zap.NewNop(), "sessions", "other")
	require.NoError(t, err)
	defer db.Close()

	err = db.View(func(tx *bolt.Tx) error {
		assert.NotNil(t, tx.Bucket([]byte("sessions")))
		assert.NotNil(t, tx.Bucket([]byte("other")))
		return nil
	})
	assert.NoError(t, err)
}
