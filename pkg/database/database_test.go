package database

import (
	"context"
	"testing"
	"time"

	"pattern-share/pkg/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPostgresDB_IsLazy(t *testing.T) {
	cfg := &config.Config{
		DBHost:     "127.0.0.1",
		DBPort:     "1",
		DBUser:     "postgres",
		DBPassword: "postgres",
		DBName:     "patterns",
		DBSSLMode:  "disable",
	}

	db, err := NewPostgresDB(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { ClosePostgres(db) })

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	assert.Error(t, PingPostgres(ctx, db))
}

func TestNewMongoDatabase_IsLazy(t *testing.T) {
	cfg := &config.Config{MongoURI: "mongodb://127.0.0.1:1", MongoDatabase: "patterns"}

	db, err := NewMongoDatabase(cfg)
	require.NoError(t, err)
	assert.Equal(t, "patterns", db.Name())

	assert.NoError(t, CloseMongo(context.Background(), db))
}

func TestNewMongoDatabase_InvalidURI(t *testing.T) {
	cfg := &config.Config{MongoURI: "not-a-uri", MongoDatabase: "patterns"}

	db, err := NewMongoDatabase(cfg)

	assert.Nil(t, db)
	assert.Error(t, err)
}
