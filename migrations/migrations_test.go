package migrations

import (
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrationsAreEmbedded(t *testing.T) {
	files, err := fs.Glob(FS, "*.sql")
	require.NoError(t, err)
	require.NotEmpty(t, files)

	for _, name := range files {
		data, err := fs.ReadFile(FS, name)
		require.NoError(t, err)
		assert.Contains(t, string(data), "-- +goose Up", name)
		assert.Contains(t, string(data), "-- +goose Down", name)
	}
}

func TestPatternsTableHasUniqueSlug(t *testing.T) {
	data, err := fs.ReadFile(FS, "00001_create_patterns.sql")
	require.NoError(t, err)

	assert.Contains(t, string(data), "CREATE UNIQUE INDEX IF NOT EXISTS idx_patterns_slug ON patterns (slug)")
}
