package migrations_test

import (
	"io/fs"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/portfolio/site/migrations"
)

func TestMigrationsHaveUpAndDown(t *testing.T) {
	t.Parallel()

	files, err := fs.Glob(migrations.FS, "*.sql")
	require.NoError(t, err)
	require.NotEmpty(t, files)

	for _, name := range files {
		data, err := fs.ReadFile(migrations.FS, name)
		require.NoError(t, err)
		body := string(data)
		assert.True(t, strings.HasPrefix(body, "-- +goose Up"), name)
		assert.Contains(t, body, "-- +goose Down", name)
	}
}
