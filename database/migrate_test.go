package database

import (
	"io/fs"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrationsEmbedded(t *testing.T) {
	entries, err := fs.ReadDir(migrationsFS, "migrations")
	require.NoError(t, err)

	ups, downs := 0, 0
	for _, e := range entries {
		switch {
		case strings.HasSuffix(e.Name(), ".up.sql"):
			ups++
		case strings.HasSuffix(e.Name(), ".down.sql"):
			downs++
		}
	}
	assert.Positive(t, ups)
	assert.Equal(t, ups, downs, "every up migration needs a down migration")

	body, err := fs.ReadFile(migrationsFS, "migrations/000001_create_lotto_ledgers.up.sql")
	require.NoError(t, err)
	assert.Contains(t, string(body), "lotto_ledgers")
}

func TestMigrateDown_RejectsNonPositiveSteps(t *testing.T) {
	assert.Error(t, MigrateDown(nil, 0))
}
