package migrations

import (
	"io/fs"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFS_EachDialectHasAccountsTable(t *testing.T) {
	for _, dialect := range []string{Postgres, SQLite} {
		t.Run(dialect, func(t *testing.T) {
			fsys, err := FS(dialect)
			require.NoError(t, err)

			b, err := fs.ReadFile(fsys, "00001_create_accounts.sql")
			require.NoError(t, err)

			sql := string(b)
			assert.Contains(t, sql, "-- +goose Up")
			assert.Contains(t, sql, "-- +goose Down")
			assert.Contains(t, sql, "CREATE TABLE accounts")
			assert.Equal(t, 2, strings.Count(sql, "UNIQUE"), "username and email must both be unique")
		})
	}
}

func TestFS_UnknownDialect(t *testing.T) {
	_, err := FS("mysql")
	assert.Error(t, err)
}
