package postgres

import (
	"io/fs"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrateURL(t *testing.T) {
	assert.Equal(t, "pgx5://u:p@db:5432/x?sslmode=disable", migrateURL("postgres://u:p@db:5432/x?sslmode=disable"))
	assert.Equal(t, "pgx5://u@db/x", migrateURL("postgresql://u@db/x"))
	assert.Equal(t, "pgx5://ya", migrateURL("pgx5://ya"))
}

func TestMigracionesEmbebidas(t *testing.T) {
	files, err := fs.Glob(migrationsFS, "migrations/*.sql")
	require.NoError(t, err)
	assert.Contains(t, files, "migrations/000001_init.up.sql")
	assert.Contains(t, files, "migrations/000001_init.down.sql")
}

func TestMigraciones_UsernameAdmiteEmail(t *testing.T) {
	up, err := migrationsFS.ReadFile("migrations/000002_users_username_email_length.up.sql")
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(up), "username TYPE VARCHAR(255)"))

	_, err = migrationsFS.ReadFile("migrations/000002_users_username_email_length.down.sql")
	require.NoError(t, err)
}
