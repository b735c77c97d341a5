package postgres_test

import (
	"strings"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Clinica-api/internal/infrastructure/postgres"
)

func TestLoadMigrations_Embebidas(t *testing.T) {
	migs, err := postgres.NewMigrator(nil).LoadMigrations()
	require.NoError(t, err)
	require.NotEmpty(t, migs)

	assert.Equal(t, 1, migs[0].Version)
	assert.Equal(t, "001_init.sql", migs[0].Name)
	for _, table := range []string{"clinics", "patients", "inventory_items", "inventory_transactions", "treatments", "payments"} {
		assert.Contains(t, migs[0].SQL, "CREATE TABLE IF NOT EXISTS "+table+" ")
	}
	assert.True(t, strings.Contains(migs[0].SQL, "ON DELETE CASCADE"))

	require.GreaterOrEqual(t, len(migs), 2)
	assert.Equal(t, 2, migs[1].Version)
	assert.Contains(t, migs[1].SQL, "seq BIGSERIAL")
}

func TestLoadMigrations_OrdenYArchivosIgnorados(t *testing.T) {
	src := fstest.MapFS{
		"010_tablas.sql":  {Data: []byte("SELECT 10;")},
		"002_segunda.sql": {Data: []byte("SELECT 2;")},
		"001_primera.sql": {Data: []byte("SELECT 1;")},
		"README.md":       {Data: []byte("no")},
		"sin_numero.sql":  {Data: []byte("SELECT 0;")},
	}

	migs, err := postgres.NewMigratorFS(nil, src).LoadMigrations()
	require.NoError(t, err)
	require.Len(t, migs, 3)
	assert.Equal(t, []int{1, 2, 10}, []int{migs[0].Version, migs[1].Version, migs[2].Version})
	assert.Equal(t, "SELECT 2;", migs[1].SQL)
}

func TestLoadMigrations_VersionDuplicada(t *testing.T) {
	src := fstest.MapFS{
		"001_a.sql": {Data: []byte("SELECT 1;")},
		"001_b.sql": {Data: []byte("SELECT 1;")},
	}
	_, err := postgres.NewMigratorFS(nil, src).LoadMigrations()
	require.Error(t, err)
}
