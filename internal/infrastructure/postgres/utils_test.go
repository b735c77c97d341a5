package postgres

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Clinica-api/pkg/config"
)

func TestIsUniqueViolation(t *testing.T) {
	wrapped := fmt.Errorf("insert patient: %w", &pgconn.PgError{Code: "23505"})
	assert.True(t, isUniqueViolation(wrapped))
	assert.False(t, isUniqueViolation(&pgconn.PgError{Code: "23503"}))
	assert.False(t, isUniqueViolation(errors.New("timeout")))
}

func TestIsForeignKeyViolation(t *testing.T) {
	assert.True(t, isForeignKeyViolation(fmt.Errorf("delete patient: %w", &pgconn.PgError{Code: "23503"})))
	assert.False(t, isForeignKeyViolation(&pgconn.PgError{Code: "23505"}))
	assert.False(t, isForeignKeyViolation(errors.New("23503")))
}

// ── buildPoolConfig ───────────────────────────────────────────────────────────

func testDBConfig() config.DBConfig {
	return config.DBConfig{
		Host: "127.0.0.1", Port: 5432, User: "postgres", Password: "secreto",
		DBName: "clinica", SSLMode: "disable", MaxConns: 8, MinConns: 1,
	}
}

func TestBuildPoolConfig_TamanoYParametros(t *testing.T) {
	pc, err := buildPoolConfig(testDBConfig(), zerolog.Nop())
	require.NoError(t, err)

	assert.EqualValues(t, 8, pc.MaxConns)
	assert.EqualValues(t, 1, pc.MinConns)
	assert.Equal(t, "UTC", pc.ConnConfig.RuntimeParams["timezone"])
	assert.Equal(t, "clinica-api", pc.ConnConfig.RuntimeParams["application_name"])
	assert.NotNil(t, pc.AfterConnect)
	assert.Nil(t, pc.ConnConfig.Tracer)
}

func TestBuildPoolConfig_TrazaConsultas(t *testing.T) {
	cfg := testDBConfig()
	cfg.LogQueries = true
	pc, err := buildPoolConfig(cfg, zerolog.Nop())
	require.NoError(t, err)
	assert.NotNil(t, pc.ConnConfig.Tracer)
}

func TestBuildPoolConfig_DSNInvalido(t *testing.T) {
	cfg := testDBConfig()
	cfg.DatabaseURL = "postgres://%zz"
	_, err := buildPoolConfig(cfg, zerolog.Nop())
	assert.Error(t, err)
}

func TestResolveIPv4_Literales(t *testing.T) {
	ip, err := resolveIPv4("10.0.0.7")
	require.NoError(t, err)
	assert.Equal(t, "10.0.0.7", ip)

	_, err = resolveIPv4("::1")
	assert.Error(t, err)
}
