package storage

import (
	"context"
	"testing"

	"github.com/STTM-NSU/portfolio-tracker/internal/logger"
	"github.com/STTM-NSU/portfolio-tracker/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSQLStore(t *testing.T) *SQLStore {
	t.Helper()
	ctx := context.Background()

	db, err := OpenSQLite(ctx, ":memory:")
	require.NoError(t, err)

	store := NewSQLStore(db, logger.NewNopLogger())
	require.NoError(t, store.Init(ctx))
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestSQLStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := newTestSQLStore(t)

	want := samplePortfolio()
	require.NoError(t, store.Save(ctx, "main", want))

	got, err := store.Load(ctx, "main")
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestSQLStoreSaveReplaces(t *testing.T) {
	ctx := context.Background()
	store := newTestSQLStore(t)

	require.NoError(t, store.Save(ctx, "main", samplePortfolio()))
	require.NoError(t, store.Save(ctx, "other", samplePortfolio()))

	smaller := model.NewPortfolio()
	_, err := smaller.AddSecurity("Gold")
	require.NoError(t, err)
	require.NoError(t, store.Save(ctx, "main", smaller))

	got, err := store.Load(ctx, "main")
	require.NoError(t, err)
	assert.Equal(t, smaller, got)

	other, err := store.Load(ctx, "other")
	require.NoError(t, err)
	assert.Equal(t, samplePortfolio(), other)
}

func TestSQLStoreEmptyPortfolio(t *testing.T) {
	ctx := context.Background()
	store := newTestSQLStore(t)

	require.NoError(t, store.Save(ctx, "empty", model.NewPortfolio()))
	got, err := store.Load(ctx, "empty")
	require.NoError(t, err)
	assert.Equal(t, model.NewPortfolio(), got)
}

func TestSQLStoreNotFound(t *testing.T) {
	store := newTestSQLStore(t)

	_, err := store.Load(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestPostgresConfigSetup(t *testing.T) {
	cfg := (&PostgresConfig{Port: "abc", Password: "secret"}).Setup()

	assert.Equal(t, "localhost", cfg.Host)
	assert.Equal(t, "5432", cfg.Port)
	assert.Equal(t, "portfolio_tracker", cfg.DBName)
	assert.Contains(t, cfg.DSN(), "password=secret")
	assert.NotContains(t, cfg.String(), "secret")
}

func TestNewPostgresConfigFromEnv(t *testing.T) {
	t.Setenv("POSTGRES_HOST", "db")
	t.Setenv("POSTGRES_PORT", "6543")
	t.Setenv("POSTGRES_DB_NAME", "tracker")

	cfg := NewPostgresConfigFromEnv().Setup()
	assert.Equal(t, "db", cfg.Host)
	assert.Equal(t, "6543", cfg.Port)
	assert.Equal(t, "tracker", cfg.DBName)
}
