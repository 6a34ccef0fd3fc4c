package repository_test

import (
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/nikolayk812/cartsync-demo/internal/domain"
	"github.com/nikolayk812/cartsync-demo/internal/port"
	"github.com/nikolayk812/cartsync-demo/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSQLiteCart(t *testing.T, key string) port.CartStore {
	t.Helper()

	dsn := fmt.Sprintf("file:local_cart_%d?mode=memory&cache=shared", time.Now().UnixNano())
	gdb, err := repository.OpenSQLite(dsn)
	require.NoError(t, err)

	store, err := repository.NewSQLiteCart(gdb, key)
	require.NoError(t, err)
	return store
}

func TestSQLiteCartSaveAndLoad(t *testing.T) {
	ctx := t.Context()
	store := newSQLiteCart(t, "cart")

	got, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, got)

	first := []domain.CartLine{randomCartLine(), randomCartLine(), randomCartLine()}
	require.NoError(t, store.Save(ctx, first))

	got, err = store.Load(ctx)
	require.NoError(t, err)
	assertCartLines(t, first, got)

	second := []domain.CartLine{first[2], randomCartLine()}
	second[0].Quantity++
	require.NoError(t, store.Save(ctx, second))

	got, err = store.Load(ctx)
	require.NoError(t, err)
	assertCartLines(t, second, got)

	require.NoError(t, store.Save(ctx, nil))
	got, err = store.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestSQLiteCartSurvivesReopen(t *testing.T) {
	ctx := t.Context()
	dsn := filepath.Join(t.TempDir(), "cart.db")

	gdb, err := repository.OpenSQLite(dsn)
	require.NoError(t, err)
	store, err := repository.NewSQLiteCart(gdb, "cart")
	require.NoError(t, err)

	want := []domain.CartLine{randomCartLine()}
	require.NoError(t, store.Save(ctx, want))

	sqlDB, err := gdb.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())

	reopened, err := repository.OpenSQLite(dsn)
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := reopened.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	store, err = repository.NewSQLiteCart(reopened, "cart")
	require.NoError(t, err)

	got, err := store.Load(ctx)
	require.NoError(t, err)
	assertCartLines(t, want, got)
}

func TestNewSQLiteCartValidates(t *testing.T) {
	_, err := repository.NewSQLiteCart(nil, "cart")
	assert.EqualError(t, err, "db is nil")
}
