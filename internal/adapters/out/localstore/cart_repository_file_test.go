// internal/adapters/out/localstore/cart_repository_file_test.go
package localstore

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cartdom "vergilius/internal/domain/cart"
)

func newRepo(t *testing.T) *CartRepositoryFile {
	t.Helper()
	repo, err := NewCartRepositoryFile(t.TempDir())
	require.NoError(t, err)
	return repo
}

func sampleCart(t *testing.T, uid string) *cartdom.Cart {
	t.Helper()
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	c, err := cartdom.NewCart(uid, []cartdom.LineItem{
		{ID: "idromele-07l", Name: "Idromele Classico", Variant: "0.7l", Price: 25.00, Quantity: 2},
	}, now)
	require.NoError(t, err)
	return c
}

func TestNewCartRepositoryFile_EmptyDir(t *testing.T) {
	_, err := NewCartRepositoryFile("  ")
	assert.Error(t, err)
}

func TestRoundTrip(t *testing.T) {
	repo := newRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Upsert(ctx, sampleCart(t, "buyer-1")))

	got, err := repo.GetByUserID(ctx, "buyer-1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "buyer-1", got.ID)
	require.Len(t, got.Items, 1)
	assert.Equal(t, 2, got.Items[0].Quantity)
	assert.Equal(t, 25.00, got.Items[0].Price)
}

func TestGetByUserID_MissingIsNilNil(t *testing.T) {
	repo := newRepo(t)

	got, err := repo.GetByUserID(context.Background(), "nobody")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestGetByUserID_CorruptFileIsNilNil(t *testing.T) {
	repo := newRepo(t)
	ctx := context.Background()

	require.NoError(t, os.WriteFile(filepath.Join(repo.Dir, "buyer-1.json"), []byte("{not json"), 0o644))

	got, err := repo.GetByUserID(ctx, "buyer-1")
	require.NoError(t, err)
	assert.Nil(t, got, "corrupt slot starts over as empty")
}

func TestGetByUserID_DropsInvalidLines(t *testing.T) {
	repo := newRepo(t)
	ctx := context.Background()

	raw := []byte(`{"id":"buyer-1","items":[` +
		`{"id":"idromele-07l","price":25,"quantity":1},` +
		`{"id":"","price":10,"quantity":2},` +
		`{"id":"idromele-speziato-05l","price":22,"quantity":0}]}`)
	require.NoError(t, os.WriteFile(filepath.Join(repo.Dir, "buyer-1.json"), raw, 0o644))

	got, err := repo.GetByUserID(ctx, "buyer-1")
	require.NoError(t, err)
	require.NotNil(t, got)
	require.Len(t, got.Items, 1)
	assert.Equal(t, "idromele-07l", got.Items[0].ID)
}

func TestUpsert_OverwritesInFull(t *testing.T) {
	repo := newRepo(t)
	ctx := context.Background()

	c := sampleCart(t, "buyer-1")
	require.NoError(t, repo.Upsert(ctx, c))

	now := time.Date(2026, 3, 1, 12, 5, 0, 0, time.UTC)
	c.Clear(now)
	require.NoError(t, repo.Upsert(ctx, c))

	got, err := repo.GetByUserID(ctx, "buyer-1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Empty(t, got.Items)
}

func TestDeleteByUserID(t *testing.T) {
	repo := newRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Upsert(ctx, sampleCart(t, "buyer-1")))
	require.NoError(t, repo.DeleteByUserID(ctx, "buyer-1"))

	got, err := repo.GetByUserID(ctx, "buyer-1")
	require.NoError(t, err)
	assert.Nil(t, got)

	// deleting again is fine
	require.NoError(t, repo.DeleteByUserID(ctx, "buyer-1"))
}

func TestPathSanitizesUID(t *testing.T) {
	repo := newRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Upsert(ctx, sampleCart(t, "weird-uid")))

	// a traversal-looking uid never escapes the data dir
	c := sampleCart(t, "buyer-1")
	c.ID = "../escape"
	require.NoError(t, repo.Upsert(ctx, c))

	entries, err := os.ReadDir(repo.Dir)
	require.NoError(t, err)
	for _, e := range entries {
		assert.False(t, filepath.IsAbs(e.Name()))
	}
	_, err = os.Stat(filepath.Join(repo.Dir, "___escape.json"))
	assert.NoError(t, err)
}
