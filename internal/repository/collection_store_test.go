package repository

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stwalsh4118/sdma/internal/models"
)

func collectionStores(t *testing.T) map[string]CollectionStore {
	fileStore, err := NewFileCollectionStore(filepath.Join(t.TempDir(), "data"))
	require.NoError(t, err)

	return map[string]CollectionStore{
		"memory": NewMemoryCollectionStore(),
		"file":   fileStore,
	}
}

func TestCollectionStore_RoundTrip(t *testing.T) {
	for name, store := range collectionStores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			var missing []models.CategoryItem
			found, err := store.Load(ctx, KeyDisasterList, &missing)
			require.NoError(t, err)
			assert.False(t, found)

			items := []models.CategoryItem{{ID: 1, NameHi: "बाढ़", NameEn: "Flood", Count: 2}}
			require.NoError(t, store.Save(ctx, KeyDisasterList, items))

			var loaded []models.CategoryItem
			found, err = store.Load(ctx, KeyDisasterList, &loaded)
			require.NoError(t, err)
			assert.True(t, found)
			assert.Equal(t, items, loaded)

			items[0].NameEn = "changed"
			var again []models.CategoryItem
			_, err = store.Load(ctx, KeyDisasterList, &again)
			require.NoError(t, err)
			assert.Equal(t, "Flood", again[0].NameEn, "Store must not alias caller slices")
		})
	}
}

func TestCollectionStore_RejectsBadKeys(t *testing.T) {
	for name, store := range collectionStores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			var dst []models.CategoryItem

			_, err := store.Load(ctx, "../etc/passwd", &dst)
			assert.Error(t, err)
			assert.Error(t, store.Save(ctx, "Bad Key", dst))
		})
	}
}

func TestFileCollectionStore_PersistsAcrossInstances(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	first, err := NewFileCollectionStore(dir)
	require.NoError(t, err)
	require.NoError(t, first.Save(ctx, KeyDamageSubtypes, []models.SubtypeItem{{ID: 9, TypeID: 5, NameEn: "Road"}}))

	second, err := NewFileCollectionStore(dir)
	require.NoError(t, err)

	var loaded []models.SubtypeItem
	found, err := second.Load(ctx, KeyDamageSubtypes, &loaded)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, int64(9), loaded[0].ID)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1, "Temp files must not be left behind")
	assert.Equal(t, KeyDamageSubtypes+".json", entries[0].Name())
}

func TestFileCollectionStore_CorruptDocument(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, KeyDamageList+".json"), []byte("{not json"), 0o644))

	store, err := NewFileCollectionStore(dir)
	require.NoError(t, err)

	var dst []models.CategoryItem
	_, err = store.Load(ctx, KeyDamageList, &dst)
	assert.Error(t, err)
}
