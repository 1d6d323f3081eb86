package repository

import (
	"context"
	"fmt"

	"github.com/stwalsh4118/sdma/internal/metrics"
	"github.com/stwalsh4118/sdma/internal/models"
	"github.com/stwalsh4118/sdma/internal/taxonomy"
)

// Collection keys of the editable taxonomy lists.
const (
	KeyDisasterList     = "cgsdma_disaster_list"
	KeyDamageList       = "cgsdma_damage_list"
	KeyDisasterSubtypes = "cgsdma_disaster_subtypes"
	KeyDamageSubtypes   = "cgsdma_damage_subtypes"
)

// CategoryRepository reads and writes the editable category and subtype
// lists. Until a list is first saved, reads fall back to the seed taxonomy.
type CategoryRepository interface {
	Categories(ctx context.Context, kind models.CategoryKind) ([]models.CategoryItem, error)
	SaveCategories(ctx context.Context, kind models.CategoryKind, items []models.CategoryItem) error
	Subtypes(ctx context.Context, kind models.CategoryKind) ([]models.SubtypeItem, error)
	SaveSubtypes(ctx context.Context, kind models.CategoryKind, items []models.SubtypeItem) error
}

type categoryRepository struct {
	store      CollectionStore
	categories map[models.CategoryKind][]models.CategoryItem
	subtypes   map[models.CategoryKind][]models.SubtypeItem
}

// NewCategoryRepository creates a CategoryRepository over store with
// defaults taken from seed.
func NewCategoryRepository(store CollectionStore, seed taxonomy.Seed) CategoryRepository {
	r := &categoryRepository{
		store:      store,
		categories: make(map[models.CategoryKind][]models.CategoryItem),
		subtypes:   make(map[models.CategoryKind][]models.SubtypeItem),
	}

	for _, t := range seed.DisasterTypes {
		r.categories[models.CategoryDisaster] = append(r.categories[models.CategoryDisaster],
			models.CategoryItem{ID: int64(t.ID), NameHi: t.NameHi, NameEn: t.NameEn})
	}
	for _, t := range seed.DamageTypes {
		r.categories[models.CategoryDamage] = append(r.categories[models.CategoryDamage],
			models.CategoryItem{ID: int64(t.ID), NameHi: t.NameHi, NameEn: t.NameEn})
	}
	for _, st := range seed.DisasterSubtypes {
		r.subtypes[models.CategoryDisaster] = append(r.subtypes[models.CategoryDisaster],
			models.SubtypeItem{ID: int64(st.ID), TypeID: int64(st.TypeID), NameHi: st.NameHi, NameEn: st.NameEn})
	}
	for _, st := range seed.DamageSubtypes {
		r.subtypes[models.CategoryDamage] = append(r.subtypes[models.CategoryDamage],
			models.SubtypeItem{ID: int64(st.ID), TypeID: int64(st.TypeID), NameHi: st.NameHi, NameEn: st.NameEn})
	}

	return r
}

func categoryKey(kind models.CategoryKind) (string, error) {
	switch kind {
	case models.CategoryDisaster:
		return KeyDisasterList, nil
	case models.CategoryDamage:
		return KeyDamageList, nil
	default:
		return "", fmt.Errorf("unknown category kind %q", kind)
	}
}

func subtypeKey(kind models.CategoryKind) (string, error) {
	switch kind {
	case models.CategoryDisaster:
		return KeyDisasterSubtypes, nil
	case models.CategoryDamage:
		return KeyDamageSubtypes, nil
	default:
		return "", fmt.Errorf("unknown category kind %q", kind)
	}
}

func (r *categoryRepository) Categories(ctx context.Context, kind models.CategoryKind) ([]models.CategoryItem, error) {
	key, err := categoryKey(kind)
	if err != nil {
		return nil, err
	}

	var items []models.CategoryItem
	found, err := r.store.Load(ctx, key, &items)
	if err != nil {
		return nil, err
	}
	if !found {
		items = append([]models.CategoryItem(nil), r.categories[kind]...)
	}
	if items == nil {
		items = []models.CategoryItem{}
	}
	return items, nil
}

func (r *categoryRepository) SaveCategories(ctx context.Context, kind models.CategoryKind, items []models.CategoryItem) error {
	key, err := categoryKey(kind)
	if err != nil {
		return err
	}
	if err := r.store.Save(ctx, key, items); err != nil {
		return err
	}
	metrics.CategoryWritesTotal.WithLabelValues(key).Inc()
	return nil
}

func (r *categoryRepository) Subtypes(ctx context.Context, kind models.CategoryKind) ([]models.SubtypeItem, error) {
	key, err := subtypeKey(kind)
	if err != nil {
		return nil, err
	}

	var items []models.SubtypeItem
	found, err := r.store.Load(ctx, key, &items)
	if err != nil {
		return nil, err
	}
	if !found {
		items = append([]models.SubtypeItem(nil), r.subtypes[kind]...)
	}
	if items == nil {
		items = []models.SubtypeItem{}
	}
	return items, nil
}

func (r *categoryRepository) SaveSubtypes(ctx context.Context, kind models.CategoryKind, items []models.SubtypeItem) error {
	key, err := subtypeKey(kind)
	if err != nil {
		return err
	}
	if err := r.store.Save(ctx, key, items); err != nil {
		return err
	}
	metrics.CategoryWritesTotal.WithLabelValues(key).Inc()
	return nil
}
