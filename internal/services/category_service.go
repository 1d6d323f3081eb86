package services

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/stwalsh4118/sdma/internal/logger"
	"github.com/stwalsh4118/sdma/internal/models"
	"github.com/stwalsh4118/sdma/internal/repository"
)

// CategoryNames are the bilingual names of a category or subtype. Both are
// required.
type CategoryNames struct {
	NameHi string
	NameEn string
}

// Drilldown is a category with its subtypes.
type Drilldown struct {
	Category models.CategoryItem  `json:"category"`
	Subtypes []models.SubtypeItem `json:"subtypes"`
}

// CategoryService defines the interface for the master-data editor.
// Edits touch only the editor's collections; reference data used by
// reports is never changed.
type CategoryService interface {
	// List returns the categories of kind with live subtype counts.
	List(ctx context.Context, kind models.CategoryKind) ([]models.CategoryItem, error)

	// Add appends a category with a fresh id and no subtypes.
	Add(ctx context.Context, kind models.CategoryKind, names CategoryNames) (models.CategoryItem, error)

	// Update renames a category. Returns ErrCategoryNotFound for unknown ids.
	Update(ctx context.Context, kind models.CategoryKind, id int64, names CategoryNames) (models.CategoryItem, error)

	// AddSubtype appends a subtype under parentID.
	// Returns ErrCategoryNotFound when the parent does not exist.
	AddSubtype(ctx context.Context, kind models.CategoryKind, parentID int64, names CategoryNames) (models.SubtypeItem, error)

	// UpdateSubtype renames a subtype. Returns ErrSubtypeNotFound for unknown ids.
	UpdateSubtype(ctx context.Context, kind models.CategoryKind, id int64, names CategoryNames) (models.SubtypeItem, error)

	// DrillDown returns a category and its subtypes.
	DrillDown(ctx context.Context, kind models.CategoryKind, parentID int64) (Drilldown, error)
}

// categoryService serializes writes so read-modify-write cycles on a
// collection never interleave.
type categoryService struct {
	mu     sync.Mutex
	repo   repository.CategoryRepository
	log    *logger.Logger
	now    func() time.Time
	lastID int64
}

// NewCategoryService creates a new instance of CategoryService.
func NewCategoryService(repo repository.CategoryRepository, log *logger.Logger) CategoryService {
	return &categoryService{
		repo: repo,
		log:  log.Component("category-service"),
		now:  time.Now,
	}
}

// nextID returns a millisecond timestamp, bumped past the last issued id so
// two additions in the same millisecond still get distinct ids.
func (s *categoryService) nextID() int64 {
	id := s.now().UnixMilli()
	if id <= s.lastID {
		id = s.lastID + 1
	}
	s.lastID = id
	return id
}

func cleanNames(names CategoryNames) (CategoryNames, error) {
	names.NameHi = strings.TrimSpace(names.NameHi)
	names.NameEn = strings.TrimSpace(names.NameEn)
	if names.NameHi == "" || names.NameEn == "" {
		return names, fmt.Errorf("%w: Hindi and English names are required", ErrInvalidCategory)
	}
	return names, nil
}

// withCounts overwrites each category's count with its live subtype count.
func withCounts(categories []models.CategoryItem, subtypes []models.SubtypeItem) []models.CategoryItem {
	counts := make(map[int64]int, len(categories))
	for _, st := range subtypes {
		counts[st.TypeID]++
	}
	out := make([]models.CategoryItem, len(categories))
	for i, c := range categories {
		c.Count = counts[c.ID]
		out[i] = c
	}
	return out
}

func (s *categoryService) load(ctx context.Context, kind models.CategoryKind) ([]models.CategoryItem, []models.SubtypeItem, error) {
	categories, err := s.repo.Categories(ctx, kind)
	if err != nil {
		return nil, nil, s.storeError("load categories", kind, err)
	}
	subtypes, err := s.repo.Subtypes(ctx, kind)
	if err != nil {
		return nil, nil, s.storeError("load subtypes", kind, err)
	}
	return withCounts(categories, subtypes), subtypes, nil
}

func (s *categoryService) storeError(op string, kind models.CategoryKind, err error) error {
	s.log.Error("Category store failure", err, map[string]interface{}{
		"operation": op,
		"kind":      string(kind),
	})
	return fmt.Errorf("failed to %s: %w", op, err)
}

func (s *categoryService) List(ctx context.Context, kind models.CategoryKind) ([]models.CategoryItem, error) {
	categories, _, err := s.load(ctx, kind)
	return categories, err
}

func (s *categoryService) Add(ctx context.Context, kind models.CategoryKind, names CategoryNames) (models.CategoryItem, error) {
	names, err := cleanNames(names)
	if err != nil {
		return models.CategoryItem{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	categories, _, err := s.load(ctx, kind)
	if err != nil {
		return models.CategoryItem{}, err
	}

	item := models.CategoryItem{ID: s.nextID(), NameHi: names.NameHi, NameEn: names.NameEn}
	categories = append(categories, item)
	if err := s.repo.SaveCategories(ctx, kind, categories); err != nil {
		return models.CategoryItem{}, s.storeError("save categories", kind, err)
	}

	s.log.Info("Category added", map[string]interface{}{
		"kind":    string(kind),
		"id":      item.ID,
		"name_en": item.NameEn,
	})
	return item, nil
}

func (s *categoryService) Update(ctx context.Context, kind models.CategoryKind, id int64, names CategoryNames) (models.CategoryItem, error) {
	names, err := cleanNames(names)
	if err != nil {
		return models.CategoryItem{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	categories, _, err := s.load(ctx, kind)
	if err != nil {
		return models.CategoryItem{}, err
	}

	idx := -1
	for i, c := range categories {
		if c.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return models.CategoryItem{}, fmt.Errorf("%w: %s category %d", ErrCategoryNotFound, kind, id)
	}

	categories[idx].NameHi = names.NameHi
	categories[idx].NameEn = names.NameEn
	if err := s.repo.SaveCategories(ctx, kind, categories); err != nil {
		return models.CategoryItem{}, s.storeError("save categories", kind, err)
	}

	s.log.Info("Category updated", map[string]interface{}{
		"kind": string(kind),
		"id":   id,
	})
	return categories[idx], nil
}

func (s *categoryService) AddSubtype(ctx context.Context, kind models.CategoryKind, parentID int64, names CategoryNames) (models.SubtypeItem, error) {
	names, err := cleanNames(names)
	if err != nil {
		return models.SubtypeItem{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	categories, subtypes, err := s.load(ctx, kind)
	if err != nil {
		return models.SubtypeItem{}, err
	}
	if !hasCategory(categories, parentID) {
		return models.SubtypeItem{}, fmt.Errorf("%w: %s category %d", ErrCategoryNotFound, kind, parentID)
	}

	item := models.SubtypeItem{ID: s.nextID(), TypeID: parentID, NameHi: names.NameHi, NameEn: names.NameEn}
	subtypes = append(subtypes, item)
	if err := s.repo.SaveSubtypes(ctx, kind, subtypes); err != nil {
		return models.SubtypeItem{}, s.storeError("save subtypes", kind, err)
	}
	// The persisted count mirrors the live value.
	if err := s.repo.SaveCategories(ctx, kind, withCounts(categories, subtypes)); err != nil {
		return models.SubtypeItem{}, s.storeError("save categories", kind, err)
	}

	s.log.Info("Subtype added", map[string]interface{}{
		"kind":      string(kind),
		"id":        item.ID,
		"parent_id": parentID,
	})
	return item, nil
}

func (s *categoryService) UpdateSubtype(ctx context.Context, kind models.CategoryKind, id int64, names CategoryNames) (models.SubtypeItem, error) {
	names, err := cleanNames(names)
	if err != nil {
		return models.SubtypeItem{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	_, subtypes, err := s.load(ctx, kind)
	if err != nil {
		return models.SubtypeItem{}, err
	}

	idx := -1
	for i, st := range subtypes {
		if st.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return models.SubtypeItem{}, fmt.Errorf("%w: %s subtype %d", ErrSubtypeNotFound, kind, id)
	}

	subtypes[idx].NameHi = names.NameHi
	subtypes[idx].NameEn = names.NameEn
	if err := s.repo.SaveSubtypes(ctx, kind, subtypes); err != nil {
		return models.SubtypeItem{}, s.storeError("save subtypes", kind, err)
	}

	s.log.Info("Subtype updated", map[string]interface{}{
		"kind": string(kind),
		"id":   id,
	})
	return subtypes[idx], nil
}

func (s *categoryService) DrillDown(ctx context.Context, kind models.CategoryKind, parentID int64) (Drilldown, error) {
	categories, subtypes, err := s.load(ctx, kind)
	if err != nil {
		return Drilldown{}, err
	}

	for _, c := range categories {
		if c.ID != parentID {
			continue
		}
		children := make([]models.SubtypeItem, 0, c.Count)
		for _, st := range subtypes {
			if st.TypeID == parentID {
				children = append(children, st)
			}
		}
		return Drilldown{Category: c, Subtypes: children}, nil
	}

	return Drilldown{}, fmt.Errorf("%w: %s category %d", ErrCategoryNotFound, kind, parentID)
}

func hasCategory(categories []models.CategoryItem, id int64) bool {
	for _, c := range categories {
		if c.ID == id {
			return true
		}
	}
	return false
}
