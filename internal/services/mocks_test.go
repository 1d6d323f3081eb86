package services

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/stwalsh4118/sdma/internal/models"
)

// MockIncidentRepository is a mock implementation of IncidentRepository for testing
type MockIncidentRepository struct {
	mock.Mock
}

func (m *MockIncidentRepository) List(ctx context.Context) ([]models.Incident, error) {
	args := m.Called(ctx)
	incidents, _ := args.Get(0).([]models.Incident)
	return incidents, args.Error(1)
}

func (m *MockIncidentRepository) Create(ctx context.Context, incident models.Incident) (models.Incident, error) {
	args := m.Called(ctx, incident)
	created, _ := args.Get(0).(models.Incident)
	return created, args.Error(1)
}

// MockUserRepository is a mock implementation of UserRepository for testing
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) List(ctx context.Context) ([]models.User, error) {
	args := m.Called(ctx)
	users, _ := args.Get(0).([]models.User)
	return users, args.Error(1)
}

func (m *MockUserRepository) FindByLogin(ctx context.Context, userID string) (*models.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	user, ok := args.Get(0).(*models.User)
	if !ok {
		return nil, args.Error(1)
	}
	return user, args.Error(1)
}

func (m *MockUserRepository) Update(ctx context.Context, user models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

// MockCategoryRepository is a mock implementation of CategoryRepository for testing
type MockCategoryRepository struct {
	mock.Mock
}

func (m *MockCategoryRepository) Categories(ctx context.Context, kind models.CategoryKind) ([]models.CategoryItem, error) {
	args := m.Called(ctx, kind)
	items, _ := args.Get(0).([]models.CategoryItem)
	return items, args.Error(1)
}

func (m *MockCategoryRepository) SaveCategories(ctx context.Context, kind models.CategoryKind, items []models.CategoryItem) error {
	args := m.Called(ctx, kind, items)
	return args.Error(0)
}

func (m *MockCategoryRepository) Subtypes(ctx context.Context, kind models.CategoryKind) ([]models.SubtypeItem, error) {
	args := m.Called(ctx, kind)
	items, _ := args.Get(0).([]models.SubtypeItem)
	return items, args.Error(1)
}

func (m *MockCategoryRepository) SaveSubtypes(ctx context.Context, kind models.CategoryKind, items []models.SubtypeItem) error {
	args := m.Called(ctx, kind, items)
	return args.Error(0)
}
