package repository

import (
	"context"
	"strings"
	"sync"

	"github.com/stwalsh4118/sdma/internal/models"
)

// UserRepository defines the interface for user account access.
type UserRepository interface {
	// List returns all users in seed order.
	List(ctx context.Context) ([]models.User, error)

	// FindByLogin finds a user by login name, case-insensitively.
	// Returns nil, nil if no user matches.
	FindByLogin(ctx context.Context, userID string) (*models.User, error)

	// Update replaces the stored user with the same login name.
	// Returns ErrNotFound if there is none.
	Update(ctx context.Context, user models.User) error
}

type memoryUserRepository struct {
	mu    sync.RWMutex
	users []models.User
}

// NewMemoryUserRepository creates an in-memory UserRepository holding users.
func NewMemoryUserRepository(users []models.User) UserRepository {
	return &memoryUserRepository{users: cloneUsers(users)}
}

func (r *memoryUserRepository) List(ctx context.Context) ([]models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return cloneUsers(r.users), nil
}

func (r *memoryUserRepository) FindByLogin(ctx context.Context, userID string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.users {
		if strings.EqualFold(u.UserID, userID) {
			found := cloneUser(u)
			return &found, nil
		}
	}
	return nil, nil
}

func (r *memoryUserRepository) Update(ctx context.Context, user models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, u := range r.users {
		if strings.EqualFold(u.UserID, user.UserID) {
			next := cloneUsers(r.users)
			next[i] = cloneUser(user)
			r.users = next
			return nil
		}
	}
	return ErrNotFound
}

func cloneUser(u models.User) models.User {
	if u.DistrictCode != nil {
		code := *u.DistrictCode
		u.DistrictCode = &code
	}
	if u.PasswordHash != nil {
		u.PasswordHash = append([]byte(nil), u.PasswordHash...)
	}
	return u
}

func cloneUsers(users []models.User) []models.User {
	out := make([]models.User, len(users))
	for i, u := range users {
		out[i] = cloneUser(u)
	}
	return out
}
