package services

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/stwalsh4118/sdma/internal/logger"
	"github.com/stwalsh4118/sdma/internal/models"
	"github.com/stwalsh4118/sdma/internal/repository"
	"github.com/stwalsh4118/sdma/internal/taxonomy"
)

var (
	mobilePattern = regexp.MustCompile(`^[0-9]{10}$`)
	emailPattern  = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
)

// ProfileInput holds the editable account fields.
type ProfileInput struct {
	Name        string
	DisplayName string
	Designation string
	Mobile      string
	Email       string
}

// UserService defines the interface for profiles and district accounts.
type UserService interface {
	// Profile returns the stored account of user.
	Profile(ctx context.Context, user models.User) (models.User, error)

	// UpdateProfile edits the signed-in user's own account.
	UpdateProfile(ctx context.Context, user models.User, in ProfileInput) (models.User, error)

	// ListDistrictUsers returns the accounts tied to a known district.
	ListDistrictUsers(ctx context.Context) ([]models.User, error)

	// UpdateDistrictUser edits a district account.
	// Returns ErrUserNotFound when userID is not a district account.
	UpdateDistrictUser(ctx context.Context, userID string, in ProfileInput) (models.User, error)
}

type userService struct {
	users repository.UserRepository
	ref   *taxonomy.Store
	log   *logger.Logger
}

// NewUserService creates a new instance of UserService.
func NewUserService(users repository.UserRepository, ref *taxonomy.Store, log *logger.Logger) UserService {
	return &userService{
		users: users,
		ref:   ref,
		log:   log.Component("user-service"),
	}
}

func cleanProfile(in ProfileInput) (ProfileInput, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.DisplayName = strings.TrimSpace(in.DisplayName)
	in.Designation = strings.TrimSpace(in.Designation)
	in.Mobile = strings.TrimSpace(in.Mobile)
	in.Email = strings.TrimSpace(in.Email)

	if !mobilePattern.MatchString(in.Mobile) {
		return in, fmt.Errorf("%w: mobile must be exactly 10 digits", ErrInvalidProfile)
	}
	if !emailPattern.MatchString(in.Email) {
		return in, fmt.Errorf("%w: email address is not valid", ErrInvalidProfile)
	}
	return in, nil
}

func (s *userService) find(ctx context.Context, userID string) (models.User, error) {
	user, err := s.users.FindByLogin(ctx, userID)
	if err != nil {
		return models.User{}, fmt.Errorf("failed to look up user: %w", err)
	}
	if user == nil {
		return models.User{}, fmt.Errorf("%w: %s", ErrUserNotFound, userID)
	}
	return *user, nil
}

func (s *userService) apply(ctx context.Context, user models.User, in ProfileInput) (models.User, error) {
	user.Name = in.Name
	user.DisplayName = in.DisplayName
	user.Designation = in.Designation
	user.Mobile = in.Mobile
	user.Email = in.Email

	if err := s.users.Update(ctx, user); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return models.User{}, fmt.Errorf("%w: %s", ErrUserNotFound, user.UserID)
		}
		return models.User{}, fmt.Errorf("failed to update user: %w", err)
	}
	return user, nil
}

func (s *userService) Profile(ctx context.Context, user models.User) (models.User, error) {
	return s.find(ctx, user.UserID)
}

func (s *userService) UpdateProfile(ctx context.Context, user models.User, in ProfileInput) (models.User, error) {
	in, err := cleanProfile(in)
	if err != nil {
		return models.User{}, err
	}

	stored, err := s.find(ctx, user.UserID)
	if err != nil {
		return models.User{}, err
	}

	updated, err := s.apply(ctx, stored, in)
	if err != nil {
		return models.User{}, err
	}

	s.log.Info("Profile updated", map[string]interface{}{"user_id": updated.UserID})
	return updated, nil
}

func (s *userService) isDistrictUser(u models.User) bool {
	if u.DistrictCode == nil {
		return false
	}
	_, ok := s.ref.District(*u.DistrictCode)
	return ok
}

func (s *userService) ListDistrictUsers(ctx context.Context) ([]models.User, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	out := make([]models.User, 0, len(users))
	for _, u := range users {
		if s.isDistrictUser(u) {
			out = append(out, u)
		}
	}
	return out, nil
}

func (s *userService) UpdateDistrictUser(ctx context.Context, userID string, in ProfileInput) (models.User, error) {
	in, err := cleanProfile(in)
	if err != nil {
		return models.User{}, err
	}

	stored, err := s.find(ctx, userID)
	if err != nil {
		return models.User{}, err
	}
	if !s.isDistrictUser(stored) {
		return models.User{}, fmt.Errorf("%w: %s is not a district account", ErrUserNotFound, userID)
	}

	updated, err := s.apply(ctx, stored, in)
	if err != nil {
		return models.User{}, err
	}

	s.log.Info("District user updated", map[string]interface{}{
		"user_id":       updated.UserID,
		"district_code": updated.District(),
	})
	return updated, nil
}
