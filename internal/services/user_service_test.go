package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/stwalsh4118/sdma/internal/logger"
	"github.com/stwalsh4118/sdma/internal/models"
	"github.com/stwalsh4118/sdma/internal/repository"
	"github.com/stwalsh4118/sdma/internal/taxonomy"
)

func newUserService(users []models.User) UserService {
	return NewUserService(repository.NewMemoryUserRepository(users), testStore(), logger.Nop())
}

func validProfile() ProfileInput {
	return ProfileInput{
		Name:        " Collector Raipur ",
		DisplayName: "DM Raipur",
		Designation: "Collector & District Magistrate",
		Mobile:      "9876543210",
		Email:       "dm.raipur@example.gov.in",
	}
}

func TestUpdateProfile_Success(t *testing.T) {
	service := newUserService(taxonomy.DefaultSeed().Users)
	ctx := context.Background()

	updated, err := service.UpdateProfile(ctx, models.User{UserID: "raipur"}, validProfile())

	require.NoError(t, err)
	assert.Equal(t, "Collector Raipur", updated.Name)
	assert.Equal(t, "DM Raipur", updated.DisplayName)
	assert.Equal(t, 21, updated.District())

	profile, err := service.Profile(ctx, models.User{UserID: "raipur"})
	require.NoError(t, err)
	assert.Equal(t, "9876543210", profile.Mobile)
	assert.Equal(t, models.RoleDistrict, profile.Role)
}

func TestUpdateProfile_Validation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*ProfileInput)
	}{
		{"short mobile", func(in *ProfileInput) { in.Mobile = "98765" }},
		{"letters in mobile", func(in *ProfileInput) { in.Mobile = "98765abcde" }},
		{"missing mobile", func(in *ProfileInput) { in.Mobile = "" }},
		{"email without domain", func(in *ProfileInput) { in.Email = "dm.raipur@" }},
		{"email with space", func(in *ProfileInput) { in.Email = "dm raipur@example.in" }},
		{"missing email", func(in *ProfileInput) { in.Email = " " }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockUserRepository)
			service := NewUserService(mockRepo, testStore(), logger.Nop())

			in := validProfile()
			tt.mutate(&in)
			_, err := service.UpdateProfile(context.Background(), models.User{UserID: "raipur"}, in)

			assert.ErrorIs(t, err, ErrInvalidProfile)
			mockRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
		})
	}
}

func TestUpdateProfile_UnknownUser(t *testing.T) {
	service := newUserService(taxonomy.DefaultSeed().Users)

	_, err := service.UpdateProfile(context.Background(), models.User{UserID: "ghost"}, validProfile())

	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestListDistrictUsers(t *testing.T) {
	users := append(taxonomy.DefaultSeed().Users, models.User{
		ID:           99,
		UserID:       "retired",
		Role:         models.RoleDistrict,
		DistrictCode: models.IntPtr(77),
	})
	service := newUserService(users)

	list, err := service.ListDistrictUsers(context.Background())

	require.NoError(t, err)
	require.Len(t, list, 6)
	for _, u := range list {
		assert.NotNil(t, u.DistrictCode)
		assert.NotEqual(t, "retired", u.UserID)
	}
}

func TestUpdateDistrictUser(t *testing.T) {
	service := newUserService(taxonomy.DefaultSeed().Users)
	ctx := context.Background()

	updated, err := service.UpdateDistrictUser(ctx, "korba", validProfile())
	require.NoError(t, err)
	assert.Equal(t, "korba", updated.UserID)
	assert.Equal(t, "dm.raipur@example.gov.in", updated.Email)

	_, err = service.UpdateDistrictUser(ctx, "state", validProfile())
	assert.ErrorIs(t, err, ErrUserNotFound)

	_, err = service.UpdateDistrictUser(ctx, "ghost", validProfile())
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestUpdateDistrictUser_RepositoryError(t *testing.T) {
	mockRepo := new(MockUserRepository)
	service := NewUserService(mockRepo, testStore(), logger.Nop())
	ctx := context.Background()

	korba := taxonomy.DefaultSeed().Users[7]
	writeErr := errors.New("read-only store")
	mockRepo.On("FindByLogin", ctx, "korba").Return(&korba, nil)
	mockRepo.On("Update", ctx, mock.AnythingOfType("models.User")).Return(writeErr)

	_, err := service.UpdateDistrictUser(ctx, "korba", validProfile())

	assert.ErrorIs(t, err, writeErr)
	mockRepo.AssertExpectations(t)
}
