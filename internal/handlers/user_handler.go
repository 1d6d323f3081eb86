package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/stwalsh4118/sdma/internal/access"
	apierrors "github.com/stwalsh4118/sdma/internal/errors"
	"github.com/stwalsh4118/sdma/internal/models"
	"github.com/stwalsh4118/sdma/internal/services"
)

// UserHandler handles profile and district account endpoints.
type UserHandler struct {
	service services.UserService
}

// NewUserHandler creates a new UserHandler instance.
func NewUserHandler(service services.UserService) *UserHandler {
	return &UserHandler{service: service}
}

// ProfileRequest is the body of PUT /api/v1/me and PUT /api/v1/users/:userId.
type ProfileRequest struct {
	Name        string `json:"name" binding:"required"`
	DisplayName string `json:"displayName"`
	Designation string `json:"designation"`
	Mobile      string `json:"mobile" binding:"required,mobile"`
	Email       string `json:"email" binding:"required"`
}

func (r ProfileRequest) input() services.ProfileInput {
	return services.ProfileInput{
		Name:        r.Name,
		DisplayName: r.DisplayName,
		Designation: r.Designation,
		Mobile:      r.Mobile,
		Email:       r.Email,
	}
}

// ProfileResponse is a user account with the menu its role sees.
type ProfileResponse struct {
	User models.User      `json:"user"`
	Menu []access.Feature `json:"menu"`
}

// UsersResponse lists district accounts.
type UsersResponse struct {
	Users []models.User `json:"users"`
	Count int           `json:"count"`
}

// Me handles GET /api/v1/me.
func (h *UserHandler) Me(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	profile, err := h.service.Profile(c.Request.Context(), user)
	if err != nil {
		respondServiceError(c, err, "Failed to load profile")
		return
	}

	c.JSON(http.StatusOK, ProfileResponse{User: profile, Menu: access.Menu(profile.Role)})
}

// UpdateMe handles PUT /api/v1/me.
func (h *UserHandler) UpdateMe(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var req ProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BindError(c, err)
		return
	}

	updated, err := h.service.UpdateProfile(c.Request.Context(), user, req.input())
	if err != nil {
		respondServiceError(c, err, "Failed to update profile")
		return
	}

	c.JSON(http.StatusOK, ProfileResponse{User: updated, Menu: access.Menu(updated.Role)})
}

// List handles GET /api/v1/users.
func (h *UserHandler) List(c *gin.Context) {
	users, err := h.service.ListDistrictUsers(c.Request.Context())
	if err != nil {
		respondServiceError(c, err, "Failed to list users")
		return
	}

	c.JSON(http.StatusOK, UsersResponse{Users: users, Count: len(users)})
}

// Update handles PUT /api/v1/users/:userId.
func (h *UserHandler) Update(c *gin.Context) {
	var req ProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BindError(c, err)
		return
	}

	updated, err := h.service.UpdateDistrictUser(c.Request.Context(), c.Param("userId"), req.input())
	if err != nil {
		respondServiceError(c, err, "Failed to update user")
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": updated})
}
