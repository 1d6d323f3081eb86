package handlers

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	apierrors "github.com/stwalsh4118/sdma/internal/errors"
	"github.com/stwalsh4118/sdma/internal/middleware"
	"github.com/stwalsh4118/sdma/internal/models"
	"github.com/stwalsh4118/sdma/internal/services"
)

var mobileRE = regexp.MustCompile(`^[0-9]{10}$`)

// RegisterValidators installs the custom binding tags on gin's validator
// and reports field errors by their JSON (or query) name.
func RegisterValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return fmt.Errorf("unexpected validator engine %T", binding.Validator.Engine())
	}

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "" {
			name = strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]
		}
		if name == "-" {
			return ""
		}
		return name
	})

	if err := v.RegisterValidation("mobile", func(fl validator.FieldLevel) bool {
		return mobileRE.MatchString(fl.Field().String())
	}); err != nil {
		return fmt.Errorf("failed to register mobile validator: %w", err)
	}
	if err := v.RegisterValidation("month", func(fl validator.FieldLevel) bool {
		m := fl.Field().Int()
		return m >= 1 && m <= 12
	}); err != nil {
		return fmt.Errorf("failed to register month validator: %w", err)
	}
	return nil
}

// currentUser returns the signed-in user, answering 401 when there is none.
func currentUser(c *gin.Context) (models.User, bool) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		apierrors.Unauthorized(c, "Login required")
	}
	return user, ok
}

// respondServiceError maps service sentinel errors to the error envelope.
// Anything unrecognized is an internal error reported as fallback.
func respondServiceError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, services.ErrInvalidIncident),
		errors.Is(err, services.ErrInvalidFilter),
		errors.Is(err, services.ErrInvalidPassword),
		errors.Is(err, services.ErrInvalidProfile),
		errors.Is(err, services.ErrInvalidCategory):
		apierrors.BadRequest(c, err.Error(), nil)
	case errors.Is(err, services.ErrForbidden):
		apierrors.Forbidden(c, err.Error())
	case errors.Is(err, services.ErrInvalidCredentials):
		apierrors.Unauthorized(c, err.Error())
	case errors.Is(err, services.ErrInvalidToken):
		apierrors.Unauthorized(c, "Invalid or expired token")
	case errors.Is(err, services.ErrUserNotFound),
		errors.Is(err, services.ErrCategoryNotFound),
		errors.Is(err, services.ErrSubtypeNotFound):
		apierrors.NotFound(c, err.Error())
	default:
		apierrors.InternalServerError(c, fallback, err)
	}
}

// parseMonth accepts "", "all" or 1-12; "all" and "" mean every month (0).
func parseMonth(s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, "all") {
		return 0, nil
	}
	m, err := strconv.Atoi(s)
	if err != nil || m < 1 || m > 12 {
		return 0, fmt.Errorf("month must be all or 1-12, got %q", s)
	}
	return m, nil
}

// parseIDParam reads a positive integer path parameter.
func parseIDParam(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		apierrors.BadRequest(c, "Invalid "+name, map[string]interface{}{name: c.Param(name)})
		return 0, false
	}
	return id, true
}
