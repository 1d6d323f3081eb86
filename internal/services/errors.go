package services

import "errors"

// Service-level errors
var (
	ErrInvalidIncident    = errors.New("invalid incident")
	ErrInvalidFilter      = errors.New("invalid report filter")
	ErrForbidden          = errors.New("operation not allowed for this user")
	ErrInvalidCredentials = errors.New("invalid user id or password")
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrInvalidPassword    = errors.New("password does not meet the policy")
	ErrInvalidProfile     = errors.New("invalid profile details")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCategory    = errors.New("invalid category")
	ErrCategoryNotFound   = errors.New("category not found")
	ErrSubtypeNotFound    = errors.New("subtype not found")
)
