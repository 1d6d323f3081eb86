package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stwalsh4118/sdma/internal/access"
	"github.com/stwalsh4118/sdma/internal/logger"
	"github.com/stwalsh4118/sdma/internal/metrics"
	"github.com/stwalsh4118/sdma/internal/models"
	"github.com/stwalsh4118/sdma/internal/repository"
	"golang.org/x/crypto/bcrypt"
)

const passwordSpecials = "@$!%*?&"

// Session is the result of a successful login.
type Session struct {
	ExpiresAt time.Time        `json:"expiresAt"`
	Token     string           `json:"token"`
	Menu      []access.Feature `json:"menu"`
	User      models.User      `json:"user"`
}

// ChangePasswordInput is the change password form.
type ChangePasswordInput struct {
	OldPassword     string
	NewPassword     string
	ConfirmPassword string
}

// AuthService defines the interface for sign-in and credentials.
type AuthService interface {
	// Login verifies credentials and issues a signed session token.
	// Returns ErrInvalidCredentials for unknown users or wrong passwords.
	Login(ctx context.Context, userID, password string) (Session, error)

	// Authenticate resolves a session token to the current user.
	// Returns ErrInvalidToken when the token is bad, expired, or names a
	// user that no longer exists.
	Authenticate(ctx context.Context, token string) (models.User, error)

	// ChangePassword replaces the user's password after verifying the old one.
	ChangePassword(ctx context.Context, user models.User, in ChangePasswordInput) error
}

type tokenClaims struct {
	Role models.Role `json:"role"`
	jwt.RegisteredClaims
}

type authService struct {
	users  repository.UserRepository
	secret []byte
	ttl    time.Duration
	cost   int
	now    func() time.Time
	log    *logger.Logger
}

// NewAuthService creates a new instance of AuthService. Tokens are signed
// with secret and expire after ttl.
func NewAuthService(users repository.UserRepository, secret string, ttl time.Duration, log *logger.Logger) AuthService {
	return &authService{
		users:  users,
		secret: []byte(secret),
		ttl:    ttl,
		cost:   bcrypt.DefaultCost,
		now:    time.Now,
		log:    log.Component("auth-service"),
	}
}

func (s *authService) Login(ctx context.Context, userID, password string) (Session, error) {
	userID = strings.TrimSpace(userID)
	user, err := s.users.FindByLogin(ctx, userID)
	if err != nil {
		s.log.Error("Failed to look up user", err, map[string]interface{}{"user_id": userID})
		return Session{}, fmt.Errorf("failed to look up user: %w", err)
	}
	if user == nil || bcrypt.CompareHashAndPassword(user.PasswordHash, []byte(password)) != nil {
		metrics.LoginAttemptsTotal.WithLabelValues("failure").Inc()
		s.log.Warn("Login failed", map[string]interface{}{"user_id": userID})
		return Session{}, ErrInvalidCredentials
	}

	now := s.now()
	expires := now.Add(s.ttl)
	claims := tokenClaims{
		Role: user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.UserID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expires),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		s.log.Error("Failed to sign token", err, map[string]interface{}{"user_id": user.UserID})
		return Session{}, fmt.Errorf("failed to sign token: %w", err)
	}

	metrics.LoginAttemptsTotal.WithLabelValues("success").Inc()
	s.log.Info("User signed in", map[string]interface{}{
		"user_id": user.UserID,
		"role":    user.Role.String(),
	})

	return Session{
		Token:     token,
		ExpiresAt: expires,
		User:      *user,
		Menu:      access.Menu(user.Role),
	}, nil
}

func (s *authService) Authenticate(ctx context.Context, token string) (models.User, error) {
	var claims tokenClaims
	_, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(s.now))
	if err != nil {
		return models.User{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	user, err := s.users.FindByLogin(ctx, claims.Subject)
	if err != nil {
		return models.User{}, fmt.Errorf("failed to look up user: %w", err)
	}
	if user == nil {
		return models.User{}, fmt.Errorf("%w: unknown subject %q", ErrInvalidToken, claims.Subject)
	}
	return *user, nil
}

func (s *authService) ChangePassword(ctx context.Context, user models.User, in ChangePasswordInput) error {
	if in.NewPassword != in.ConfirmPassword {
		return fmt.Errorf("%w: passwords do not match", ErrInvalidPassword)
	}
	if err := CheckPasswordPolicy(in.NewPassword); err != nil {
		return err
	}

	stored, err := s.users.FindByLogin(ctx, user.UserID)
	if err != nil {
		return fmt.Errorf("failed to look up user: %w", err)
	}
	if stored == nil {
		return ErrUserNotFound
	}
	if bcrypt.CompareHashAndPassword(stored.PasswordHash, []byte(in.OldPassword)) != nil {
		s.log.Warn("Password change refused", map[string]interface{}{"user_id": user.UserID})
		return fmt.Errorf("%w: old password is incorrect", ErrInvalidPassword)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.NewPassword), s.cost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	stored.PasswordHash = hash
	if err := s.users.Update(ctx, *stored); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("failed to store password: %w", err)
	}

	s.log.Info("Password changed", map[string]interface{}{"user_id": user.UserID})
	return nil
}

// CheckPasswordPolicy enforces the password rules: at least 8 characters
// drawn only from letters, digits and @$!%*?&, with at least one of each of
// lowercase, uppercase, digit and special.
func CheckPasswordPolicy(password string) error {
	if len(password) < 8 {
		return fmt.Errorf("%w: must be at least 8 characters", ErrInvalidPassword)
	}

	var lower, upper, digit, special bool
	for _, r := range password {
		switch {
		case r >= 'a' && r <= 'z':
			lower = true
		case r >= 'A' && r <= 'Z':
			upper = true
		case r >= '0' && r <= '9':
			digit = true
		case strings.ContainsRune(passwordSpecials, r):
			special = true
		default:
			return fmt.Errorf("%w: character %q is not allowed", ErrInvalidPassword, r)
		}
	}
	if !lower || !upper || !digit || !special {
		return fmt.Errorf("%w: needs a lowercase letter, an uppercase letter, a digit and one of %s",
			ErrInvalidPassword, passwordSpecials)
	}
	return nil
}

// SeedPasswords returns copies of users whose PasswordHash is set to the
// bcrypt hash of password.
func SeedPasswords(users []models.User, password string, cost int) ([]models.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash seed password: %w", err)
	}

	out := make([]models.User, len(users))
	for i, u := range users {
		u.PasswordHash = append([]byte(nil), hash...)
		out[i] = u
	}
	return out, nil
}
