package handlers

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	apierrors "github.com/stwalsh4118/sdma/internal/errors"
	"github.com/stwalsh4118/sdma/internal/logger"
	"github.com/stwalsh4118/sdma/internal/middleware"
	"github.com/stwalsh4118/sdma/internal/repository"
	"github.com/stwalsh4118/sdma/internal/services"
	"github.com/stwalsh4118/sdma/internal/taxonomy"
	"golang.org/x/crypto/bcrypt"
)

const testPassword = "sadmin"

var testYears = []int{2020, 2021, 2022, 2023, 2024, 2025}

// setupAPI wires the full API over in-memory storage seeded with the demo
// data, the way the server does.
func setupAPI(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	require.NoError(t, RegisterValidators())

	log := logger.Nop()
	seed := taxonomy.DefaultSeed()
	ref := taxonomy.NewStore(seed)

	users, err := services.SeedPasswords(seed.Users, testPassword, bcrypt.MinCost)
	require.NoError(t, err)

	userRepo := repository.NewMemoryUserRepository(users)
	incidentRepo := repository.NewMemoryIncidentRepository(taxonomy.SampleIncidents())
	categoryRepo := repository.NewCategoryRepository(repository.NewMemoryCollectionStore(), seed)

	authService := services.NewAuthService(userRepo, "handler-test-secret", time.Hour, log)

	router := gin.New()
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger(log))
	router.Use(middleware.Recovery(log))

	RegisterRoutes(router.Group("/api/v1"), Handlers{
		Auth:       NewAuthHandler(authService),
		Users:      NewUserHandler(services.NewUserService(userRepo, ref, log)),
		Reference:  NewReferenceHandler(ref, testYears, 2024),
		Reports:    NewReportHandler(services.NewReportService(incidentRepo, ref, testYears, 2024, log)),
		Incidents:  NewIncidentHandler(services.NewIncidentService(incidentRepo, ref, testYears, log)),
		Categories: NewCategoryHandler(services.NewCategoryService(categoryRepo, log)),
	}, authService)

	return router
}

// doRequest sends a request with an optional JSON body and bearer token.
func doRequest(t *testing.T, router *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

// login signs in a seeded user and returns the session token.
func login(t *testing.T, router *gin.Engine, userID string) string {
	t.Helper()

	w := doRequest(t, router, http.MethodPost, "/api/v1/auth/login", "", LoginRequest{UserID: userID, Password: testPassword})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var session services.Session
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &session))
	require.NotEmpty(t, session.Token)
	return session.Token
}

// decodeError decodes the error envelope of a failed response.
func decodeError(t *testing.T, w *httptest.ResponseRecorder) apierrors.ErrorDetail {
	t.Helper()

	var response apierrors.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	return response.Error
}
