package middleware_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"taskboard/internal/auth"
	"taskboard/internal/middleware"
	"taskboard/internal/model"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type stubUserRepo struct{}

func (stubUserRepo) Create(ctx context.Context, user *model.User) error   { return nil }
func (stubUserRepo) FindAll(ctx context.Context) ([]model.User, error)    { return nil, nil }
func (stubUserRepo) Update(ctx context.Context, user *model.User) error   { return nil }
func (stubUserRepo) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	return false, nil
}
func (stubUserRepo) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	return nil, nil
}
func (stubUserRepo) GetByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	return nil, nil
}

func newTokenService(t *testing.T, accessTTL time.Duration) *auth.TokenService {
	service, err := auth.NewTokenService(auth.Config{
		AccessSecret:  "test-access-secret",
		RefreshSecret: "test-refresh-secret",
		AccessTTL:     accessTTL,
	}, auth.NewMemoryRegistry(), stubUserRepo{})
	assert.NoError(t, err)
	return service
}

func setupRouter(tokens *auth.TokenService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.Default()

	protected := r.Group("/protected")
	protected.Use(middleware.AuthMiddleware(tokens))

	protected.GET("/resource", func(c *gin.Context) {
		userID, exists := c.Get(middleware.UserIDKey)
		if !exists {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "User ID not found in context"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"message": "Access granted",
			"user_id": userID,
		})
	})

	return r
}

func TestAuthMiddleware_ValidToken(t *testing.T) {
	tokens := newTokenService(t, 0)
	router := setupRouter(tokens)

	user := &model.User{ID: uuid.New(), Name: "Test User", Email: "test@example.com"}
	pair, err := tokens.IssueTokens(user)
	assert.NoError(t, err)

	req, _ := http.NewRequest("GET", "/protected/resource", nil)
	req.Header.Set("Authorization", "Bearer "+pair.AccessToken)

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), "Access granted")
	assert.Contains(t, resp.Body.String(), user.ID.String())
}

func TestAuthMiddleware_NoAuthHeader(t *testing.T) {
	router := setupRouter(newTokenService(t, 0))

	req, _ := http.NewRequest("GET", "/protected/resource", nil)

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusUnauthorized, resp.Code)
	assert.Contains(t, resp.Body.String(), "Authorization header is required")
}

func TestAuthMiddleware_InvalidAuthFormat(t *testing.T) {
	router := setupRouter(newTokenService(t, 0))

	req, _ := http.NewRequest("GET", "/protected/resource", nil)
	req.Header.Set("Authorization", "InvalidFormat token123")

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusUnauthorized, resp.Code)
	assert.Contains(t, resp.Body.String(), "Authorization header format must be Bearer {token}")
}

func TestAuthMiddleware_InvalidToken(t *testing.T) {
	router := setupRouter(newTokenService(t, 0))

	req, _ := http.NewRequest("GET", "/protected/resource", nil)
	req.Header.Set("Authorization", "Bearer invalid-token")

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusUnauthorized, resp.Code)
	assert.Contains(t, resp.Body.String(), "Invalid or expired token")
}

func TestAuthMiddleware_ExpiredToken(t *testing.T) {
	tokens := newTokenService(t, -time.Minute)
	router := setupRouter(tokens)

	pair, err := tokens.IssueTokens(&model.User{ID: uuid.New(), Email: "test@example.com"})
	assert.NoError(t, err)

	req, _ := http.NewRequest("GET", "/protected/resource", nil)
	req.Header.Set("Authorization", "Bearer "+pair.AccessToken)

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusUnauthorized, resp.Code)
	assert.Contains(t, resp.Body.String(), "Invalid or expired token")
}
