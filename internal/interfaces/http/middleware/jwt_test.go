package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/bazaartech/backend/internal/infrastructure/auth"
	"github.com/bazaartech/backend/internal/infrastructure/config"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuthTestRouter(t *testing.T, cfg JWTMiddlewareConfig) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(JWTAuth(cfg))
	r.GET("/protected", func(c *gin.Context) {
		claims := GetClaims(c)
		require.NotNil(t, claims)
		c.JSON(http.StatusOK, gin.H{"user_id": claims.UserID})
	})
	r.GET("/public", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return r
}

func newTestJWTService() *auth.JWTService {
	return auth.NewJWTService(config.JWTConfig{
		Secret:                "test-secret-key-for-unit-tests-only",
		AccessTokenExpiration: time.Hour,
		Issuer:                "inventory-backend",
	})
}

func TestJWTAuth(t *testing.T) {
	jwtService := newTestJWTService()

	t.Run("valid token passes", func(t *testing.T) {
		r := newAuthTestRouter(t, JWTMiddlewareConfig{JWTService: jwtService})

		issued, err := jwtService.GenerateToken(auth.GenerateTokenInput{
			UserID: uuid.New(),
			Email:  "alice@example.com",
			Role:   "staff",
		})
		require.NoError(t, err)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer "+issued.AccessToken)
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("missing header is rejected", func(t *testing.T) {
		r := newAuthTestRouter(t, JWTMiddlewareConfig{JWTService: jwtService})

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/protected", nil))

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("garbage token is rejected", func(t *testing.T) {
		r := newAuthTestRouter(t, JWTMiddlewareConfig{JWTService: jwtService})

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer not-a-token")
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "INVALID_TOKEN")
	})

	t.Run("skip paths bypass authentication", func(t *testing.T) {
		r := newAuthTestRouter(t, JWTMiddlewareConfig{
			JWTService: jwtService,
			SkipPaths:  []string{"/public"},
		})

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/public", nil))

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("revoked token is rejected", func(t *testing.T) {
		blacklist := auth.NewInMemoryTokenBlacklist()
		r := newAuthTestRouter(t, JWTMiddlewareConfig{
			JWTService:     jwtService,
			TokenBlacklist: blacklist,
		})

		issued, err := jwtService.GenerateToken(auth.GenerateTokenInput{
			UserID: uuid.New(),
			Email:  "bob@example.com",
			Role:   "staff",
		})
		require.NoError(t, err)

		claims, err := jwtService.ValidateToken(issued.AccessToken)
		require.NoError(t, err)
		require.NoError(t, blacklist.Revoke(context.Background(), claims.ID, time.Hour))

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer "+issued.AccessToken)
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "TOKEN_REVOKED")
	})
}
