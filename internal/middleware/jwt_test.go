package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/noah-isme/uni-records/internal/models"
	"github.com/noah-isme/uni-records/internal/service"
)

const guardSecret = "middleware-test-secret"

func guardedRouter(t *testing.T) (*gin.Engine, *bool) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	authSvc := service.NewAuthService(nil, zap.NewNop(), service.AuthConfig{
		Secret: guardSecret,
		Issuer: "uni-records",
	})

	reached := false
	r := gin.New()
	r.GET("/me", JWT(authSvc), func(c *gin.Context) {
		reached = true
		claims := CurrentStudent(c)
		require.NotNil(t, claims)
		c.JSON(http.StatusOK, gin.H{"student_id": claims.StudentID})
	})
	return r, &reached
}

func signSessionToken(t *testing.T, secret string) string {
	t.Helper()
	now := time.Now().UTC()
	claims := &models.JWTClaims{
		StudentID: "123456",
		Email:     "jane.doe@university.com",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "123456",
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func TestJWTRejectsMissingHeader(t *testing.T) {
	r, reached := guardedRouter(t)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/me", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "UNAUTHORIZED")
	assert.False(t, *reached)
}

func TestJWTRejectsNonBearerScheme(t *testing.T) {
	r, reached := guardedRouter(t)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Basic amFuZTpwYXNz")
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusUnauthorized, w.Code)
	assert.False(t, *reached)
}

func TestJWTRejectsGarbageToken(t *testing.T) {
	r, reached := guardedRouter(t)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusUnauthorized, w.Code)
	assert.False(t, *reached)
}

func TestJWTRejectsForgedToken(t *testing.T) {
	r, reached := guardedRouter(t)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+signSessionToken(t, "some-other-secret"))
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusUnauthorized, w.Code)
	assert.False(t, *reached)
}

func TestJWTAcceptsValidToken(t *testing.T) {
	r, reached := guardedRouter(t)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+signSessionToken(t, guardSecret))
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "123456")
	assert.True(t, *reached)
}
