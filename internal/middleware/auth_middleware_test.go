package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/selin/campushub/internal/pkg/auth"
)

func newTestAuthMiddleware(expiry time.Duration) *AuthMiddleware {
	jwtService := auth.NewJWTService(auth.JWTConfig{
		SecretKey:   "test-secret",
		TokenExpiry: expiry,
		TokenIssuer: "campushub-test",
	})
	// Token validation failures abort before the repository is touched.
	return NewAuthMiddleware(jwtService, nil)
}

func performAuthRequest(m *AuthMiddleware, authHeader string) *httptest.ResponseRecorder {
	router := gin.New()
	router.GET("/protected", m.JWTAuth(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestJWTAuthMissingHeader(t *testing.T) {
	m := newTestAuthMiddleware(time.Hour)

	w := performAuthRequest(m, "")

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestJWTAuthMalformedHeader(t *testing.T) {
	m := newTestAuthMiddleware(time.Hour)

	for _, header := range []string{"Basic abc123", "Bearer", "just-a-token"} {
		w := performAuthRequest(m, header)
		assert.Equal(t, http.StatusUnauthorized, w.Code, "header %q", header)
	}
}

func TestJWTAuthInvalidToken(t *testing.T) {
	m := newTestAuthMiddleware(time.Hour)

	w := performAuthRequest(m, "Bearer not.a.token")

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestJWTAuthExpiredToken(t *testing.T) {
	m := newTestAuthMiddleware(-time.Minute)

	token, _, err := auth.NewJWTService(auth.JWTConfig{
		SecretKey:   "test-secret",
		TokenExpiry: -time.Minute,
		TokenIssuer: "campushub-test",
	}).GenerateToken(1, "student@mail.edu", "student")
	assert.NoError(t, err)

	w := performAuthRequest(m, "Bearer "+token)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "expired")
}

func TestJWTAuthWrongSecret(t *testing.T) {
	m := newTestAuthMiddleware(time.Hour)

	token, _, err := auth.NewJWTService(auth.JWTConfig{
		SecretKey:   "other-secret",
		TokenExpiry: time.Hour,
		TokenIssuer: "campushub-test",
	}).GenerateToken(1, "student@mail.edu", "student")
	assert.NoError(t, err)

	w := performAuthRequest(m, "Bearer "+token)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestOptionalJWTAuthAnonymous(t *testing.T) {
	m := newTestAuthMiddleware(time.Hour)

	router := gin.New()
	router.GET("/browse", m.OptionalJWTAuth(), func(c *gin.Context) {
		_, ok := c.Get(ContextRole)
		assert.False(t, ok)
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/browse", nil))

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestOptionalJWTAuthGarbageToken(t *testing.T) {
	m := newTestAuthMiddleware(time.Hour)

	router := gin.New()
	router.GET("/browse", m.OptionalJWTAuth(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/browse", nil)
	req.Header.Set("Authorization", "Bearer not.a.token")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	// Unverifiable tokens degrade to an anonymous request.
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRoleRequired(t *testing.T) {
	m := newTestAuthMiddleware(time.Hour)

	router := gin.New()
	router.GET("/admin", func(c *gin.Context) {
		c.Set(ContextRole, "student")
	}, m.RoleRequired("admin"), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	router.GET("/admin-ok", func(c *gin.Context) {
		c.Set(ContextRole, "admin")
	}, m.RoleRequired("admin"), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	router.GET("/admin-norole", m.RoleRequired("admin"), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/admin", nil))
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/admin-ok", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/admin-norole", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestCurrentUserID(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())

	_, ok := CurrentUserID(c)
	assert.False(t, ok)

	c.Set(ContextUserID, int64(42))
	id, ok := CurrentUserID(c)
	assert.True(t, ok)
	assert.Equal(t, int64(42), id)
}
