package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/selin/campushub/internal/app/models/dto"
	"github.com/selin/campushub/internal/middleware"
	"github.com/selin/campushub/internal/pkg/apperrors"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// fakeAuthService returns canned results so controller behavior can be
// tested without a database.
type fakeAuthService struct {
	registerResp *dto.AuthResponse
	registerErr  error
	loginResp    *dto.AuthResponse
	loginErr     error
	meResp       *dto.MeResponse
	meErr        error
	profileResp  *dto.UserProfile
	profileErr   error
}

func (f *fakeAuthService) Register(_ context.Context, _ *dto.RegisterRequest) (*dto.AuthResponse, error) {
	return f.registerResp, f.registerErr
}

func (f *fakeAuthService) Login(_ context.Context, _ *dto.LoginRequest) (*dto.AuthResponse, error) {
	return f.loginResp, f.loginErr
}

func (f *fakeAuthService) Me(_ context.Context, _ int64) (*dto.MeResponse, error) {
	return f.meResp, f.meErr
}

func (f *fakeAuthService) UpdateProfile(_ context.Context, _ int64, _ *dto.UpdateProfileRequest) (*dto.UserProfile, error) {
	return f.profileResp, f.profileErr
}

func testProfile() dto.UserProfile {
	return dto.UserProfile{
		ID:        1,
		Name:      "Selin Demir",
		Email:     "selin@mail.edu",
		Role:      "student",
		IsActive:  true,
		CreatedAt: time.Now(),
	}
}

// asAuthenticated simulates JWTAuth having run for the given user.
func asAuthenticated(userID int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.ContextUserID, userID)
	}
}

func newAuthRouter(svc *fakeAuthService) *gin.Engine {
	controller := NewAuthController(svc)
	router := gin.New()
	router.POST("/auth/register", controller.Register)
	router.POST("/auth/login", controller.Login)
	router.GET("/auth/me", asAuthenticated(1), controller.Me)
	router.PUT("/auth/profile", asAuthenticated(1), controller.UpdateProfile)
	return router
}

func doJSON(router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestRegisterCreated(t *testing.T) {
	svc := &fakeAuthService{
		registerResp: &dto.AuthResponse{Token: "token123", ExpiresIn: 3600, User: testProfile()},
	}
	router := newAuthRouter(svc)

	w := doJSON(router, http.MethodPost, "/auth/register",
		`{"name":"Selin Demir","email":"selin@mail.edu","password":"sifre1234"}`)

	assert.Equal(t, http.StatusCreated, w.Code)

	var body dto.APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.True(t, body.Success)
	assert.NotContains(t, w.Body.String(), "sifre1234")
	assert.NotContains(t, w.Body.String(), "password")
}

func TestRegisterBindingErrors(t *testing.T) {
	router := newAuthRouter(&fakeAuthService{})

	tests := []struct {
		name string
		body string
	}{
		{"empty body", `{}`},
		{"bad email", `{"name":"Selin","email":"not-an-email","password":"sifre1234"}`},
		{"short password", `{"name":"Selin","email":"selin@mail.edu","password":"kisa"}`},
		{"semester out of range", `{"name":"Selin","email":"selin@mail.edu","password":"sifre1234","semester":9}`},
		{"malformed json", `{"name":`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doJSON(router, http.MethodPost, "/auth/register", tt.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc := &fakeAuthService{registerErr: apperrors.ErrEmailAlreadyExists}
	router := newAuthRouter(svc)

	w := doJSON(router, http.MethodPost, "/auth/register",
		`{"name":"Selin Demir","email":"selin@mail.edu","password":"sifre1234"}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLoginInvalidCredentials(t *testing.T) {
	svc := &fakeAuthService{loginErr: apperrors.ErrInvalidCredentials}
	router := newAuthRouter(svc)

	w := doJSON(router, http.MethodPost, "/auth/login",
		`{"email":"selin@mail.edu","password":"yanlis123"}`)

	assert.Equal(t, http.StatusUnauthorized, w.Code)

	var body dto.APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.False(t, body.Success)
}

func TestLoginDisabledAccount(t *testing.T) {
	svc := &fakeAuthService{loginErr: apperrors.ErrAccountDisabled}
	router := newAuthRouter(svc)

	w := doJSON(router, http.MethodPost, "/auth/login",
		`{"email":"selin@mail.edu","password":"sifre1234"}`)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestMeRequiresAuthContext(t *testing.T) {
	controller := NewAuthController(&fakeAuthService{})
	router := gin.New()
	router.GET("/auth/me", controller.Me)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/auth/me", nil))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestMeReturnsCounts(t *testing.T) {
	svc := &fakeAuthService{
		meResp: &dto.MeResponse{UserProfile: testProfile(), NoteCount: 3, BookmarkCount: 5},
	}
	router := newAuthRouter(svc)

	w := doJSON(router, http.MethodGet, "/auth/me", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"noteCount":3`)
	assert.Contains(t, w.Body.String(), `"bookmarkCount":5`)
}

func TestUpdateProfileValidation(t *testing.T) {
	router := newAuthRouter(&fakeAuthService{})

	w := doJSON(router, http.MethodPut, "/auth/profile", `{"avatarUrl":"not a url"}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdateProfileOK(t *testing.T) {
	profile := testProfile()
	profile.Name = "Selin Y."
	svc := &fakeAuthService{profileResp: &profile}
	router := newAuthRouter(svc)

	w := doJSON(router, http.MethodPut, "/auth/profile", `{"name":"Selin Y."}`)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Selin Y.")
}
