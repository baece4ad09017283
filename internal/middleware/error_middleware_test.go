package middleware

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/selin/campushub/internal/app/models/dto"
	"github.com/selin/campushub/internal/pkg/apperrors"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func runHandleAPIError(t *testing.T, err error) (int, dto.APIResponse) {
	t.Helper()

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/test", nil)

	HandleAPIError(c, err)

	var body dto.APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return w.Code, body
}

func TestHandleAPIErrorStatusMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"invalid credentials", apperrors.ErrInvalidCredentials, http.StatusUnauthorized},
		{"expired token", apperrors.ErrTokenExpired, http.StatusUnauthorized},
		{"invalid token", apperrors.ErrTokenInvalid, http.StatusUnauthorized},
		{"account disabled", apperrors.ErrAccountDisabled, http.StatusForbidden},
		{"permission denied", apperrors.ErrPermissionDenied, http.StatusForbidden},
		{"admin immutable", apperrors.ErrAdminImmutable, http.StatusForbidden},
		{"user not found", apperrors.ErrUserNotFound, http.StatusNotFound},
		{"note not found", apperrors.ErrNoteNotFound, http.StatusNotFound},
		{"job not found", apperrors.ErrJobNotFound, http.StatusNotFound},
		{"bookmark not found", apperrors.ErrBookmarkNotFound, http.StatusNotFound},
		{"duplicate email", apperrors.ErrEmailAlreadyExists, http.StatusBadRequest},
		{"duplicate application", apperrors.ErrAlreadyApplied, http.StatusBadRequest},
		{"duplicate bookmark", apperrors.ErrAlreadyBookmarked, http.StatusBadRequest},
		{"deadline passed", apperrors.ErrDeadlinePassed, http.StatusBadRequest},
		{"file missing", apperrors.ErrFileMissing, http.StatusBadRequest},
		{"file too large", apperrors.ErrFileTooLarge, http.StatusBadRequest},
		{"file type", apperrors.ErrFileType, http.StatusBadRequest},
		{"validation failed", apperrors.ErrValidationFailed, http.StatusBadRequest},
		{"upload failed", apperrors.ErrUploadFailed, http.StatusInternalServerError},
		{"delete failed", apperrors.ErrDeleteFailed, http.StatusInternalServerError},
		{"unknown error", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, body := runHandleAPIError(t, tt.err)

			assert.Equal(t, tt.wantStatus, status)
			assert.False(t, body.Success)
			assert.NotEmpty(t, body.Errors)
		})
	}
}

func TestHandleAPIErrorCustomMessage(t *testing.T) {
	err := apperrors.NewValidationError("Semester must be between 1 and 12")

	status, body := runHandleAPIError(t, err)

	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "Semester must be between 1 and 12", body.Message)
}

func TestHandleAPIErrorWrappedSentinel(t *testing.T) {
	wrapped := errors.New("create application: " + apperrors.ErrAlreadyApplied.Error())

	// Plain string concatenation does not preserve the chain, a real wrap does.
	status, _ := runHandleAPIError(t, wrapped)
	assert.Equal(t, http.StatusInternalServerError, status)

	status, body := runHandleAPIError(t, apperrors.NewCustomError(apperrors.ErrAlreadyApplied, "Already applied"))
	assert.Equal(t, http.StatusBadRequest, status)
	assert.False(t, body.Success)
}

func TestHandleBindingError(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/test", nil)

	HandleBindingError(c, errors.New("invalid character 'x' looking for beginning of value"))

	var body dto.APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.False(t, body.Success)
	assert.NotEmpty(t, body.Errors)
}
