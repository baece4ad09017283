package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/selin/campushub/internal/app/models/dto"
	"github.com/selin/campushub/internal/pkg/apperrors"
	"github.com/selin/campushub/internal/pkg/logger"
)

// HandleAPIError maps domain errors to HTTP responses. Every controller
// funnels service errors through here so status codes stay consistent.
func HandleAPIError(c *gin.Context, err error) {
	var customErr *apperrors.CustomError
	if errors.As(err, &customErr) {
		handleSentinel(c, customErr.Err, customErr.Message)
		return
	}
	handleSentinel(c, err, "")
}

func handleSentinel(c *gin.Context, err error, message string) {
	msg := func(fallback string) string {
		if message != "" {
			return message
		}
		return fallback
	}

	switch {
	case errors.Is(err, apperrors.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, dto.NewErrorResponse(msg("Invalid credentials"),
			dto.NewErrorDetail(dto.ErrorCodeInvalidCredentials, "Invalid email or password")))
	case errors.Is(err, apperrors.ErrTokenExpired):
		c.JSON(http.StatusUnauthorized, dto.NewErrorResponse(msg("Token expired"),
			dto.NewErrorDetail(dto.ErrorCodeExpiredToken, "Token has expired")))
	case errors.Is(err, apperrors.ErrTokenInvalid), errors.Is(err, apperrors.ErrTokenNotFound):
		c.JSON(http.StatusUnauthorized, dto.NewErrorResponse(msg("Authentication required"),
			dto.NewErrorDetail(dto.ErrorCodeInvalidToken, "Invalid token")))
	case errors.Is(err, apperrors.ErrAccountDisabled):
		c.JSON(http.StatusForbidden, dto.NewErrorResponse(msg("Account disabled"),
			dto.NewErrorDetail(dto.ErrorCodeAccountDisabled, "This account has been deactivated")))
	case errors.Is(err, apperrors.ErrPermissionDenied), errors.Is(err, apperrors.ErrAdminImmutable):
		c.JSON(http.StatusForbidden, dto.NewErrorResponse(msg("Permission denied"),
			dto.NewErrorDetail(dto.ErrorCodeForbidden, "You don't have permission for this action")))
	case errors.Is(err, apperrors.ErrUserNotFound),
		errors.Is(err, apperrors.ErrNoteNotFound),
		errors.Is(err, apperrors.ErrJobNotFound),
		errors.Is(err, apperrors.ErrBookmarkNotFound),
		errors.Is(err, apperrors.ErrResourceNotFound):
		c.JSON(http.StatusNotFound, dto.NewErrorResponse(msg("Resource not found"),
			dto.NewErrorDetail(dto.ErrorCodeResourceNotFound, "The requested resource does not exist")))
	case errors.Is(err, apperrors.ErrEmailAlreadyExists):
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse(msg("Email already registered"),
			dto.NewErrorDetail(dto.ErrorCodeResourceAlreadyExists, "An account with this email already exists")))
	case errors.Is(err, apperrors.ErrAlreadyApplied):
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse(msg("Already applied"),
			dto.NewErrorDetail(dto.ErrorCodeBusinessRule, "You have already applied to this job")))
	case errors.Is(err, apperrors.ErrAlreadyBookmarked):
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse(msg("Already bookmarked"),
			dto.NewErrorDetail(dto.ErrorCodeBusinessRule, "This note is already bookmarked")))
	case errors.Is(err, apperrors.ErrDeadlinePassed):
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse(msg("Applications closed"),
			dto.NewErrorDetail(dto.ErrorCodeBusinessRule, "This posting is no longer accepting applications")))
	case errors.Is(err, apperrors.ErrFileMissing):
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse(msg("File required"),
			dto.NewErrorDetail(dto.ErrorCodeInvalidRequest, "A file must be attached to the upload")))
	case errors.Is(err, apperrors.ErrFileTooLarge):
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse(msg("File too large"),
			dto.NewErrorDetail(dto.ErrorCodeInvalidRequest, "The uploaded file exceeds the size limit")))
	case errors.Is(err, apperrors.ErrFileType):
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse(msg("Unsupported file type"),
			dto.NewErrorDetail(dto.ErrorCodeInvalidRequest, "Only PDF, DOC, DOCX, JPEG and PNG files are accepted")))
	case errors.Is(err, apperrors.ErrValidationFailed), errors.Is(err, apperrors.ErrBadRequest):
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse(msg("Validation failed"),
			dto.NewErrorDetail(dto.ErrorCodeValidationFailed, msg("Validation failed"))))
	case errors.Is(err, apperrors.ErrUploadFailed):
		c.JSON(http.StatusInternalServerError, dto.NewErrorResponse(msg("Upload failed"),
			dto.NewErrorDetail(dto.ErrorCodeUploadFailed, "The file could not be stored")))
	case errors.Is(err, apperrors.ErrDeleteFailed):
		c.JSON(http.StatusInternalServerError, dto.NewErrorResponse(msg("Delete failed"),
			dto.NewErrorDetail(dto.ErrorCodeInternalServer, "The stored file could not be removed")))
	default:
		logger.Error().Err(err).Str("path", c.FullPath()).Msg("Unhandled API error")
		c.JSON(http.StatusInternalServerError, dto.NewErrorResponse("Internal server error",
			dto.NewErrorDetail(dto.ErrorCodeInternalServer, "Internal server error")))
	}
}

// HandleBindingError converts request binding failures into a 400 with
// per-field details.
func HandleBindingError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, dto.NewErrorResponse("Invalid request", dto.FromValidationError(err)...))
}
