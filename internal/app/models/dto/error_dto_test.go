package dto

import (
	"errors"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromValidationErrorFieldDetails(t *testing.T) {
	type payload struct {
		Email    string `validate:"required,email"`
		Semester int    `validate:"gte=1,lte=8"`
	}

	v := validator.New()
	err := v.Struct(payload{Email: "not-an-email", Semester: 12})
	require.Error(t, err)

	details := FromValidationError(err)
	require.Len(t, details, 2)

	for _, d := range details {
		assert.Equal(t, ErrorCodeValidationFailed, d.Code)
		assert.NotEmpty(t, d.Field)
		assert.NotEmpty(t, d.Message)
	}
	assert.Equal(t, "Email", details[0].Field)
	assert.Contains(t, details[0].Message, "valid email address")
	assert.Equal(t, "Semester", details[1].Field)
	assert.Contains(t, details[1].Message, "at most 8")
}

func TestFromValidationErrorPlainError(t *testing.T) {
	details := FromValidationError(errors.New("unexpected EOF"))

	require.Len(t, details, 1)
	assert.Equal(t, ErrorCodeValidationFailed, details[0].Code)
	assert.Equal(t, "unexpected EOF", details[0].Message)
	assert.Empty(t, details[0].Field)
}

func TestNewErrorResponse(t *testing.T) {
	resp := NewErrorResponse("Validation failed",
		NewErrorDetail(ErrorCodeValidationFailed, "title is required").WithField("title"))

	assert.False(t, resp.Success)
	assert.Equal(t, "Validation failed", resp.Message)
	require.Len(t, resp.Errors, 1)
	assert.Equal(t, "title", resp.Errors[0].Field)
}
