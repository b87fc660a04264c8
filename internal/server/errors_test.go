package server

import (
	"errors"
	"net/http"
	"testing"

	companydomain "github.com/brightsales/atlas/internal/company/domain"
	opportunitydomain "github.com/brightsales/atlas/internal/opportunity/domain"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestMapError_ValidationSentinel(t *testing.T) {
	status, payload := mapError(companydomain.ErrInvalidName)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "validation_error", payload.Type)
	if assert.Len(t, payload.Errors, 1) {
		assert.Equal(t, "name", payload.Errors[0].Field)
		assert.Equal(t, "invalid_name", payload.Errors[0].Code)
	}
}

func TestMapError_StructuredValidation(t *testing.T) {
	status, payload := mapError(newValidationError("companyId", "invalid_company", "unknown company"))
	assert.Equal(t, http.StatusBadRequest, status)
	if assert.Len(t, payload.Errors, 1) {
		assert.Equal(t, "companyId", payload.Errors[0].Field)
	}
}

func TestMapError_NotFound(t *testing.T) {
	for _, err := range []error{
		companydomain.ErrNotFound,
		opportunitydomain.ErrNotFound,
		gorm.ErrRecordNotFound,
	} {
		status, payload := mapError(err)
		assert.Equal(t, http.StatusNotFound, status)
		assert.Equal(t, "not_found", payload.Type)
	}
}

func TestMapError_ForeignKeyViolation(t *testing.T) {
	status, payload := mapError(gorm.ErrForeignKeyViolated)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "validation_error", payload.Type)
	if assert.Len(t, payload.Errors, 1) {
		assert.Equal(t, "reference", payload.Errors[0].Field)
		assert.Equal(t, "invalid_reference", payload.Errors[0].Code)
	}
}

func TestMapError_DuplicateKey(t *testing.T) {
	status, payload := mapError(gorm.ErrDuplicatedKey)
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "conflict", payload.Type)

	status, _ = mapError(errors.New("UNIQUE constraint failed: users.email"))
	assert.Equal(t, http.StatusConflict, status)
}

func TestMapError_Unknown(t *testing.T) {
	status, payload := mapError(errors.New("disk on fire"))
	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Equal(t, "internal_error", payload.Type)
	assert.Equal(t, "internal server error", payload.Message)
}

func TestValidationErrorField(t *testing.T) {
	assert.Equal(t, "request", validationErrorField("invalid_request"))
	assert.Equal(t, "type", validationErrorField("invalid_type"))
	assert.Equal(t, "update", validationErrorField("empty_update"))
	assert.Equal(t, "", validationErrorField("weird_code"))
}
