// Package validate defines the request payload schemas and checks incoming
// bodies against them before anything touches the service layer.
//
// SCHEMA-FIRST VALIDATION:
// Each API operation has an input struct whose `validate:"..."` tags describe
// the required shape. The handler decodes JSON into the struct and calls
// Check() — on failure it responds 411 without ever reaching the database.
//
// WHY POINTER FIELDS?
// encoding/json can't distinguish `{"title":""}` from a payload with no
// "title" key at all: both leave a string field as "". A *string field stays
// nil only when the key is absent, which is exactly what "required" means
// here — the field must be present, but may be empty.
package validate

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/rahulv/blog-platform/internal/apperror"
)

// CreateBlogInput is the POST /api/v1/blog payload.
// Both fields must be present. Any authorId in the payload is ignored — the
// author always comes from the verified token.
type CreateBlogInput struct {
	Title   *string `json:"title"   validate:"required"`
	Content *string `json:"content" validate:"required"`
}

// UpdateBlogInput is the PUT /api/v1/blog payload.
// The target id is mandatory; title and content are each optional — a nil
// field means "leave unchanged".
type UpdateBlogInput struct {
	ID      *int64  `json:"id"      validate:"required"`
	Title   *string `json:"title"   validate:"omitempty"`
	Content *string `json:"content" validate:"omitempty"`
}

// SignupInput is the POST /api/v1/user/signup payload.
type SignupInput struct {
	Name     string  `json:"name"     validate:"omitempty,max=100"`
	Email    *string `json:"email"    validate:"required,email"`
	Password *string `json:"password" validate:"required,min=6,max=72"`
}

// SigninInput is the POST /api/v1/user/signin payload.
type SigninInput struct {
	Email    *string `json:"email"    validate:"required,email"`
	Password *string `json:"password" validate:"required"`
}

// Validator wraps a single validator.Validate instance.
//
// The underlying instance caches struct metadata and is safe for concurrent
// use, so one Validator is created at startup and shared by all handlers.
type Validator struct {
	v *validator.Validate
}

// New creates a Validator.
func New() *Validator {
	return &Validator{
		v: validator.New(validator.WithRequiredStructEnabled()),
	}
}

// Check validates the given input struct against its schema tags.
//
// Returns nil when the payload matches the schema, or an
// apperror.ErrValidation (carrying the first failing field) when it doesn't.
// The HTTP layer maps that to 411 with the generic body — no field-level
// detail leaves the server.
func (va *Validator) Check(input any) error {
	err := va.v.Struct(input)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		fe := fieldErrs[0]
		return apperror.ValidationFailed(strings.ToLower(fe.Field()),
			"invalid value for "+strings.ToLower(fe.Field()))
	}

	// InvalidValidationError (nil input, non-struct) — still a bad payload.
	return apperror.ValidationFailed("", "invalid request payload")
}
