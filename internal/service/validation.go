package service

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"notes_api/internal/models"

	"github.com/go-playground/validator/v10"
)

// Credentials is the signup/login payload.
type Credentials struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// NoteInput is the create payload. Pointers distinguish a missing field from an empty one.
type NoteInput struct {
	Title   *string `json:"title" validate:"required,max=255"`
	Content *string `json:"content" validate:"required"`
}

type notePatchInput struct {
	Title *string `json:"title" validate:"omitempty,max=255"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Report JSON field names rather than Go field names.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// ValidateCredentials checks email syntax and password presence.
func ValidateCredentials(c Credentials) error {
	return toValidationError(validate.Struct(c))
}

// ValidateNoteInput checks that title and content are present and the title fits.
func ValidateNoteInput(in NoteInput) error {
	return toValidationError(validate.Struct(in))
}

// ValidateNotePatch checks the fields present in a partial update.
func ValidateNotePatch(p models.NotePatch) error {
	return toValidationError(validate.Struct(notePatchInput{Title: p.Title}))
}

func toValidationError(err error) error {
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return &ValidationError{Message: err.Error()}
	}
	fe := verrs[0]
	return &ValidationError{Field: fe.Field(), Message: describe(fe)}
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "field required"
	case "email":
		return "value is not a valid email address"
	case "max":
		return fmt.Sprintf("ensure this value has at most %s characters", fe.Param())
	default:
		return fmt.Sprintf("failed on %q", fe.Tag())
	}
}
