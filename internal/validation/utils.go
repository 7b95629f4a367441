// Package validation contains the logic for validating
// request data.
//
// It uses the `validator` library to enforce rules (required
// attributes, lengths, ranges) defined in struct tags and turns
// failures into the fixed 400 responses clients rely on. The
// per-field details are kept on the error for logging only.
package validation

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/deppfellow/review-api/internal/errs"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// Validatable is implemented by request payload types that know how to validate themselves.
//
// Typical pattern:
//   - Define a request struct with validator tags (`validate:"required,max=50"`)
//   - Implement Validate() error that calls Struct(req)
//   - Return CustomValidationErrors for rules tags cannot express
type Validatable interface {
	Validate() error
}

// CustomValidationError represents a single validation issue for a specific field.
//
// Message is also used as the client-facing message, so it should be one
// of the fixed errs messages.
type CustomValidationError struct {
	Field   string
	Message string
}

// CustomValidationErrors is a slice of custom validation errors that satisfies error.
type CustomValidationErrors []CustomValidationError

func (c CustomValidationErrors) Error() string {
	return "Validation failed"
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Report fields by their JSON name so logs match the request body.
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return field.Name
		}
		return name
	})

	return v
}

// Struct runs the tag rules of s through the shared validator.
func Struct(s any) error {
	return validate.Struct(s)
}

// BindAndValidate binds request data into payload and validates it.
//
// Flow:
//  1. c.Bind(payload) fills path params, query params (GET/DELETE) and the JSON body.
//  2. payload.Validate() applies validation rules.
//  3. Any failure becomes a 400 *errs.HTTPError with a fixed message.
//
// payload must be a pointer to a struct.
func BindAndValidate(c echo.Context, payload Validatable) error {
	if err := c.Bind(payload); err != nil {
		code := "INVALID_ATTRIBUTES"
		return errs.NewBadRequestError(errs.MsgInvalidAttributes, &code, nil).WithCause(err)
	}

	if err := payload.Validate(); err != nil {
		return extractValidationError(err)
	}

	return nil
}

// extractValidationError maps a Validate() failure onto the client messages.
//
// A missing required attribute wins over every other failure in the same
// payload, matching what clients saw before value rules existed.
func extractValidationError(err error) *errs.HTTPError {
	invalidCode := "INVALID_ATTRIBUTES"

	var custom CustomValidationErrors
	if errors.As(err, &custom) {
		fieldErrors := make([]errs.FieldError, 0, len(custom))
		message := errs.MsgInvalidAttributes
		for i, ce := range custom {
			if i == 0 && ce.Message != "" {
				message = ce.Message
			}
			fieldErrors = append(fieldErrors, errs.FieldError{Field: ce.Field, Error: ce.Message})
		}
		return errs.NewBadRequestError(message, &invalidCode, fieldErrors)
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return errs.NewBadRequestError(errs.MsgInvalidAttributes, &invalidCode, nil).WithCause(err)
	}

	missing := false
	fieldErrors := make([]errs.FieldError, 0, len(validationErrors))
	for _, fe := range validationErrors {
		if fe.Tag() == "required" {
			missing = true
		}
		fieldErrors = append(fieldErrors, errs.FieldError{
			Field: fe.Field(),
			Error: describe(fe),
		})
	}

	if missing {
		return errs.NewMissingAttributesError(fieldErrors)
	}
	return errs.NewBadRequestError(errs.MsgInvalidAttributes, &invalidCode, fieldErrors)
}

func describe(fe validator.FieldError) string {
	isString := fe.Kind() == reflect.String

	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		if isString {
			return fmt.Sprintf("must be at least %s characters", fe.Param())
		}
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "max":
		if isString {
			return fmt.Sprintf("must not exceed %s characters", fe.Param())
		}
		return fmt.Sprintf("must not exceed %s", fe.Param())
	case "len":
		return fmt.Sprintf("must be exactly %s characters", fe.Param())
	case "number":
		return "must contain only digits"
	default:
		if fe.Param() != "" {
			return fmt.Sprintf("%s: %s:%s", fe.Field(), fe.Tag(), fe.Param())
		}
		return fmt.Sprintf("%s: %s", fe.Field(), fe.Tag())
	}
}
