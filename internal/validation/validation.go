// Package validation contains the logic for validating request data.
//
// It uses the `validator` library to enforce rules (like required
// fields) defined in struct tags and converts validation failures into
// the error shape the client can understand.
package validation

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"mssql-bridge/internal/errs"
	"mssql-bridge/internal/scalar"
)

// Validatable is implemented by request payload types that know how to
// validate themselves.
//
// Typical pattern:
//   - Define a request struct with validator tags (`validate:"required"`)
//   - Implement Validate() error combining tag checks with any rules
//     tags cannot express
type Validatable interface {
	Validate() error
}

var validate = validator.New()

// BindAndValidate binds request data into payload and validates it.
//
// Flow:
//  1. c.Bind(payload) populates the struct from the request body.
//     Malformed JSON and non-scalar parameter values become 400s here,
//     before the database pool is ever touched.
//  2. payload.Validate() applies validation rules.
//
// payload must be a pointer so Bind can populate it.
func BindAndValidate(c echo.Context, payload Validatable) error {
	if err := c.Bind(payload); err != nil {
		if errors.Is(err, scalar.ErrNotScalar) {
			return errs.NewBadRequestError(scalar.ErrNotScalar.Error())
		}
		return errs.NewBadRequestError("invalid JSON body")
	}

	if err := payload.Validate(); err != nil {
		var httpErr *errs.HTTPError
		if errors.As(err, &httpErr) {
			return httpErr
		}
		return errs.NewBadRequestError(err.Error())
	}

	return nil
}

// Struct runs tag-based validation on v and converts any failures into
// a single 400 with human-readable, per-field messages.
func Struct(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return err
	}

	msgs := make([]string, 0, len(validationErrors))
	for _, fieldErr := range validationErrors {
		field := strings.ToLower(fieldErr.Field())
		switch fieldErr.Tag() {
		case "required":
			msgs = append(msgs, field+" is required")
		default:
			msgs = append(msgs, field+" is invalid")
		}
	}

	return errs.NewBadRequestError(strings.Join(msgs, "; "))
}
