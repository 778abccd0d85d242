package handlers

import (
	"strings"

	"fintrack/internal/errors"
	"fintrack/internal/validation"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// CustomValidator implements echo.Validator interface
type CustomValidator struct {
	validator *validator.Validate
}

// NewValidator creates a new custom validator backed by the shared rule set
func NewValidator() echo.Validator {
	return &CustomValidator{validator: validation.GetValidator().GetValidate()}
}

// Validate implements the echo.Validator interface. Field errors are
// translated into the standard validation error response.
func (cv *CustomValidator) Validate(i interface{}) error {
	err := cv.validator.Struct(i)
	if err == nil {
		return nil
	}

	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}

	fieldErrors := make(map[string]string, len(validationErrors))
	for _, fe := range validationErrors {
		fieldErrors[fe.Field()] = validationMessage(fe)
	}

	response := errors.NewValidationError(fieldErrors, "")
	return echo.NewHTTPError(response.GetHTTPStatus(), response)
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "this field is required"
	case "email":
		return "must be a valid email address"
	case "min":
		return "must be at least " + fe.Param() + " characters"
	case "max":
		return "must be at most " + fe.Param() + " characters"
	case "len":
		return "must be exactly " + fe.Param() + " characters"
	case "uuid":
		return "must be a valid UUID"
	case "hexcolor":
		return "must be a hex color like #10B981"
	case "category_id":
		return "must be a known category identifier"
	case "payment_method":
		return "must be one of: cash, credit_card, unknown"
	case "budget_period":
		return "must be one of: monthly, quarterly, yearly"
	default:
		return "failed validation rule: " + strings.ToLower(fe.Tag())
	}
}
