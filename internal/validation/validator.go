package validation

import (
	"reflect"
	"strings"

	"fintrack/internal/models"

	"github.com/go-playground/validator/v10"
)

// Validator wraps the go-playground validator with custom rules and error formatting
type Validator struct {
	validate *validator.Validate
}

// GetValidate returns the underlying validator.Validate instance for use with Echo
func (v *Validator) GetValidate() *validator.Validate {
	return v.validate
}

// singleton instance of the validator
var instance *Validator

// GetValidator returns the singleton validator instance
func GetValidator() *Validator {
	if instance == nil {
		instance = NewValidator()
	}
	return instance
}

// NewValidator creates a new validator instance with custom rules and configuration
func NewValidator() *Validator {
	v := validator.New()

	_ = v.RegisterValidation("category_id", validateCategoryID)
	_ = v.RegisterValidation("payment_method", validatePaymentMethod)
	_ = v.RegisterValidation("budget_period", validateBudgetPeriod)

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return &Validator{validate: v}
}

// Custom validation functions

// validateCategoryID accepts built-in category identifiers plus the
// prefixed custom and admin-defined forms. Lookup of prefixed IDs
// against the store happens in the service layer.
func validateCategoryID(fl validator.FieldLevel) bool {
	categoryID := fl.Field().String()
	if categoryID == "" {
		return false
	}

	if models.IsBuiltinCategory(categoryID) {
		return true
	}

	return strings.HasPrefix(categoryID, models.CustomCategoryPrefix) ||
		strings.HasPrefix(categoryID, models.SystemCategoryPrefix)
}

// validatePaymentMethod validates that the payment method is one of the allowed values
func validatePaymentMethod(fl validator.FieldLevel) bool {
	return models.IsValidPaymentMethod(fl.Field().String())
}

// validateBudgetPeriod validates that the budget period is one of the allowed values
func validateBudgetPeriod(fl validator.FieldLevel) bool {
	return models.IsValidBudgetPeriod(fl.Field().String())
}
