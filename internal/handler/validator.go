package handler

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/hirelink/points/internal/domain"
)

// Validator wraps the validator instance
type Validator struct {
	validate *validator.Validate
}

// Global validator instance
var validate *Validator

// InitValidator initializes the global validator
func InitValidator() {
	v := validator.New()

	// Register custom validations for domain enums
	_ = v.RegisterValidation("role", validateRole)
	_ = v.RegisterValidation("tier", validateTier)
	_ = v.RegisterValidation("action_type", validateActionType)

	validate = &Validator{validate: v}
}

// GetValidator returns the global validator instance
func GetValidator() *Validator {
	if validate == nil {
		InitValidator()
	}
	return validate
}

// ValidateStruct validates a struct using tags
func (v *Validator) ValidateStruct(s interface{}) error {
	return v.validate.Struct(s)
}

// FormatValidationError formats validation errors into a user-friendly map
// This prevents leaking internal struct names and provides cleaner error messages
func FormatValidationError(err error) map[string]string {
	if err == nil {
		return nil
	}

	errs := make(map[string]string)

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		errs["error"] = "Invalid request format"
		return errs
	}

	for _, e := range validationErrors {
		field := strings.ToLower(e.Field())
		switch e.Tag() {
		case "required":
			errs[field] = "This field is required"
		case "role":
			errs[field] = "Must be one of: candidate, recruiter, organization"
		case "tier":
			errs[field] = "Must be one of: fresher, junior, mid, senior, expert"
		case "action_type":
			errs[field] = "Unknown action type"
		case "max":
			errs[field] = fmt.Sprintf("Must be at most %s", e.Param())
		case "min":
			errs[field] = fmt.Sprintf("Must be at least %s", e.Param())
		case "excludesall":
			errs[field] = "Contains invalid characters"
		default:
			errs[field] = "Invalid value"
		}
	}

	return errs
}

// Custom validation function for account role
func validateRole(fl validator.FieldLevel) bool {
	role := fl.Field().String()
	if role == "" {
		return true
	}
	return domain.Role(strings.ToLower(role)).IsValid()
}

// Custom validation function for experience tier
func validateTier(fl validator.FieldLevel) bool {
	tier := fl.Field().String()
	if tier == "" {
		return true
	}
	return domain.ExperienceTier(strings.ToLower(tier)).IsValid()
}

// Custom validation function for action type
func validateActionType(fl validator.FieldLevel) bool {
	switch domain.ActionType(fl.Field().String()) {
	case domain.ActionResumeAccess, domain.ActionJobApplication,
		domain.ActionCompanyAccess, domain.ActionPremiumFeature:
		return true
	}
	return fl.Field().String() == ""
}
