package validator

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Validator instance
var validate *validator.Validate

func init() {
	validate = validator.New()

	// Use JSON tag names in error messages
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	registerCustomValidations()
}

func registerCustomValidations() {
	// Education level validation
	validate.RegisterValidation("education_level", func(fl validator.FieldLevel) bool {
		level := fl.Field().String()
		validLevels := []string{"primary", "secondary", "post_secondary", "tertiary", "postgraduate", ""}
		for _, l := range validLevels {
			if level == l {
				return true
			}
		}
		return false
	})

	// Schooling status validation
	validate.RegisterValidation("in_school", func(fl validator.FieldLevel) bool {
		status := fl.Field().String()
		validStatuses := []string{"in_school", "not_in_school", ""}
		for _, s := range validStatuses {
			if status == s {
				return true
			}
		}
		return false
	})

	// Residential status validation
	validate.RegisterValidation("residential_status", func(fl validator.FieldLevel) bool {
		status := fl.Field().String()
		validStatuses := []string{"sc", "pr", "non_resident", ""}
		for _, s := range validStatuses {
			if status == s {
				return true
			}
		}
		return false
	})
}

// Validate validates a struct and returns a map of field errors
func Validate(s interface{}) map[string]string {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	errors := make(map[string]string)
	for _, err := range err.(validator.ValidationErrors) {
		field := err.Field()
		switch err.Tag() {
		case "required":
			errors[field] = "This field is required"
		case "email":
			errors[field] = "Invalid email format"
		case "min":
			errors[field] = "Value is too short (min: " + err.Param() + ")"
		case "max":
			errors[field] = "Value is too long (max: " + err.Param() + ")"
		case "gt":
			errors[field] = "Value must be greater than " + err.Param()
		case "gte":
			errors[field] = "Value must be at least " + err.Param()
		case "lte":
			errors[field] = "Value must be at most " + err.Param()
		case "datetime":
			errors[field] = "Invalid date format (expected " + err.Param() + ")"
		case "oneof":
			errors[field] = "Must be one of: " + err.Param()
		case "uuid":
			errors[field] = "Invalid identifier"
		case "education_level":
			errors[field] = "Invalid education level. Must be: primary, secondary, post_secondary, tertiary, or postgraduate"
		case "in_school":
			errors[field] = "Invalid schooling status. Must be: in_school or not_in_school"
		case "residential_status":
			errors[field] = "Invalid residential status. Must be: sc, pr, or non_resident"
		default:
			errors[field] = "Invalid value"
		}
	}

	return errors
}

// ValidateVar validates a single variable
func ValidateVar(field interface{}, tag string) error {
	return validate.Var(field, tag)
}
