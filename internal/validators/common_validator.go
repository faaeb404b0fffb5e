package validators

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var validate *validator.Validate

func init() {
	validate = validator.New()

	validate.RegisterValidation("object_id", validateObjectID)
	validate.RegisterValidation("rut", validateRUT)
	validate.RegisterValidation("plate", validatePlate)
	validate.RegisterValidation("future_date", validateFutureDate)
}

// ValidationError represents a field validation error
type ValidationError struct {
	Field   string `json:"field"`
	Tag     string `json:"tag"`
	Value   string `json:"value"`
	Message string `json:"message"`
}

type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	var messages []string
	for _, err := range v {
		messages = append(messages, fmt.Sprintf("%s: %s", err.Field, err.Message))
	}
	return strings.Join(messages, "; ")
}

// ValidateStruct validates a struct and returns detailed errors
func ValidateStruct(s interface{}) ValidationErrors {
	var validationErrors ValidationErrors

	err := validate.Struct(s)
	if err != nil {
		for _, err := range err.(validator.ValidationErrors) {
			validationErrors = append(validationErrors, ValidationError{
				Field:   err.Field(),
				Tag:     err.Tag(),
				Value:   fmt.Sprintf("%v", err.Value()),
				Message: getErrorMessage(err),
			})
		}
	}

	return validationErrors
}

func getErrorMessage(err validator.FieldError) string {
	switch err.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", err.Field())
	case "email":
		return "Invalid email format"
	case "min":
		return fmt.Sprintf("%s must be at least %s", err.Field(), err.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s", err.Field(), err.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", err.Field(), err.Param())
	case "object_id":
		return "Invalid ID format"
	case "rut":
		return "Invalid RUT format"
	case "plate":
		return "Invalid plate format"
	case "future_date":
		return fmt.Sprintf("%s must be in the future", err.Field())
	default:
		return fmt.Sprintf("%s is invalid", err.Field())
	}
}

func validateObjectID(fl validator.FieldLevel) bool {
	switch v := fl.Field().Interface().(type) {
	case primitive.ObjectID:
		return !v.IsZero()
	case string:
		_, err := primitive.ObjectIDFromHex(v)
		return err == nil
	}
	return false
}

// Chilean RUT: digits with optional dots, dash, check digit (digit or K).
var rutRegex = regexp.MustCompile(`^\d{1,2}\.?\d{3}\.?\d{3}-[\dkK]$`)

func validateRUT(fl validator.FieldLevel) bool {
	return rutRegex.MatchString(fl.Field().String())
}

// Accepts Chilean (BBBB99, BB9999) and Argentine (AA999AA, AAA999) formats,
// with or without separators.
var plateRegex = regexp.MustCompile(`^[A-Z]{2,4}[\s-]?\d{2,4}([\s-]?[A-Z]{2})?$`)

func validatePlate(fl validator.FieldLevel) bool {
	return plateRegex.MatchString(strings.ToUpper(fl.Field().String()))
}

func validateFutureDate(fl validator.FieldLevel) bool {
	date, ok := fl.Field().Interface().(time.Time)
	if !ok {
		return false
	}
	return date.After(time.Now())
}
