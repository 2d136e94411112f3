package validators

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var validate *validator.Validate

func init() {
	validate = validator.New()

	// Register custom validation functions
	validate.RegisterValidation("object_id", validateObjectID)
	validate.RegisterValidation("date_string", validateDateString)
	validate.RegisterValidation("clock_time", validateClockTime)
	validate.RegisterValidation("duration_class", validateDurationClass)
	validate.RegisterValidation("rating_value", validateRatingValue)
}

// Common validation errors
var (
	ErrInvalidObjectID      = errors.New("invalid object ID format")
	ErrInvalidDate          = errors.New("date must be YYYY-MM-DD")
	ErrInvalidClockTime     = errors.New("time must be HH:mm")
	ErrInvalidDurationClass = errors.New("duration must be hourly, daily, weekly or monthly")
	ErrInvalidRating        = errors.New("rating must be between 1 and 5")
)

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
			validationError := ValidationError{
				Field:   err.Field(),
				Tag:     err.Tag(),
				Value:   fmt.Sprintf("%v", err.Value()),
				Message: getErrorMessage(err),
			}
			validationErrors = append(validationErrors, validationError)
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
		return fmt.Sprintf("%s must be at least %s characters", err.Field(), err.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", err.Field(), err.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", err.Field(), err.Param())
	case "object_id":
		return "Invalid ID format"
	case "date_string":
		return ErrInvalidDate.Error()
	case "clock_time":
		return ErrInvalidClockTime.Error()
	case "duration_class":
		return ErrInvalidDurationClass.Error()
	case "rating_value":
		return ErrInvalidRating.Error()
	default:
		return fmt.Sprintf("%s is invalid", err.Field())
	}
}

func validateObjectID(fl validator.FieldLevel) bool {
	_, err := primitive.ObjectIDFromHex(fl.Field().String())
	return err == nil
}

func validateDateString(fl validator.FieldLevel) bool {
	_, err := time.Parse("2006-01-02", fl.Field().String())
	return err == nil
}

// validateClockTime accepts "H:m" as well as "HH:mm"; normalization to
// the padded form happens in the pricing package.
func validateClockTime(fl validator.FieldLevel) bool {
	parts := strings.Split(fl.Field().String(), ":")
	if len(parts) != 2 {
		return false
	}

	hours, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil || hours < 0 || hours > 23 {
		return false
	}
	minutes, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil || minutes < 0 || minutes > 59 {
		return false
	}

	return true
}

func validateDurationClass(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "hourly", "daily", "weekly", "monthly":
		return true
	}
	return false
}

func validateRatingValue(fl validator.FieldLevel) bool {
	rating := fl.Field().Int()
	return rating >= 1 && rating <= 5
}
