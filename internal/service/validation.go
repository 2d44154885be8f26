package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/iliyamo/eventflow-booking/internal/apperror"
	"github.com/iliyamo/eventflow-booking/internal/model"
)

var validate *validator.Validate

func init() {
	validate = validator.New()
	_ = validate.RegisterValidation("tier", validateTier)
}

func validateTier(fl validator.FieldLevel) bool {
	return model.PackageTier(fl.Field().String()).Valid()
}

// ValidateBooking checks that every required field is present and well
// formed.  It returns a validation error naming the first failing field.
func ValidateBooking(req model.BookingRequest) error {
	trimmed := req
	trimmed.Name = strings.TrimSpace(req.Name)
	trimmed.Date = strings.TrimSpace(req.Date)
	trimmed.Venue = strings.TrimSpace(req.Venue)
	trimmed.Email = strings.TrimSpace(req.Email)
	if err := validate.Struct(trimmed); err != nil {
		return apperror.Validation(firstValidationMessage(err))
	}
	return nil
}

func firstValidationMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return "invalid request"
	}
	fe := verrs[0]
	field := strings.ToLower(fe.Field())
	switch fe.Tag() {
	case "required":
		return "All fields required"
	case "email":
		return fmt.Sprintf("%s must be a valid email address", field)
	case "tier":
		return fmt.Sprintf("%s must be one of Basic, Premium, Luxury", field)
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}
