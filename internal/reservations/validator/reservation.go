package validator

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"carslot/pkg/logger"
	"carslot/pkg/model"
	"carslot/pkg/timeofday"
)

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (v ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", v.Field, v.Message)
}

type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	if len(v) == 0 {
		return ""
	}
	var messages []string
	for _, err := range v {
		messages = append(messages, err.Error())
	}
	return fmt.Sprintf("validation failed: %d error(s): [%s]", len(v), strings.Join(messages, "; "))
}

type ReservationValidator struct {
	validate *validator.Validate
	logger   *logger.Logger
}

func NewReservationValidator(log *logger.Logger) *ReservationValidator {
	v := validator.New()

	if err := v.RegisterValidation("dateonly", validateDateOnly); err != nil {
		log.Fatal("Failed to register 'dateonly' validator", "error", err)
	}
	if err := v.RegisterValidation("quarter_aligned", validateQuarterAligned); err != nil {
		log.Fatal("Failed to register 'quarter_aligned' validator", "error", err)
	}

	log.Info("Reservation validator initialized successfully")

	return &ReservationValidator{
		validate: v,
		logger:   log,
	}
}

// validateDateOnly accepts zero-padded "YYYY-MM-DD" calendar dates. The
// stored date strings are compared lexicographically, so the padding is
// part of the contract, not just cosmetics.
func validateDateOnly(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	parsed, err := time.Parse(model.DateLayout, s)
	if err != nil {
		return false
	}
	return parsed.Format(model.DateLayout) == s
}

// validateQuarterAligned accepts "HH:MM" times that sit on the 15-minute
// lattice.
func validateQuarterAligned(fl validator.FieldLevel) bool {
	tod, err := timeofday.Parse(fl.Field().String())
	if err != nil {
		return false
	}
	return tod.Aligned()
}

func (v *ReservationValidator) Validate(reservation *model.Reservation) error {
	if err := v.validate.Struct(reservation); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			return v.translateValidationErrors(validationErrs)
		}
		return err
	}

	return nil
}

// ValidateDuration checks a requested duration against the fixed candidate
// shape: at least 30 minutes, a multiple of 15, at most a full day.
func (v *ReservationValidator) ValidateDuration(durationMin int) error {
	if durationMin < 30 || durationMin > timeofday.MinutesPerDay || durationMin%timeofday.SlotMinutes != 0 {
		return ValidationErrors{
			ValidationError{
				Field:   "DurationMin",
				Message: fmt.Sprintf("duration must be a multiple of 15 between 30 and 1440 minutes, got %d", durationMin),
			},
		}
	}
	return nil
}

func (v *ReservationValidator) translateValidationErrors(errs validator.ValidationErrors) ValidationErrors {
	var validationErrors ValidationErrors

	for _, err := range errs {
		message := err.Error()

		switch err.Tag() {
		case "required":
			message = fmt.Sprintf("%s is required", err.Field())
		case "min":
			message = fmt.Sprintf("%s must be at least %s", err.Field(), err.Param())
		case "max":
			message = fmt.Sprintf("%s must be at most %s", err.Field(), err.Param())
		case "oneof":
			message = fmt.Sprintf("%s must be one of: %s", err.Field(), err.Param())
		case "dateonly":
			message = fmt.Sprintf("%s must be a calendar date in YYYY-MM-DD format", err.Field())
		case "quarter_aligned":
			message = fmt.Sprintf("%s must be an HH:MM time on the 15-minute lattice", err.Field())
		}

		validationErrors = append(validationErrors, ValidationError{
			Field:   err.Field(),
			Message: message,
		})
	}

	return validationErrors
}
