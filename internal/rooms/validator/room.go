package validator

import (
	"errors"
	"fmt"
	"retreat/pkg/model"
	"strings"

	"github.com/go-playground/validator/v10"
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
	msgs := make([]string, len(v))
	for i, e := range v {
		msgs[i] = e.Error()
	}
	return fmt.Sprintf("validation failed: %s", strings.Join(msgs, "; "))
}

type RoomValidator struct {
	validate *validator.Validate
}

func NewRoomValidator() *RoomValidator {
	return &RoomValidator{validate: validator.New()}
}

func (v *RoomValidator) Validate(room *model.Room) error {
	if err := v.validate.Struct(room); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			return translate(validationErrs)
		}
		return err
	}
	return v.validateBusinessRules(room)
}

// validateBusinessRules checks that the beds fit the declared capacity.
func (v *RoomValidator) validateBusinessRules(room *model.Room) error {
	sleeps := 0
	for _, b := range room.Beds {
		switch b.Type {
		case "Single":
			sleeps += b.Count
		default:
			sleeps += 2 * b.Count
		}
	}
	if len(room.Beds) > 0 && sleeps < room.Capacity {
		return ValidationErrors{{
			Field:   "Beds",
			Message: fmt.Sprintf("beds sleep %d but capacity is %d", sleeps, room.Capacity),
		}}
	}
	return nil
}

func translate(errs validator.ValidationErrors) ValidationErrors {
	out := make(ValidationErrors, 0, len(errs))
	for _, err := range errs {
		out = append(out, ValidationError{
			Field:   err.Namespace(),
			Message: message(err),
		})
	}
	return out
}

func message(err validator.FieldError) string {
	switch err.Tag() {
	case "required":
		return "is required"
	case "oneof":
		return "must be one of: " + err.Param()
	case "min":
		return "must be at least " + err.Param()
	case "max":
		return "must be at most " + err.Param()
	case "mongodb":
		return "must be a valid object id"
	case "url":
		return "must be a valid URL"
	default:
		return fmt.Sprintf("failed %q validation", err.Tag())
	}
}
