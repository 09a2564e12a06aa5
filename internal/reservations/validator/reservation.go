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

type ReservationValidator struct {
	validate  *validator.Validate
	maxRooms  int
	maxGuests int
}

func NewReservationValidator(maxRooms, maxGuests int) *ReservationValidator {
	return &ReservationValidator{
		validate:  validator.New(),
		maxRooms:  maxRooms,
		maxGuests: maxGuests,
	}
}

// ValidateRequest checks the booking payload shape. Dates are parsed separately so
// they can be reported as an invalid date range.
func (v *ReservationValidator) ValidateRequest(req *model.ReservationRequest) error {
	if err := v.validate.Struct(req); err != nil {
		return wrap(err)
	}
	return v.validateBusinessRules(req)
}

func (v *ReservationValidator) ValidateGuest(g *model.Guest) error {
	if err := v.validate.Struct(g); err != nil {
		return wrap(err)
	}
	return nil
}

func (v *ReservationValidator) ValidateStatus(update *model.StatusUpdate) error {
	if err := v.validate.Struct(update); err != nil {
		return wrap(err)
	}
	return nil
}

func (v *ReservationValidator) ValidatePreferences(update *model.GuestPreferencesUpdate) error {
	if update.MealPlans == nil && update.MealPreferences == nil && update.SpecialRequests == nil {
		return ValidationErrors{{Field: "GuestPreferencesUpdate", Message: "at least one field must be provided"}}
	}
	if err := v.validate.Struct(update); err != nil {
		return wrap(err)
	}
	return nil
}

func (v *ReservationValidator) validateBusinessRules(req *model.ReservationRequest) error {
	var errs ValidationErrors

	if v.maxRooms > 0 && len(req.RoomIDs) > v.maxRooms {
		errs = append(errs, ValidationError{
			Field:   "RoomIDs",
			Message: fmt.Sprintf("at most %d rooms can be reserved at once", v.maxRooms),
		})
	}
	if v.maxGuests > 0 && req.NumberOfGuests > v.maxGuests {
		errs = append(errs, ValidationError{
			Field:   "NumberOfGuests",
			Message: fmt.Sprintf("must be at most %d", v.maxGuests),
		})
	}
	if len(req.Guests) > req.NumberOfGuests {
		errs = append(errs, ValidationError{
			Field:   "Guests",
			Message: fmt.Sprintf("%d guests listed but number_of_guests is %d", len(req.Guests), req.NumberOfGuests),
		})
	}

	requested := make(map[string]struct{}, len(req.RoomIDs))
	for _, id := range req.RoomIDs {
		requested[id] = struct{}{}
	}
	for i, g := range req.Guests {
		if g.RoomID == "" {
			continue
		}
		if _, ok := requested[g.RoomID]; !ok {
			errs = append(errs, ValidationError{
				Field:   fmt.Sprintf("Guests[%d].RoomID", i),
				Message: "must be one of the requested rooms",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

func wrap(err error) error {
	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return err
	}

	out := make(ValidationErrors, 0, len(validationErrs))
	for _, fe := range validationErrs {
		out = append(out, ValidationError{
			Field:   trimRoot(fe.Namespace()),
			Message: message(fe),
		})
	}
	return out
}

func trimRoot(namespace string) string {
	if i := strings.IndexByte(namespace, '.'); i >= 0 {
		return namespace[i+1:]
	}
	return namespace
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "e164":
		return "must be a phone number in international format"
	case "mongodb":
		return "must be a valid object id"
	case "oneof":
		return "must be one of: " + fe.Param()
	case "min":
		return "must be at least " + fe.Param()
	case "max":
		return "must be at most " + fe.Param()
	default:
		return fmt.Sprintf("failed %q validation", fe.Tag())
	}
}
