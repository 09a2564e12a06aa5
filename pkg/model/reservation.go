package model

import (
	"retreat/pkg/config"
	"time"
)

type MealPlans struct {
	Breakfast bool `json:"breakfast" bson:"breakfast"`
	Lunch     bool `json:"lunch" bson:"lunch"`
	Dinner    bool `json:"dinner" bson:"dinner"`
}

type MealPreferences struct {
	Breakfast string `json:"breakfast" bson:"breakfast" validate:"max=200"`
	Lunch     string `json:"lunch" bson:"lunch" validate:"max=200"`
	Dinner    string `json:"dinner" bson:"dinner" validate:"max=200"`
}

// Guest is owned by its reservation. ID is assigned on booking and stays stable
// across preference edits.
type Guest struct {
	ID              string          `json:"id" bson:"_id"`
	Name            string          `json:"name" bson:"name" validate:"required,min=2,max=100"`
	Email           string          `json:"email" bson:"email" validate:"required,email"`
	Phone           string          `json:"phone" bson:"phone" validate:"required,e164"`
	RoomID          string          `json:"room_id,omitempty" bson:"room_id,omitempty" validate:"omitempty,mongodb"`
	SpecialRequests string          `json:"special_requests,omitempty" bson:"special_requests,omitempty" validate:"max=1000"`
	MealPlans       MealPlans       `json:"meal_plans" bson:"meal_plans"`
	MealPreferences MealPreferences `json:"meal_preferences" bson:"meal_preferences"`
}

type Reservation struct {
	ID             string    `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	UserID         string    `json:"user_id" bson:"user_id" validate:"required"`
	RoomIDs        []string  `json:"room_ids" bson:"room_ids" validate:"required,min=1,dive,mongodb"`
	CheckIn        time.Time `json:"check_in" bson:"check_in" validate:"required"`
	CheckOut       time.Time `json:"check_out" bson:"check_out" validate:"required,gtfield=CheckIn"`
	NumberOfGuests int       `json:"number_of_guests" bson:"number_of_guests" validate:"required,min=1"`
	Guests         []Guest   `json:"guests" bson:"guests" validate:"omitempty,dive"`
	TotalPrice     float64   `json:"total_price" bson:"total_price" validate:"min=0"`
	Status         string    `json:"status" bson:"status" validate:"required,oneof=pending confirmed cancelled"`
	CreatedAt      time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt      time.Time `json:"updated_at" bson:"updated_at"`
}

func (r *Reservation) Interval() Interval {
	return Interval{Start: r.CheckIn, End: r.CheckOut}
}

func (r *Reservation) IsActive() bool {
	return r.Status != config.Cancelled
}

// DistinctRoomIDs returns the room ids in request order with duplicates removed.
func (r *Reservation) DistinctRoomIDs() []string {
	return DistinctIDs(r.RoomIDs)
}

func (r *Reservation) GuestByID(id string) (*Guest, bool) {
	for i := range r.Guests {
		if r.Guests[i].ID == id {
			return &r.Guests[i], true
		}
	}
	return nil, false
}

// ReservationRequest is the booking payload. UserID comes from the authenticated
// caller, never from the body.
type ReservationRequest struct {
	UserID         string   `json:"-"`
	RoomIDs        []string `json:"room_ids" validate:"required,min=1,dive,required"`
	CheckIn        string   `json:"check_in" validate:"required"`
	CheckOut       string   `json:"check_out" validate:"required"`
	NumberOfGuests int      `json:"number_of_guests" validate:"required,min=1"`
	Guests         []Guest  `json:"guests" validate:"omitempty,dive"`
	TotalPrice     *float64 `json:"total_price,omitempty" validate:"omitempty,min=0"`
}

type StatusUpdate struct {
	Status string `json:"status" validate:"required,oneof=pending confirmed cancelled"`
}

type GuestPreferencesUpdate struct {
	MealPlans       *MealPlans       `json:"meal_plans,omitempty"`
	MealPreferences *MealPreferences `json:"meal_preferences,omitempty"`
	SpecialRequests *string          `json:"special_requests,omitempty" validate:"omitempty,max=1000"`
}

type ReservationFilter struct {
	UserID string
	Status string
}

func DistinctIDs(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
