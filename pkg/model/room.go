package model

import (
	"fmt"
	"retreat/pkg/config"
	"strings"
	"time"
)

type Bed struct {
	Type  string `json:"type" bson:"type" validate:"required,oneof=Single Double Queen King"`
	Count int    `json:"count" bson:"count" validate:"required,min=1"`
}

type Bathroom struct {
	HasShower    bool `json:"has_shower" bson:"has_shower"`
	HasBathtub   bool `json:"has_bathtub" bson:"has_bathtub"`
	HasHairDryer bool `json:"has_hair_dryer" bson:"has_hair_dryer"`
	Toiletries   bool `json:"toiletries" bson:"toiletries"`
}

type TV struct {
	Available  bool `json:"available" bson:"available"`
	ScreenSize int  `json:"screen_size" bson:"screen_size"`
	SmartTV    bool `json:"smart_tv" bson:"smart_tv"`
}

type Amenities struct {
	TV                   TV   `json:"tv" bson:"tv"`
	Balcony              bool `json:"balcony" bson:"balcony"`
	AirConditioning      bool `json:"air_conditioning" bson:"air_conditioning"`
	Heating              bool `json:"heating" bson:"heating"`
	WiFi                 bool `json:"wifi" bson:"wifi"`
	Minibar              bool `json:"minibar" bson:"minibar"`
	Refrigerator         bool `json:"refrigerator" bson:"refrigerator"`
	CoffeeMaker          bool `json:"coffee_maker" bson:"coffee_maker"`
	WorkDesk             bool `json:"work_desk" bson:"work_desk"`
	Iron                 bool `json:"iron" bson:"iron"`
	Safe                 bool `json:"safe" bson:"safe"`
	WheelchairAccessible bool `json:"wheelchair_accessible" bson:"wheelchair_accessible"`
}

type RoomImage struct {
	URL     string `json:"url" bson:"url" validate:"required,url"`
	Caption string `json:"caption,omitempty" bson:"caption,omitempty"`
}

type Room struct {
	ID              string      `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	RoomNumber      string      `json:"room_number" bson:"room_number" validate:"required,min=1,max=10"`
	Type            string      `json:"type" bson:"type" validate:"required,oneof=Single Double Suite Family Deluxe"`
	Floor           int         `json:"floor" bson:"floor" validate:"min=0,max=200"`
	Capacity        int         `json:"capacity" bson:"capacity" validate:"required,min=1,max=6"`
	PricePerNight   float64     `json:"price_per_night" bson:"price_per_night" validate:"min=0"`
	SquareFootage   int         `json:"square_footage" bson:"square_footage" validate:"required,min=1"`
	Beds            []Bed       `json:"beds" bson:"beds" validate:"omitempty,dive"`
	Bathroom        Bathroom    `json:"bathroom" bson:"bathroom"`
	Amenities       Amenities   `json:"amenities" bson:"amenities"`
	View            string      `json:"view" bson:"view" validate:"required,oneof=City Garden Pool Mountain Interior"`
	Status          string      `json:"status" bson:"status" validate:"required,oneof=available occupied maintenance reserved"`
	Images          []RoomImage `json:"images,omitempty" bson:"images,omitempty" validate:"omitempty,dive"`
	Notes           string      `json:"notes,omitempty" bson:"notes,omitempty" validate:"max=2000"`
	LastMaintenance time.Time   `json:"last_maintenance" bson:"last_maintenance"`
	CreatedAt       time.Time   `json:"created_at" bson:"created_at"`
	UpdatedAt       time.Time   `json:"updated_at" bson:"updated_at"`
}

// RoomFilter narrows room listings. Zero values mean "no constraint".
type RoomFilter struct {
	Type        string
	MinCapacity int
	Interval    *Interval
}

type FeaturesSummary struct {
	Beds         string   `json:"beds"`
	Bathroom     []string `json:"bathroom"`
	KeyAmenities []string `json:"key_amenities"`
}

func (r *Room) FullName() string {
	return fmt.Sprintf("Room %s - %s", r.RoomNumber, r.Type)
}

func (r *Room) UnderMaintenance() bool {
	return r.Status == config.RoomMaintenance
}

func (r *Room) FeaturesSummary() FeaturesSummary {
	beds := make([]string, 0, len(r.Beds))
	for _, b := range r.Beds {
		suffix := ""
		if b.Count > 1 {
			suffix = "s"
		}
		beds = append(beds, fmt.Sprintf("%d %s bed%s", b.Count, b.Type, suffix))
	}

	var bathroom []string
	if r.Bathroom.HasShower {
		bathroom = append(bathroom, "Shower")
	}
	if r.Bathroom.HasBathtub {
		bathroom = append(bathroom, "Bathtub")
	}
	if r.Bathroom.HasHairDryer {
		bathroom = append(bathroom, "Hair Dryer")
	}
	if r.Bathroom.Toiletries {
		bathroom = append(bathroom, "Toiletries")
	}

	var amenities []string
	if r.Amenities.TV.Available {
		tv := fmt.Sprintf("%d\" TV", r.Amenities.TV.ScreenSize)
		if r.Amenities.TV.SmartTV {
			tv += " (Smart)"
		}
		amenities = append(amenities, tv)
	}
	for _, a := range []struct {
		on   bool
		name string
	}{
		{r.Amenities.Balcony, "Balcony"},
		{r.Amenities.Minibar, "Minibar"},
		{r.Amenities.CoffeeMaker, "Coffee Maker"},
		{r.Amenities.WorkDesk, "Work Desk"},
		{r.Amenities.Safe, "Safe"},
	} {
		if a.on {
			amenities = append(amenities, a.name)
		}
	}

	return FeaturesSummary{
		Beds:         strings.Join(beds, ", "),
		Bathroom:     bathroom,
		KeyAmenities: amenities,
	}
}

type RoomAvailability struct {
	RoomID    string `json:"room_id"`
	CheckIn   string `json:"check_in"`
	CheckOut  string `json:"check_out"`
	Available bool   `json:"available"`
	Reason    string `json:"reason,omitempty"`
}
