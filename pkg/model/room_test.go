package model

import (
	"reflect"
	"testing"
)

func TestRoom_FullName(t *testing.T) {
	r := &Room{RoomNumber: "101", Type: "Deluxe"}
	if got := r.FullName(); got != "Room 101 - Deluxe" {
		t.Errorf("FullName() = %q", got)
	}
}

func TestRoom_FeaturesSummary(t *testing.T) {
	r := &Room{
		Beds:     []Bed{{Type: "King", Count: 1}, {Type: "Single", Count: 2}},
		Bathroom: Bathroom{HasShower: true, Toiletries: true},
		Amenities: Amenities{
			TV:      TV{Available: true, ScreenSize: 55, SmartTV: true},
			Balcony: true,
			Safe:    true,
		},
	}

	summary := r.FeaturesSummary()

	if summary.Beds != "1 King bed, 2 Single beds" {
		t.Errorf("Beds = %q", summary.Beds)
	}
	if !reflect.DeepEqual(summary.Bathroom, []string{"Shower", "Toiletries"}) {
		t.Errorf("Bathroom = %v", summary.Bathroom)
	}
	if !reflect.DeepEqual(summary.KeyAmenities, []string{`55" TV (Smart)`, "Balcony", "Safe"}) {
		t.Errorf("KeyAmenities = %v", summary.KeyAmenities)
	}
}

func TestReservation_GuestByID(t *testing.T) {
	res := &Reservation{Guests: []Guest{{ID: "g1", Name: "Ana"}, {ID: "g2", Name: "Ben"}}}

	g, ok := res.GuestByID("g2")
	if !ok || g.Name != "Ben" {
		t.Fatalf("expected guest g2, got %v %v", g, ok)
	}
	g.MealPlans.Dinner = true
	if !res.Guests[1].MealPlans.Dinner {
		t.Error("GuestByID should return a pointer into the aggregate")
	}

	if _, ok := res.GuestByID("missing"); ok {
		t.Error("expected missing guest")
	}
}
