package validator

import (
	"errors"
	"retreat/pkg/model"
	"testing"
)

func validRoom() *model.Room {
	return &model.Room{
		RoomNumber:    "101",
		Type:          "Double",
		Floor:         1,
		Capacity:      2,
		PricePerNight: 120,
		SquareFootage: 300,
		Beds:          []model.Bed{{Type: "Queen", Count: 1}},
		View:          "Garden",
		Status:        "available",
	}
}

func TestRoomValidator_Validate(t *testing.T) {
	v := NewRoomValidator()

	tests := []struct {
		name    string
		mutate  func(r *model.Room)
		wantErr bool
	}{
		{name: "valid room", mutate: func(r *model.Room) {}},
		{name: "missing room number", mutate: func(r *model.Room) { r.RoomNumber = "" }, wantErr: true},
		{name: "unknown type", mutate: func(r *model.Room) { r.Type = "Penthouse" }, wantErr: true},
		{name: "capacity too large", mutate: func(r *model.Room) { r.Capacity = 7 }, wantErr: true},
		{name: "negative price", mutate: func(r *model.Room) { r.PricePerNight = -1 }, wantErr: true},
		{name: "unknown status", mutate: func(r *model.Room) { r.Status = "closed" }, wantErr: true},
		{name: "beds too small for capacity", mutate: func(r *model.Room) {
			r.Capacity = 4
			r.Beds = []model.Bed{{Type: "Single", Count: 2}}
		}, wantErr: true},
		{name: "bad image url", mutate: func(r *model.Room) {
			r.Images = []model.RoomImage{{URL: "not a url"}}
		}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			room := validRoom()
			tt.mutate(room)
			err := v.Validate(room)
			if tt.wantErr && err == nil {
				t.Fatal("expected validation error")
			}
			if !tt.wantErr && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if err != nil {
				var verrs ValidationErrors
				if !errors.As(err, &verrs) || len(verrs) == 0 {
					t.Errorf("expected ValidationErrors, got %T", err)
				}
			}
		})
	}
}
