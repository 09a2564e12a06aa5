package mongo

import (
	"context"
	"fmt"

	"retreat/pkg/config"
	"retreat/pkg/logger"
	"retreat/pkg/model"
)

// RoomStore is the part of the room repository the seed needs.
type RoomStore interface {
	Count(ctx context.Context, filter model.RoomFilter) (int64, error)
	InsertMany(ctx context.Context, rooms []*model.Room) error
}

type RoomValidator interface {
	Validate(room *model.Room) error
}

// SeedRooms inserts the default room inventory into an empty Rooms collection.
// It returns the number of rooms inserted.
func SeedRooms(ctx context.Context, store RoomStore, validator RoomValidator, log *logger.Logger) (int, error) {
	existing, err := store.Count(ctx, model.RoomFilter{})
	if err != nil {
		return 0, fmt.Errorf("failed to count rooms: %w", err)
	}
	if existing > 0 {
		log.Info("Rooms already seeded, skipping", "existing", existing)
		return 0, nil
	}

	rooms := DefaultRooms()
	for _, room := range rooms {
		if err := validator.Validate(room); err != nil {
			return 0, fmt.Errorf("seed room %s is invalid: %w", room.RoomNumber, err)
		}
	}

	if err := store.InsertMany(ctx, rooms); err != nil {
		return 0, err
	}

	log.Info("Rooms seeded successfully", "count", len(rooms))
	return len(rooms), nil
}

// DefaultRooms is the starting inventory: three floors, one room per type.
func DefaultRooms() []*model.Room {
	standard := model.Amenities{WiFi: true, AirConditioning: true, Heating: true, Safe: true}
	withTV := func(a model.Amenities, size int) model.Amenities {
		a.TV = model.TV{Available: true, ScreenSize: size, SmartTV: true}
		return a
	}

	premium := standard
	premium.Balcony = true
	premium.Minibar = true

	deluxe := withTV(premium, 75)
	deluxe.WheelchairAccessible = true

	return []*model.Room{
		{
			RoomNumber: "101", Type: "Single", Floor: 1, Capacity: 1, PricePerNight: 89, SquareFootage: 250,
			Beds:      []model.Bed{{Type: "Single", Count: 1}},
			Bathroom:  model.Bathroom{HasShower: true, Toiletries: true},
			Amenities: standard, View: "Garden", Status: config.RoomAvailable,
			Images: []model.RoomImage{{URL: "https://images.unsplash.com/photo-1631049307264-da0ec9d70304", Caption: "Cozy Single Room"}},
		},
		{
			RoomNumber: "102", Type: "Single", Floor: 1, Capacity: 1, PricePerNight: 95, SquareFootage: 250,
			Beds:      []model.Bed{{Type: "Queen", Count: 1}},
			Bathroom:  model.Bathroom{HasShower: true, HasBathtub: true, Toiletries: true},
			Amenities: standard, View: "Garden", Status: config.RoomAvailable,
			Images: []model.RoomImage{{URL: "https://images.unsplash.com/photo-1631049552057-403cdb8f0658", Caption: "Modern Single Room"}},
		},
		{
			RoomNumber: "103", Type: "Double", Floor: 1, Capacity: 2, PricePerNight: 149, SquareFootage: 350,
			Beds:      []model.Bed{{Type: "Queen", Count: 1}},
			Bathroom:  model.Bathroom{HasShower: true, Toiletries: true},
			Amenities: premium, View: "Pool", Status: config.RoomAvailable,
			Images: []model.RoomImage{{URL: "https://images.unsplash.com/photo-1631049035182-249067d7618e", Caption: "Spacious Double Room"}},
		},
		{
			RoomNumber: "201", Type: "Family", Floor: 2, Capacity: 4, PricePerNight: 249, SquareFootage: 500,
			Beds:      []model.Bed{{Type: "Queen", Count: 1}, {Type: "Single", Count: 2}},
			Bathroom:  model.Bathroom{HasShower: true, HasBathtub: true, HasHairDryer: true, Toiletries: true},
			Amenities: withTV(premium, 55), View: "Mountain", Status: config.RoomAvailable,
			Images: []model.RoomImage{{URL: "https://images.unsplash.com/photo-1631049035026-64947d38b975", Caption: "Luxurious Family Room"}},
		},
		{
			RoomNumber: "202", Type: "Suite", Floor: 2, Capacity: 2, PricePerNight: 299, SquareFootage: 600,
			Beds:      []model.Bed{{Type: "King", Count: 1}},
			Bathroom:  model.Bathroom{HasShower: true, HasBathtub: true, HasHairDryer: true, Toiletries: true},
			Amenities: withTV(premium, 65), View: "Mountain", Status: config.RoomAvailable,
			Images: []model.RoomImage{{URL: "https://images.unsplash.com/photo-1631049035634-c04c637651b1", Caption: "Elegant Suite"}},
		},
		{
			RoomNumber: "301", Type: "Deluxe", Floor: 3, Capacity: 2, PricePerNight: 399, SquareFootage: 700,
			Beds:      []model.Bed{{Type: "King", Count: 1}},
			Bathroom:  model.Bathroom{HasShower: true, HasBathtub: true, HasHairDryer: true, Toiletries: true},
			Amenities: deluxe, View: "Mountain", Status: config.RoomAvailable,
			Images: []model.RoomImage{{URL: "https://images.unsplash.com/photo-1631049035517-72c2d7f5e9c6", Caption: "Premium Deluxe Room"}},
		},
	}
}
