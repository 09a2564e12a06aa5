package model

import (
	"fmt"
	"time"
)

// RoomNightSlot marks one room as taken for one night. The _id is unique per
// (room, night), so two reservations can never hold the same slot.
type RoomNightSlot struct {
	ID            string    `json:"id" bson:"_id"`
	RoomID        string    `json:"room_id" bson:"room_id"`
	Night         time.Time `json:"night" bson:"night"`
	ReservationID string    `json:"reservation_id" bson:"reservation_id"`
	CreatedAt     time.Time `json:"created_at" bson:"created_at"`
}

func SlotID(roomID string, night time.Time) string {
	return fmt.Sprintf("%s:%s", roomID, night.UTC().Format(DateLayout))
}

// SlotsFor expands a reservation into one slot per distinct room and night.
func SlotsFor(reservationID string, roomIDs []string, interval Interval, now time.Time) []RoomNightSlot {
	nights := interval.Nights()
	distinct := DistinctIDs(roomIDs)

	slots := make([]RoomNightSlot, 0, len(distinct)*len(nights))
	for _, roomID := range distinct {
		for _, night := range nights {
			slots = append(slots, RoomNightSlot{
				ID:            SlotID(roomID, night),
				RoomID:        roomID,
				Night:         night,
				ReservationID: reservationID,
				CreatedAt:     now,
			})
		}
	}
	return slots
}
