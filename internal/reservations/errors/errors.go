package errors

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	ErrNotFound = errors.New("reservation not found")

	ErrInvalidID = errors.New("invalid reservation ID format")

	// ErrPartialCommit means a commit wrote some but not all of its room-night
	// slots. The surrounding transaction is aborted; seeing this is a bug.
	ErrPartialCommit = errors.New("reservation commit left a partial state")
)

// ConflictReport names every requested room that is not free for the interval.
type ConflictReport struct {
	UnavailableRoomIDs []string
}

func (c *ConflictReport) Error() string {
	return fmt.Sprintf("rooms unavailable for the requested dates: %s", strings.Join(c.UnavailableRoomIDs, ", "))
}

// SlotTakenError is returned when a room-night slot is already held by another
// reservation at commit time.
type SlotTakenError struct {
	RoomID string
	Night  time.Time
	Err    error
}

func (e *SlotTakenError) Error() string {
	return fmt.Sprintf("room %s is already taken on %s", e.RoomID, e.Night.Format("2006-01-02"))
}

func (e *SlotTakenError) Unwrap() error {
	return e.Err
}
