// Package availability answers whether rooms are free for a date interval.
package availability

import (
	"context"
	"errors"
	"fmt"
	"retreat/pkg/logger"
	"retreat/pkg/model"

	"golang.org/x/sync/errgroup"
)

var ErrInvalidInterval = errors.New("invalid interval: end must be after start")

const defaultConcurrency = 8

// ReservationReader lists the reservations that hold a room. Implementations may
// pre-filter by status and interval; the evaluator re-applies both rules.
type ReservationReader interface {
	FindActiveByRoom(ctx context.Context, roomID string, interval model.Interval) ([]*model.Reservation, error)
}

// Evaluator is read only and safe for concurrent use. A ctx bound to a
// transaction makes its reads part of that transaction.
type Evaluator struct {
	reservations ReservationReader
	log          *logger.Logger
	concurrency  int
}

func NewEvaluator(reservations ReservationReader, log *logger.Logger) *Evaluator {
	return &Evaluator{
		reservations: reservations,
		log:          log,
		concurrency:  defaultConcurrency,
	}
}

func (e *Evaluator) IsAvailable(ctx context.Context, roomID string, interval model.Interval) (bool, error) {
	conflicts, err := e.Conflicts(ctx, roomID, interval)
	if err != nil {
		return false, err
	}
	return len(conflicts) == 0, nil
}

// Conflicts returns every non-cancelled reservation on roomID whose stay overlaps interval.
func (e *Evaluator) Conflicts(ctx context.Context, roomID string, interval model.Interval) ([]*model.Reservation, error) {
	if err := interval.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidInterval, interval)
	}

	reservations, err := e.reservations.FindActiveByRoom(ctx, roomID, interval)
	if err != nil {
		return nil, fmt.Errorf("failed to load reservations for room %s: %w", roomID, err)
	}

	var conflicts []*model.Reservation
	for _, r := range reservations {
		if !r.IsActive() || !holdsRoom(r, roomID) {
			continue
		}
		if r.Interval().Overlaps(interval) {
			conflicts = append(conflicts, r)
		}
	}

	if len(conflicts) > 0 {
		e.log.Debug("room unavailable",
			"room_id", roomID,
			"interval", interval.String(),
			"conflicts", len(conflicts),
		)
	}
	return conflicts, nil
}

// AvailableRooms keeps the rooms that are free for the whole interval, preserving order.
func (e *Evaluator) AvailableRooms(ctx context.Context, rooms []*model.Room, interval model.Interval) ([]*model.Room, error) {
	if err := interval.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidInterval, interval)
	}

	free := make([]bool, len(rooms))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.concurrency)

	for i, room := range rooms {
		i, room := i, room
		g.Go(func() error {
			ok, err := e.IsAvailable(gctx, room.ID, interval)
			if err != nil {
				return err
			}
			free[i] = ok
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	available := make([]*model.Room, 0, len(rooms))
	for i, room := range rooms {
		if free[i] {
			available = append(available, room)
		}
	}
	return available, nil
}

func holdsRoom(r *model.Reservation, roomID string) bool {
	for _, id := range r.RoomIDs {
		if id == roomID {
			return true
		}
	}
	return false
}
