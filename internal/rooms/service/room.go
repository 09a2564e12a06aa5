package service

import (
	"context"
	"errors"
	roomserrors "retreat/internal/rooms/errors"
	"retreat/internal/rooms/repository"
	"retreat/pkg/config"
	apperrors "retreat/pkg/errors"
	"retreat/pkg/model"
	"sync"
)

// AvailabilityChecker is satisfied by *availability.Evaluator.
type AvailabilityChecker interface {
	IsAvailable(ctx context.Context, roomID string, interval model.Interval) (bool, error)
	AvailableRooms(ctx context.Context, rooms []*model.Room, interval model.Interval) ([]*model.Room, error)
}

type RoomService interface {
	GetByID(ctx context.Context, id string) (*model.Room, error)
	List(ctx context.Context, filter model.RoomFilter, limit int, offset int64) ([]*model.Room, int64, error)
	CheckAvailability(ctx context.Context, id string, interval model.Interval) (*model.RoomAvailability, error)
}

type roomService struct {
	repo         repository.RoomRepository
	availability AvailabilityChecker
	cfg          *config.Config
}

func NewRoomService(repo repository.RoomRepository, availability AvailabilityChecker, cfg *config.Config) RoomService {
	return &roomService{
		repo:         repo,
		availability: availability,
		cfg:          cfg,
	}
}

func (s *roomService) GetByID(ctx context.Context, id string) (*model.Room, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Room ID cannot be empty")
	}

	room, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, s.mapRepoError(err, id, "Failed to retrieve room")
	}
	return room, nil
}

func (s *roomService) List(ctx context.Context, filter model.RoomFilter, limit int, offset int64) ([]*model.Room, int64, error) {
	if filter.Interval != nil {
		return s.listAvailable(ctx, filter, limit, offset)
	}

	var count int64
	var rooms []*model.Room
	var errCount, errFind error
	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		var err error
		count, err = s.repo.Count(ctx, filter)
		if err != nil {
			s.cfg.Log.Error("Failed to count rooms", "error", err)
			errCount = apperrors.Internal("Failed to count rooms", err)
		}
	}()

	go func() {
		defer wg.Done()
		var err error
		rooms, err = s.repo.Find(ctx, filter, limit, offset)
		if err != nil {
			s.cfg.Log.Error("Failed to list rooms",
				"type", filter.Type,
				"min_capacity", filter.MinCapacity,
				"error", err,
			)
			errFind = apperrors.Internal("Failed to retrieve rooms", err)
		}
	}()
	wg.Wait()

	if errCount != nil {
		return nil, 0, errCount
	}
	if errFind != nil {
		return nil, 0, errFind
	}
	return rooms, count, nil
}

// listAvailable pages over the rooms that are free for the whole interval, so the
// total reflects the filtered set rather than the collection.
func (s *roomService) listAvailable(ctx context.Context, filter model.RoomFilter, limit int, offset int64) ([]*model.Room, int64, error) {
	candidates, err := s.repo.Find(ctx, filter, 0, 0)
	if err != nil {
		s.cfg.Log.Error("Failed to list rooms", "error", err)
		return nil, 0, apperrors.Internal("Failed to retrieve rooms", err)
	}

	bookable := candidates[:0:0]
	for _, room := range candidates {
		if !room.UnderMaintenance() {
			bookable = append(bookable, room)
		}
	}

	free, err := s.availability.AvailableRooms(ctx, bookable, *filter.Interval)
	if err != nil {
		s.cfg.Log.Error("Failed to evaluate room availability",
			"interval", filter.Interval.String(),
			"error", err,
		)
		return nil, 0, apperrors.Internal("Failed to check room availability", err)
	}

	total := int64(len(free))
	if offset >= total {
		return []*model.Room{}, total, nil
	}
	end := total
	if limit > 0 && offset+int64(limit) < total {
		end = offset + int64(limit)
	}
	return free[offset:end], total, nil
}

func (s *roomService) CheckAvailability(ctx context.Context, id string, interval model.Interval) (*model.RoomAvailability, error) {
	room, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	result := &model.RoomAvailability{
		RoomID:   room.ID,
		CheckIn:  interval.Start.Format(model.DateLayout),
		CheckOut: interval.End.Format(model.DateLayout),
	}

	if room.UnderMaintenance() {
		result.Reason = "room is under maintenance"
		return result, nil
	}

	available, err := s.availability.IsAvailable(ctx, room.ID, interval)
	if err != nil {
		s.cfg.Log.Error("Failed to check room availability", "room_id", id, "error", err)
		return nil, apperrors.Internal("Failed to check room availability", err)
	}

	result.Available = available
	if !available {
		result.Reason = "room is already reserved for part of this period"
	}
	return result, nil
}

func (s *roomService) mapRepoError(err error, id, msg string) error {
	if errors.Is(err, roomserrors.ErrNotFound) {
		return apperrors.NotFoundWithID("Room", id)
	}
	if errors.Is(err, roomserrors.ErrInvalidID) {
		return apperrors.InvalidInput("Invalid room ID format")
	}
	s.cfg.Log.Error(msg, "id", id, "error", err)
	return apperrors.Internal(msg, err)
}
