package service

import (
	"context"
	"errors"
	"fmt"
	roomserrors "retreat/internal/rooms/errors"
	"retreat/pkg/config"
	apperrors "retreat/pkg/errors"
	"retreat/pkg/logger"
	"retreat/pkg/model"
	"testing"
	"time"
)

// ────────────────────────────────────────────────
// Mocks
// ────────────────────────────────────────────────

type mockRoomRepository struct {
	rooms   []*model.Room
	findErr error
}

func (m *mockRoomRepository) FindByID(ctx context.Context, id string) (*model.Room, error) {
	for _, r := range m.rooms {
		if r.ID == id {
			return r, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", roomserrors.ErrNotFound, id)
}

func (m *mockRoomRepository) Find(ctx context.Context, filter model.RoomFilter, limit int, offset int64) ([]*model.Room, error) {
	if m.findErr != nil {
		return nil, m.findErr
	}
	var out []*model.Room
	for _, r := range m.rooms {
		if filter.MinCapacity > 0 && r.Capacity < filter.MinCapacity {
			continue
		}
		out = append(out, r)
	}
	if offset >= int64(len(out)) {
		return nil, nil
	}
	out = out[offset:]
	if limit > 0 && limit < len(out) {
		out = out[:limit]
	}
	return out, nil
}

func (m *mockRoomRepository) Count(ctx context.Context, filter model.RoomFilter) (int64, error) {
	all, err := m.Find(ctx, filter, 0, 0)
	return int64(len(all)), err
}

func (m *mockRoomRepository) InsertMany(ctx context.Context, rooms []*model.Room) error {
	return nil
}

type mockAvailability struct {
	busy map[string]bool
	err  error
}

func (m *mockAvailability) IsAvailable(ctx context.Context, roomID string, interval model.Interval) (bool, error) {
	if m.err != nil {
		return false, m.err
	}
	return !m.busy[roomID], nil
}

func (m *mockAvailability) AvailableRooms(ctx context.Context, rooms []*model.Room, interval model.Interval) ([]*model.Room, error) {
	if m.err != nil {
		return nil, m.err
	}
	var out []*model.Room
	for _, r := range rooms {
		if !m.busy[r.ID] {
			out = append(out, r)
		}
	}
	return out, nil
}

func newTestService(repo *mockRoomRepository, avail *mockAvailability) RoomService {
	cfg := &config.Config{
		Log: logger.New(logger.Config{
			Level:   "info",
			Format:  logger.JSON,
			Service: "test",
		}),
		ReadTimeout: 5 * time.Second,
	}
	return NewRoomService(repo, avail, cfg)
}

func seededRooms() []*model.Room {
	return []*model.Room{
		{ID: "r1", RoomNumber: "101", Capacity: 1, Status: config.RoomAvailable},
		{ID: "r2", RoomNumber: "102", Capacity: 2, Status: config.RoomAvailable},
		{ID: "r3", RoomNumber: "103", Capacity: 4, Status: config.RoomMaintenance},
		{ID: "r4", RoomNumber: "104", Capacity: 4, Status: config.RoomAvailable},
	}
}

var june = model.Interval{
	Start: time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC),
	End:   time.Date(2024, 6, 12, 0, 0, 0, 0, time.UTC),
}

// ────────────────────────────────────────────────
// Tests
// ────────────────────────────────────────────────

func TestGetByID_NotFound(t *testing.T) {
	svc := newTestService(&mockRoomRepository{rooms: seededRooms()}, &mockAvailability{})

	_, err := svc.GetByID(context.Background(), "missing")
	if !apperrors.HasCode(err, apperrors.CodeNotFound) {
		t.Fatalf("expected NOT_FOUND, got %v", err)
	}
}

func TestList_WithoutInterval(t *testing.T) {
	svc := newTestService(&mockRoomRepository{rooms: seededRooms()}, &mockAvailability{})

	rooms, total, err := svc.List(context.Background(), model.RoomFilter{MinCapacity: 2}, 10, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if total != 3 || len(rooms) != 3 {
		t.Errorf("expected 3 rooms with capacity >= 2, got %d (total %d)", len(rooms), total)
	}
}

func TestList_WithIntervalFiltersBusyAndMaintenance(t *testing.T) {
	svc := newTestService(
		&mockRoomRepository{rooms: seededRooms()},
		&mockAvailability{busy: map[string]bool{"r2": true}},
	)

	iv := june
	rooms, total, err := svc.List(context.Background(), model.RoomFilter{Interval: &iv}, 10, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if total != 2 {
		t.Fatalf("expected total 2, got %d", total)
	}
	if rooms[0].ID != "r1" || rooms[1].ID != "r4" {
		t.Errorf("unexpected rooms: %s, %s", rooms[0].ID, rooms[1].ID)
	}
}

func TestList_WithIntervalPaginates(t *testing.T) {
	svc := newTestService(&mockRoomRepository{rooms: seededRooms()}, &mockAvailability{})
	iv := june

	rooms, total, err := svc.List(context.Background(), model.RoomFilter{Interval: &iv}, 1, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if total != 3 || len(rooms) != 1 || rooms[0].ID != "r2" {
		t.Errorf("expected page [r2] of 3, got %d rooms (total %d)", len(rooms), total)
	}

	rooms, _, err = svc.List(context.Background(), model.RoomFilter{Interval: &iv}, 10, 50)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rooms) != 0 {
		t.Errorf("expected empty page past the end, got %d", len(rooms))
	}
}

func TestList_RepoError(t *testing.T) {
	svc := newTestService(&mockRoomRepository{findErr: errors.New("db down")}, &mockAvailability{})

	_, _, err := svc.List(context.Background(), model.RoomFilter{}, 10, 0)
	if !apperrors.HasCode(err, apperrors.CodeInternal) {
		t.Fatalf("expected INTERNAL_ERROR, got %v", err)
	}
}

func TestCheckAvailability(t *testing.T) {
	svc := newTestService(
		&mockRoomRepository{rooms: seededRooms()},
		&mockAvailability{busy: map[string]bool{"r2": true}},
	)

	tests := []struct {
		roomID    string
		available bool
		reason    bool
	}{
		{"r1", true, false},
		{"r2", false, true},
		{"r3", false, true},
	}

	for _, tt := range tests {
		t.Run(tt.roomID, func(t *testing.T) {
			got, err := svc.CheckAvailability(context.Background(), tt.roomID, june)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got.Available != tt.available {
				t.Errorf("available = %v, want %v", got.Available, tt.available)
			}
			if (got.Reason != "") != tt.reason {
				t.Errorf("unexpected reason %q", got.Reason)
			}
			if got.CheckIn != "2024-06-10" || got.CheckOut != "2024-06-12" {
				t.Errorf("unexpected dates %s..%s", got.CheckIn, got.CheckOut)
			}
		})
	}
}
