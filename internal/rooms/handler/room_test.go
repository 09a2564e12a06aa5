package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	apperrors "retreat/pkg/errors"
	httputil "retreat/pkg/http"
	"retreat/pkg/logger"
	"retreat/pkg/model"
	"testing"

	"github.com/julienschmidt/httprouter"
)

type mockRoomService struct {
	listFunc         func(ctx context.Context, filter model.RoomFilter, limit int, offset int64) ([]*model.Room, int64, error)
	availabilityFunc func(ctx context.Context, id string, interval model.Interval) (*model.RoomAvailability, error)
}

func (m *mockRoomService) GetByID(ctx context.Context, id string) (*model.Room, error) {
	if id == "r1" {
		return &model.Room{ID: "r1", RoomNumber: "101", Type: "Suite"}, nil
	}
	return nil, apperrors.NotFoundWithID("Room", id)
}

func (m *mockRoomService) List(ctx context.Context, filter model.RoomFilter, limit int, offset int64) ([]*model.Room, int64, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx, filter, limit, offset)
	}
	return []*model.Room{}, 0, nil
}

func (m *mockRoomService) CheckAvailability(ctx context.Context, id string, interval model.Interval) (*model.RoomAvailability, error) {
	if m.availabilityFunc != nil {
		return m.availabilityFunc(ctx, id, interval)
	}
	return &model.RoomAvailability{RoomID: id, Available: true}, nil
}

func newRouter(svc *mockRoomService) *httprouter.Router {
	router := httprouter.New()
	NewRoomHandler(svc, logger.Nop()).RegisterRoutes(router)
	return router
}

func TestGetAll_Filters(t *testing.T) {
	var received model.RoomFilter
	var receivedLimit int
	svc := &mockRoomService{
		listFunc: func(ctx context.Context, filter model.RoomFilter, limit int, offset int64) ([]*model.Room, int64, error) {
			received = filter
			receivedLimit = limit
			return []*model.Room{{ID: "r1", RoomNumber: "101", Type: "Double"}}, 1, nil
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/rooms?type=double&capacity=2&check_in=2024-06-10&check_out=2024-06-12&limit=5", nil)
	rec := httptest.NewRecorder()
	newRouter(svc).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if received.Type != "double" || received.MinCapacity != 2 || received.Interval == nil {
		t.Errorf("filter not forwarded: %+v", received)
	}
	if receivedLimit != 5 {
		t.Errorf("expected limit 5, got %d", receivedLimit)
	}

	var body struct {
		Data []struct {
			ID       string `json:"id"`
			FullName string `json:"full_name"`
		} `json:"data"`
		TotalCount int64 `json:"total_count"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.TotalCount != 1 || body.Data[0].FullName != "Room 101 - Double" {
		t.Errorf("unexpected body: %+v", body)
	}
}

func TestGetAll_InvalidQuery(t *testing.T) {
	tests := []struct {
		name string
		url  string
		code string
	}{
		{"only check_in", "/api/v1/rooms?check_in=2024-06-10", apperrors.CodeInvalidDateRange},
		{"inverted dates", "/api/v1/rooms?check_in=2024-06-12&check_out=2024-06-10", apperrors.CodeInvalidDateRange},
		{"bad date", "/api/v1/rooms?check_in=June&check_out=2024-06-10", apperrors.CodeInvalidDateRange},
		{"bad capacity", "/api/v1/rooms?capacity=-2", apperrors.CodeInvalidInput},
		{"bad limit", "/api/v1/rooms?limit=abc", apperrors.CodeInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			newRouter(&mockRoomService{}).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tt.url, nil))

			if rec.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d", rec.Code)
			}
			var body httputil.ErrorResponse
			if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if body.Code != tt.code {
				t.Errorf("expected code %s, got %s", tt.code, body.Code)
			}
		})
	}
}

func TestGetByID(t *testing.T) {
	router := newRouter(&mockRoomService{})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/rooms/id/r1", nil))
	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/rooms/id/nope", nil))
	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", rec.Code)
	}
}

func TestAvailability_RequiresDates(t *testing.T) {
	rec := httptest.NewRecorder()
	newRouter(&mockRoomService{}).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/rooms/id/r1/availability", nil))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestAvailability_TouchingBoundaryQuery(t *testing.T) {
	var got model.Interval
	svc := &mockRoomService{
		availabilityFunc: func(ctx context.Context, id string, interval model.Interval) (*model.RoomAvailability, error) {
			got = interval
			return &model.RoomAvailability{RoomID: id, Available: true}, nil
		},
	}

	rec := httptest.NewRecorder()
	newRouter(svc).ServeHTTP(rec, httptest.NewRequest(http.MethodGet,
		"/api/v1/rooms/id/r1/availability?check_in=2024-06-12&check_out=2024-06-14", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if got.Start.Format(model.DateLayout) != "2024-06-12" || got.NightCount() != 2 {
		t.Errorf("unexpected interval forwarded: %s", got)
	}
}
