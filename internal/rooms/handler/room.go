package handler

import (
	"net/http"
	"retreat/internal/rooms/service"
	apperrors "retreat/pkg/errors"
	httputil "retreat/pkg/http"
	"retreat/pkg/logger"
	"retreat/pkg/model"

	"github.com/julienschmidt/httprouter"
)

type RoomHandler struct {
	service service.RoomService
	log     *logger.Logger
}

func NewRoomHandler(service service.RoomService, log *logger.Logger) *RoomHandler {
	return &RoomHandler{
		service: service,
		log:     log,
	}
}

type roomView struct {
	*model.Room
	FullName string                `json:"full_name"`
	Features model.FeaturesSummary `json:"features"`
}

func newRoomView(r *model.Room) roomView {
	return roomView{Room: r, FullName: r.FullName(), Features: r.FeaturesSummary()}
}

func (h *RoomHandler) GetAll(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	limit, offset, err := httputil.ExtractLimitOffset(r)
	if err != nil {
		h.writeError(w, "GetAll", err)
		return
	}

	minCapacity, err := httputil.ExtractPositiveInt(r, "capacity")
	if err != nil {
		h.writeError(w, "GetAll", err)
		return
	}

	interval, err := httputil.ExtractInterval(r)
	if err != nil {
		h.writeError(w, "GetAll", err)
		return
	}

	filter := model.RoomFilter{
		Type:        r.URL.Query().Get("type"),
		MinCapacity: minCapacity,
		Interval:    interval,
	}

	rooms, total, err := h.service.List(r.Context(), filter, limit, offset)
	if err != nil {
		h.writeError(w, "GetAll", err)
		return
	}

	views := make([]roomView, len(rooms))
	for i, room := range rooms {
		views[i] = newRoomView(room)
	}

	if err := httputil.WritePaginated(w, views, total, limit, offset); err != nil {
		h.log.Error("failed to write paginated response", "handler", "GetAll", "operation", "WritePaginated", "error", err)
	}
}

func (h *RoomHandler) GetByID(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	room, err := h.service.GetByID(r.Context(), ps.ByName("id"))
	if err != nil {
		h.writeError(w, "GetByID", err)
		return
	}

	if err := httputil.WriteSuccess(w, newRoomView(room)); err != nil {
		h.log.Error("failed to write success response", "handler", "GetByID", "operation", "WriteSuccess", "error", err)
	}
}

func (h *RoomHandler) Availability(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	interval, err := httputil.ExtractInterval(r)
	if err != nil {
		h.writeError(w, "Availability", err)
		return
	}
	if interval == nil {
		h.writeError(w, "Availability", apperrors.InvalidDateRange("check_in and check_out are required"))
		return
	}

	result, err := h.service.CheckAvailability(r.Context(), ps.ByName("id"), *interval)
	if err != nil {
		h.writeError(w, "Availability", err)
		return
	}

	if err := httputil.WriteSuccess(w, result); err != nil {
		h.log.Error("failed to write success response", "handler", "Availability", "operation", "WriteSuccess", "error", err)
	}
}

func (h *RoomHandler) writeError(w http.ResponseWriter, handler string, err error) {
	if writeErr := httputil.WriteError(w, err); writeErr != nil {
		h.log.Error("failed to write error response", "handler", handler, "operation", "WriteError", "error", writeErr)
	}
}

func (h *RoomHandler) RegisterRoutes(router *httprouter.Router) {
	router.GET("/api/v1/rooms", h.GetAll)
	router.GET("/api/v1/rooms/id/:id", h.GetByID)
	router.GET("/api/v1/rooms/id/:id/availability", h.Availability)
}
