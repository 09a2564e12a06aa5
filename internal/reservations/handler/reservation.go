package handler

import (
	"encoding/json"
	"net/http"

	"retreat/internal/reservations/service"
	apperrors "retreat/pkg/errors"
	httputil "retreat/pkg/http"
	"retreat/pkg/logger"
	"retreat/pkg/middleware"
	"retreat/pkg/model"

	"github.com/julienschmidt/httprouter"
)

type ReservationHandler struct {
	service      service.ReservationService
	authenticate func(http.Handler) http.Handler
	log          *logger.Logger
}

// NewReservationHandler builds the handler. Every route requires a bearer token
// signed with jwtSecret.
func NewReservationHandler(service service.ReservationService, jwtSecret []byte, log *logger.Logger) *ReservationHandler {
	return &ReservationHandler{
		service:      service,
		authenticate: middleware.Authenticate(jwtSecret, log),
		log:          log,
	}
}

func (h *ReservationHandler) Create(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req model.ReservationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, "Create", apperrors.InvalidInput("Invalid request body"))
		return
	}
	req.UserID = principal(r).UserID

	reservation, err := h.service.Book(r.Context(), &req)
	if err != nil {
		h.writeError(w, "Create", err)
		return
	}

	if err := httputil.WriteCreated(w, reservation); err != nil {
		h.log.Error("failed to write created response", "handler", "Create", "operation", "WriteCreated", "error", err)
	}
}

func (h *ReservationHandler) Mine(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	limit, offset, err := httputil.ExtractLimitOffset(r)
	if err != nil {
		h.writeError(w, "Mine", err)
		return
	}

	reservations, total, err := h.service.ListMine(r.Context(), principal(r), limit, offset)
	if err != nil {
		h.writeError(w, "Mine", err)
		return
	}

	if err := httputil.WritePaginated(w, reservations, total, limit, offset); err != nil {
		h.log.Error("failed to write paginated response", "handler", "Mine", "operation", "WritePaginated", "error", err)
	}
}

func (h *ReservationHandler) GetByID(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	reservation, err := h.service.GetByID(r.Context(), principal(r), ps.ByName("id"))
	if err != nil {
		h.writeError(w, "GetByID", err)
		return
	}

	if err := httputil.WriteSuccess(w, reservation); err != nil {
		h.log.Error("failed to write success response", "handler", "GetByID", "operation", "WriteSuccess", "error", err)
	}
}

func (h *ReservationHandler) UpdateGuestPreferences(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var update model.GuestPreferencesUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		h.writeError(w, "UpdateGuestPreferences", apperrors.InvalidInput("Invalid request body"))
		return
	}

	guest, err := h.service.UpdateGuestPreferences(r.Context(), principal(r), ps.ByName("id"), ps.ByName("guestId"), &update)
	if err != nil {
		h.writeError(w, "UpdateGuestPreferences", err)
		return
	}

	if err := httputil.WriteSuccess(w, guest); err != nil {
		h.log.Error("failed to write success response", "handler", "UpdateGuestPreferences", "operation", "WriteSuccess", "error", err)
	}
}

func (h *ReservationHandler) AdminList(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	limit, offset, err := httputil.ExtractLimitOffset(r)
	if err != nil {
		h.writeError(w, "AdminList", err)
		return
	}

	filter := model.ReservationFilter{
		UserID: r.URL.Query().Get("user_id"),
		Status: r.URL.Query().Get("status"),
	}
	reservations, total, err := h.service.List(r.Context(), filter, limit, offset)
	if err != nil {
		h.writeError(w, "AdminList", err)
		return
	}

	if err := httputil.WritePaginated(w, reservations, total, limit, offset); err != nil {
		h.log.Error("failed to write paginated response", "handler", "AdminList", "operation", "WritePaginated", "error", err)
	}
}

func (h *ReservationHandler) AdminUpdateStatus(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var update model.StatusUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		h.writeError(w, "AdminUpdateStatus", apperrors.InvalidInput("Invalid request body"))
		return
	}

	reservation, err := h.service.UpdateStatus(r.Context(), ps.ByName("id"), &update)
	if err != nil {
		h.writeError(w, "AdminUpdateStatus", err)
		return
	}

	if err := httputil.WriteSuccess(w, reservation); err != nil {
		h.log.Error("failed to write success response", "handler", "AdminUpdateStatus", "operation", "WriteSuccess", "error", err)
	}
}

func (h *ReservationHandler) AdminDelete(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	if err := h.service.Delete(r.Context(), ps.ByName("id")); err != nil {
		h.writeError(w, "AdminDelete", err)
		return
	}
	httputil.WriteNoContent(w)
}

func (h *ReservationHandler) writeError(w http.ResponseWriter, handler string, err error) {
	if writeErr := httputil.WriteError(w, err); writeErr != nil {
		h.log.Error("failed to write error response", "handler", handler, "operation", "WriteError", "error", writeErr)
	}
}

func principal(r *http.Request) model.Principal {
	p, _ := middleware.PrincipalFrom(r.Context())
	return p
}

// authed wraps next with token authentication and, for admin routes, the admin check.
func (h *ReservationHandler) authed(next httprouter.Handle, adminOnly bool) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		var handler http.Handler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next(w, r, ps)
		})
		if adminOnly {
			handler = middleware.RequireAdmin(h.log)(handler)
		}
		h.authenticate(handler).ServeHTTP(w, r)
	}
}

func (h *ReservationHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST("/api/v1/reservations", h.authed(h.Create, false))
	router.GET("/api/v1/reservations/mine", h.authed(h.Mine, false))
	router.GET("/api/v1/reservations/id/:id", h.authed(h.GetByID, false))
	router.PATCH("/api/v1/reservations/id/:id/guests/:guestId/preferences", h.authed(h.UpdateGuestPreferences, false))

	router.GET("/api/v1/admin/reservations", h.authed(h.AdminList, true))
	router.PATCH("/api/v1/admin/reservations/id/:id/status", h.authed(h.AdminUpdateStatus, true))
	router.DELETE("/api/v1/admin/reservations/id/:id", h.authed(h.AdminDelete, true))
}
