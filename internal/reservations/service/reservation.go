package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	reservationserrors "retreat/internal/reservations/errors"
	"retreat/internal/reservations/repository"
	"retreat/internal/reservations/validator"
	roomserrors "retreat/internal/rooms/errors"
	"retreat/pkg/config"
	mongotx "retreat/pkg/db/mongo"
	apperrors "retreat/pkg/errors"
	"retreat/pkg/model"
	"retreat/pkg/sanitizer"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// RoomReader is satisfied by the rooms repository.
type RoomReader interface {
	FindByID(ctx context.Context, id string) (*model.Room, error)
}

// AvailabilityChecker is satisfied by *availability.Evaluator.
type AvailabilityChecker interface {
	IsAvailable(ctx context.Context, roomID string, interval model.Interval) (bool, error)
}

// Notifier is told about committed changes. Failures never undo the change.
type Notifier interface {
	ReservationConfirmed(ctx context.Context, reservation *model.Reservation) error
	GuestUpdated(ctx context.Context, reservation *model.Reservation, guest *model.Guest) error
}

type ReservationService interface {
	Book(ctx context.Context, req *model.ReservationRequest) (*model.Reservation, error)
	GetByID(ctx context.Context, principal model.Principal, id string) (*model.Reservation, error)
	ListMine(ctx context.Context, principal model.Principal, limit int, offset int64) ([]*model.Reservation, int64, error)
	List(ctx context.Context, filter model.ReservationFilter, limit int, offset int64) ([]*model.Reservation, int64, error)
	UpdateStatus(ctx context.Context, id string, update *model.StatusUpdate) (*model.Reservation, error)
	UpdateGuestPreferences(ctx context.Context, principal model.Principal, id, guestID string, update *model.GuestPreferencesUpdate) (*model.Guest, error)
	Delete(ctx context.Context, id string) error
}

type reservationService struct {
	repo         repository.ReservationRepository
	slots        repository.SlotRepository
	rooms        RoomReader
	availability AvailabilityChecker
	validator    *validator.ReservationValidator
	notifier     Notifier
	cfg          *config.Config
}

func NewReservationService(
	repo repository.ReservationRepository,
	slots repository.SlotRepository,
	rooms RoomReader,
	availability AvailabilityChecker,
	validator *validator.ReservationValidator,
	notifier Notifier,
	cfg *config.Config,
) ReservationService {
	return &reservationService{
		repo:         repo,
		slots:        slots,
		rooms:        rooms,
		availability: availability,
		validator:    validator,
		notifier:     notifier,
		cfg:          cfg,
	}
}

// Book checks every requested room and commits a confirmed reservation only if
// all of them are free. The availability pass, the insert and the room-night
// slot claims share one transaction.
func (s *reservationService) Book(ctx context.Context, req *model.ReservationRequest) (*model.Reservation, error) {
	if req.UserID == "" {
		return nil, apperrors.Unauthorized("Authentication required")
	}

	interval, err := model.ParseInterval(req.CheckIn, req.CheckOut)
	if err != nil {
		return nil, apperrors.InvalidDateRange(err.Error()).WithCause(err)
	}

	s.sanitizeRequest(req)
	if err := s.validator.ValidateRequest(req); err != nil {
		s.cfg.Log.Warn("Reservation validation failed", "user_id", req.UserID, "error", err)
		return nil, validationError("Reservation validation failed", err)
	}

	guests := make([]model.Guest, len(req.Guests))
	copy(guests, req.Guests)
	for i := range guests {
		guests[i].ID = primitive.NewObjectID().Hex()
	}

	var reservation *model.Reservation
	err = s.repo.ExecuteTransaction(ctx, func(txCtx context.Context) error {
		rooms, err := s.checkRooms(txCtx, req.RoomIDs, interval)
		if err != nil {
			return err
		}

		reservation = &model.Reservation{
			UserID:         req.UserID,
			RoomIDs:        req.RoomIDs,
			CheckIn:        interval.Start,
			CheckOut:       interval.End,
			NumberOfGuests: req.NumberOfGuests,
			Guests:         guests,
			TotalPrice:     totalPrice(rooms, interval),
			Status:         config.Confirmed,
		}
		if err := s.repo.Create(txCtx, reservation); err != nil {
			return err
		}
		return s.slots.Claim(txCtx, model.SlotsFor(reservation.ID, reservation.RoomIDs, interval, reservation.CreatedAt))
	})
	if err != nil {
		return nil, s.mapTxError(err, "Failed to create reservation", "user_id", req.UserID, "interval", interval.String())
	}

	if req.TotalPrice != nil && math.Abs(*req.TotalPrice-reservation.TotalPrice) > 0.005 {
		s.cfg.Log.Warn("Client total price differs from computed price",
			"id", reservation.ID,
			"client_total", *req.TotalPrice,
			"computed_total", reservation.TotalPrice,
		)
	}

	s.cfg.Log.Info("Reservation created successfully",
		"id", reservation.ID,
		"user_id", reservation.UserID,
		"room_ids", reservation.RoomIDs,
		"interval", interval.String(),
		"total_price", reservation.TotalPrice,
	)

	if err := s.notifier.ReservationConfirmed(ctx, reservation); err != nil {
		s.cfg.Log.Warn("Failed to publish reservation confirmation", "id", reservation.ID, "error", err)
	}
	return reservation, nil
}

// checkRooms looks up every requested room in order and collects the ones that
// are not free. Missing rooms fail immediately; busy rooms are reported together.
func (s *reservationService) checkRooms(ctx context.Context, roomIDs []string, interval model.Interval) (map[string]*model.Room, error) {
	rooms := make(map[string]*model.Room, len(roomIDs))
	var unavailable []string
	reported := make(map[string]bool)

	for _, id := range roomIDs {
		room, ok := rooms[id]
		if !ok {
			var err error
			room, err = s.rooms.FindByID(ctx, id)
			if err != nil {
				if errors.Is(err, roomserrors.ErrNotFound) || errors.Is(err, roomserrors.ErrInvalidID) {
					return nil, apperrors.NotFoundWithID("Room", id)
				}
				return nil, err
			}
			rooms[id] = room
		}

		free := !room.UnderMaintenance()
		if free {
			var err error
			free, err = s.availability.IsAvailable(ctx, id, interval)
			if err != nil {
				return nil, err
			}
		}
		if !free && !reported[id] {
			reported[id] = true
			unavailable = append(unavailable, id)
		}
	}

	if len(unavailable) > 0 {
		return nil, &reservationserrors.ConflictReport{UnavailableRoomIDs: unavailable}
	}
	return rooms, nil
}

// totalPrice charges each distinct room once per night.
func totalPrice(rooms map[string]*model.Room, interval model.Interval) float64 {
	nights := float64(interval.NightCount())
	var total float64
	for _, room := range rooms {
		total += room.PricePerNight * nights
	}
	return math.Round(total*100) / 100
}

func (s *reservationService) GetByID(ctx context.Context, principal model.Principal, id string) (*model.Reservation, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Reservation ID cannot be empty")
	}

	reservation, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, s.mapRepoError(err, id, "Failed to retrieve reservation")
	}
	if !principal.CanAccess(reservation) {
		s.cfg.Log.Warn("Reservation access denied", "id", id, "user_id", principal.UserID)
		return nil, apperrors.Forbidden("You do not have access to this reservation")
	}
	return reservation, nil
}

func (s *reservationService) ListMine(ctx context.Context, principal model.Principal, limit int, offset int64) ([]*model.Reservation, int64, error) {
	if principal.UserID == "" {
		return nil, 0, apperrors.Unauthorized("Authentication required")
	}
	return s.find(ctx, model.ReservationFilter{UserID: principal.UserID}, limit, offset)
}

func (s *reservationService) List(ctx context.Context, filter model.ReservationFilter, limit int, offset int64) ([]*model.Reservation, int64, error) {
	if filter.Status != "" {
		if err := s.validator.ValidateStatus(&model.StatusUpdate{Status: filter.Status}); err != nil {
			return nil, 0, apperrors.InvalidInput("invalid status parameter: " + filter.Status)
		}
	}
	return s.find(ctx, filter, limit, offset)
}

func (s *reservationService) find(ctx context.Context, filter model.ReservationFilter, limit int, offset int64) ([]*model.Reservation, int64, error) {
	var count int64
	var reservations []*model.Reservation
	var errCount, errFind error
	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		var err error
		count, err = s.repo.Count(ctx, filter)
		if err != nil {
			s.cfg.Log.Error("Failed to count reservations", "error", err)
			errCount = apperrors.Internal("Failed to count reservations", err)
		}
	}()

	go func() {
		defer wg.Done()
		var err error
		reservations, err = s.repo.Find(ctx, filter, limit, offset)
		if err != nil {
			s.cfg.Log.Error("Failed to list reservations",
				"user_id", filter.UserID,
				"status", filter.Status,
				"limit", limit,
				"offset", offset,
				"error", err,
			)
			errFind = apperrors.Internal("Failed to retrieve reservations", err)
		}
	}()

	wg.Wait()
	if errCount != nil {
		return nil, 0, errCount
	}
	if errFind != nil {
		return nil, 0, errFind
	}
	return reservations, count, nil
}

// UpdateStatus moves a reservation between statuses. Cancelling releases its
// room-night slots; reactivating a cancelled reservation re-checks the rooms and
// claims the slots again.
func (s *reservationService) UpdateStatus(ctx context.Context, id string, update *model.StatusUpdate) (*model.Reservation, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Reservation ID cannot be empty")
	}
	if err := s.validator.ValidateStatus(update); err != nil {
		return nil, validationError("Invalid status update", err)
	}

	var reservation *model.Reservation
	var previous string
	err := s.repo.ExecuteTransaction(ctx, func(txCtx context.Context) error {
		var err error
		reservation, err = s.repo.FindByID(txCtx, id)
		if err != nil {
			return s.mapLookupError(err, id)
		}
		previous = reservation.Status
		if previous == update.Status {
			return nil
		}

		wasActive := reservation.IsActive()
		reservation.Status = update.Status

		switch {
		case wasActive && !reservation.IsActive():
			released, err := s.slots.ReleaseByReservation(txCtx, id)
			if err != nil {
				return err
			}
			s.cfg.Log.Debug("Released room-night slots", "id", id, "count", released)
		case !wasActive && reservation.IsActive():
			interval := reservation.Interval()
			if _, err := s.checkRooms(txCtx, reservation.RoomIDs, interval); err != nil {
				return err
			}
			if err := s.slots.Claim(txCtx, model.SlotsFor(id, reservation.RoomIDs, interval, time.Now().UTC())); err != nil {
				return err
			}
		}

		return s.repo.UpdateStatus(txCtx, id, update.Status)
	})
	if err != nil {
		return nil, s.mapTxError(err, "Failed to update reservation status", "id", id, "status", update.Status)
	}

	if previous == update.Status {
		return reservation, nil
	}

	s.cfg.Log.Info("Reservation status updated", "id", id, "from", previous, "to", update.Status)
	if update.Status == config.Confirmed {
		if err := s.notifier.ReservationConfirmed(ctx, reservation); err != nil {
			s.cfg.Log.Warn("Failed to publish reservation confirmation", "id", id, "error", err)
		}
	}
	return reservation, nil
}

// UpdateGuestPreferences edits one guest through the reservation and saves the
// guest list back as a whole.
func (s *reservationService) UpdateGuestPreferences(ctx context.Context, principal model.Principal, id, guestID string, update *model.GuestPreferencesUpdate) (*model.Guest, error) {
	if id == "" || guestID == "" {
		return nil, apperrors.InvalidInput("Reservation ID and guest ID are required")
	}

	s.sanitizePreferences(update)
	if err := s.validator.ValidatePreferences(update); err != nil {
		return nil, validationError("Invalid guest preferences", err)
	}

	var reservation *model.Reservation
	var guest *model.Guest
	err := s.repo.ExecuteTransaction(ctx, func(txCtx context.Context) error {
		var err error
		reservation, err = s.repo.FindByID(txCtx, id)
		if err != nil {
			return s.mapLookupError(err, id)
		}
		if !principal.CanAccess(reservation) {
			return apperrors.Forbidden("You do not have access to this reservation")
		}

		var ok bool
		guest, ok = reservation.GuestByID(guestID)
		if !ok {
			return apperrors.NotFoundWithID("Guest", guestID)
		}
		applyPreferences(guest, update)
		if err := s.validator.ValidateGuest(guest); err != nil {
			return validationError("Invalid guest preferences", err)
		}

		return s.repo.ReplaceGuests(txCtx, id, reservation.Guests)
	})
	if err != nil {
		return nil, s.mapTxError(err, "Failed to update guest preferences", "id", id, "guest_id", guestID)
	}

	s.cfg.Log.Info("Guest preferences updated", "id", id, "guest_id", guestID)
	if err := s.notifier.GuestUpdated(ctx, reservation, guest); err != nil {
		s.cfg.Log.Warn("Failed to publish guest update", "id", id, "guest_id", guestID, "error", err)
	}
	return guest, nil
}

func (s *reservationService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return apperrors.InvalidInput("Reservation ID cannot be empty")
	}

	var released int64
	err := s.repo.ExecuteTransaction(ctx, func(txCtx context.Context) error {
		if err := s.repo.Delete(txCtx, id); err != nil {
			return s.mapLookupError(err, id)
		}
		var err error
		released, err = s.slots.ReleaseByReservation(txCtx, id)
		return err
	})
	if err != nil {
		return s.mapTxError(err, "Failed to delete reservation", "id", id)
	}

	s.cfg.Log.Info("Reservation deleted successfully", "id", id, "released_slots", released)
	return nil
}

// --- Helpers ---

func (s *reservationService) sanitizeRequest(req *model.ReservationRequest) {
	for i := range req.Guests {
		g := &req.Guests[i]
		g.Name = sanitizer.NormalizeName(g.Name)
		g.Email = sanitizer.NormalizeEmail(g.Email)
		g.Phone = sanitizer.NormalizePhone(g.Phone, s.cfg.DefaultPhoneRegion)
		g.RoomID = sanitizer.TrimAndNormalize(g.RoomID)
		g.SpecialRequests = sanitizer.NormalizeFreeText(g.SpecialRequests)
		sanitizeMealPreferences(&g.MealPreferences)
	}
	for i := range req.RoomIDs {
		req.RoomIDs[i] = sanitizer.TrimAndNormalize(req.RoomIDs[i])
	}
}

func (s *reservationService) sanitizePreferences(update *model.GuestPreferencesUpdate) {
	if update.MealPreferences != nil {
		sanitizeMealPreferences(update.MealPreferences)
	}
	if update.SpecialRequests != nil {
		cleaned := sanitizer.NormalizeFreeText(*update.SpecialRequests)
		update.SpecialRequests = &cleaned
	}
}

func sanitizeMealPreferences(p *model.MealPreferences) {
	p.Breakfast = sanitizer.NormalizeFreeText(p.Breakfast)
	p.Lunch = sanitizer.NormalizeFreeText(p.Lunch)
	p.Dinner = sanitizer.NormalizeFreeText(p.Dinner)
}

func applyPreferences(g *model.Guest, update *model.GuestPreferencesUpdate) {
	if update.MealPlans != nil {
		g.MealPlans = *update.MealPlans
	}
	if update.MealPreferences != nil {
		g.MealPreferences = *update.MealPreferences
	}
	if update.SpecialRequests != nil {
		g.SpecialRequests = *update.SpecialRequests
	}
}

func validationError(message string, err error) *apperrors.AppError {
	var errs validator.ValidationErrors
	if errors.As(err, &errs) {
		return apperrors.Validation(message, map[string]any{"errors": errs})
	}
	return apperrors.Validation(message, map[string]any{"error": err.Error()})
}

// mapLookupError turns repository sentinels into AppErrors inside a transaction.
// Driver errors are returned untouched so their retry labels stay visible.
func (s *reservationService) mapLookupError(err error, id string) error {
	if errors.Is(err, reservationserrors.ErrNotFound) || errors.Is(err, reservationserrors.ErrInvalidID) {
		return apperrors.NotFoundWithID("Reservation", id)
	}
	return err
}

func (s *reservationService) mapRepoError(err error, id string, message string) error {
	if mapped := s.mapLookupError(err, id); apperrors.IsAppError(mapped) {
		return mapped
	}
	if mongotx.IsTransient(err) {
		s.cfg.Log.Warn(message, "id", id, "error", err)
		return apperrors.Unavailable("Reservation store").WithCause(err)
	}
	s.cfg.Log.Error(message, "id", id, "error", err)
	return apperrors.Internal(message, err)
}

// mapTxError converts whatever a transaction returned into the error surface
// callers see. Conflicts carry the unavailable room ids in their details.
func (s *reservationService) mapTxError(err error, message string, attrs ...any) error {
	var report *reservationserrors.ConflictReport
	var taken *reservationserrors.SlotTakenError

	switch {
	case errors.As(err, &report):
		s.cfg.Log.Info("Reservation rejected, rooms unavailable", append(attrs, "room_ids", report.UnavailableRoomIDs)...)
		return conflictError(report)
	case errors.As(err, &taken):
		s.cfg.Log.Info("Reservation lost a room-night slot race",
			append(attrs, "room_id", taken.RoomID, "night", taken.Night.Format(model.DateLayout))...)
		return conflictError(&reservationserrors.ConflictReport{UnavailableRoomIDs: []string{taken.RoomID}})
	case errors.Is(err, reservationserrors.ErrPartialCommit):
		s.cfg.Log.Error("Reservation commit left a partial state", append(attrs, "error", err)...)
		return apperrors.Internal(message, err)
	case apperrors.IsAppError(err):
		return err
	case mongotx.IsTransient(err):
		s.cfg.Log.Warn(message, append(attrs, "error", err)...)
		return apperrors.Unavailable("Reservation store").WithCause(err)
	default:
		s.cfg.Log.Error(message, append(attrs, "error", err)...)
		return apperrors.Internal(message, err)
	}
}

func conflictError(report *reservationserrors.ConflictReport) *apperrors.AppError {
	return apperrors.Conflict(fmt.Sprintf("%d room(s) unavailable for the requested dates", len(report.UnavailableRoomIDs))).
		WithDetails(map[string]any{"unavailable_room_ids": report.UnavailableRoomIDs}).
		WithCause(report)
}
