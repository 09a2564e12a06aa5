// Package notifier turns reservation events into guest emails.
package notifier

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"retreat/internal/notifier/emailjs"
	"retreat/internal/reservations/events"
	"retreat/pkg/kafka"
	"retreat/pkg/logger"
	"retreat/pkg/model"
)

type Mailer interface {
	Send(ctx context.Context, templateID string, params map[string]any) error
}

type Templates struct {
	Confirmation string
	Update       string
}

type Handler struct {
	mailer    Mailer
	templates Templates
	log       *logger.Logger
}

func NewHandler(mailer Mailer, templates Templates, log *logger.Logger) *Handler {
	return &Handler{mailer: mailer, templates: templates, log: log}
}

// Handle implements kafka.MessageHandler. Unknown event types are skipped.
func (h *Handler) Handle(ctx context.Context, msg kafka.Message) error {
	log := h.log.With("event_id", msg.GetEventID(), "correlation_id", msg.GetCorrelationID())

	switch msg.GetEventType() {
	case events.EventReservationConfirmed:
		var event events.ReservationConfirmedEvent
		if err := msg.DecodeValue(&event); err != nil {
			return kafka.NewPermanentError("invalid reservation.confirmed payload", err)
		}
		return h.confirmed(ctx, log, &event)

	case events.EventGuestUpdated:
		var event events.GuestUpdatedEvent
		if err := msg.DecodeValue(&event); err != nil {
			return kafka.NewPermanentError("invalid reservation.guest_updated payload", err)
		}
		return h.guestUpdated(ctx, log, &event)

	default:
		log.Warn("skipping unknown event type", "event_type", msg.GetEventType())
		return nil
	}
}

func (h *Handler) confirmed(ctx context.Context, log *logger.Logger, event *events.ReservationConfirmedEvent) error {
	sent := 0
	for i := range event.Guests {
		guest := &event.Guests[i]
		if guest.Email == "" {
			continue
		}

		params := guestParams(event.ReservationID, event.CheckIn, event.CheckOut, guest)
		params["total_guests"] = event.NumberOfGuests
		params["total_price"] = fmt.Sprintf("%.2f", event.TotalPrice)

		if err := h.mailer.Send(ctx, h.templates.Confirmation, params); err != nil {
			return classify(fmt.Sprintf("confirmation for reservation %s", event.ReservationID), err)
		}
		sent++
	}

	log.Info("confirmation emails sent", "reservation_id", event.ReservationID, "count", sent)
	return nil
}

func (h *Handler) guestUpdated(ctx context.Context, log *logger.Logger, event *events.GuestUpdatedEvent) error {
	if event.Guest.Email == "" {
		return nil
	}

	params := guestParams(event.ReservationID, event.CheckIn, event.CheckOut, &event.Guest)
	if err := h.mailer.Send(ctx, h.templates.Update, params); err != nil {
		return classify(fmt.Sprintf("update for guest %s", event.Guest.ID), err)
	}

	log.Info("guest update email sent", "reservation_id", event.ReservationID, "guest_id", event.Guest.ID)
	return nil
}

func guestParams(reservationID, checkIn, checkOut string, g *model.Guest) map[string]any {
	return map[string]any{
		"to_email":         g.Email,
		"to_name":          g.Name,
		"booking_id":       reservationID,
		"check_in":         checkIn,
		"check_out":        checkOut,
		"meal_plans":       mealPlans(g.MealPlans),
		"meal_preferences": mealPreferences(g.MealPreferences),
		"special_requests": orNone(g.SpecialRequests),
	}
}

func mealPlans(p model.MealPlans) string {
	var meals []string
	if p.Breakfast {
		meals = append(meals, "breakfast")
	}
	if p.Lunch {
		meals = append(meals, "lunch")
	}
	if p.Dinner {
		meals = append(meals, "dinner")
	}
	return orNone(strings.Join(meals, ", "))
}

func mealPreferences(p model.MealPreferences) string {
	var prefs []string
	for _, e := range []struct{ meal, pref string }{
		{"breakfast", p.Breakfast},
		{"lunch", p.Lunch},
		{"dinner", p.Dinner},
	} {
		if e.pref != "" {
			prefs = append(prefs, e.meal+": "+e.pref)
		}
	}
	return orNone(strings.Join(prefs, ", "))
}

func orNone(s string) string {
	if s == "" {
		return "None"
	}
	return s
}

// classify marks rejected requests as permanent so they go straight to the DLQ.
func classify(what string, err error) error {
	var apiErr *emailjs.APIError
	if errors.As(err, &apiErr) && !apiErr.Retryable() {
		return kafka.NewPermanentError("emailjs rejected "+what, err)
	}
	return kafka.NewTransientError("failed to send "+what, err)
}
