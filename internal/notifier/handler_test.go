package notifier

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"retreat/internal/notifier/emailjs"
	"retreat/internal/reservations/events"
	"retreat/pkg/kafka"
	"retreat/pkg/logger"
	"retreat/pkg/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sentMail struct {
	template string
	params   map[string]any
}

type mockMailer struct {
	sent []sentMail
	err  error
}

func (m *mockMailer) Send(ctx context.Context, templateID string, params map[string]any) error {
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, sentMail{template: templateID, params: params})
	return nil
}

var templates = Templates{Confirmation: "tpl_confirm", Update: "tpl_update"}

func buildMessage(t *testing.T, eventType string, payload any) kafka.Message {
	t.Helper()
	msg, err := kafka.NewMessage().
		WithKey("res-1").
		WithEventType(eventType).
		WithValue(payload).
		Build()
	require.NoError(t, err)
	return msg
}

func TestHandle_ConfirmedEmailsEachGuest(t *testing.T) {
	mailer := &mockMailer{}
	h := NewHandler(mailer, templates, logger.Nop())

	event := events.ReservationConfirmedEvent{
		ReservationID:  "res-1",
		CheckIn:        "2024-06-10",
		CheckOut:       "2024-06-13",
		NumberOfGuests: 3,
		TotalPrice:     750,
		Guests: []model.Guest{
			{ID: "g1", Name: "Ada", Email: "ada@example.com", MealPlans: model.MealPlans{Breakfast: true, Dinner: true},
				MealPreferences: model.MealPreferences{Breakfast: "vegan"}},
			{ID: "g2", Name: "Bob", Email: "bob@example.com"},
			{ID: "g3", Name: "No Mail"},
		},
	}

	err := h.Handle(context.Background(), buildMessage(t, events.EventReservationConfirmed, event))
	require.NoError(t, err)
	require.Len(t, mailer.sent, 2)

	first := mailer.sent[0]
	assert.Equal(t, "tpl_confirm", first.template)
	assert.Equal(t, "ada@example.com", first.params["to_email"])
	assert.Equal(t, "res-1", first.params["booking_id"])
	assert.Equal(t, "750.00", first.params["total_price"])
	assert.Equal(t, 3, first.params["total_guests"])
	assert.Equal(t, "breakfast, dinner", first.params["meal_plans"])
	assert.Equal(t, "breakfast: vegan", first.params["meal_preferences"])

	assert.Equal(t, "None", mailer.sent[1].params["meal_plans"])
	assert.Equal(t, "None", mailer.sent[1].params["special_requests"])
}

func TestHandle_GuestUpdated(t *testing.T) {
	mailer := &mockMailer{}
	h := NewHandler(mailer, templates, logger.Nop())

	event := events.GuestUpdatedEvent{
		ReservationID: "res-1",
		CheckIn:       "2024-06-10",
		CheckOut:      "2024-06-13",
		Guest:         model.Guest{ID: "g1", Name: "Ada", Email: "ada@example.com", SpecialRequests: "late arrival"},
	}

	require.NoError(t, h.Handle(context.Background(), buildMessage(t, events.EventGuestUpdated, event)))
	require.Len(t, mailer.sent, 1)
	assert.Equal(t, "tpl_update", mailer.sent[0].template)
	assert.Equal(t, "late arrival", mailer.sent[0].params["special_requests"])
	assert.Equal(t, "2024-06-13", mailer.sent[0].params["check_out"])
}

func TestHandle_UnknownEventSkipped(t *testing.T) {
	mailer := &mockMailer{}
	h := NewHandler(mailer, templates, logger.Nop())

	require.NoError(t, h.Handle(context.Background(), buildMessage(t, "reservation.archived", map[string]string{})))
	assert.Empty(t, mailer.sent)
}

func TestHandle_LogsCarryCorrelationID(t *testing.T) {
	var buf bytes.Buffer
	h := NewHandler(&mockMailer{}, templates, logger.New(logger.Config{Output: &buf, Level: logger.INFO}))

	msg, err := kafka.NewMessage().
		WithKey("res-1").
		WithEventType(events.EventGuestUpdated).
		WithCorrelationID("req-9").
		WithValue(events.GuestUpdatedEvent{
			ReservationID: "res-1",
			Guest:         model.Guest{ID: "g1", Name: "Ada", Email: "ada@example.com"},
		}).
		Build()
	require.NoError(t, err)

	require.NoError(t, h.Handle(context.Background(), msg))
	assert.Contains(t, buf.String(), `"correlation_id":"req-9"`)
	assert.Contains(t, buf.String(), `"event_id":"`+msg.GetEventID()+`"`)
}

func TestHandle_BadPayloadIsPermanent(t *testing.T) {
	h := NewHandler(&mockMailer{}, templates, logger.Nop())
	msg := kafka.Message{
		Key:     "res-1",
		Value:   []byte("{not json"),
		Headers: map[string]string{kafka.HeaderEventType: events.EventReservationConfirmed},
	}

	err := h.Handle(context.Background(), msg)
	assert.Equal(t, kafka.ErrorTypePermanent, kafka.ClassifyError(err))
}

func TestHandle_ErrorClassification(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want kafka.ErrorType
	}{
		{"rejected", &emailjs.APIError{StatusCode: 400}, kafka.ErrorTypePermanent},
		{"server error", &emailjs.APIError{StatusCode: 503}, kafka.ErrorTypeTransient},
		{"network", errors.New("connection refused"), kafka.ErrorTypeTransient},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHandler(&mockMailer{err: tt.err}, templates, logger.Nop())
			event := events.GuestUpdatedEvent{ReservationID: "res-1", Guest: model.Guest{ID: "g1", Email: "a@example.com"}}

			err := h.Handle(context.Background(), buildMessage(t, events.EventGuestUpdated, event))
			require.Error(t, err)
			assert.Equal(t, tt.want, kafka.ClassifyError(err))
			assert.ErrorIs(t, err, tt.err)
		})
	}
}
