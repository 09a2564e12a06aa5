package model

import (
	"errors"
	"testing"
	"time"
)

func date(s string) time.Time {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestInterval_Overlaps(t *testing.T) {
	booked := Interval{Start: date("2024-06-10"), End: date("2024-06-12")}

	tests := []struct {
		name      string
		candidate Interval
		want      bool
	}{
		{"touching at checkout", Interval{Start: date("2024-06-12"), End: date("2024-06-14")}, false},
		{"touching at checkin", Interval{Start: date("2024-06-08"), End: date("2024-06-10")}, false},
		{"one night overlap", Interval{Start: date("2024-06-11"), End: date("2024-06-13")}, true},
		{"identical", booked, true},
		{"contains", Interval{Start: date("2024-06-01"), End: date("2024-06-30")}, true},
		{"contained", Interval{Start: date("2024-06-10"), End: date("2024-06-11")}, true},
		{"disjoint", Interval{Start: date("2024-07-01"), End: date("2024-07-03")}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := booked.Overlaps(tt.candidate); got != tt.want {
				t.Errorf("Overlaps(%s, %s) = %v, want %v", booked, tt.candidate, got, tt.want)
			}
			if got := tt.candidate.Overlaps(booked); got != tt.want {
				t.Errorf("Overlaps is not symmetric for %s", tt.candidate)
			}
		})
	}
}

func TestInterval_Validate(t *testing.T) {
	if err := (Interval{Start: date("2024-06-10"), End: date("2024-06-11")}).Validate(); err != nil {
		t.Errorf("expected valid interval, got %v", err)
	}
	if err := (Interval{Start: date("2024-06-10"), End: date("2024-06-10")}).Validate(); !errors.Is(err, ErrInvalidInterval) {
		t.Errorf("empty interval: expected ErrInvalidInterval, got %v", err)
	}
	if err := (Interval{Start: date("2024-06-12"), End: date("2024-06-10")}).Validate(); !errors.Is(err, ErrInvalidInterval) {
		t.Errorf("inverted interval: expected ErrInvalidInterval, got %v", err)
	}
}

func TestParseInterval(t *testing.T) {
	tests := []struct {
		name     string
		checkIn  string
		checkOut string
		wantErr  error
		want     Interval
	}{
		{
			name:     "date only",
			checkIn:  "2024-06-10",
			checkOut: "2024-06-12",
			want:     Interval{Start: date("2024-06-10"), End: date("2024-06-12")},
		},
		{
			name:     "rfc3339 truncated to date",
			checkIn:  "2024-06-10T15:00:00Z",
			checkOut: "2024-06-12T11:00:00Z",
			want:     Interval{Start: date("2024-06-10"), End: date("2024-06-12")},
		},
		{
			name:     "rfc3339 with offset converted to utc",
			checkIn:  "2024-06-10T22:00:00-05:00",
			checkOut: "2024-06-13T08:00:00+00:00",
			want:     Interval{Start: date("2024-06-11"), End: date("2024-06-13")},
		},
		{name: "garbage check-in", checkIn: "tomorrow", checkOut: "2024-06-12", wantErr: ErrInvalidDate},
		{name: "empty check-out", checkIn: "2024-06-10", checkOut: " ", wantErr: ErrInvalidDate},
		{name: "inverted", checkIn: "2024-06-12", checkOut: "2024-06-10", wantErr: ErrInvalidInterval},
		{name: "same day", checkIn: "2024-06-10", checkOut: "2024-06-10T23:00:00Z", wantErr: ErrInvalidInterval},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseInterval(tt.checkIn, tt.checkOut)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !got.Start.Equal(tt.want.Start) || !got.End.Equal(tt.want.End) {
				t.Errorf("got %s, want %s", got, tt.want)
			}
		})
	}
}

func TestInterval_Nights(t *testing.T) {
	nights := Interval{Start: date("2024-06-30"), End: date("2024-07-02")}.Nights()
	if len(nights) != 2 {
		t.Fatalf("expected 2 nights, got %d", len(nights))
	}
	if !nights[0].Equal(date("2024-06-30")) || !nights[1].Equal(date("2024-07-01")) {
		t.Errorf("unexpected nights: %v", nights)
	}
}

func TestSlotsFor(t *testing.T) {
	interval := Interval{Start: date("2024-06-10"), End: date("2024-06-12")}
	now := time.Now()

	slots := SlotsFor("res1", []string{"roomA", "roomB", "roomA"}, interval, now)
	if len(slots) != 4 {
		t.Fatalf("expected 4 slots for 2 distinct rooms x 2 nights, got %d", len(slots))
	}

	want := []string{"roomA:2024-06-10", "roomA:2024-06-11", "roomB:2024-06-10", "roomB:2024-06-11"}
	for i, id := range want {
		if slots[i].ID != id {
			t.Errorf("slot %d: got %q, want %q", i, slots[i].ID, id)
		}
		if slots[i].ReservationID != "res1" {
			t.Errorf("slot %d: reservation id not set", i)
		}
	}
}
