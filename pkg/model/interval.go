package model

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// DateLayout is the canonical wire format for check-in and check-out dates.
const DateLayout = "2006-01-02"

var (
	ErrInvalidInterval = errors.New("interval end must be after its start")
	ErrInvalidDate     = errors.New("invalid date")
)

// Interval is a half-open date range [Start, End). A stay that checks out on day D
// never overlaps a stay that checks in on day D.
type Interval struct {
	Start time.Time `json:"start" bson:"start"`
	End   time.Time `json:"end" bson:"end"`
}

// NewInterval builds an interval at date granularity.
func NewInterval(start, end time.Time) Interval {
	return Interval{Start: TruncateToDate(start), End: TruncateToDate(end)}
}

// ParseInterval parses and validates a check-in/check-out pair.
func ParseInterval(checkIn, checkOut string) (Interval, error) {
	start, err := ParseDate(checkIn)
	if err != nil {
		return Interval{}, fmt.Errorf("check_in: %w", err)
	}
	end, err := ParseDate(checkOut)
	if err != nil {
		return Interval{}, fmt.Errorf("check_out: %w", err)
	}

	interval := Interval{Start: start, End: end}
	if err := interval.Validate(); err != nil {
		return Interval{}, err
	}
	return interval, nil
}

// ParseDate accepts YYYY-MM-DD or RFC3339. RFC3339 values are converted to UTC
// before the time of day is dropped.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("%w: empty value", ErrInvalidDate)
	}
	if t, err := time.Parse(DateLayout, s); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return TruncateToDate(t), nil
	}
	return time.Time{}, fmt.Errorf("%w: %q (expected YYYY-MM-DD or RFC3339)", ErrInvalidDate, s)
}

func TruncateToDate(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func (i Interval) Validate() error {
	if !i.End.After(i.Start) {
		return ErrInvalidInterval
	}
	return nil
}

// Overlaps applies the strict half-open rule: start1 < end2 && start2 < end1.
func (i Interval) Overlaps(other Interval) bool {
	return i.Start.Before(other.End) && other.Start.Before(i.End)
}

// Nights lists the date of every night covered by the interval.
func (i Interval) Nights() []time.Time {
	start := TruncateToDate(i.Start)
	end := TruncateToDate(i.End)

	var nights []time.Time
	for d := start; d.Before(end); d = d.AddDate(0, 0, 1) {
		nights = append(nights, d)
	}
	return nights
}

func (i Interval) NightCount() int {
	return len(i.Nights())
}

func (i Interval) String() string {
	return fmt.Sprintf("[%s, %s)", i.Start.Format(DateLayout), i.End.Format(DateLayout))
}
