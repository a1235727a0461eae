package model

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	ErrInvalidFrequency  = errors.New("model: invalid frequency")
	ErrInvalidDayOfWeek  = errors.New("model: day of week must be 0-6")
	ErrInvalidDayOfMonth = errors.New("model: day of month must be 1-31")
)

type Frequency string

const (
	FrequencyDaily   Frequency = "daily"
	FrequencyWeekly  Frequency = "weekly"
	FrequencyMonthly Frequency = "monthly"
)

func (f Frequency) IsValid() bool {
	switch f {
	case FrequencyDaily, FrequencyWeekly, FrequencyMonthly:
		return true
	default:
		return false
	}
}

// RecurringReminder fires at a local wall-clock time. Time is "HH:MM";
// DaysOfWeek uses time.Weekday numbering (Sunday=0) and only applies to
// weekly rules; DayOfMonth only applies to monthly rules. LastNotified
// always holds a scheduled instant previously computed by Evaluate, never
// a raw "now", so dedup is an exact equality check.
type RecurringReminder struct {
	ID           string     `json:"id"`
	Title        string     `json:"title"`
	Note         string     `json:"note,omitempty"`
	Frequency    Frequency  `json:"frequency"`
	Time         string     `json:"time"`
	DaysOfWeek   []int      `json:"daysOfWeek,omitempty"`
	DayOfMonth   int        `json:"dayOfMonth,omitempty"`
	Order        *int       `json:"order,omitempty"`
	Enabled      bool       `json:"enabled"`
	LastNotified *time.Time `json:"lastNotified,omitempty"`
	CreatedAt    time.Time  `json:"createdAt"`
}

func (r RecurringReminder) Validate() error {
	if strings.TrimSpace(r.ID) == "" {
		return errors.New("model: recurring reminder id is required")
	}
	if strings.TrimSpace(r.Title) == "" {
		return ErrEmptyTitle
	}
	if !r.Frequency.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidFrequency, r.Frequency)
	}
	if _, _, err := ParseClockTime(r.Time); err != nil {
		return err
	}
	if r.Frequency == FrequencyWeekly {
		if len(r.DaysOfWeek) == 0 {
			return errors.New("model: weekly rule needs at least one day of week")
		}
		for _, d := range r.DaysOfWeek {
			if d < 0 || d > 6 {
				return fmt.Errorf("%w: %d", ErrInvalidDayOfWeek, d)
			}
		}
	}
	if r.Frequency == FrequencyMonthly && (r.DayOfMonth < 1 || r.DayOfMonth > 31) {
		return fmt.Errorf("%w: %d", ErrInvalidDayOfMonth, r.DayOfMonth)
	}
	if r.CreatedAt.IsZero() {
		return errors.New("model: recurring reminder created_at is required")
	}
	return nil
}

// Occurrence is the result of evaluating a rule against a point in time.
// ScheduledAt is populated whether or not the rule fires, so callers can
// always record the canonical slot.
type Occurrence struct {
	Fires       bool
	ScheduledAt time.Time
}

// ScheduledFor returns the canonical scheduled instant for the rule on
// now's date: today at the rule's time, seconds and sub-seconds zeroed,
// in now's location.
func (r RecurringReminder) ScheduledFor(now time.Time) (time.Time, error) {
	hour, minute, err := ParseClockTime(r.Time)
	if err != nil {
		return time.Time{}, err
	}
	y, m, d := now.Date()
	return time.Date(y, m, d, hour, minute, 0, 0, now.Location()), nil
}

// Evaluate decides whether now falls in the rule's firing minute.
// The match is exact: a poll that misses the minute skips that occurrence
// for the day rather than delivering a backlog later. A monthly rule with
// DayOfMonth beyond the current month's length silently never fires that
// month; days are not clamped to month end.
func (r RecurringReminder) Evaluate(now time.Time) Occurrence {
	hour, minute, err := ParseClockTime(r.Time)
	if err != nil {
		return Occurrence{}
	}
	y, m, d := now.Date()
	scheduled := time.Date(y, m, d, hour, minute, 0, 0, now.Location())
	occ := Occurrence{ScheduledAt: scheduled}

	if now.Hour() != hour || now.Minute() != minute {
		return occ
	}
	if r.LastNotified != nil && r.LastNotified.Equal(scheduled) {
		return occ
	}

	switch r.Frequency {
	case FrequencyDaily:
		occ.Fires = true
	case FrequencyWeekly:
		occ.Fires = containsDay(r.DaysOfWeek, int(now.Weekday()))
	case FrequencyMonthly:
		occ.Fires = now.Day() == r.DayOfMonth
	}
	return occ
}

func containsDay(days []int, day int) bool {
	for _, d := range days {
		if d == day {
			return true
		}
	}
	return false
}

func (r RecurringReminder) Key() string { return r.ID }

func (r RecurringReminder) OrderIndex() (int, bool) {
	if r.Order == nil {
		return 0, false
	}
	return *r.Order, true
}

func (r RecurringReminder) WithOrderIndex(i int) RecurringReminder {
	r.Order = &i
	return r
}
