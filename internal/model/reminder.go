package model

import (
	"errors"
	"strings"
	"time"
)

var (
	ErrEmptyTitle     = errors.New("model: title is required")
	ErrMissingDueDate = errors.New("model: due date is required")
)

// Reminder is a one-time reminder. Order is a pointer because data written
// by older versions of the app may lack it; the store assigns and persists
// it on first load.
type Reminder struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Note      string    `json:"note,omitempty"`
	DueDate   time.Time `json:"dueDate"`
	Order     *int      `json:"order,omitempty"`
	Completed bool      `json:"completed"`
	Notified  bool      `json:"notified"`
	CreatedAt time.Time `json:"createdAt"`
}

func (r Reminder) Validate() error {
	if strings.TrimSpace(r.ID) == "" {
		return errors.New("model: reminder id is required")
	}
	if strings.TrimSpace(r.Title) == "" {
		return ErrEmptyTitle
	}
	if r.DueDate.IsZero() {
		return ErrMissingDueDate
	}
	if r.CreatedAt.IsZero() {
		return errors.New("model: reminder created_at is required")
	}
	return nil
}

// IsDue reports whether a notification should be delivered at now.
// The check is a <= comparison, not an exact-minute match: a reminder
// that was due while the app was not polling is delivered on the next
// poll instead of being dropped. Once Notified is set the reminder
// stays silent until its due date changes.
func (r Reminder) IsDue(now time.Time) bool {
	return !r.Completed && !r.Notified && !r.DueDate.After(now)
}

func (r Reminder) Key() string { return r.ID }

func (r Reminder) OrderIndex() (int, bool) {
	if r.Order == nil {
		return 0, false
	}
	return *r.Order, true
}

func (r Reminder) WithOrderIndex(i int) Reminder {
	r.Order = &i
	return r
}
