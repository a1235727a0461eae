package model

import (
	"errors"
	"testing"
	"time"
)

func validReminder() Reminder {
	now := time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)
	return Reminder{
		ID:        "rem-1",
		Title:     "Pay rent",
		DueDate:   now.Add(time.Hour),
		CreatedAt: now,
	}
}

func TestReminderValidateSuccess(t *testing.T) {
	r := validReminder()
	if err := r.Validate(); err != nil {
		t.Fatalf("expected valid reminder, got error: %v", err)
	}
}

func TestReminderValidateEmptyTitle(t *testing.T) {
	r := validReminder()
	r.Title = "   "
	if err := r.Validate(); !errors.Is(err, ErrEmptyTitle) {
		t.Fatalf("expected ErrEmptyTitle, got: %v", err)
	}
}

func TestReminderValidateMissingDueDate(t *testing.T) {
	r := validReminder()
	r.DueDate = time.Time{}
	if err := r.Validate(); !errors.Is(err, ErrMissingDueDate) {
		t.Fatalf("expected ErrMissingDueDate, got: %v", err)
	}
}

func TestReminderIsDue(t *testing.T) {
	now := time.Date(2026, 8, 28, 9, 0, 0, 0, time.UTC)
	r := validReminder()

	r.DueDate = now.Add(time.Minute)
	if r.IsDue(now) {
		t.Fatal("reminder due in the future must not be due")
	}

	r.DueDate = now
	if !r.IsDue(now) {
		t.Fatal("reminder due exactly now must be due")
	}

	// Past-due reminders fire on the next poll instead of being dropped.
	r.DueDate = now.Add(-3 * time.Hour)
	if !r.IsDue(now) {
		t.Fatal("overdue reminder must be due")
	}

	r.Notified = true
	if r.IsDue(now) {
		t.Fatal("notified reminder must stay silent")
	}

	r.Notified = false
	r.Completed = true
	if r.IsDue(now) {
		t.Fatal("completed reminder must stay silent")
	}
}
