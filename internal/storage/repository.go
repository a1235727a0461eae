package storage

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("storage: not found")

// Repository persists both collections keyed by id. List makes no
// ordering promise; callers re-sort by order index. All fields round-trip
// verbatim.
type Repository interface {
	ListReminders(ctx context.Context) ([]Reminder, error)
	GetReminder(ctx context.Context, id string) (Reminder, error)
	CreateReminder(ctx context.Context, in Reminder) error
	UpdateReminder(ctx context.Context, in Reminder) error
	DeleteReminder(ctx context.Context, id string) error
	ClearReminders(ctx context.Context) error

	ListRecurring(ctx context.Context) ([]RecurringReminder, error)
	GetRecurring(ctx context.Context, id string) (RecurringReminder, error)
	CreateRecurring(ctx context.Context, in RecurringReminder) error
	UpdateRecurring(ctx context.Context, in RecurringReminder) error
	DeleteRecurring(ctx context.Context, id string) error
	ClearRecurring(ctx context.Context) error
}
