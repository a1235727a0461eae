// Package dispatch decides, on each poll tick, which reminders are due
// and delivers their notifications at most once per occurrence.
package dispatch

import (
	"context"
	"log"
	"time"

	"github.com/sandeepkv93/remindd/internal/model"
	"github.com/sandeepkv93/remindd/internal/notify"
)

// ReminderSource is the slice of the reminder store the dispatcher needs.
type ReminderSource interface {
	Load(ctx context.Context) ([]model.Reminder, error)
	MarkNotified(ctx context.Context, id string) error
}

// RecurringSource is the slice of the recurring store the dispatcher needs.
type RecurringSource interface {
	Load(ctx context.Context) ([]model.RecurringReminder, error)
	MarkNotified(ctx context.Context, id string, scheduledAt time.Time) error
}

// Delivery describes one notification the dispatcher sent, for display in
// the UI's notification log.
type Delivery struct {
	ID    string
	Title string
	Body  string
	At    time.Time
}

type Dispatcher struct {
	reminders ReminderSource
	recurring RecurringSource
	notifier  notify.Notifier
}

func New(reminders ReminderSource, recurring RecurringSource, notifier notify.Notifier) *Dispatcher {
	return &Dispatcher{reminders: reminders, recurring: recurring, notifier: notifier}
}

// Poll runs one dispatch sweep at now. Without granted permission it is a
// pure no-op, never an error. For each item that is due, Display runs
// before the acknowledgment write: a crash in between re-delivers on the
// next poll rather than silently losing the occurrence. Item checks are
// independent; the first acknowledgment error is remembered and returned
// after the sweep finishes.
func (d *Dispatcher) Poll(ctx context.Context, now time.Time) ([]Delivery, error) {
	if d.notifier.Permission() != notify.PermissionGranted {
		return nil, nil
	}

	var firstErr error
	var out []Delivery

	reminders, err := d.reminders.Load(ctx)
	if err != nil {
		firstErr = err
	}
	for _, r := range reminders {
		if !r.IsDue(now) {
			continue
		}
		d.display(r.Title, r.Note)
		if err := d.reminders.MarkNotified(ctx, r.ID); err != nil {
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		out = append(out, Delivery{ID: r.ID, Title: r.Title, Body: r.Note, At: now})
	}

	recurring, err := d.recurring.Load(ctx)
	if err != nil && firstErr == nil {
		firstErr = err
	}
	for _, rec := range recurring {
		if !rec.Enabled {
			continue
		}
		occ := rec.Evaluate(now)
		if !occ.Fires {
			continue
		}
		d.display(rec.Title, rec.Note)
		if err := d.recurring.MarkNotified(ctx, rec.ID, occ.ScheduledAt); err != nil {
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		out = append(out, Delivery{ID: rec.ID, Title: rec.Title, Body: rec.Note, At: occ.ScheduledAt})
	}

	return out, firstErr
}

func (d *Dispatcher) display(title, body string) {
	if err := d.notifier.Display(title, body); err != nil {
		log.Printf("[dispatch] display %q: %v", title, err)
	}
}
