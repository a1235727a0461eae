package store

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/google/uuid"

	"github.com/sandeepkv93/remindd/internal/model"
	"github.com/sandeepkv93/remindd/internal/order"
	"github.com/sandeepkv93/remindd/internal/storage"
)

// CreateRecurringRequest carries the caller-supplied fields for a new
// recurring reminder rule.
type CreateRecurringRequest struct {
	Title      string
	Note       string
	Frequency  model.Frequency
	Time       string
	DaysOfWeek []int
	DayOfMonth int
	Enabled    bool
}

type RecurringStore struct {
	repo storage.Repository
	clk  clock.Clock
}

func NewRecurringStore(repo storage.Repository, clk clock.Clock) *RecurringStore {
	if clk == nil {
		clk = clock.New()
	}
	return &RecurringStore{repo: repo, clk: clk}
}

// Load returns the collection sorted by order index, assigning and
// persisting indexes for items that lack one. The fallback order is
// creation time, then clock time.
func (s *RecurringStore) Load(ctx context.Context) ([]model.RecurringReminder, error) {
	rows, err := s.repo.ListRecurring(ctx)
	if err != nil {
		return nil, fmt.Errorf("list recurring reminders: %w", err)
	}
	items := make([]model.RecurringReminder, len(rows))
	for i, row := range rows {
		items[i] = fromStorageRecurring(row)
	}

	out, changed := order.Normalize(items, func(a, b model.RecurringReminder) bool {
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.Before(b.CreatedAt)
		}
		return a.Time < b.Time
	})
	if changed {
		if err := s.persistAll(ctx, out); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// Add creates a rule. When the rule's time has already passed today,
// LastNotified is pre-armed to today's scheduled instant so a rule
// created at 10:00 for "09:00" stays quiet until tomorrow instead of
// firing immediately.
func (s *RecurringStore) Add(ctx context.Context, req CreateRecurringRequest) (model.RecurringReminder, error) {
	items, err := s.Load(ctx)
	if err != nil {
		return model.RecurringReminder{}, err
	}
	next := maxOrder(items) + 1
	now := s.clk.Now()
	r := model.RecurringReminder{
		ID:         uuid.NewString(),
		Title:      strings.TrimSpace(req.Title),
		Note:       req.Note,
		Frequency:  req.Frequency,
		Time:       req.Time,
		DaysOfWeek: req.DaysOfWeek,
		DayOfMonth: req.DayOfMonth,
		Order:      &next,
		Enabled:    req.Enabled,
		CreatedAt:  now,
	}
	if err := r.Validate(); err != nil {
		return model.RecurringReminder{}, err
	}
	if scheduled, schedErr := r.ScheduledFor(now); schedErr == nil && now.After(scheduled) {
		r.LastNotified = &scheduled
	}
	if err := s.repo.CreateRecurring(ctx, toStorageRecurring(r)); err != nil {
		return model.RecurringReminder{}, fmt.Errorf("create recurring reminder: %w", err)
	}
	return r, nil
}

func (s *RecurringStore) Update(ctx context.Context, in model.RecurringReminder) (model.RecurringReminder, error) {
	if _, err := s.repo.GetRecurring(ctx, in.ID); err != nil {
		return model.RecurringReminder{}, fmt.Errorf("get recurring reminder: %w", err)
	}
	next := in
	next.Title = strings.TrimSpace(next.Title)
	if err := next.Validate(); err != nil {
		return model.RecurringReminder{}, err
	}
	if err := s.repo.UpdateRecurring(ctx, toStorageRecurring(next)); err != nil {
		return model.RecurringReminder{}, fmt.Errorf("update recurring reminder: %w", err)
	}
	return next, nil
}

func (s *RecurringStore) Remove(ctx context.Context, id string) error {
	return s.repo.DeleteRecurring(ctx, id)
}

func (s *RecurringStore) Clear(ctx context.Context) error {
	return s.repo.ClearRecurring(ctx)
}

// ReorderEnabled replaces the enabled partition's relative order with the
// given id sequence; disabled rules keep their order and follow.
func (s *RecurringStore) ReorderEnabled(ctx context.Context, ids []string) ([]model.RecurringReminder, error) {
	return s.reorder(ctx, order.Primary, ids)
}

// ReorderDisabled is ReorderEnabled for the disabled partition; enabled
// rules keep their order and come first.
func (s *RecurringStore) ReorderDisabled(ctx context.Context, ids []string) ([]model.RecurringReminder, error) {
	return s.reorder(ctx, order.Secondary, ids)
}

func (s *RecurringStore) reorder(ctx context.Context, target order.Partition, ids []string) ([]model.RecurringReminder, error) {
	items, err := s.Load(ctx)
	if err != nil {
		return nil, err
	}
	out, err := order.Reorder(items, func(r model.RecurringReminder) bool { return r.Enabled }, target, ids)
	if err != nil {
		return nil, err
	}
	if err := s.persistAll(ctx, out); err != nil {
		return nil, err
	}
	return out, nil
}

// ToggleEnabled moves a rule between the enabled and disabled partitions,
// appending it to the end of its new partition.
func (s *RecurringStore) ToggleEnabled(ctx context.Context, id string) ([]model.RecurringReminder, error) {
	items, err := s.Load(ctx)
	if err != nil {
		return nil, err
	}
	out, err := order.MoveToPartition(items, id,
		func(r model.RecurringReminder) bool { return r.Enabled },
		func(r model.RecurringReminder) model.RecurringReminder {
			r.Enabled = !r.Enabled
			return r
		})
	if err != nil {
		return nil, err
	}
	if err := s.persistAll(ctx, out); err != nil {
		return nil, err
	}
	return out, nil
}

// MarkNotified records the scheduled instant a notification was delivered
// for. The value must come from Evaluate's Occurrence, never from "now";
// dedup in the evaluator is an exact equality check against it.
func (s *RecurringStore) MarkNotified(ctx context.Context, id string, scheduledAt time.Time) error {
	existing, err := s.repo.GetRecurring(ctx, id)
	if err != nil {
		return fmt.Errorf("get recurring reminder: %w", err)
	}
	existing.LastNotifiedAt = &scheduledAt
	if err := s.repo.UpdateRecurring(ctx, existing); err != nil {
		return fmt.Errorf("mark recurring notified: %w", err)
	}
	return nil
}

// Restore writes a rule verbatim, preserving id, flags, and order.
func (s *RecurringStore) Restore(ctx context.Context, r model.RecurringReminder) error {
	if err := r.Validate(); err != nil {
		return err
	}
	return s.repo.CreateRecurring(ctx, toStorageRecurring(r))
}

func (s *RecurringStore) persistAll(ctx context.Context, items []model.RecurringReminder) error {
	for _, it := range items {
		if err := s.repo.UpdateRecurring(ctx, toStorageRecurring(it)); err != nil {
			return fmt.Errorf("persist recurring reminder %s: %w", it.ID, err)
		}
	}
	return nil
}
