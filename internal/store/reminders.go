// Package store implements the collection operations on top of the
// persistence layer: CRUD, partition-preserving reorder and toggle, and
// the idempotency writes the dispatcher relies on. The stores are written
// for a single active caller; concurrent mutation of the same collection
// is not supported.
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

// CreateReminderRequest carries the caller-supplied fields for a new
// one-time reminder. Identity, flags, and timestamps are assigned here.
type CreateReminderRequest struct {
	Title   string
	Note    string
	DueDate time.Time
}

type ReminderStore struct {
	repo storage.Repository
	clk  clock.Clock
}

func NewReminderStore(repo storage.Repository, clk clock.Clock) *ReminderStore {
	if clk == nil {
		clk = clock.New()
	}
	return &ReminderStore{repo: repo, clk: clk}
}

// Load returns the collection sorted by order index. Items persisted
// without an index (legacy data, imports) are assigned one by fallback
// order (due date, then creation time) and written back immediately so
// the next load reads indexes directly.
func (s *ReminderStore) Load(ctx context.Context) ([]model.Reminder, error) {
	rows, err := s.repo.ListReminders(ctx)
	if err != nil {
		return nil, fmt.Errorf("list reminders: %w", err)
	}
	items := make([]model.Reminder, len(rows))
	for i, row := range rows {
		items[i] = fromStorageReminder(row)
	}

	out, changed := order.Normalize(items, func(a, b model.Reminder) bool {
		if !a.DueDate.Equal(b.DueDate) {
			return a.DueDate.Before(b.DueDate)
		}
		return a.CreatedAt.Before(b.CreatedAt)
	})
	if changed {
		if err := s.persistAll(ctx, out); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func (s *ReminderStore) Add(ctx context.Context, req CreateReminderRequest) (model.Reminder, error) {
	items, err := s.Load(ctx)
	if err != nil {
		return model.Reminder{}, err
	}
	next := maxOrder(items) + 1
	r := model.Reminder{
		ID:        uuid.NewString(),
		Title:     strings.TrimSpace(req.Title),
		Note:      req.Note,
		DueDate:   req.DueDate,
		Order:     &next,
		CreatedAt: s.clk.Now(),
	}
	if err := r.Validate(); err != nil {
		return model.Reminder{}, err
	}
	if err := s.repo.CreateReminder(ctx, toStorageReminder(r)); err != nil {
		return model.Reminder{}, fmt.Errorf("create reminder: %w", err)
	}
	return r, nil
}

// Update replaces a reminder's fields. Changing the due date re-arms the
// reminder: notified and completed reset so the new date fires again.
func (s *ReminderStore) Update(ctx context.Context, in model.Reminder) (model.Reminder, error) {
	existing, err := s.repo.GetReminder(ctx, in.ID)
	if err != nil {
		return model.Reminder{}, fmt.Errorf("get reminder: %w", err)
	}
	next := in
	next.Title = strings.TrimSpace(next.Title)
	if !existing.DueAt.Equal(in.DueDate) {
		next.Notified = false
		next.Completed = false
	}
	if err := next.Validate(); err != nil {
		return model.Reminder{}, err
	}
	if err := s.repo.UpdateReminder(ctx, toStorageReminder(next)); err != nil {
		return model.Reminder{}, fmt.Errorf("update reminder: %w", err)
	}
	return next, nil
}

func (s *ReminderStore) Remove(ctx context.Context, id string) error {
	return s.repo.DeleteReminder(ctx, id)
}

func (s *ReminderStore) Clear(ctx context.Context) error {
	return s.repo.ClearReminders(ctx)
}

// ReorderPending replaces the pending partition's relative order with the
// given id sequence; completed items keep their order and follow.
func (s *ReminderStore) ReorderPending(ctx context.Context, ids []string) ([]model.Reminder, error) {
	return s.reorder(ctx, order.Primary, ids)
}

// ReorderCompleted is ReorderPending for the completed partition; pending
// items keep their order and come first.
func (s *ReminderStore) ReorderCompleted(ctx context.Context, ids []string) ([]model.Reminder, error) {
	return s.reorder(ctx, order.Secondary, ids)
}

func (s *ReminderStore) reorder(ctx context.Context, target order.Partition, ids []string) ([]model.Reminder, error) {
	items, err := s.Load(ctx)
	if err != nil {
		return nil, err
	}
	out, err := order.Reorder(items, func(r model.Reminder) bool { return !r.Completed }, target, ids)
	if err != nil {
		return nil, err
	}
	if err := s.persistAll(ctx, out); err != nil {
		return nil, err
	}
	return out, nil
}

// ToggleComplete moves a reminder between the pending and completed
// partitions, appending it to the end of its new partition.
func (s *ReminderStore) ToggleComplete(ctx context.Context, id string) ([]model.Reminder, error) {
	items, err := s.Load(ctx)
	if err != nil {
		return nil, err
	}
	out, err := order.MoveToPartition(items, id,
		func(r model.Reminder) bool { return !r.Completed },
		func(r model.Reminder) model.Reminder {
			r.Completed = !r.Completed
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

// MarkNotified records that a notification was delivered for the
// reminder's current due date. Idempotent from the dispatcher's view:
// once set, IsDue is false until the due date changes.
func (s *ReminderStore) MarkNotified(ctx context.Context, id string) error {
	existing, err := s.repo.GetReminder(ctx, id)
	if err != nil {
		return fmt.Errorf("get reminder: %w", err)
	}
	existing.Notified = true
	if err := s.repo.UpdateReminder(ctx, existing); err != nil {
		return fmt.Errorf("mark reminder notified: %w", err)
	}
	return nil
}

// Restore writes an item verbatim, preserving id, flags, and order.
// Used by backup import after validation.
func (s *ReminderStore) Restore(ctx context.Context, r model.Reminder) error {
	if err := r.Validate(); err != nil {
		return err
	}
	return s.repo.CreateReminder(ctx, toStorageReminder(r))
}

// persistAll writes every item's current state. There is no rollback: a
// failure mid-batch leaves earlier writes in place and is reported to the
// caller, which reconciles by reloading.
func (s *ReminderStore) persistAll(ctx context.Context, items []model.Reminder) error {
	for _, it := range items {
		if err := s.repo.UpdateReminder(ctx, toStorageReminder(it)); err != nil {
			return fmt.Errorf("persist reminder %s: %w", it.ID, err)
		}
	}
	return nil
}

func maxOrder[T order.Item[T]](items []T) int {
	max := -1
	for _, it := range items {
		if idx, ok := it.OrderIndex(); ok && idx > max {
			max = idx
		}
	}
	return max
}
