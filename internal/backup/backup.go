// Package backup implements JSON export and destructive-replace import of
// both reminder collections.
package backup

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/sandeepkv93/remindd/internal/model"
)

var ErrInvalidFormat = errors.New("backup: invalid backup format")

// Snapshot is the backup file shape. Both keys must be present on import,
// even when empty.
type Snapshot struct {
	Reminders          []model.Reminder          `json:"reminders"`
	RecurringReminders []model.RecurringReminder `json:"recurringReminders"`
}

// ReminderCollection is the slice of the reminder store the backup
// manager needs. Restore writes an item verbatim.
type ReminderCollection interface {
	Load(ctx context.Context) ([]model.Reminder, error)
	Clear(ctx context.Context) error
	Restore(ctx context.Context, r model.Reminder) error
}

type RecurringCollection interface {
	Load(ctx context.Context) ([]model.RecurringReminder, error)
	Clear(ctx context.Context) error
	Restore(ctx context.Context, r model.RecurringReminder) error
}

type Manager struct {
	reminders ReminderCollection
	recurring RecurringCollection
}

func NewManager(reminders ReminderCollection, recurring RecurringCollection) *Manager {
	return &Manager{reminders: reminders, recurring: recurring}
}

// Export writes both collections as indented JSON.
func (m *Manager) Export(ctx context.Context, w io.Writer) error {
	reminders, err := m.reminders.Load(ctx)
	if err != nil {
		return fmt.Errorf("load reminders: %w", err)
	}
	recurring, err := m.recurring.Load(ctx)
	if err != nil {
		return fmt.Errorf("load recurring reminders: %w", err)
	}
	snap := Snapshot{Reminders: reminders, RecurringReminders: recurring}
	if snap.Reminders == nil {
		snap.Reminders = []model.Reminder{}
	}
	if snap.RecurringReminders == nil {
		snap.RecurringReminders = []model.RecurringReminder{}
	}

	payload, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("encode backup: %w", err)
	}
	if _, err := w.Write(append(payload, '\n')); err != nil {
		return fmt.Errorf("write backup: %w", err)
	}
	return nil
}

func (m *Manager) ExportFile(ctx context.Context, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create backup file: %w", err)
	}
	defer f.Close()
	return m.Export(ctx, f)
}

// DefaultExportName returns the conventional backup filename for a date,
// e.g. "reminders-backup-2026-08-28.json".
func DefaultExportName(now time.Time) string {
	return fmt.Sprintf("reminders-backup-%s.json", now.Format("2006-01-02"))
}

// Decode parses and validates a backup payload. Both top-level keys must
// be present and hold arrays (possibly empty), and every item must pass
// model validation; anything else is ErrInvalidFormat. Validation never
// touches the stores, so a rejected payload cannot cause a partial
// import.
func Decode(r io.Reader) (Snapshot, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return Snapshot{}, fmt.Errorf("read backup: %w", err)
	}

	var probe map[string]json.RawMessage
	if err := json.Unmarshal(raw, &probe); err != nil {
		return Snapshot{}, fmt.Errorf("%w: %v", ErrInvalidFormat, err)
	}

	var snap Snapshot
	if snap.Reminders, err = decodeArray[model.Reminder](probe, "reminders"); err != nil {
		return Snapshot{}, err
	}
	if snap.RecurringReminders, err = decodeArray[model.RecurringReminder](probe, "recurringReminders"); err != nil {
		return Snapshot{}, err
	}

	for _, item := range snap.Reminders {
		if err := item.Validate(); err != nil {
			return Snapshot{}, fmt.Errorf("%w: reminder %q: %v", ErrInvalidFormat, item.ID, err)
		}
	}
	for _, item := range snap.RecurringReminders {
		if err := item.Validate(); err != nil {
			return Snapshot{}, fmt.Errorf("%w: recurring reminder %q: %v", ErrInvalidFormat, item.ID, err)
		}
	}
	return snap, nil
}

func decodeArray[T any](probe map[string]json.RawMessage, key string) ([]T, error) {
	raw, ok := probe[key]
	if !ok || bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		return nil, fmt.Errorf("%w: missing %q", ErrInvalidFormat, key)
	}
	var out []T
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrInvalidFormat, key, err)
	}
	if out == nil {
		out = []T{}
	}
	return out, nil
}

// Import validates the payload, then destructively replaces both
// collections: clear, normalize missing order indexes by input position,
// write every item. Nothing is written when validation fails.
func (m *Manager) Import(ctx context.Context, r io.Reader) error {
	snap, err := Decode(r)
	if err != nil {
		return err
	}

	if err := m.reminders.Clear(ctx); err != nil {
		return fmt.Errorf("clear reminders: %w", err)
	}
	if err := m.recurring.Clear(ctx); err != nil {
		return fmt.Errorf("clear recurring reminders: %w", err)
	}

	for i, item := range snap.Reminders {
		if item.Order == nil {
			idx := i
			item.Order = &idx
		}
		if err := m.reminders.Restore(ctx, item); err != nil {
			return fmt.Errorf("restore reminder %s: %w", item.ID, err)
		}
	}
	for i, item := range snap.RecurringReminders {
		if item.Order == nil {
			idx := i
			item.Order = &idx
		}
		if err := m.recurring.Restore(ctx, item); err != nil {
			return fmt.Errorf("restore recurring reminder %s: %w", item.ID, err)
		}
	}
	return nil
}

func (m *Manager) ImportFile(ctx context.Context, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open backup file: %w", err)
	}
	defer f.Close()
	return m.Import(ctx, f)
}
