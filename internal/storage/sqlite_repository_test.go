package storage

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"
	"time"
)

func setupRepo(t *testing.T) *SQLiteRepository {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "remindd-test.db")
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	if err := MigrateUp(db); err != nil {
		t.Fatalf("migrate up: %v", err)
	}

	repo, err := NewSQLiteRepository(db)
	if err != nil {
		t.Fatalf("new repo: %v", err)
	}
	return repo
}

func parseRFC3339(t *testing.T, value string) time.Time {
	t.Helper()
	out, err := time.Parse(time.RFC3339, value)
	if err != nil {
		t.Fatalf("parse time: %v", err)
	}
	return out
}

func TestReminderCRUDAndList(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()
	created := parseRFC3339(t, "2026-08-28T09:00:00Z")
	idx := 0

	rem := Reminder{
		ID:        "rem-1",
		Title:     "Pay rent",
		Note:      "Transfer before noon",
		DueAt:     created.Add(2 * time.Hour),
		OrderIdx:  &idx,
		CreatedAt: created,
	}
	if err := repo.CreateReminder(ctx, rem); err != nil {
		t.Fatalf("create reminder: %v", err)
	}

	got, err := repo.GetReminder(ctx, rem.ID)
	if err != nil {
		t.Fatalf("get reminder: %v", err)
	}
	if got.Title != rem.Title || !got.DueAt.Equal(rem.DueAt) || got.OrderIdx == nil || *got.OrderIdx != 0 {
		t.Fatalf("unexpected reminder get result: %#v", got)
	}
	if got.Completed || got.Notified {
		t.Fatalf("flags must default to false: %#v", got)
	}

	rem.Title = "Pay rent (updated)"
	rem.Notified = true
	if err := repo.UpdateReminder(ctx, rem); err != nil {
		t.Fatalf("update reminder: %v", err)
	}
	got, err = repo.GetReminder(ctx, rem.ID)
	if err != nil {
		t.Fatalf("get reminder after update: %v", err)
	}
	if got.Title != "Pay rent (updated)" || !got.Notified {
		t.Fatalf("update not persisted: %#v", got)
	}

	all, err := repo.ListReminders(ctx)
	if err != nil {
		t.Fatalf("list reminders: %v", err)
	}
	if len(all) != 1 || all[0].ID != rem.ID {
		t.Fatalf("unexpected list: %#v", all)
	}

	if err := repo.DeleteReminder(ctx, rem.ID); err != nil {
		t.Fatalf("delete reminder: %v", err)
	}
	if _, err := repo.GetReminder(ctx, rem.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got: %v", err)
	}
}

func TestReminderNullOrderRoundTrip(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()
	created := parseRFC3339(t, "2026-08-28T09:00:00Z")

	rem := Reminder{
		ID:        "legacy-1",
		Title:     "Legacy row",
		DueAt:     created,
		CreatedAt: created,
	}
	if err := repo.CreateReminder(ctx, rem); err != nil {
		t.Fatalf("create reminder: %v", err)
	}
	got, err := repo.GetReminder(ctx, rem.ID)
	if err != nil {
		t.Fatalf("get reminder: %v", err)
	}
	if got.OrderIdx != nil {
		t.Fatalf("expected nil order index, got %d", *got.OrderIdx)
	}
}

func TestUpdateMissingReminder(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()
	created := parseRFC3339(t, "2026-08-28T09:00:00Z")

	err := repo.UpdateReminder(ctx, Reminder{ID: "nope", Title: "x", DueAt: created, CreatedAt: created})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got: %v", err)
	}
	if err := repo.DeleteReminder(ctx, "nope"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got: %v", err)
	}
}

func TestRecurringCRUD(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()
	created := parseRFC3339(t, "2026-08-01T08:00:00Z")
	idx := 0

	rec := RecurringReminder{
		ID:         "rec-1",
		Title:      "Standup",
		Frequency:  "weekly",
		ClockTime:  "09:00",
		DaysOfWeek: []int{1, 3, 5},
		OrderIdx:   &idx,
		Enabled:    true,
		CreatedAt:  created,
	}
	if err := repo.CreateRecurring(ctx, rec); err != nil {
		t.Fatalf("create recurring: %v", err)
	}

	got, err := repo.GetRecurring(ctx, rec.ID)
	if err != nil {
		t.Fatalf("get recurring: %v", err)
	}
	if got.Frequency != "weekly" || got.ClockTime != "09:00" || !got.Enabled {
		t.Fatalf("unexpected recurring get result: %#v", got)
	}
	if len(got.DaysOfWeek) != 3 || got.DaysOfWeek[0] != 1 || got.DaysOfWeek[2] != 5 {
		t.Fatalf("days of week not round-tripped: %#v", got.DaysOfWeek)
	}
	if got.LastNotifiedAt != nil {
		t.Fatalf("expected nil last notified, got %v", got.LastNotifiedAt)
	}

	fired := parseRFC3339(t, "2026-08-03T09:00:00Z")
	rec.LastNotifiedAt = &fired
	rec.Enabled = false
	if err := repo.UpdateRecurring(ctx, rec); err != nil {
		t.Fatalf("update recurring: %v", err)
	}
	got, err = repo.GetRecurring(ctx, rec.ID)
	if err != nil {
		t.Fatalf("get recurring after update: %v", err)
	}
	if got.Enabled || got.LastNotifiedAt == nil || !got.LastNotifiedAt.Equal(fired) {
		t.Fatalf("update not persisted: %#v", got)
	}

	if err := repo.DeleteRecurring(ctx, rec.ID); err != nil {
		t.Fatalf("delete recurring: %v", err)
	}
	if _, err := repo.GetRecurring(ctx, rec.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got: %v", err)
	}
}

func TestClearBothCollections(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()
	created := parseRFC3339(t, "2026-08-28T09:00:00Z")

	for _, id := range []string{"a", "b"} {
		if err := repo.CreateReminder(ctx, Reminder{ID: id, Title: id, DueAt: created, CreatedAt: created}); err != nil {
			t.Fatalf("create reminder: %v", err)
		}
	}
	if err := repo.CreateRecurring(ctx, RecurringReminder{
		ID: "rec-a", Title: "rec-a", Frequency: "daily", ClockTime: "08:00", Enabled: true, CreatedAt: created,
	}); err != nil {
		t.Fatalf("create recurring: %v", err)
	}

	if err := repo.ClearReminders(ctx); err != nil {
		t.Fatalf("clear reminders: %v", err)
	}
	if err := repo.ClearRecurring(ctx); err != nil {
		t.Fatalf("clear recurring: %v", err)
	}

	reminders, err := repo.ListReminders(ctx)
	if err != nil {
		t.Fatalf("list reminders: %v", err)
	}
	recurring, err := repo.ListRecurring(ctx)
	if err != nil {
		t.Fatalf("list recurring: %v", err)
	}
	if len(reminders) != 0 || len(recurring) != 0 {
		t.Fatalf("collections not cleared: %d reminders, %d recurring", len(reminders), len(recurring))
	}
}

func TestMigrateDown(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "remindd-migrate.db")
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	if err := MigrateUp(db); err != nil {
		t.Fatalf("migrate up: %v", err)
	}
	if err := MigrateDown(db); err != nil {
		t.Fatalf("migrate down: %v", err)
	}
	if _, err := db.Exec(`SELECT COUNT(*) FROM reminders`); err == nil {
		t.Fatal("expected reminders table to be dropped")
	}
}
