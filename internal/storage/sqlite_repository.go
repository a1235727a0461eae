package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

const sqliteTimeLayout = time.RFC3339Nano

type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(db *sql.DB) (*SQLiteRepository, error) {
	if db == nil {
		return nil, errors.New("storage: nil db")
	}
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		return nil, fmt.Errorf("enable foreign keys: %w", err)
	}
	return &SQLiteRepository{db: db}, nil
}

// OpenSQLite opens (creating parent directories if needed) the database
// at path, applies migrations, and returns a ready repository.
func OpenSQLite(path string) (*SQLiteRepository, error) {
	if path != ":memory:" {
		if dir := filepath.Dir(path); dir != "." && dir != "" {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("create db directory: %w", err)
			}
		}
	}
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if err := MigrateUp(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	repo, err := NewSQLiteRepository(db)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return repo, nil
}

func (r *SQLiteRepository) Close() error {
	return r.db.Close()
}

func (r *SQLiteRepository) ListReminders(ctx context.Context) ([]Reminder, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, title, note, due_at, order_idx, completed, notified, created_at
		FROM reminders`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Reminder, 0)
	for rows.Next() {
		item, scanErr := scanReminder(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		out = append(out, item)
	}
	return out, rows.Err()
}

func (r *SQLiteRepository) GetReminder(ctx context.Context, id string) (Reminder, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, title, note, due_at, order_idx, completed, notified, created_at
		FROM reminders WHERE id = ?`, id)
	item, err := scanReminder(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Reminder{}, ErrNotFound
		}
		return Reminder{}, err
	}
	return item, nil
}

func (r *SQLiteRepository) CreateReminder(ctx context.Context, in Reminder) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO reminders (id, title, note, due_at, order_idx, completed, notified, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		in.ID, in.Title, in.Note, mustTime(in.DueAt), nullInt(in.OrderIdx),
		boolInt(in.Completed), boolInt(in.Notified), mustTime(in.CreatedAt),
	)
	return err
}

func (r *SQLiteRepository) UpdateReminder(ctx context.Context, in Reminder) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE reminders
		SET title = ?, note = ?, due_at = ?, order_idx = ?, completed = ?, notified = ?
		WHERE id = ?`,
		in.Title, in.Note, mustTime(in.DueAt), nullInt(in.OrderIdx),
		boolInt(in.Completed), boolInt(in.Notified), in.ID,
	)
	if err != nil {
		return err
	}
	return checkRowsAffected(res)
}

func (r *SQLiteRepository) DeleteReminder(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM reminders WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return checkRowsAffected(res)
}

func (r *SQLiteRepository) ClearReminders(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM reminders`)
	return err
}

func (r *SQLiteRepository) ListRecurring(ctx context.Context) ([]RecurringReminder, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, title, note, frequency, clock_time, days_of_week, day_of_month,
			order_idx, enabled, last_notified_at, created_at
		FROM recurring_reminders`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]RecurringReminder, 0)
	for rows.Next() {
		item, scanErr := scanRecurring(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		out = append(out, item)
	}
	return out, rows.Err()
}

func (r *SQLiteRepository) GetRecurring(ctx context.Context, id string) (RecurringReminder, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, title, note, frequency, clock_time, days_of_week, day_of_month,
			order_idx, enabled, last_notified_at, created_at
		FROM recurring_reminders WHERE id = ?`, id)
	item, err := scanRecurring(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return RecurringReminder{}, ErrNotFound
		}
		return RecurringReminder{}, err
	}
	return item, nil
}

func (r *SQLiteRepository) CreateRecurring(ctx context.Context, in RecurringReminder) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO recurring_reminders
			(id, title, note, frequency, clock_time, days_of_week, day_of_month,
			order_idx, enabled, last_notified_at, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		in.ID, in.Title, in.Note, in.Frequency, in.ClockTime, joinDays(in.DaysOfWeek),
		in.DayOfMonth, nullInt(in.OrderIdx), boolInt(in.Enabled),
		nullTime(in.LastNotifiedAt), mustTime(in.CreatedAt),
	)
	return err
}

func (r *SQLiteRepository) UpdateRecurring(ctx context.Context, in RecurringReminder) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE recurring_reminders
		SET title = ?, note = ?, frequency = ?, clock_time = ?, days_of_week = ?,
			day_of_month = ?, order_idx = ?, enabled = ?, last_notified_at = ?
		WHERE id = ?`,
		in.Title, in.Note, in.Frequency, in.ClockTime, joinDays(in.DaysOfWeek),
		in.DayOfMonth, nullInt(in.OrderIdx), boolInt(in.Enabled),
		nullTime(in.LastNotifiedAt), in.ID,
	)
	if err != nil {
		return err
	}
	return checkRowsAffected(res)
}

func (r *SQLiteRepository) DeleteRecurring(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM recurring_reminders WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return checkRowsAffected(res)
}

func (r *SQLiteRepository) ClearRecurring(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM recurring_reminders`)
	return err
}

func checkRowsAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func nullTime(v *time.Time) any {
	if v == nil {
		return nil
	}
	return v.UTC().Format(sqliteTimeLayout)
}

func mustTime(v time.Time) string {
	return v.UTC().Format(sqliteTimeLayout)
}

func nullInt(v *int) any {
	if v == nil {
		return nil
	}
	return *v
}

func boolInt(v bool) int {
	if v {
		return 1
	}
	return 0
}

func joinDays(days []int) string {
	if len(days) == 0 {
		return ""
	}
	parts := make([]string, len(days))
	for i, d := range days {
		parts[i] = strconv.Itoa(d)
	}
	return strings.Join(parts, ",")
}

func splitDays(raw string) ([]int, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	parts := strings.Split(raw, ",")
	out := make([]int, 0, len(parts))
	for _, p := range parts {
		d, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return nil, fmt.Errorf("parse days_of_week %q: %w", raw, err)
		}
		out = append(out, d)
	}
	return out, nil
}

func parseNullableTime(v sql.NullString) (*time.Time, error) {
	if !v.Valid || v.String == "" {
		return nil, nil
	}
	tm, err := time.Parse(sqliteTimeLayout, v.String)
	if err != nil {
		return nil, err
	}
	return &tm, nil
}

func parseRequiredTime(v string) (time.Time, error) {
	return time.Parse(sqliteTimeLayout, v)
}

type scanner interface {
	Scan(dest ...any) error
}

func scanReminder(s scanner) (Reminder, error) {
	var out Reminder
	var due, created string
	var orderIdx sql.NullInt64
	var completed, notified int
	if err := s.Scan(&out.ID, &out.Title, &out.Note, &due, &orderIdx, &completed, &notified, &created); err != nil {
		return Reminder{}, err
	}
	dueAt, err := parseRequiredTime(due)
	if err != nil {
		return Reminder{}, err
	}
	createdAt, err := parseRequiredTime(created)
	if err != nil {
		return Reminder{}, err
	}
	out.DueAt = dueAt
	out.CreatedAt = createdAt
	out.Completed = completed != 0
	out.Notified = notified != 0
	if orderIdx.Valid {
		idx := int(orderIdx.Int64)
		out.OrderIdx = &idx
	}
	return out, nil
}

func scanRecurring(s scanner) (RecurringReminder, error) {
	var out RecurringReminder
	var days, created string
	var orderIdx sql.NullInt64
	var enabled int
	var lastNotified sql.NullString
	if err := s.Scan(&out.ID, &out.Title, &out.Note, &out.Frequency, &out.ClockTime,
		&days, &out.DayOfMonth, &orderIdx, &enabled, &lastNotified, &created); err != nil {
		return RecurringReminder{}, err
	}
	daysOfWeek, err := splitDays(days)
	if err != nil {
		return RecurringReminder{}, err
	}
	createdAt, err := parseRequiredTime(created)
	if err != nil {
		return RecurringReminder{}, err
	}
	lastNotifiedAt, err := parseNullableTime(lastNotified)
	if err != nil {
		return RecurringReminder{}, err
	}
	out.DaysOfWeek = daysOfWeek
	out.CreatedAt = createdAt
	out.LastNotifiedAt = lastNotifiedAt
	out.Enabled = enabled != 0
	if orderIdx.Valid {
		idx := int(orderIdx.Int64)
		out.OrderIdx = &idx
	}
	return out, nil
}
