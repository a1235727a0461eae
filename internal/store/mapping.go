package store

import (
	"github.com/sandeepkv93/remindd/internal/model"
	"github.com/sandeepkv93/remindd/internal/storage"
)

func toStorageReminder(r model.Reminder) storage.Reminder {
	return storage.Reminder{
		ID:        r.ID,
		Title:     r.Title,
		Note:      r.Note,
		DueAt:     r.DueDate,
		OrderIdx:  r.Order,
		Completed: r.Completed,
		Notified:  r.Notified,
		CreatedAt: r.CreatedAt,
	}
}

func fromStorageReminder(in storage.Reminder) model.Reminder {
	return model.Reminder{
		ID:        in.ID,
		Title:     in.Title,
		Note:      in.Note,
		DueDate:   in.DueAt,
		Order:     in.OrderIdx,
		Completed: in.Completed,
		Notified:  in.Notified,
		CreatedAt: in.CreatedAt,
	}
}

func toStorageRecurring(r model.RecurringReminder) storage.RecurringReminder {
	return storage.RecurringReminder{
		ID:             r.ID,
		Title:          r.Title,
		Note:           r.Note,
		Frequency:      string(r.Frequency),
		ClockTime:      r.Time,
		DaysOfWeek:     r.DaysOfWeek,
		DayOfMonth:     r.DayOfMonth,
		OrderIdx:       r.Order,
		Enabled:        r.Enabled,
		LastNotifiedAt: r.LastNotified,
		CreatedAt:      r.CreatedAt,
	}
}

func fromStorageRecurring(in storage.RecurringReminder) model.RecurringReminder {
	return model.RecurringReminder{
		ID:           in.ID,
		Title:        in.Title,
		Note:         in.Note,
		Frequency:    model.Frequency(in.Frequency),
		Time:         in.ClockTime,
		DaysOfWeek:   in.DaysOfWeek,
		DayOfMonth:   in.DayOfMonth,
		Order:        in.OrderIdx,
		Enabled:      in.Enabled,
		LastNotified: in.LastNotifiedAt,
		CreatedAt:    in.CreatedAt,
	}
}
