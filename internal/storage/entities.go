package storage

import "time"

// Reminder is the persisted shape of a one-time reminder. OrderIdx is a
// pointer because rows written before ordering existed carry NULL; the
// store layer assigns and writes back an index on first load.
type Reminder struct {
	ID        string
	Title     string
	Note      string
	DueAt     time.Time
	OrderIdx  *int
	Completed bool
	Notified  bool
	CreatedAt time.Time
}

type RecurringReminder struct {
	ID             string
	Title          string
	Note           string
	Frequency      string
	ClockTime      string
	DaysOfWeek     []int
	DayOfMonth     int
	OrderIdx       *int
	Enabled        bool
	LastNotifiedAt *time.Time
	CreatedAt      time.Time
}
