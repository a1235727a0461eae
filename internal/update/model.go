// Package update holds the bubbletea model: two tabs over the reminder
// collections, an add/edit form, a command palette, and the delivery log
// fed by the dispatcher.
package update

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"

	"github.com/sandeepkv93/remindd/internal/dispatch"
	"github.com/sandeepkv93/remindd/internal/model"
	"github.com/sandeepkv93/remindd/internal/store"
)

type Tab string

const (
	TabReminders Tab = "Reminders"
	TabRecurring Tab = "Recurring"
)

type StatusBar struct {
	Text    string
	IsError bool
}

type GlobalKeyMap struct {
	Reminders string
	Recurring string
	Export    string
	Import    string
	Help      string
	Quit      string
}

// RemindersService is the slice of the reminder store the UI drives.
type RemindersService interface {
	Load(ctx context.Context) ([]model.Reminder, error)
	Add(ctx context.Context, req store.CreateReminderRequest) (model.Reminder, error)
	Update(ctx context.Context, r model.Reminder) (model.Reminder, error)
	Remove(ctx context.Context, id string) error
	Clear(ctx context.Context) error
	ReorderPending(ctx context.Context, ids []string) ([]model.Reminder, error)
	ReorderCompleted(ctx context.Context, ids []string) ([]model.Reminder, error)
	ToggleComplete(ctx context.Context, id string) ([]model.Reminder, error)
}

type RecurringService interface {
	Load(ctx context.Context) ([]model.RecurringReminder, error)
	Add(ctx context.Context, req store.CreateRecurringRequest) (model.RecurringReminder, error)
	Update(ctx context.Context, r model.RecurringReminder) (model.RecurringReminder, error)
	Remove(ctx context.Context, id string) error
	Clear(ctx context.Context) error
	ReorderEnabled(ctx context.Context, ids []string) ([]model.RecurringReminder, error)
	ReorderDisabled(ctx context.Context, ids []string) ([]model.RecurringReminder, error)
	ToggleEnabled(ctx context.Context, id string) ([]model.RecurringReminder, error)
}

type BackupService interface {
	ExportFile(ctx context.Context, path string) error
	ImportFile(ctx context.Context, path string) error
}

// Waker is satisfied by dispatch.Ticker. The UI pokes it on terminal
// focus so a poll runs immediately after the process wakes up.
type Waker interface {
	Wake()
}

type CommandPaletteState struct {
	Active bool
	Input  string
}

type Model struct {
	CurrentTab      Tab
	Reminders       []model.Reminder
	Recurring       []model.RecurringReminder
	ReminderCursor  int
	RecurringCursor int
	Palette         CommandPaletteState
	HelpVisible     bool
	Deliveries      []dispatch.Delivery
	Status          StatusBar
	Keys            GlobalKeyMap
	Quitting        bool
	LastError       error

	reminders RemindersService
	recurring RecurringService
	backups   BackupService
	waker     Waker
	backupDir string

	commandInput textinput.Model
	form         formState
	helpModel    help.Model
	noteViewport viewport.Model
}

type helpKeyMap struct {
	short []key.Binding
	full  [][]key.Binding
}

func (k helpKeyMap) ShortHelp() []key.Binding  { return k.short }
func (k helpKeyMap) FullHelp() [][]key.Binding { return k.full }

// loadedMsg carries the result of the initial (or a forced) load of both
// collections.
type loadedMsg struct {
	Reminders []model.Reminder
	Recurring []model.RecurringReminder
	Err       error
}

// DeliveriesMsg carries the dispatcher's poll results into the program,
// sent from the ticker goroutine via Program.Send.
type DeliveriesMsg struct {
	Items []dispatch.Delivery
}

type SetStatusMsg struct {
	Text    string
	IsError bool
}

type ClearStatusMsg struct{}

type AppErrorMsg struct {
	Err error
}

type Options struct {
	Reminders RemindersService
	Recurring RecurringService
	Backups   BackupService
	Waker     Waker
	BackupDir string
}

func NewModel(opts Options) Model {
	m := Model{
		CurrentTab: TabReminders,
		reminders:  opts.Reminders,
		recurring:  opts.Recurring,
		backups:    opts.Backups,
		waker:      opts.Waker,
		backupDir:  opts.BackupDir,
		Keys: GlobalKeyMap{
			Reminders: "1",
			Recurring: "2",
			Export:    "E",
			Import:    "I",
			Help:      "?",
			Quit:      "q",
		},
	}
	m.initBubbleComponents()
	return m
}

func (m *Model) initBubbleComponents() {
	m.commandInput = textinput.New()
	m.commandInput.Prompt = "/"
	m.commandInput.CharLimit = 256
	m.commandInput.Width = 42

	m.helpModel = help.New()
	m.noteViewport = viewport.New(42, 10)
}

// syncNotePreview keeps the right-hand viewport showing the selected
// item's note rendered as markdown.
func (m *Model) syncNotePreview() {
	note := ""
	switch m.CurrentTab {
	case TabReminders:
		if r, ok := m.currentReminder(); ok {
			note = r.Note
		}
	case TabRecurring:
		if r, ok := m.currentRecurring(); ok {
			note = r.Note
		}
	}
	m.noteViewport.SetContent(renderMarkdownNote(note))
}

func (m Model) currentReminder() (model.Reminder, bool) {
	if m.ReminderCursor < 0 || m.ReminderCursor >= len(m.Reminders) {
		return model.Reminder{}, false
	}
	return m.Reminders[m.ReminderCursor], true
}

func (m Model) currentRecurring() (model.RecurringReminder, bool) {
	if m.RecurringCursor < 0 || m.RecurringCursor >= len(m.Recurring) {
		return model.RecurringReminder{}, false
	}
	return m.Recurring[m.RecurringCursor], true
}

func (m *Model) clampCursors() {
	if m.ReminderCursor >= len(m.Reminders) {
		m.ReminderCursor = len(m.Reminders) - 1
	}
	if m.ReminderCursor < 0 {
		m.ReminderCursor = 0
	}
	if m.RecurringCursor >= len(m.Recurring) {
		m.RecurringCursor = len(m.Recurring) - 1
	}
	if m.RecurringCursor < 0 {
		m.RecurringCursor = 0
	}
}

func (m *Model) appendDeliveries(items []dispatch.Delivery) {
	m.Deliveries = append(m.Deliveries, items...)
	if len(m.Deliveries) > 20 {
		m.Deliveries = m.Deliveries[len(m.Deliveries)-20:]
	}
}

func (m Model) opCtx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 5*time.Second)
}
