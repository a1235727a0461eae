package update

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/remindd/internal/model"
	"github.com/sandeepkv93/remindd/internal/store"
	"github.com/sandeepkv93/remindd/internal/views"
)

const formDueLayout = "2006-01-02 15:04"

type formState struct {
	Active bool
	Tab    Tab
	EditID string
	labels []string
	inputs []textinput.Model
	focus  int
	Err    string
	// original is the item being edited, so fields the form does not
	// expose (order, flags, timestamps) survive a save.
	originalReminder  model.Reminder
	originalRecurring model.RecurringReminder
}

func newFormInput(value string) textinput.Model {
	in := textinput.New()
	in.CharLimit = 256
	in.Width = 32
	in.SetValue(value)
	return in
}

func (m *Model) openReminderForm(existing *model.Reminder) {
	f := formState{Active: true, Tab: TabReminders}
	title, due, note := "", "", ""
	if existing != nil {
		f.EditID = existing.ID
		f.originalReminder = *existing
		title = existing.Title
		due = existing.DueDate.Format(formDueLayout)
		note = existing.Note
	}
	f.labels = []string{"title", "due (yyyy-mm-dd hh:mm)", "note"}
	f.inputs = []textinput.Model{newFormInput(title), newFormInput(due), newFormInput(note)}
	f.inputs[0].Focus()
	m.form = f
}

func (m *Model) openRecurringForm(existing *model.RecurringReminder) {
	f := formState{Active: true, Tab: TabRecurring}
	title, freq, clockTime, days, dom, note := "", "daily", "", "", "", ""
	if existing != nil {
		f.EditID = existing.ID
		f.originalRecurring = *existing
		title = existing.Title
		freq = string(existing.Frequency)
		clockTime = existing.Time
		days = joinInts(existing.DaysOfWeek)
		if existing.DayOfMonth > 0 {
			dom = strconv.Itoa(existing.DayOfMonth)
		}
		note = existing.Note
	}
	f.labels = []string{"title", "frequency (daily/weekly/monthly)", "time (hh:mm)", "days of week (0-6, comma)", "day of month", "note"}
	f.inputs = []textinput.Model{
		newFormInput(title), newFormInput(freq), newFormInput(clockTime),
		newFormInput(days), newFormInput(dom), newFormInput(note),
	}
	f.inputs[0].Focus()
	m.form = f
}

func (m Model) handleFormKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.form = formState{}
		m.Status = StatusBar{Text: "form cancelled"}
		return m, nil
	case "tab", "down":
		m.form.focus = (m.form.focus + 1) % len(m.form.inputs)
		m.focusFormField()
		return m, nil
	case "shift+tab", "up":
		m.form.focus = (m.form.focus - 1 + len(m.form.inputs)) % len(m.form.inputs)
		m.focusFormField()
		return m, nil
	case "enter":
		return m.submitForm(), nil
	}
	var cmd tea.Cmd
	m.form.inputs[m.form.focus], cmd = m.form.inputs[m.form.focus].Update(msg)
	return m, cmd
}

func (m *Model) focusFormField() {
	for i := range m.form.inputs {
		if i == m.form.focus {
			m.form.inputs[i].Focus()
		} else {
			m.form.inputs[i].Blur()
		}
	}
}

func (m Model) submitForm() Model {
	switch m.form.Tab {
	case TabReminders:
		return m.submitReminderForm()
	case TabRecurring:
		return m.submitRecurringForm()
	}
	return m
}

func (m Model) submitReminderForm() Model {
	title := strings.TrimSpace(m.form.inputs[0].Value())
	due, err := time.ParseInLocation(formDueLayout, strings.TrimSpace(m.form.inputs[1].Value()), time.Local)
	if err != nil {
		m.form.Err = fmt.Sprintf("bad due time (want %s)", formDueLayout)
		return m
	}
	note := m.form.inputs[2].Value()

	ctx, cancel := m.opCtx()
	defer cancel()

	var saved model.Reminder
	if m.form.EditID == "" {
		saved, err = m.reminders.Add(ctx, store.CreateReminderRequest{Title: title, Note: note, DueDate: due})
	} else {
		next := m.form.originalReminder
		next.Title = title
		next.Note = note
		next.DueDate = due
		saved, err = m.reminders.Update(ctx, next)
	}
	if err != nil {
		m.form.Err = err.Error()
		return m
	}

	out, err := m.reminders.Load(ctx)
	if err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		return m
	}
	m.Reminders = out
	m.ReminderCursor = indexOfReminder(out, saved.ID)
	m.form = formState{}
	m.syncNotePreview()
	m.Status = StatusBar{Text: fmt.Sprintf("saved: %s", saved.Title)}
	return m
}

func (m Model) submitRecurringForm() Model {
	title := strings.TrimSpace(m.form.inputs[0].Value())
	freq := model.Frequency(strings.ToLower(strings.TrimSpace(m.form.inputs[1].Value())))
	clockTime := strings.TrimSpace(m.form.inputs[2].Value())
	days, err := parseInts(m.form.inputs[3].Value())
	if err != nil {
		m.form.Err = "bad days of week (want comma-separated 0-6)"
		return m
	}
	dom := 0
	if raw := strings.TrimSpace(m.form.inputs[4].Value()); raw != "" {
		dom, err = strconv.Atoi(raw)
		if err != nil {
			m.form.Err = "bad day of month"
			return m
		}
	}
	note := m.form.inputs[5].Value()

	ctx, cancel := m.opCtx()
	defer cancel()

	var saved model.RecurringReminder
	if m.form.EditID == "" {
		saved, err = m.recurring.Add(ctx, store.CreateRecurringRequest{
			Title:      title,
			Note:       note,
			Frequency:  freq,
			Time:       clockTime,
			DaysOfWeek: days,
			DayOfMonth: dom,
			Enabled:    true,
		})
	} else {
		next := m.form.originalRecurring
		next.Title = title
		next.Note = note
		next.Frequency = freq
		next.Time = clockTime
		next.DaysOfWeek = days
		next.DayOfMonth = dom
		saved, err = m.recurring.Update(ctx, next)
	}
	if err != nil {
		m.form.Err = err.Error()
		return m
	}

	out, err := m.recurring.Load(ctx)
	if err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		return m
	}
	m.Recurring = out
	m.RecurringCursor = indexOfRecurring(out, saved.ID)
	m.form = formState{}
	m.syncNotePreview()
	m.Status = StatusBar{Text: fmt.Sprintf("saved: %s", saved.Title)}
	return m
}

func (m Model) renderFormPanel() string {
	title := "add"
	if m.form.EditID != "" {
		title = "edit"
	}
	if m.form.Tab == TabRecurring {
		title += " recurring reminder"
	} else {
		title += " reminder"
	}
	fields := make([]views.FormFieldData, 0, len(m.form.inputs))
	for i, in := range m.form.inputs {
		fields = append(fields, views.FormFieldData{
			Label:   m.form.labels[i],
			View:    in.View(),
			Focused: i == m.form.focus,
		})
	}
	return views.RenderFormPanel(views.FormPanelData{Title: title, Fields: fields, ErrorText: m.form.Err})
}

func joinInts(vals []int) string {
	parts := make([]string, len(vals))
	for i, v := range vals {
		parts[i] = strconv.Itoa(v)
	}
	return strings.Join(parts, ",")
}

func parseInts(raw string) ([]int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	parts := strings.Split(raw, ",")
	out := make([]int, 0, len(parts))
	for _, p := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}
