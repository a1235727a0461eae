package update

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/remindd/internal/model"
	"github.com/sandeepkv93/remindd/internal/views"
)

func (m Model) handleReminderKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "j", "down":
		if m.ReminderCursor < len(m.Reminders)-1 {
			m.ReminderCursor++
		}
		m.syncNotePreview()
	case "k", "up":
		if m.ReminderCursor > 0 {
			m.ReminderCursor--
		}
		m.syncNotePreview()
	case "J":
		return m.moveReminder(+1), nil
	case "K":
		return m.moveReminder(-1), nil
	case " ":
		return m.toggleReminder(), nil
	case "d":
		return m.deleteReminder(), nil
	case "a":
		m.openReminderForm(nil)
	case "e":
		if r, ok := m.currentReminder(); ok {
			m.openReminderForm(&r)
		}
	}
	return m, nil
}

// moveReminder swaps the selected reminder with its neighbor inside its
// own partition. Pending and completed never mix: moving the last pending
// item down is a no-op, not a hop into completed.
func (m Model) moveReminder(delta int) Model {
	sel, ok := m.currentReminder()
	if !ok {
		return m
	}
	ids := make([]string, 0, len(m.Reminders))
	pos := -1
	for _, r := range m.Reminders {
		if r.Completed != sel.Completed {
			continue
		}
		if r.ID == sel.ID {
			pos = len(ids)
		}
		ids = append(ids, r.ID)
	}
	next := pos + delta
	if pos < 0 || next < 0 || next >= len(ids) {
		return m
	}
	ids[pos], ids[next] = ids[next], ids[pos]

	ctx, cancel := m.opCtx()
	defer cancel()
	var (
		out []model.Reminder
		err error
	)
	if sel.Completed {
		out, err = m.reminders.ReorderCompleted(ctx, ids)
	} else {
		out, err = m.reminders.ReorderPending(ctx, ids)
	}
	if err != nil {
		m.Status = StatusBar{Text: fmt.Sprintf("reorder failed: %v", err), IsError: true}
		return m
	}
	m.Reminders = out
	m.ReminderCursor = indexOfReminder(out, sel.ID)
	m.syncNotePreview()
	return m
}

func (m Model) toggleReminder() Model {
	sel, ok := m.currentReminder()
	if !ok {
		return m
	}
	ctx, cancel := m.opCtx()
	defer cancel()
	out, err := m.reminders.ToggleComplete(ctx, sel.ID)
	if err != nil {
		m.Status = StatusBar{Text: fmt.Sprintf("toggle failed: %v", err), IsError: true}
		return m
	}
	m.Reminders = out
	m.ReminderCursor = indexOfReminder(out, sel.ID)
	m.syncNotePreview()
	return m
}

func (m Model) deleteReminder() Model {
	sel, ok := m.currentReminder()
	if !ok {
		return m
	}
	ctx, cancel := m.opCtx()
	defer cancel()
	if err := m.reminders.Remove(ctx, sel.ID); err != nil {
		m.Status = StatusBar{Text: fmt.Sprintf("delete failed: %v", err), IsError: true}
		return m
	}
	out, err := m.reminders.Load(ctx)
	if err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		return m
	}
	m.Reminders = out
	m.clampCursors()
	m.syncNotePreview()
	m.Status = StatusBar{Text: fmt.Sprintf("deleted: %s", sel.Title)}
	return m
}

func (m Model) renderReminderPanel() string {
	now := time.Now()
	selectedID := ""
	if r, ok := m.currentReminder(); ok {
		selectedID = r.ID
	}
	items := make([]views.ReminderItemData, 0, len(m.Reminders))
	for _, r := range m.Reminders {
		items = append(items, views.ReminderItemData{
			ID:        r.ID,
			Title:     r.Title,
			Due:       r.DueDate.Format("2006-01-02 15:04"),
			Completed: r.Completed,
			Notified:  r.Notified,
			Overdue:   !r.Completed && r.DueDate.Before(now),
		})
	}
	return views.RenderReminderPanel(views.ReminderPanelData{Items: items, SelectedID: selectedID})
}

func indexOfReminder(items []model.Reminder, id string) int {
	for i, r := range items {
		if r.ID == id {
			return i
		}
	}
	return 0
}
