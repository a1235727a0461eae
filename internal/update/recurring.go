package update

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/remindd/internal/model"
	"github.com/sandeepkv93/remindd/internal/views"
)

func (m Model) handleRecurringKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "j", "down":
		if m.RecurringCursor < len(m.Recurring)-1 {
			m.RecurringCursor++
		}
		m.syncNotePreview()
	case "k", "up":
		if m.RecurringCursor > 0 {
			m.RecurringCursor--
		}
		m.syncNotePreview()
	case "J":
		return m.moveRecurring(+1), nil
	case "K":
		return m.moveRecurring(-1), nil
	case " ":
		return m.toggleRecurring(), nil
	case "d":
		return m.deleteRecurring(), nil
	case "a":
		m.openRecurringForm(nil)
	case "e":
		if r, ok := m.currentRecurring(); ok {
			m.openRecurringForm(&r)
		}
	}
	return m, nil
}

func (m Model) moveRecurring(delta int) Model {
	sel, ok := m.currentRecurring()
	if !ok {
		return m
	}
	ids := make([]string, 0, len(m.Recurring))
	pos := -1
	for _, r := range m.Recurring {
		if r.Enabled != sel.Enabled {
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
		out []model.RecurringReminder
		err error
	)
	if sel.Enabled {
		out, err = m.recurring.ReorderEnabled(ctx, ids)
	} else {
		out, err = m.recurring.ReorderDisabled(ctx, ids)
	}
	if err != nil {
		m.Status = StatusBar{Text: fmt.Sprintf("reorder failed: %v", err), IsError: true}
		return m
	}
	m.Recurring = out
	m.RecurringCursor = indexOfRecurring(out, sel.ID)
	m.syncNotePreview()
	return m
}

func (m Model) toggleRecurring() Model {
	sel, ok := m.currentRecurring()
	if !ok {
		return m
	}
	ctx, cancel := m.opCtx()
	defer cancel()
	out, err := m.recurring.ToggleEnabled(ctx, sel.ID)
	if err != nil {
		m.Status = StatusBar{Text: fmt.Sprintf("toggle failed: %v", err), IsError: true}
		return m
	}
	m.Recurring = out
	m.RecurringCursor = indexOfRecurring(out, sel.ID)
	m.syncNotePreview()
	return m
}

func (m Model) deleteRecurring() Model {
	sel, ok := m.currentRecurring()
	if !ok {
		return m
	}
	ctx, cancel := m.opCtx()
	defer cancel()
	if err := m.recurring.Remove(ctx, sel.ID); err != nil {
		m.Status = StatusBar{Text: fmt.Sprintf("delete failed: %v", err), IsError: true}
		return m
	}
	out, err := m.recurring.Load(ctx)
	if err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		return m
	}
	m.Recurring = out
	m.clampCursors()
	m.syncNotePreview()
	m.Status = StatusBar{Text: fmt.Sprintf("deleted: %s", sel.Title)}
	return m
}

func (m Model) renderRecurringPanel() string {
	selectedID := ""
	if r, ok := m.currentRecurring(); ok {
		selectedID = r.ID
	}
	items := make([]views.RecurringItemData, 0, len(m.Recurring))
	for _, r := range m.Recurring {
		items = append(items, views.RecurringItemData{
			ID:       r.ID,
			Title:    r.Title,
			Schedule: describeSchedule(r),
			Enabled:  r.Enabled,
		})
	}
	return views.RenderRecurringPanel(views.RecurringPanelData{Items: items, SelectedID: selectedID})
}

func describeSchedule(r model.RecurringReminder) string {
	switch r.Frequency {
	case model.FrequencyDaily:
		return fmt.Sprintf("daily at %s", r.Time)
	case model.FrequencyWeekly:
		names := make([]string, 0, len(r.DaysOfWeek))
		for _, d := range r.DaysOfWeek {
			names = append(names, weekdayShort(d))
		}
		return fmt.Sprintf("weekly %s at %s", strings.Join(names, ","), r.Time)
	case model.FrequencyMonthly:
		return fmt.Sprintf("monthly day %d at %s", r.DayOfMonth, r.Time)
	default:
		return string(r.Frequency)
	}
}

func weekdayShort(d int) string {
	names := []string{"sun", "mon", "tue", "wed", "thu", "fri", "sat"}
	if d < 0 || d >= len(names) {
		return "?"
	}
	return names[d]
}

func indexOfRecurring(items []model.RecurringReminder, id string) int {
	for i, r := range items {
		if r.ID == id {
			return i
		}
	}
	return 0
}
