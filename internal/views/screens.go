package views

import (
	"fmt"
	"strings"
)

type ReminderItemData struct {
	ID        string
	Title     string
	Due       string
	Completed bool
	Notified  bool
	Overdue   bool
}

type ReminderPanelData struct {
	Items      []ReminderItemData
	SelectedID string
}

type RecurringItemData struct {
	ID       string
	Title    string
	Schedule string
	Enabled  bool
}

type RecurringPanelData struct {
	Items      []RecurringItemData
	SelectedID string
}

type FormFieldData struct {
	Label   string
	View    string
	Focused bool
}

type FormPanelData struct {
	Title     string
	Fields    []FormFieldData
	ErrorText string
}

type HelpPanelData struct {
	CurrentTab string
	Bindings   []string
	HelpView   string
}

type DeliveryData struct {
	Title string
	At    string
}

func RenderReminderPanel(data ReminderPanelData) string {
	pending := make([]ReminderItemData, 0)
	completed := make([]ReminderItemData, 0)
	for _, item := range data.Items {
		if item.Completed {
			completed = append(completed, item)
		} else {
			pending = append(pending, item)
		}
	}

	var b strings.Builder
	b.WriteString("reminders:\n")
	b.WriteString("actions: [j/k]cursor [J/K]move [space]done [a]add [e]edit [d]delete\n")
	renderReminderSection(&b, "Pending", pending, data.SelectedID)
	renderReminderSection(&b, "Completed", completed, data.SelectedID)
	return strings.TrimSpace(b.String())
}

func RenderRecurringPanel(data RecurringPanelData) string {
	enabled := make([]RecurringItemData, 0)
	disabled := make([]RecurringItemData, 0)
	for _, item := range data.Items {
		if item.Enabled {
			enabled = append(enabled, item)
		} else {
			disabled = append(disabled, item)
		}
	}

	var b strings.Builder
	b.WriteString("recurring:\n")
	b.WriteString("actions: [j/k]cursor [J/K]move [space]toggle [a]add [e]edit [d]delete\n")
	renderRecurringSection(&b, "Enabled", enabled, data.SelectedID)
	renderRecurringSection(&b, "Disabled", disabled, data.SelectedID)
	return strings.TrimSpace(b.String())
}

func RenderFormPanel(data FormPanelData) string {
	var b strings.Builder
	b.WriteString(data.Title + ":\n")
	b.WriteString("keys: [tab]next field [enter]save [esc]cancel\n")
	for _, f := range data.Fields {
		cursor := " "
		if f.Focused {
			cursor = ">"
		}
		b.WriteString(fmt.Sprintf("%s %s: %s\n", cursor, f.Label, f.View))
	}
	if data.ErrorText != "" {
		b.WriteString("error: " + data.ErrorText)
	}
	return strings.TrimSpace(b.String())
}

func RenderCommandPalette(active bool, input string) string {
	if !active {
		return ""
	}
	return fmt.Sprintf("command: /%s", input)
}

func RenderDeliveryLog(items []DeliveryData) string {
	if len(items) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString("delivered:\n")
	for _, d := range items {
		b.WriteString(fmt.Sprintf("- %s %s\n", d.At, d.Title))
	}
	return strings.TrimSuffix(b.String(), "\n")
}

func RenderHelpPanel(data HelpPanelData) string {
	return fmt.Sprintf("help:\nglobal:\n%s tab:\n%s\n%s",
		strings.ToLower(data.CurrentTab),
		strings.Join(data.Bindings, "\n"),
		data.HelpView,
	)
}

func RenderNotePreview(preview string) string {
	if strings.TrimSpace(preview) == "" {
		return "note:\n(none)"
	}
	return "note:\n" + preview
}

func renderReminderSection(b *strings.Builder, title string, items []ReminderItemData, selectedID string) {
	b.WriteString(fmt.Sprintf("\n%s:\n", title))
	if len(items) == 0 {
		b.WriteString("  (none)\n")
		return
	}
	for _, item := range items {
		cursor := " "
		if selectedID == item.ID {
			cursor = ">"
		}
		b.WriteString(fmt.Sprintf("%s %s %s @%s\n", cursor, reminderBadge(item), item.Title, item.Due))
	}
}

func renderRecurringSection(b *strings.Builder, title string, items []RecurringItemData, selectedID string) {
	b.WriteString(fmt.Sprintf("\n%s:\n", title))
	if len(items) == 0 {
		b.WriteString("  (none)\n")
		return
	}
	for _, item := range items {
		cursor := " "
		if selectedID == item.ID {
			cursor = ">"
		}
		b.WriteString(fmt.Sprintf("%s %s (%s)\n", cursor, item.Title, item.Schedule))
	}
}

func reminderBadge(item ReminderItemData) string {
	switch {
	case item.Completed:
		return "[DONE]"
	case item.Notified:
		return "[SENT]"
	case item.Overdue:
		return "[DUE]"
	default:
		return "[    ]"
	}
}
