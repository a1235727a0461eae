package update

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/remindd/internal/views"
)

func (m Model) Init() tea.Cmd {
	return m.loadCmd()
}

func (m Model) loadCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := m.opCtx()
		defer cancel()
		reminders, err := m.reminders.Load(ctx)
		if err != nil {
			return loadedMsg{Err: err}
		}
		recurring, err := m.recurring.Load(ctx)
		if err != nil {
			return loadedMsg{Err: err}
		}
		return loadedMsg{Reminders: reminders, Recurring: recurring}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch typed := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(typed)
	case tea.FocusMsg:
		// The terminal regained focus; the process may have been
		// suspended across minute boundaries, so poll now.
		if m.waker != nil {
			m.waker.Wake()
		}
		return m, nil
	case loadedMsg:
		if typed.Err != nil {
			m.LastError = typed.Err
			m.Status = StatusBar{Text: typed.Err.Error(), IsError: true}
			return m, nil
		}
		m.Reminders = typed.Reminders
		m.Recurring = typed.Recurring
		m.clampCursors()
		m.syncNotePreview()
		return m, nil
	case DeliveriesMsg:
		m.appendDeliveries(typed.Items)
		if len(typed.Items) > 0 {
			last := typed.Items[len(typed.Items)-1]
			m.Status = StatusBar{Text: fmt.Sprintf("delivered: %s", last.Title)}
		}
		// Acknowledgment writes changed notified state; reload.
		return m, m.loadCmd()
	case SetStatusMsg:
		m.Status = StatusBar{Text: typed.Text, IsError: typed.IsError}
		return m, nil
	case ClearStatusMsg:
		m.Status = StatusBar{}
		return m, nil
	case AppErrorMsg:
		m.LastError = typed.Err
		if typed.Err != nil {
			m.Status = StatusBar{Text: typed.Err.Error(), IsError: true}
		}
		return m, nil
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.Palette.Active {
		if msg.String() == m.Keys.Help {
			m.HelpVisible = !m.HelpVisible
			return m, nil
		}
		next, cmd := m.handlePaletteKey(msg)
		return next, cmd
	}

	if m.form.Active {
		next, cmd := m.handleFormKey(msg)
		return next, cmd
	}

	switch msg.String() {
	case "/":
		m.Palette.Active = true
		m.Palette.Input = ""
		m.commandInput.SetValue("")
		m.commandInput.Focus()
		m.Status = StatusBar{Text: "command palette active"}
		return m, nil
	case m.Keys.Reminders:
		m.CurrentTab = TabReminders
		m.syncNotePreview()
		return m, nil
	case m.Keys.Recurring:
		m.CurrentTab = TabRecurring
		m.syncNotePreview()
		return m, nil
	case m.Keys.Export:
		return m.exportBackup("")
	case m.Keys.Import:
		// Import needs a path; open the palette with the command
		// started so the user only types the file name.
		m.Palette.Active = true
		m.Palette.Input = "import "
		m.commandInput.SetValue(m.Palette.Input)
		m.commandInput.Focus()
		m.Status = StatusBar{Text: "command palette active"}
		return m, nil
	case m.Keys.Help:
		m.HelpVisible = !m.HelpVisible
		return m, nil
	case "ctrl+c", m.Keys.Quit:
		m.Quitting = true
		return m, tea.Quit
	}

	switch m.CurrentTab {
	case TabReminders:
		return m.handleReminderKey(msg)
	case TabRecurring:
		return m.handleRecurringKey(msg)
	}
	return m, nil
}

func (m Model) exportBackup(path string) (tea.Model, tea.Cmd) {
	if path == "" {
		path = m.defaultExportPath()
	}
	ctx, cancel := m.opCtx()
	defer cancel()
	if err := m.backups.ExportFile(ctx, path); err != nil {
		m.Status = StatusBar{Text: fmt.Sprintf("export failed: %v", err), IsError: true}
		return m, nil
	}
	m.Status = StatusBar{Text: fmt.Sprintf("exported to %s", path)}
	return m, nil
}

func (m Model) View() string {
	status := ""
	if m.Status.Text != "" {
		if m.Status.IsError {
			status = fmt.Sprintf("status: error: %s", m.Status.Text)
		} else {
			status = fmt.Sprintf("status: %s", m.Status.Text)
		}
	}

	leftPane := ""
	selectedTitle := ""
	switch m.CurrentTab {
	case TabReminders:
		leftPane = m.renderReminderPanel()
		if r, ok := m.currentReminder(); ok {
			selectedTitle = r.Title
		}
	case TabRecurring:
		leftPane = m.renderRecurringPanel()
		if r, ok := m.currentRecurring(); ok {
			selectedTitle = r.Title
		}
	}

	rightPane := ""
	switch {
	case m.form.Active:
		rightPane = m.renderFormPanel()
	case m.HelpVisible:
		rightPane = m.renderHelpPanel()
	default:
		rightPane = views.RenderNotePreview(m.noteViewport.View())
	}

	notification := views.RenderCommandPalette(m.Palette.Active, m.Palette.Input)
	if log := m.renderDeliveryLog(); log != "" {
		if notification != "" {
			notification += "\n"
		}
		notification += log
	}

	return views.RenderApp(views.AppData{
		Header:       fmt.Sprintf("remindd | selected: %s", selectedTitle),
		Tabs:         m.renderTabs(),
		LeftPane:     leftPane,
		RightPane:    rightPane,
		StatusLine:   status,
		Notification: notification,
		Footer: fmt.Sprintf("keys: %s reminders | %s recurring | %s export | %s import | / cmd | %s help | %s quit",
			m.Keys.Reminders, m.Keys.Recurring, m.Keys.Export, m.Keys.Import, m.Keys.Help, m.Keys.Quit),
	})
}

func (m Model) renderTabs() string {
	mark := func(t Tab) string {
		if t == m.CurrentTab {
			return "[" + string(t) + "]"
		}
		return " " + string(t) + " "
	}
	return mark(TabReminders) + " " + mark(TabRecurring)
}

func (m Model) renderDeliveryLog() string {
	items := make([]views.DeliveryData, 0, len(m.Deliveries))
	for _, d := range m.Deliveries {
		items = append(items, views.DeliveryData{Title: d.Title, At: d.At.Format("15:04")})
	}
	return views.RenderDeliveryLog(items)
}
