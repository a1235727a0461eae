package update

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/remindd/internal/commands"
	"github.com/sandeepkv93/remindd/internal/store"
)

func (m Model) handlePaletteKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.Palette.Active = false
		m.Palette.Input = ""
		m.commandInput.SetValue("")
		m.commandInput.Blur()
		m.Status = StatusBar{Text: "command palette closed"}
	case "enter":
		m.Palette.Input = m.commandInput.Value()
		m = m.executePaletteCommand()
	default:
		if msg.Type == tea.KeyRunes {
			m.commandInput.SetValue(m.commandInput.Value() + string(msg.Runes))
			m.Palette.Input = m.commandInput.Value()
			return m, nil
		}
		var cmd tea.Cmd
		m.commandInput, cmd = m.commandInput.Update(msg)
		m.Palette.Input = m.commandInput.Value()
		return m, cmd
	}
	return m, nil
}

func (m Model) executePaletteCommand() Model {
	raw := strings.TrimSpace(m.Palette.Input)
	cmd, err := commands.Parse(raw)
	if err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		m.Palette.Active = false
		m.Palette.Input = ""
		return m
	}

	ctx, cancel := m.opCtx()
	defer cancel()

	res, err := commands.Execute(cmd, commands.Handlers{
		Add: func(a commands.AddArgs) (commands.Result, error) {
			saved, err := m.reminders.Add(ctx, store.CreateReminderRequest{Title: a.Title, DueDate: a.Due})
			if err != nil {
				return commands.Result{}, err
			}
			if out, err := m.reminders.Load(ctx); err == nil {
				m.Reminders = out
				m.ReminderCursor = indexOfReminder(out, saved.ID)
			}
			m.CurrentTab = TabReminders
			return commands.Result{Message: fmt.Sprintf("added reminder: %s", saved.Title)}, nil
		},
		Export: func(a commands.ExportArgs) (commands.Result, error) {
			path := a.Path
			if path == "" {
				path = m.defaultExportPath()
			}
			if err := m.backups.ExportFile(ctx, path); err != nil {
				return commands.Result{}, err
			}
			return commands.Result{Message: fmt.Sprintf("exported to %s", path)}, nil
		},
		Import: func(a commands.ImportArgs) (commands.Result, error) {
			if err := m.backups.ImportFile(ctx, a.Path); err != nil {
				return commands.Result{}, err
			}
			m.reloadAll(ctx)
			return commands.Result{Message: fmt.Sprintf("imported from %s", a.Path)}, nil
		},
		Clear: func() (commands.Result, error) {
			if err := m.reminders.Clear(ctx); err != nil {
				return commands.Result{}, err
			}
			if err := m.recurring.Clear(ctx); err != nil {
				return commands.Result{}, err
			}
			m.reloadAll(ctx)
			return commands.Result{Message: "cleared all reminders"}, nil
		},
	})
	if err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
	} else {
		m.Status = StatusBar{Text: res.Message}
	}

	m.Palette.Active = false
	m.Palette.Input = ""
	m.commandInput.SetValue("")
	return m
}
