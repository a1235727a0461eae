package update

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"

	"github.com/sandeepkv93/remindd/internal/views"
)

type KeyBinding struct {
	Key    string
	Action string
}

func (m Model) renderHelpPanel() string {
	bindings := m.helpBindings()
	var plain []string
	for _, kb := range m.tabBindings() {
		plain = append(plain, fmt.Sprintf("- %s: %s", kb.Key, kb.Action))
	}
	return views.RenderHelpPanel(views.HelpPanelData{
		CurrentTab: string(m.CurrentTab),
		Bindings:   plain,
		HelpView: m.helpModel.View(helpKeyMap{
			short: bindings,
			full:  [][]key.Binding{bindings},
		}),
	})
}

func (m Model) globalBindings() []KeyBinding {
	return []KeyBinding{
		{Key: m.Keys.Reminders, Action: "switch to Reminders"},
		{Key: m.Keys.Recurring, Action: "switch to Recurring"},
		{Key: m.Keys.Export, Action: "export backup"},
		{Key: m.Keys.Import, Action: "import backup"},
		{Key: "/", Action: "open command palette"},
		{Key: m.Keys.Help, Action: "toggle help panel"},
		{Key: m.Keys.Quit, Action: "quit app"},
	}
}

func (m Model) tabBindings() []KeyBinding {
	common := []KeyBinding{
		{Key: "j/k", Action: "move cursor"},
		{Key: "J/K", Action: "move item within its section"},
		{Key: "a/e/d", Action: "add / edit / delete"},
	}
	switch m.CurrentTab {
	case TabReminders:
		return append(common, KeyBinding{Key: "space", Action: "toggle completed"})
	case TabRecurring:
		return append(common, KeyBinding{Key: "space", Action: "toggle enabled"})
	default:
		return common
	}
}

func (m Model) helpBindings() []key.Binding {
	out := make([]key.Binding, 0, len(m.globalBindings())+len(m.tabBindings()))
	for _, kb := range m.globalBindings() {
		out = append(out, key.NewBinding(key.WithKeys(kb.Key), key.WithHelp(kb.Key, kb.Action)))
	}
	for _, kb := range m.tabBindings() {
		out = append(out, key.NewBinding(key.WithKeys(kb.Key), key.WithHelp(kb.Key, kb.Action)))
	}
	return out
}
