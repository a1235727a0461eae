package update

import (
	"context"
	"path/filepath"
	"time"

	"github.com/sandeepkv93/remindd/internal/backup"
	"github.com/sandeepkv93/remindd/internal/views"
)

func (m Model) defaultExportPath() string {
	return filepath.Join(m.backupDir, backup.DefaultExportName(time.Now()))
}

// reloadAll refreshes both collections, reporting the first failure on
// the status bar.
func (m *Model) reloadAll(ctx context.Context) {
	reminders, err := m.reminders.Load(ctx)
	if err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		return
	}
	recurring, err := m.recurring.Load(ctx)
	if err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		return
	}
	m.Reminders = reminders
	m.Recurring = recurring
	m.clampCursors()
	m.syncNotePreview()
}

func renderMarkdownNote(note string) string {
	return views.RenderMarkdown(note)
}
