package update

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/remindd/internal/backup"
	"github.com/sandeepkv93/remindd/internal/dispatch"
	"github.com/sandeepkv93/remindd/internal/storage"
	"github.com/sandeepkv93/remindd/internal/store"
)

type stubWaker struct {
	wakes int
}

func (w *stubWaker) Wake() { w.wakes++ }

func newTestModel(t *testing.T) (Model, *store.ReminderStore, *stubWaker) {
	t.Helper()
	repo, err := storage.OpenSQLite(filepath.Join(t.TempDir(), "remindd-test.db"))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { _ = repo.Close() })

	reminders := store.NewReminderStore(repo, nil)
	recurring := store.NewRecurringStore(repo, nil)
	waker := &stubWaker{}
	m := NewModel(Options{
		Reminders: reminders,
		Recurring: recurring,
		Backups:   backup.NewManager(reminders, recurring),
		Waker:     waker,
		BackupDir: t.TempDir(),
	})
	return m, reminders, waker
}

func keyMsg(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func applyLoad(t *testing.T, m Model) Model {
	t.Helper()
	msg := m.loadCmd()()
	updated, _ := m.Update(msg)
	return updated.(Model)
}

func TestNewModelDefaults(t *testing.T) {
	m, _, _ := newTestModel(t)
	if m.CurrentTab != TabReminders {
		t.Fatalf("expected default tab %q, got %q", TabReminders, m.CurrentTab)
	}
	if m.Keys.Quit != "q" {
		t.Fatalf("expected quit key q, got %q", m.Keys.Quit)
	}
}

func TestUpdateKeySwitchesTab(t *testing.T) {
	m, _, _ := newTestModel(t)
	updated, _ := m.Update(keyMsg("2"))
	next := updated.(Model)
	if next.CurrentTab != TabRecurring {
		t.Fatalf("expected recurring tab, got %q", next.CurrentTab)
	}
	updated, _ = next.Update(keyMsg("1"))
	next = updated.(Model)
	if next.CurrentTab != TabReminders {
		t.Fatalf("expected reminders tab, got %q", next.CurrentTab)
	}
}

func TestFocusMsgWakesTicker(t *testing.T) {
	m, _, waker := newTestModel(t)
	m.Update(tea.FocusMsg{})
	if waker.wakes != 1 {
		t.Fatalf("expected one wake, got %d", waker.wakes)
	}
}

func TestToggleAndMoveReminderKeys(t *testing.T) {
	m, reminders, _ := newTestModel(t)
	ctx := context.Background()
	due := time.Now().Add(time.Hour)
	var ids []string
	for _, title := range []string{"A", "B", "C"} {
		r, err := reminders.Add(ctx, store.CreateReminderRequest{Title: title, DueDate: due})
		if err != nil {
			t.Fatalf("seed reminder: %v", err)
		}
		ids = append(ids, r.ID)
	}
	m = applyLoad(t, m)

	// Space completes the first reminder; it drops behind the others.
	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeySpace})
	next := updated.(Model)
	if next.Reminders[2].ID != ids[0] || !next.Reminders[2].Completed {
		t.Fatalf("expected %s completed at the end, got %#v", ids[0], next.Reminders)
	}
	if next.ReminderCursor != 2 {
		t.Fatalf("cursor must follow the toggled item, got %d", next.ReminderCursor)
	}

	// Cursor back to top, shift the first pending item down one slot.
	next.ReminderCursor = 0
	updated, _ = next.Update(keyMsg("J"))
	next = updated.(Model)
	got := []string{next.Reminders[0].ID, next.Reminders[1].ID, next.Reminders[2].ID}
	want := []string{ids[2], ids[1], ids[0]}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("after move got %v, want %v", got, want)
		}
	}

	// Moving the last pending item down again is a no-op at the boundary:
	// it never crosses into the completed partition.
	next.ReminderCursor = 1
	updated, _ = next.Update(keyMsg("J"))
	next = updated.(Model)
	if next.Reminders[1].ID != ids[1] || next.Reminders[2].ID != ids[0] {
		t.Fatalf("pending item must not cross into completed: %#v", next.Reminders)
	}
}

func TestReminderFormAddAndEdit(t *testing.T) {
	m, _, _ := newTestModel(t)
	m = applyLoad(t, m)

	updated, _ := m.Update(keyMsg("a"))
	next := updated.(Model)
	if !next.form.Active {
		t.Fatal("expected form to open")
	}
	next.form.inputs[0].SetValue("dentist appointment")
	next.form.inputs[1].SetValue("2026-09-01 09:00")
	next.form.inputs[2].SetValue("bring insurance card")

	updated, _ = next.Update(tea.KeyMsg{Type: tea.KeyEnter})
	next = updated.(Model)
	if next.form.Active {
		t.Fatalf("expected form to close, err=%q", next.form.Err)
	}
	if len(next.Reminders) != 1 || next.Reminders[0].Title != "dentist appointment" {
		t.Fatalf("reminder not added: %#v", next.Reminders)
	}

	// Edit with an unparseable due date keeps the form open with an error.
	updated, _ = next.Update(keyMsg("e"))
	next = updated.(Model)
	next.form.inputs[1].SetValue("whenever")
	updated, _ = next.Update(tea.KeyMsg{Type: tea.KeyEnter})
	next = updated.(Model)
	if !next.form.Active || next.form.Err == "" {
		t.Fatal("expected form to stay open with an error")
	}
}

func TestFormTypingRoutesToFocusedInput(t *testing.T) {
	m, _, _ := newTestModel(t)
	m = applyLoad(t, m)

	updated, _ := m.Update(keyMsg("a"))
	next := updated.(Model)
	updated, _ = next.Update(keyMsg("pay rent"))
	next = updated.(Model)
	if got := next.form.inputs[0].Value(); got != "pay rent" {
		t.Fatalf("typed text must land in the focused field, got %q", got)
	}

	// Editing keys pass through the text input, and its command is
	// surfaced rather than dropped.
	updated, _ = next.Update(tea.KeyMsg{Type: tea.KeyBackspace})
	next = updated.(Model)
	if got := next.form.inputs[0].Value(); got != "pay ren" {
		t.Fatalf("backspace must reach the focused field, got %q", got)
	}
}

func TestPaletteEditingKeysReachInput(t *testing.T) {
	m, _, _ := newTestModel(t)
	updated, _ := m.Update(keyMsg("/"))
	next := updated.(Model)
	updated, _ = next.Update(keyMsg("export"))
	next = updated.(Model)
	updated, _ = next.Update(tea.KeyMsg{Type: tea.KeyBackspace})
	next = updated.(Model)
	if next.Palette.Input != "expor" {
		t.Fatalf("backspace must reach the palette input, got %q", next.Palette.Input)
	}
}

func TestPaletteAddCommand(t *testing.T) {
	m, _, _ := newTestModel(t)
	m = applyLoad(t, m)

	updated, _ := m.Update(keyMsg("/"))
	next := updated.(Model)
	if !next.Palette.Active {
		t.Fatal("expected palette to open")
	}
	next.commandInput.SetValue("add pay rent @ 2026-09-01 09:00")
	updated, _ = next.Update(tea.KeyMsg{Type: tea.KeyEnter})
	next = updated.(Model)
	if next.Palette.Active {
		t.Fatal("expected palette to close")
	}
	if next.Status.IsError {
		t.Fatalf("command failed: %s", next.Status.Text)
	}
	if len(next.Reminders) != 1 || next.Reminders[0].Title != "pay rent" {
		t.Fatalf("reminder not added via palette: %#v", next.Reminders)
	}
}

func TestPaletteUnknownCommandSetsError(t *testing.T) {
	m, _, _ := newTestModel(t)
	updated, _ := m.Update(keyMsg("/"))
	next := updated.(Model)
	next.commandInput.SetValue("frobnicate")
	updated, _ = next.Update(tea.KeyMsg{Type: tea.KeyEnter})
	next = updated.(Model)
	if !next.Status.IsError {
		t.Fatalf("expected error status, got %q", next.Status.Text)
	}
}

func TestImportKeyOpensPrefilledPalette(t *testing.T) {
	m, _, _ := newTestModel(t)
	updated, _ := m.Update(keyMsg("I"))
	next := updated.(Model)
	if !next.Palette.Active {
		t.Fatal("expected palette to open")
	}
	if next.Palette.Input != "import " {
		t.Fatalf("expected prefilled import command, got %q", next.Palette.Input)
	}
}

func TestDeliveriesMsgAppendsLogAndReloads(t *testing.T) {
	m, _, _ := newTestModel(t)
	m = applyLoad(t, m)

	updated, cmd := m.Update(DeliveriesMsg{Items: []dispatch.Delivery{{ID: "x", Title: "water plants", At: time.Now()}}})
	next := updated.(Model)
	if len(next.Deliveries) != 1 {
		t.Fatalf("expected delivery logged, got %d", len(next.Deliveries))
	}
	if !strings.Contains(next.Status.Text, "water plants") {
		t.Fatalf("status must name the delivery, got %q", next.Status.Text)
	}
	if cmd == nil {
		t.Fatal("expected a reload command after deliveries")
	}
}

func TestAppErrorMsg(t *testing.T) {
	m, _, _ := newTestModel(t)
	boom := errors.New("poll failed")
	updated, _ := m.Update(AppErrorMsg{Err: boom})
	next := updated.(Model)
	if !errors.Is(next.LastError, boom) || !next.Status.IsError {
		t.Fatalf("error not surfaced: %#v", next.Status)
	}
}

func TestViewRendersWithoutPanicking(t *testing.T) {
	m, reminders, _ := newTestModel(t)
	ctx := context.Background()
	if _, err := reminders.Add(ctx, store.CreateReminderRequest{
		Title: "water plants", Note: "**back porch**", DueDate: time.Now().Add(time.Hour),
	}); err != nil {
		t.Fatalf("seed reminder: %v", err)
	}
	m = applyLoad(t, m)

	out := m.View()
	if !strings.Contains(out, "water plants") {
		t.Fatalf("view must list the reminder:\n%s", out)
	}
	if !strings.Contains(out, "Pending") {
		t.Fatalf("view must show the pending section:\n%s", out)
	}
}
