package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/remindd/internal/backup"
	"github.com/sandeepkv93/remindd/internal/config"
	"github.com/sandeepkv93/remindd/internal/dispatch"
	"github.com/sandeepkv93/remindd/internal/notify"
	"github.com/sandeepkv93/remindd/internal/storage"
	"github.com/sandeepkv93/remindd/internal/store"
	"github.com/sandeepkv93/remindd/internal/update"
)

func main() {
	configPath := flag.String("config", "", "path to config file (default ~/.remindd/config.yaml)")
	flag.Parse()

	if err := run(*configPath); err != nil {
		fmt.Fprintf(os.Stderr, "remindd failed: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	repo, err := storage.OpenSQLite(cfg.Database.Path)
	if err != nil {
		return err
	}
	defer repo.Close()

	reminders := store.NewReminderStore(repo, nil)
	recurring := store.NewRecurringStore(repo, nil)
	backups := backup.NewManager(reminders, recurring)

	var notifier notify.Notifier = notify.NoopNotifier{}
	if cfg.Notifications.Desktop {
		desktop := notify.NewDesktopNotifier()
		if cfg.Notifications.RequestOnStart {
			desktop.RequestPermission()
		}
		notifier = desktop
	}

	dispatcher := dispatch.New(reminders, recurring, notifier)
	ticker := dispatch.NewTicker(nil)

	program := tea.NewProgram(update.NewModel(update.Options{
		Reminders: reminders,
		Recurring: recurring,
		Backups:   backups,
		Waker:     ticker,
		BackupDir: cfg.Backup.Dir,
	}), tea.WithReportFocus())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go ticker.Run(ctx, func(now time.Time) {
		deliveries, err := dispatcher.Poll(ctx, now)
		if err != nil {
			program.Send(update.AppErrorMsg{Err: err})
		}
		if len(deliveries) > 0 {
			program.Send(update.DeliveriesMsg{Items: deliveries})
		}
	})

	if _, err := program.Run(); err != nil {
		return err
	}
	return nil
}
