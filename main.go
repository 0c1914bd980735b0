package main

import (
	"context"
	"log"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"

	"concierge-chat/internal/config"
	"concierge-chat/internal/conversation"
	"concierge-chat/internal/locale"
	"concierge-chat/internal/logging"
	"concierge-chat/internal/ui"
	"concierge-chat/internal/webhook"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	dataDir, err := config.DataDir()
	if err != nil {
		log.Fatalf("Failed to resolve data directory: %v", err)
	}

	if err := logging.InitLogger(dataDir); err != nil {
		log.Fatalf("Failed to initialize logging: %v", err)
	}
	defer logging.Close()

	store, err := conversation.NewBadgerStore(filepath.Join(dataDir, "db"))
	if err != nil {
		log.Fatalf("Failed to open conversation store: %v", err)
	}
	defer store.Close()

	locales := locale.NewManager(context.Background(), store, dataDir)
	client := webhook.NewClient(cfg.WebhookURL, cfg.SessionID, cfg.RequestTimeout())

	logging.Info("Starting concierge widget: webhook=%s locale=%s", cfg.WebhookURL, locales.Current())

	chatView := ui.NewChatViewModel(store, client, locales, cfg.HistoryWindow, webhook.IsTimeout, 80, 24)

	p := tea.NewProgram(chatView, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		log.Fatalf("Error running program: %v", err)
	}
}
