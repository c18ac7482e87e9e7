package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"modstats/internal/config"
	"modstats/internal/discord"
	"modstats/internal/ledger"
	"modstats/internal/moderation"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize moderation database
	db, err := moderation.New(cfg.DatabaseDSN)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	// Create stores
	modStore := moderation.NewStore(db)
	muter := moderation.NewMuter()
	store := ledger.NewStore(cfg.LedgerPath)
	recorder := ledger.NewRecorder(store)

	// Initialize Discord bot
	bot, err := discord.New(cfg, store, recorder, modStore, muter)
	if err != nil {
		log.Fatalf("Failed to create Discord bot: %v", err)
	}

	// Start bot
	if err := bot.Start(); err != nil {
		log.Fatalf("Failed to start bot: %v", err)
	}
	defer bot.Stop()

	// Wait for interrupt signal
	sc := make(chan os.Signal, 1)
	signal.Notify(sc, syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
	<-sc

	log.Println("Shutting down bot...")
}
