package main

import (
	"flag"

	"github.com/shrimpsizemoose/trekker/logger"

	"github.com/mattwilson20/ascrl-platform/internal/app"
	"github.com/mattwilson20/ascrl-platform/internal/bot"
	"github.com/mattwilson20/ascrl-platform/internal/league"
	"github.com/mattwilson20/ascrl-platform/internal/reminder"
	"github.com/mattwilson20/ascrl-platform/internal/scoring"
)

func main() {
	var configPath = flag.String("config", "config.toml", "Path to config file")
	flag.Parse()

	cfg, err := app.LoadConfig(*configPath)
	if err != nil {
		logger.Error.Fatalf("Failed to load config: %v", err)
	}

	store, err := app.NewStore(cfg)
	if err != nil {
		logger.Error.Fatalf("Failed to create store: %v", err)
	}
	defer store.Close()

	engine := scoring.NewEngine(store)
	svc := league.NewService(store, engine, cfg.League.Season)
	svc.RecomputeAll()

	subs, err := app.NewSubscriptions(cfg)
	if err != nil {
		logger.Error.Fatalf("Failed to init subscriptions: %v", err)
	}
	defer subs.Close()

	b, err := bot.New(cfg, svc, subs)
	if err != nil {
		logger.Error.Fatalf("Failed to create bot: %v", err)
	}

	rem := reminder.New(store, subs, b, cfg.League.Season, cfg.League.RaceTimeLabel)
	if err := rem.Start(); err != nil {
		logger.Error.Fatalf("Failed to start reminder scheduler: %v", err)
	}
	defer rem.Stop()

	logger.Info.Println("Bot initialized successfully")
	if err := b.Start(); err != nil {
		logger.Error.Fatalf("Bot error: %v", err)
	}
}
