package main

import (
	"flag"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/shrimpsizemoose/trekker/logger"

	"github.com/mattwilson20/ascrl-platform/internal/app"
	"github.com/mattwilson20/ascrl-platform/internal/handlers"
	"github.com/mattwilson20/ascrl-platform/internal/league"
	"github.com/mattwilson20/ascrl-platform/internal/scoring"
)

func main() {
	var configPath = flag.String("config", "config.toml", "Path to config file")
	flag.Parse()

	cfg, err := app.LoadConfig(*configPath)
	if err != nil {
		logger.Error.Fatalf("Failed to load config: %v", err)
	}
	if cfg.Server.Port == "" {
		logger.Error.Fatalf("Server port is not specified in config, use a value like :9090")
	}

	store, err := app.NewStore(cfg)
	if err != nil {
		logger.Error.Fatalf("Failed to create store: %v", err)
	}
	defer store.Close()

	engine := scoring.NewEngine(store)
	svc := league.NewService(store, engine, cfg.League.Season)

	leagueHandler := handlers.NewLeagueHandler(svc)

	http.HandleFunc("GET /api/v1/{series}/standings", leagueHandler.HandleStandings)
	http.HandleFunc("GET /api/v1/{series}/results", leagueHandler.HandleResults)
	http.HandleFunc("GET /api/v1/schedule", leagueHandler.HandleSchedule)
	http.HandleFunc("GET /api/v1/leaderboard", leagueHandler.HandleLeaderboard)

	http.Handle("/metrics", promhttp.Handler())

	logger.Info.Printf("Starting league API server on %s", cfg.Server.Port)
	if err := http.ListenAndServe(cfg.Server.Port, nil); err != nil {
		logger.Error.Fatalf("League API server failed: %v", err)
	}
}
