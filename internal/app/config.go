package app

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"

	"github.com/shrimpsizemoose/trekker/logger"
)

type Config struct {
	Server struct {
		Port string `toml:"port"`
	} `toml:"server"`

	Database struct {
		DSN           string `toml:"dsn"`
		MigrationsDir string `toml:"migrations_dir"`
	} `toml:"database"`

	Bot struct {
		Token          string  `toml:"token"`
		AdminIDs       []int64 `toml:"admin_ids"`
		AnnounceChatID int64   `toml:"announce_chat_id"`
	} `toml:"bot"`

	Redis struct {
		URL string `toml:"url"`
	} `toml:"redis"`

	League struct {
		Season        string `toml:"season"`
		RaceTimeLabel string `toml:"race_time_label"`
	} `toml:"league"`
}

func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	var config Config
	if err := toml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf(
			"error reading config file %s\n> Error: %w\n> Content:\n%s",
			path,
			err,
			string(data),
		)
	}

	if config.Database.DSN == "" {
		return nil, fmt.Errorf("database DSN is not specified in config")
	}
	if config.Database.MigrationsDir == "" {
		config.Database.MigrationsDir = "./migrations"
	}
	if config.League.Season == "" {
		config.League.Season = "Season 1"
	}
	if config.League.RaceTimeLabel == "" {
		config.League.RaceTimeLabel = "9:00 PM EST"
	}

	logger.Debug.Printf("Loaded config: season=%q dsn=%q", config.League.Season, config.Database.DSN)

	return &config, nil
}
