package config

import (
	"log"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
	LogFile  string `env:"LOG_FILE" envDefault:"analyzer.log"`
	Dataset  Dataset
	Chart    Chart
	Table    Table
}

type Dataset struct {
	Path     string `env:"DATASET_PATH"`
	Sheet    string `env:"DATASET_SHEET" envDefault:""`
	SkipRows int    `env:"DATASET_SKIP_ROWS" envDefault:"3"`
}

type Chart struct {
	Dir    string `env:"CHART_DIR" envDefault:"charts"`
	Width  int    `env:"CHART_WIDTH" envDefault:"1400"`
	Height int    `env:"CHART_HEIGHT" envDefault:"700"`
}

type Table struct {
	Color bool `env:"TABLE_COLOR" envDefault:"true"`
}

func MustLoad() *Config {
	_ = godotenv.Load(".env")

	cfg, err := Load()
	if err != nil {
		log.Fatalf("parse config error: %s", err)
	}

	return cfg
}

// Load parses the environment without touching .env, so tests can drive it with t.Setenv.
func Load() (*Config, error) {
	cfg := &Config{}

	opts := env.Options{RequiredIfNoDef: true}

	if err := env.ParseWithOptions(cfg, opts); err != nil {
		return nil, err
	}

	return cfg, nil
}
