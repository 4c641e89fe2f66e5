package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

type Config struct {
	App     App
	Hypixel Hypixel
	Flip    Flip
	HTTP    HTTP
}

type App struct {
	Name    string `env:"APP_NAME" envDefault:"ah-market"`
	Version string `env:"APP_VERSION" envDefault:"dev"`
}

type Hypixel struct {
	BaseURL      string        `env:"HYPIXEL_BASE_URL" envDefault:"https://api.hypixel.net/v2" validate:"url"`
	FetchTimeout time.Duration `env:"HYPIXEL_FETCH_TIMEOUT" envDefault:"10s"`
	PageWorkers  int           `env:"HYPIXEL_PAGE_WORKERS" envDefault:"5" validate:"min=1"`
	RefreshSpec  string        `env:"REFRESH_CRON_SPEC" envDefault:"0 * * * * *"`
}

type Flip struct {
	MinProfit  int64  `env:"FLIP_MIN_PROFIT" envDefault:"25000000" validate:"min=0"`
	WebhookURL string `env:"DISCORD_WEBHOOK_URL"`
}

type HTTP struct {
	ListenAddress   string        `env:"HTTP_LISTEN_ADDRESS" envDefault:":3000"`
	ProbeAddress    string        `env:"PROBE_LISTEN_ADDRESS" envDefault:":8081"`
	MetricsAddress  string        `env:"METRICS_LISTEN_ADDRESS" envDefault:":9090"`
	ShutdownTimeout time.Duration `env:"HTTP_SHUTDOWN_TIMEOUT" envDefault:"10s"`
}

func Load() (Config, error) {
	_ = godotenv.Load()

	var config Config

	if err := env.Parse(&config); err != nil {
		return Config{}, fmt.Errorf("env.Parse: %w", err)
	}

	if err := validator.New(validator.WithRequiredStructEnabled()).Struct(config); err != nil {
		return Config{}, fmt.Errorf("validate: %w", err)
	}

	return config, nil
}
