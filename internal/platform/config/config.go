package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config is centralized process configuration.
// Keep infra values here and pass typed config into builders.
type Config struct {
	ServiceName string
	HTTPPort    string
	PostgresDSN string

	EnableScheduledPublishing bool
	EnableOutboxRelay         bool
	WorkerPollInterval        time.Duration
	WorkerBatchSize           int
}

func Load() (Config, error) {
	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("SERVICE_NAME", "vellum")
	v.SetDefault("HTTP_PORT", "8080")
	v.SetDefault("POSTGRES_DSN", "")
	v.SetDefault("ENABLE_SCHEDULED_PUBLISHING", true)
	v.SetDefault("ENABLE_OUTBOX_RELAY", true)
	v.SetDefault("WORKER_POLL_INTERVAL", "15s")
	v.SetDefault("WORKER_BATCH_SIZE", 100)

	poll := v.GetDuration("WORKER_POLL_INTERVAL")
	if poll <= 0 {
		poll = 15 * time.Second
	}
	batch := v.GetInt("WORKER_BATCH_SIZE")
	if batch <= 0 {
		batch = 100
	}

	return Config{
		ServiceName: strings.TrimSpace(v.GetString("SERVICE_NAME")),
		HTTPPort:    strings.TrimSpace(v.GetString("HTTP_PORT")),
		PostgresDSN: strings.TrimSpace(v.GetString("POSTGRES_DSN")),

		EnableScheduledPublishing: v.GetBool("ENABLE_SCHEDULED_PUBLISHING"),
		EnableOutboxRelay:         v.GetBool("ENABLE_OUTBOX_RELAY"),
		WorkerPollInterval:        poll,
		WorkerBatchSize:           batch,
	}, nil
}
