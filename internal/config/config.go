package config

import (
	"os"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
	"github.com/nats-io/nats.go"
)

// Load reads configuration from environment variables and .env file.
// Nothing is required: every setting has a sensible default or disables its
// feature when unset (no DB_NAME means no persistence).
func Load() Config {
	err := godotenv.Load()
	if err != nil {
		log.Info("No .env file found, reading from environment variables")
	}

	getEnvOr := func(key, fallback string) string {
		if value, ok := os.LookupEnv(key); ok {
			return value
		}
		return fallback
	}

	cfg := Config{
		DBName: os.Getenv("DB_NAME"),
		Port:   getEnvOr("PORT", "8080"),
		DryRun: os.Getenv("DRY_RUN") == "true",
		Slack: SlackConfig{
			Token:     os.Getenv("SLACK_BOT_TOKEN"),
			ChannelID: os.Getenv("SLACK_CHANNEL_ID"),
		},
		Turso: TursoConfig{
			PrimaryURL: os.Getenv("TURSO_PRIMARY_URL"),
			AuthToken:  os.Getenv("TURSO_AUTH_TOKEN"),
		},
		NATS: NATSConfig{
			URL:     getEnvOr("NATS_URL", nats.DefaultURL),
			Subject: getEnvOr("NATS_SUBJECT", "pitchside.match"),
		},
	}
	return cfg
}
