package config

// Config holds all configuration for the application.
type Config struct {
	DBName string
	Port   string
	DryRun bool
	Slack  SlackConfig
	Turso  TursoConfig
	NATS   NATSConfig
}
type SlackConfig struct {
	Token     string
	ChannelID string
}
type TursoConfig struct {
	PrimaryURL string
	AuthToken  string
}
type NATSConfig struct {
	URL     string
	Subject string
}
