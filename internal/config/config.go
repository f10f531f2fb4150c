package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server   ServerConfig   `mapstructure:"server" validate:"required"`
	Database DatabaseConfig `mapstructure:"database" validate:"required"`
	Mail     MailConfig     `mapstructure:"mail" validate:"required"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Jobs     JobsConfig     `mapstructure:"jobs" validate:"required"`
	Board    BoardConfig    `mapstructure:"board"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port                   int    `mapstructure:"port" validate:"required,gt=0,lt=65536"`
	LogLevel               string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
	ShutdownTimeoutSeconds int    `mapstructure:"shutdown_timeout_seconds" validate:"gte=1"`
}

// DatabaseConfig contains all database-related configuration settings.
// URL accepts postgres:// URLs as well as sqlite: / file: DSNs.
type DatabaseConfig struct {
	URL          string `mapstructure:"url" validate:"required"`
	MaxOpenConns int    `mapstructure:"max_open_conns" validate:"gte=1"`
	MaxIdleConns int    `mapstructure:"max_idle_conns" validate:"gte=0"`
	AutoMigrate  bool   `mapstructure:"auto_migrate"`
}

// MailConfig holds the SMTP account used for completion notifications.
// Username is the mailbox address; From defaults to it when empty.
type MailConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Host     string `mapstructure:"host" validate:"required_if=Enabled true"`
	Port     int    `mapstructure:"port" validate:"gte=0,lt=65536"`
	Username string `mapstructure:"username" validate:"required_if=Enabled true"`
	Password string `mapstructure:"password" validate:"required_if=Enabled true"`
	From     string `mapstructure:"from" validate:"omitempty,email"`
}

// SenderAddress returns the address notifications are sent from.
func (m MailConfig) SenderAddress() string {
	if m.From != "" {
		return m.From
	}
	return m.Username
}

// RedisConfig is optional. When URL is empty completion notifications
// are not deduplicated.
type RedisConfig struct {
	URL              string `mapstructure:"url" validate:"omitempty,url"`
	DedupeTTLMinutes int    `mapstructure:"dedupe_ttl_minutes" validate:"gte=1"`
}

// JobsConfig sizes the background job runner used for notification delivery.
type JobsConfig struct {
	WorkerCount        int `mapstructure:"worker_count" validate:"gte=1"`
	QueueSize          int `mapstructure:"queue_size" validate:"gte=1"`
	SendTimeoutSeconds int `mapstructure:"send_timeout_seconds" validate:"gte=1"`
}

// BoardConfig toggles board-level consistency rules.
type BoardConfig struct {
	// RequireColumnMembership rejects reorder entries whose task lives in
	// a different column than the one being reordered.
	RequireColumnMembership bool `mapstructure:"require_column_membership"`
}
