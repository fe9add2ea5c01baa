// Package config reads the server settings from the environment and flags.
package config

import (
	"flag"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds the server configuration.
type Config struct {
	Port         string `env:"PORT" envDefault:"8080"`
	DatabasePath string `env:"DATABASE_PATH" envDefault:"portfolio.db"`
	ContentPath  string `env:"CONTENT_PATH"`

	SMTPHost string `env:"SMTP_HOST" envDefault:"smtp.gmail.com"`
	SMTPPort string `env:"SMTP_PORT" envDefault:"587"`
	SMTPUser string `env:"SMTP_USER"`
	SMTPPass string `env:"SMTP_PASS"`
	ToEmail  string `env:"TO_EMAIL"`

	AdminUsername string `env:"ADMIN_USERNAME"`
	AdminPassword string `env:"ADMIN_PASSWORD"`
	IPSalt        string `env:"IP_SALT"`

	GitHubUser     string        `env:"GITHUB_USER" envDefault:"Zachkp"`
	GitHubToken    string        `env:"GITHUB_TOKEN"`
	GitHubCacheTTL time.Duration `env:"GITHUB_CACHE_TTL" envDefault:"1h"`

	ChatReplyDelay time.Duration `env:"CHAT_REPLY_DELAY" envDefault:"1s"`
	ChatSessionTTL time.Duration `env:"CHAT_SESSION_TTL" envDefault:"30m"`

	VisitorRetention time.Duration `env:"VISITOR_RETENTION" envDefault:"8760h"`
}

// Addr is the listen address.
func (c Config) Addr() string {
	return ":" + c.Port
}

// AdminEnabled reports whether both admin credentials are set.
func (c Config) AdminEnabled() bool {
	return c.AdminUsername != "" && c.AdminPassword != ""
}

// ParseConfig loads defaults from env and then lets flags override them.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}

	fs.StringVar(&cfg.Port, "port", cfg.Port, "HTTP listen port")
	fs.StringVar(&cfg.DatabasePath, "db", cfg.DatabasePath, "sqlite database path")
	fs.StringVar(&cfg.ContentPath, "content", cfg.ContentPath, "site content YAML (embedded copy when empty)")
	fs.StringVar(&cfg.GitHubUser, "github-user", cfg.GitHubUser, "GitHub account for the stats card")
	fs.DurationVar(&cfg.ChatReplyDelay, "chat-delay", cfg.ChatReplyDelay, "delay before the chat bot replies")
	if args == nil {
		args = []string{}
	}
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
