package main

import (
	"flag"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/caarlos0/env"
)

type Config struct {
	Address            string        `env:"RUN_ADDRESS" envDefault:"localhost:8080"`
	LogLevel           string        `env:"LOG_LEVEL" envDefault:"INFO"`
	DatabaseConnection string        `env:"DATABASE_URI"`
	JWTSecret          string        `env:"JWT_SECRET" envDefault:"dontexposethis"`
	JWTTTL             time.Duration `env:"JWT_TTL" envDefault:"24h"`
	TelegramToken      string        `env:"TELEGRAM_TOKEN"`
	AdminChatIDs       string        `env:"ADMIN_CHAT_IDS"`
	MediaRoot          string        `env:"MEDIA_ROOT" envDefault:"media"`
	Timezone           string        `env:"TIMEZONE" envDefault:"Europe/Moscow"`
}

func NewConfig() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}

	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("ENV JWT_SECRET must be set")
	}

	address := flag.String("a", cfg.Address, "{Host:port} for server")
	loglevel := flag.String("l", cfg.LogLevel, "Log level for server")
	databaseConnection := flag.String("d", cfg.DatabaseConnection, "Database connection string")
	jwtTTL := flag.Duration("t", cfg.JWTTTL, "TTL for JWT token(e.g. 24h; 30m )")
	telegramToken := flag.String("b", cfg.TelegramToken, "Telegram bot token")
	adminChatIDs := flag.String("c", cfg.AdminChatIDs, "Comma separated admin chat ids")
	mediaRoot := flag.String("m", cfg.MediaRoot, "Root directory with product images")
	timezone := flag.String("z", cfg.Timezone, "Timezone for reports (e.g. Europe/Moscow)")

	flag.Parse()

	cfg.Address = *address
	cfg.LogLevel = *loglevel
	cfg.DatabaseConnection = *databaseConnection
	cfg.JWTTTL = *jwtTTL
	cfg.TelegramToken = *telegramToken
	cfg.AdminChatIDs = *adminChatIDs
	cfg.MediaRoot = *mediaRoot
	cfg.Timezone = *timezone

	return cfg, nil
}

// ChatIDs разбирает список идентификаторов чатов из строки конфигурации.
func (c *Config) ChatIDs() ([]int64, error) {
	if c.AdminChatIDs == "" {
		return nil, nil
	}
	parts := strings.Split(c.AdminChatIDs, ",")
	ids := make([]int64, 0, len(parts))
	for _, p := range parts {
		id, err := strconv.ParseInt(strings.TrimSpace(p), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid chat id %q: %w", p, err)
		}
		ids = append(ids, id)
	}
	return ids, nil
}
