package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Postgres   PostgresConfig   `yaml:"postgres"`
	Redis      RedisConfig      `yaml:"redis"`
	Intervals  []IntervalConfig `yaml:"intervals"`
	Aggregator AggregatorConfig `yaml:"aggregator"`
	Monitor    MonitorConfig    `yaml:"monitor"`
	LiveFeed   LiveFeedConfig   `yaml:"live_feed"`
}

type PostgresConfig struct {
	DSN string `yaml:"dsn"`
}

type RedisConfig struct {
	Addr     string `yaml:"addr"` // empty disables the cache
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

// IntervalConfig overrides one critical window. When the intervals section is
// absent the compiled-in defaults ("31-45+", "76-90+") are used.
type IntervalConfig struct {
	Name    string `yaml:"name"`
	Start   int    `yaml:"start"`
	End     int    `yaml:"end"`
	OpenEnd bool   `yaml:"open_end"` // fold minutes past End (injury time) into this window
}

type AggregatorConfig struct {
	Workers   int    `yaml:"workers"`    // parallel aggregation units (default: 8)
	InputFile string `yaml:"input_file"` // optional JSON file of historical matches to import before the run
}

type MonitorConfig struct {
	Interval         time.Duration `yaml:"interval"`           // polling cadence (default: 45s)
	AlertThreshold   float64       `yaml:"alert_threshold"`    // min combined probability to alert on
	CooldownMinutes  int           `yaml:"cooldown_minutes"`   // min minutes between duplicate alerts (default: 60)
	MinIncrease      float64       `yaml:"min_increase"`       // min probability increase to re-alert inside cooldown (default: 0.05)
	TelegramBotToken string        `yaml:"telegram_bot_token"` // Telegram bot token for notifications
	TelegramChatID   int64         `yaml:"telegram_chat_id"`   // Telegram chat ID to send notifications
}

type LiveFeedConfig struct {
	Mode      string        `yaml:"mode"`       // "http" (JSON feed) or "browser" (chromedp)
	URL       string        `yaml:"url"`        // feed endpoint or livescore page URL
	Timeout   time.Duration `yaml:"timeout"`    // per-fetch timeout (default: 30s)
	UserAgent string        `yaml:"user_agent"` // browser mode user agent
	Script    string        `yaml:"script"`     // browser mode: JS expression returning the snapshot JSON
}

func Load(configPath string) (*Config, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return &config, nil
}
