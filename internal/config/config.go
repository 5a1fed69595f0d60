package config

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	DialogMemory   = "memory"
	DialogPostgres = "postgres"
	DialogRedis    = "redis"
)

type Config struct {
	App struct {
		Env      string
		Timezone string
	} `mapstructure:"app"`

	Telegram struct {
		Token       string
		AdminChatID int64 `mapstructure:"admin_chat_id"`
		Timeout     int   // long polling, секунды
		Workers     int
	} `mapstructure:"telegram"`

	HTTP struct {
		Addr string
	} `mapstructure:"http"`

	Postgres struct {
		DSN string
	} `mapstructure:"postgres"`

	Metrics struct {
		Enabled bool
	} `mapstructure:"metrics"`

	Redis struct {
		Addr     string
		Password string
		DB       int
	} `mapstructure:"redis"`

	Dialog struct {
		Backend string
		TTL     time.Duration // 0: сессии не протухают
	} `mapstructure:"dialog"`

	Inquiry struct {
		PhonePattern string `mapstructure:"phone_pattern"`
	} `mapstructure:"inquiry"`

	Catalog struct {
		SearchLimit int `mapstructure:"search_limit"`
	} `mapstructure:"catalog"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.env", "prod")
	v.SetDefault("app.timezone", "UTC")
	v.SetDefault("telegram.token", "")
	v.SetDefault("telegram.admin_chat_id", 0)
	v.SetDefault("telegram.timeout", 30)
	v.SetDefault("telegram.workers", 8)
	v.SetDefault("http.addr", ":8080")
	v.SetDefault("postgres.dsn", "")
	v.SetDefault("metrics.enabled", true)
	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("dialog.backend", DialogMemory)
	v.SetDefault("dialog.ttl", "24h")
	v.SetDefault("inquiry.phone_pattern", "")
	v.SetDefault("catalog.search_limit", 20)
}

func Load(path string) (Config, error) {
	v := viper.New()
	setDefaults(v)
	v.SetConfigFile(path)
	// ENV перекрывает файл: telegram.token -> APP_TELEGRAM_TOKEN
	v.SetEnvPrefix("APP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var c Config
	if err := v.ReadInConfig(); err != nil {
		return c, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := v.Unmarshal(&c); err != nil {
		return c, fmt.Errorf("decode config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return c, err
	}
	return c, nil
}

func (c *Config) Validate() error {
	if strings.TrimSpace(c.Telegram.Token) == "" {
		return fmt.Errorf("telegram.token is required")
	}
	if strings.TrimSpace(c.Postgres.DSN) == "" {
		return fmt.Errorf("postgres.dsn is required")
	}
	if c.Telegram.Timeout < 0 {
		return fmt.Errorf("telegram.timeout must be >= 0")
	}
	if c.Telegram.Workers <= 0 {
		c.Telegram.Workers = 1
	}
	c.Dialog.Backend = strings.ToLower(strings.TrimSpace(c.Dialog.Backend))
	switch c.Dialog.Backend {
	case DialogMemory, DialogPostgres, DialogRedis:
	default:
		return fmt.Errorf("invalid dialog.backend %q; allowed: memory, postgres, redis", c.Dialog.Backend)
	}
	if c.Dialog.TTL < 0 {
		return fmt.Errorf("dialog.ttl must be >= 0")
	}
	if _, err := c.PhoneRegexp(); err != nil {
		return err
	}
	return nil
}

// PhoneRegexp nil, если формат телефона не проверяется (только непустая строка).
func (c *Config) PhoneRegexp() (*regexp.Regexp, error) {
	p := strings.TrimSpace(c.Inquiry.PhonePattern)
	if p == "" {
		return nil, nil
	}
	re, err := regexp.Compile(p)
	if err != nil {
		return nil, fmt.Errorf("invalid inquiry.phone_pattern: %w", err)
	}
	return re, nil
}
