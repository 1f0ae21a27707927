package config

import (
	"os"
	"strings"

	"payfunnels/internal/provider"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

type AppCfg struct {
	Env, Port, NodeID string
	AdminToken        string
}
type LogCfg struct{ Level, Format string }

type PayfunnelsCfg struct {
	ID         string
	APIKey     string
	BaseURL    string
	TimeoutSec int
}

type WebhookCfg struct {
	// BaseURL is the externally reachable origin of this service
	BaseURL      string
	Event        string
	ReconcileSec int // 0 disables the subscription watchdog
}

type StoreCfg struct {
	Driver     string // memory, postgres, redis, sqlite
	DSN        string
	RedisAddr  string
	SQLitePath string
}

type SinkCfg struct {
	Kind         string // log, forward, redis
	ForwardURL   string
	RedisChannel string
}

type Cfg struct {
	App        AppCfg
	Log        LogCfg
	Payfunnels PayfunnelsCfg
	Webhook    WebhookCfg
	Store      StoreCfg
	Sink       SinkCfg
}

// WebhookURL is the callback registered with Payfunnels
func (c Cfg) WebhookURL(path string) string {
	return strings.TrimRight(c.Webhook.BaseURL, "/") + path
}

// Credentials returns the configured Payfunnels credentials
func (c Cfg) Credentials() provider.Credentials {
	return provider.Credentials{ID: c.Payfunnels.ID, APIKey: c.Payfunnels.APIKey}
}

func Load() Cfg {
	// 1) Load .env into process env (if file exists)
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Warn().Err(err).Msg("could not read .env file")
	}

	// 2) Read from env via viper
	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("APP_PORT", "8080")
	v.SetDefault("NODE_ID", "payfunnels-trigger")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")
	v.SetDefault("PAYFUNNELS_BASE_URL", "https://api.payfunnels.com/n8n-integration")
	v.SetDefault("HTTP_TIMEOUT_SEC", 30)
	v.SetDefault("WEBHOOK_EVENT", "payment_successful")
	v.SetDefault("WEBHOOK_RECONCILE_SEC", 0)
	v.SetDefault("STORE_DRIVER", "memory")
	v.SetDefault("SQLITE_PATH", "data/payfunnels.db")
	v.SetDefault("SINK", "log")
	v.SetDefault("SINK_REDIS_CHANNEL", "payfunnels:events")

	return Cfg{
		App: AppCfg{
			Env:        v.GetString("APP_ENV"),
			Port:       v.GetString("APP_PORT"),
			NodeID:     v.GetString("NODE_ID"),
			AdminToken: v.GetString("ADMIN_TOKEN"),
		},
		Log: LogCfg{
			Level:  strings.ToLower(v.GetString("LOG_LEVEL")),
			Format: strings.ToLower(v.GetString("LOG_FORMAT")),
		},
		Payfunnels: PayfunnelsCfg{
			ID:         strings.TrimSpace(v.GetString("PAYFUNNELS_ID")),
			APIKey:     strings.TrimSpace(v.GetString("PAYFUNNELS_API_KEY")),
			BaseURL:    v.GetString("PAYFUNNELS_BASE_URL"),
			TimeoutSec: v.GetInt("HTTP_TIMEOUT_SEC"),
		},
		Webhook: WebhookCfg{
			BaseURL:      v.GetString("WEBHOOK_BASE_URL"),
			Event:        v.GetString("WEBHOOK_EVENT"),
			ReconcileSec: v.GetInt("WEBHOOK_RECONCILE_SEC"),
		},
		Store: StoreCfg{
			Driver:     strings.ToLower(v.GetString("STORE_DRIVER")),
			DSN:        v.GetString("DB_DSN"),
			RedisAddr:  v.GetString("REDIS_ADDR"),
			SQLitePath: v.GetString("SQLITE_PATH"),
		},
		Sink: SinkCfg{
			Kind:         strings.ToLower(v.GetString("SINK")),
			ForwardURL:   v.GetString("SINK_FORWARD_URL"),
			RedisChannel: v.GetString("SINK_REDIS_CHANNEL"),
		},
	}
}
