// Package config provides configuration management for the application.
package config

import (
	"fmt"

	"github.com/spf13/viper"
)

type Config struct {
	Server     ServerConfig     `mapstructure:"server"`
	Database   DatabaseConfig   `mapstructure:"database"`
	Redis      RedisConfig      `mapstructure:"redis"`
	Providers  ProvidersConfig  `mapstructure:"providers"`
	Scheduler  SchedulerConfig  `mapstructure:"scheduler"`
	Dispatcher DispatcherConfig `mapstructure:"dispatcher"`
	Webhook    WebhookConfig    `mapstructure:"webhook"`
	Retry      RetryConfig      `mapstructure:"retry"`
	Middleware MiddlewareConfig `mapstructure:"middleware"`
}

type ServerConfig struct {
	Port         string `mapstructure:"port"`
	ReadTimeout  int    `mapstructure:"read_timeout"`
	WriteTimeout int    `mapstructure:"write_timeout"`
}

type DatabaseConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	DBName   string `mapstructure:"dbname"`
	SSLMode  string `mapstructure:"sslmode"`
}

type RedisConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// ProvidersConfig holds one entry per outbound transport.
type ProvidersConfig struct {
	Meta   ProviderConfig `mapstructure:"meta"`
	Bridge ProviderConfig `mapstructure:"bridge"`
	SMS    ProviderConfig `mapstructure:"sms"`
}

type ProviderConfig struct {
	URL            string               `mapstructure:"url"`
	AuthKey        string               `mapstructure:"auth_key"`
	Timeout        int                  `mapstructure:"timeout"`
	SendsPerMinute int                  `mapstructure:"sends_per_minute"`
	CircuitBreaker CircuitBreakerConfig `mapstructure:"circuit_breaker"`
}

type CircuitBreakerConfig struct {
	MaxRequests      uint32  `mapstructure:"max_requests"`
	Interval         int     `mapstructure:"interval"`
	Timeout          int     `mapstructure:"timeout"`
	FailureRatio     float64 `mapstructure:"failure_ratio"`
	ConsecutiveFails uint32  `mapstructure:"consecutive_fails"`
}

type SchedulerConfig struct {
	IntervalSeconds int `mapstructure:"interval_seconds"`
	ClaimBatchSize  int `mapstructure:"claim_batch_size"`
}

type DispatcherConfig struct {
	SendConcurrency int `mapstructure:"send_concurrency"`
}

// WebhookConfig covers inbound provider callbacks. Secrets are per source so
// each integration can rotate independently of the others.
type WebhookConfig struct {
	MetaAppSecret   string `mapstructure:"meta_app_secret"`
	MetaVerifyToken string `mapstructure:"meta_verify_token"`
	BridgeSecret    string `mapstructure:"bridge_secret"`
	SMSSecret       string `mapstructure:"sms_secret"`
	CacheTTLHours   int    `mapstructure:"cache_ttl_hours"`
}

type RetryConfig struct {
	MaxAttempts      int `mapstructure:"max_attempts"`
	BaseDelaySeconds int `mapstructure:"base_delay_seconds"`
	IntervalSeconds  int `mapstructure:"interval_seconds"`
	BatchSize        int `mapstructure:"batch_size"`
	DrainPerSecond   int `mapstructure:"drain_per_second"`
}

type MiddlewareConfig struct {
	RateLimit         int      `mapstructure:"rate_limit"`
	RateWindowSeconds int      `mapstructure:"rate_window_seconds"`
	EnableCORS        bool     `mapstructure:"enable_cors"`
	AllowedOrigins    []string `mapstructure:"allowed_origins"`
}

func LoadConfig(configPath string) (*Config, error) {
	viper.SetConfigFile(configPath)
	viper.SetConfigType("yaml")

	viper.SetDefault("server.port", "8080")
	viper.SetDefault("server.read_timeout", 10)
	viper.SetDefault("server.write_timeout", 10)
	viper.SetDefault("database.sslmode", "disable")
	viper.SetDefault("redis.db", 0)
	viper.SetDefault("providers.meta.timeout", 30)
	viper.SetDefault("providers.meta.sends_per_minute", 80)
	viper.SetDefault("providers.bridge.timeout", 30)
	viper.SetDefault("providers.bridge.sends_per_minute", 20)
	viper.SetDefault("providers.sms.timeout", 30)
	viper.SetDefault("providers.sms.sends_per_minute", 60)
	for _, p := range []string{"meta", "bridge", "sms"} {
		viper.SetDefault("providers."+p+".circuit_breaker.max_requests", 3)
		viper.SetDefault("providers."+p+".circuit_breaker.interval", 60)
		viper.SetDefault("providers."+p+".circuit_breaker.timeout", 60)
		viper.SetDefault("providers."+p+".circuit_breaker.failure_ratio", 0.6)
		viper.SetDefault("providers."+p+".circuit_breaker.consecutive_fails", 5)
	}
	viper.SetDefault("scheduler.interval_seconds", 30)
	viper.SetDefault("scheduler.claim_batch_size", 10)
	viper.SetDefault("dispatcher.send_concurrency", 4)
	viper.SetDefault("webhook.cache_ttl_hours", 24)
	viper.SetDefault("retry.max_attempts", 3)
	viper.SetDefault("retry.base_delay_seconds", 2)
	viper.SetDefault("retry.interval_seconds", 15)
	viper.SetDefault("retry.batch_size", 50)
	viper.SetDefault("retry.drain_per_second", 10)
	viper.SetDefault("middleware.rate_limit", 100)
	viper.SetDefault("middleware.rate_window_seconds", 60)
	viper.SetDefault("middleware.enable_cors", true)
	viper.SetDefault("middleware.allowed_origins", []string{"*"})

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	viper.AutomaticEnv()

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &config, nil
}

// For returns the provider entry for a transport name (meta, bridge, sms).
func (p *ProvidersConfig) For(name string) *ProviderConfig {
	switch name {
	case "meta":
		return &p.Meta
	case "bridge":
		return &p.Bridge
	case "sms":
		return &p.SMS
	default:
		return nil
	}
}

// GetDSN returns PostgreSQL connection string.
func (d *DatabaseConfig) GetDSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}
