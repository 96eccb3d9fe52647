package conf

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/lk2023060901/smartshop/internal/pkg/logger"
	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Upstream  UpstreamConfig  `mapstructure:"upstream"`
	Log       logger.Config   `mapstructure:"log"`
	RateLimit RateLimitConfig `mapstructure:"ratelimit"`
	Redis     RedisConfig     `mapstructure:"redis"`
}

type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
	// Name is the deployment label attached to every response
	Name      string `mapstructure:"name"`
	StaticDir string `mapstructure:"static_dir"`
}

type UpstreamConfig struct {
	Provider     string        `mapstructure:"provider"`
	APIHost      string        `mapstructure:"api_host"`
	APIKey       string        `mapstructure:"api_key"`
	RapidAPIHost string        `mapstructure:"rapidapi_host"`
	Country      string        `mapstructure:"country"`
	Timeout      time.Duration `mapstructure:"timeout"`
}

type RateLimitConfig struct {
	Enabled       bool `mapstructure:"enabled"`
	MaxRequests   int  `mapstructure:"max_requests"`
	WindowSeconds int  `mapstructure:"window_seconds"`
}

type RedisConfig struct {
	Addrs    []string `mapstructure:"addrs"`
	Password string   `mapstructure:"password"`
	DB       int      `mapstructure:"db"`
	PoolSize int      `mapstructure:"pool_size"`
}

// envAliases binds the plain variable names operators already use.
var envAliases = map[string]string{
	"server.port":       "PORT",
	"server.name":       "SERVER_NAME",
	"upstream.api_host": "EXTERNAL_API_URL",
	"upstream.api_key":  "EXTERNAL_API_KEY",
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "")
	v.SetDefault("server.port", 3000)
	v.SetDefault("server.name", "LocalDev")
	v.SetDefault("server.static_dir", "public")

	v.SetDefault("upstream.provider", "rapidapi-amazon")
	v.SetDefault("upstream.api_host", "https://real-time-amazon-data.p.rapidapi.com/search")
	v.SetDefault("upstream.api_key", "")
	v.SetDefault("upstream.rapidapi_host", "real-time-amazon-data.p.rapidapi.com")
	v.SetDefault("upstream.country", "US")
	v.SetDefault("upstream.timeout", 10*time.Second)

	def := logger.DefaultConfig()
	v.SetDefault("log.level", def.Level)
	v.SetDefault("log.format", def.Format)
	v.SetDefault("log.output", def.Output)
	v.SetDefault("log.enablecaller", def.EnableCaller)
	v.SetDefault("log.enablestacktrace", def.EnableStacktrace)
	v.SetDefault("log.file.filename", def.File.Filename)
	v.SetDefault("log.file.maxsize", def.File.MaxSize)
	v.SetDefault("log.file.maxage", def.File.MaxAge)
	v.SetDefault("log.file.maxbackups", def.File.MaxBackups)
	v.SetDefault("log.file.compress", def.File.Compress)

	v.SetDefault("ratelimit.enabled", false)
	v.SetDefault("ratelimit.max_requests", 60)
	v.SetDefault("ratelimit.window_seconds", 60)

	v.SetDefault("redis.addrs", []string{"localhost:6379"})
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.pool_size", 10)
}

// LoadConfig reads path (if it exists), then .env, then the environment.
// Environment variables win; nested keys map to SMARTSHOP_SECTION_KEY.
func LoadConfig(path string) (*Config, error) {
	// A missing .env is the normal case outside local development.
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("smartshop")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for key, env := range envAliases {
		if err := v.BindEnv(key, "SMARTSHOP_"+strings.ToUpper(strings.ReplaceAll(key, ".", "_")), env); err != nil {
			return nil, fmt.Errorf("failed to bind %s: %w", env, err)
		}
	}

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) && !errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("failed to read config: %w", err)
			}
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

// Validate checks the values the server cannot start without
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port %d out of range", c.Server.Port)
	}
	if c.Upstream.APIHost == "" {
		return errors.New("upstream.api_host is required")
	}
	if c.Upstream.Timeout <= 0 {
		return errors.New("upstream.timeout must be > 0")
	}
	if c.RateLimit.Enabled && len(c.Redis.Addrs) == 0 {
		return errors.New("redis.addrs is required when ratelimit is enabled")
	}
	return c.Log.Validate()
}

// Addr returns the listen address
func (c *ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}
