package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server ServerConfig `mapstructure:"server"`
	DB     DBConfig     `mapstructure:"db"`
	Queue  QueueConfig  `mapstructure:"queue"`
}

type ServerConfig struct {
	Addr string `mapstructure:"addr"`
}

type DBConfig struct {
	DSN          string `mapstructure:"dsn"`
	MaxOpenConns int    `mapstructure:"maxOpenConns"`
}

type QueueConfig struct {
	// PublishDelay is the artificial delay the queue facade inserts before
	// invoking handlers, simulating broker latency.
	PublishDelay time.Duration `mapstructure:"publish_delay"`
}

// LoadConfig loads configuration from config.yaml and environment variables
func LoadConfig() (*Config, error) {
	v := viper.New()

	// Set config file locations
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./deploy/")
	v.AddConfigPath("./")
	v.AddConfigPath("$HOME/.oms/")
	v.AddConfigPath("/etc/oms/")

	// Enable environment variable override with OMS_ prefix
	v.SetEnvPrefix("OMS")
	v.AutomaticEnv()

	v.SetDefault("server.addr", ":3000")
	v.SetDefault("db.maxOpenConns", 10)
	v.SetDefault("queue.publish_delay", 10*time.Millisecond)

	// Read config file
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &config, nil
}
