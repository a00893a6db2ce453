// Package config loads service configuration from an optional toml file
// with environment-variable overrides (EXCHANGE_ prefix, dots replaced
// by underscores, e.g. EXCHANGE_SERVER_ADDR).
package config

import (
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	ServerAddr string

	// Symbols listed at start-up; one buy book and one sell book each.
	Symbols []string

	// Index selects the price-level index: "tree" or "slice".
	Index string

	// KafkaBrokers empty disables execution-report publishing.
	KafkaBrokers []string
	KafkaTopic   string
}

// Load reads configuration from path (may be empty for defaults + env).
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetDefault("server.addr", ":8080")
	v.SetDefault("market.symbols", []string{"AAPL", "MSFT", "AMZN"})
	v.SetDefault("market.index", "tree")
	v.SetDefault("kafka.brokers", []string{})
	v.SetDefault("kafka.topic", "executions")

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, err
		}
	}

	v.SetEnvPrefix("EXCHANGE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	return &Config{
		ServerAddr:   v.GetString("server.addr"),
		Symbols:      v.GetStringSlice("market.symbols"),
		Index:        v.GetString("market.index"),
		KafkaBrokers: v.GetStringSlice("kafka.brokers"),
		KafkaTopic:   v.GetString("kafka.topic"),
	}, nil
}
