package config

import (
	"flag"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config represents the application configuration
type Config struct {
	Feed struct {
		Path   string `yaml:"path"`
		Format string `yaml:"format"`
	} `yaml:"feed"`

	Log struct {
		Level  string `yaml:"level"`
		Format string `yaml:"format"`
	} `yaml:"log"`

	Report struct {
		View string `yaml:"view"`
	} `yaml:"report"`

	Kafka struct {
		Enabled    bool   `yaml:"enabled"`
		BrokerAddr string `yaml:"broker_addr"`
		Topic      string `yaml:"topic"`
	} `yaml:"kafka"`
}

// Default configuration values
var (
	configFile = flag.String("config", "", "Path to config file (YAML)")
	feedPath   = flag.String("feed", "orders.csv", "Path to the order feed CSV")
	feedFormat = flag.String("format", "add-cancel", "Feed format: add-only, add-cancel")
	logLevel   = flag.String("log_level", "info", "Log level: debug, info, warn, error")
	logFormat  = flag.String("log_format", "pretty", "Log format: json, pretty")
	reportView = flag.String("view", "ladder", "Query view: ladder, snapshot, both")
)

// LoadConfig loads the configuration from command line flags and optionally from a config file
func LoadConfig() (*Config, error) {
	flag.Parse()

	config := &Config{}
	config.Feed.Path = *feedPath
	config.Feed.Format = *feedFormat
	config.Log.Level = *logLevel
	config.Log.Format = *logFormat
	config.Report.View = *reportView
	config.Kafka.BrokerAddr = "localhost:9092"
	config.Kafka.Topic = "bookmatch-executions"

	if *configFile != "" {
		yamlFile, err := os.ReadFile(*configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}

		if err := yaml.Unmarshal(yamlFile, config); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	return config, nil
}
