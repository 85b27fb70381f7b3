package config

import (
	"os"

	"gopkg.in/yaml.v3"

	"storefront_api/config/values"
)

type StorefrontConfig struct {
	ApiURL    string                  `yaml:"api_url"`
	ApiKey    string                  `yaml:"api_key"`
	SfValues  values.StorefrontValues `yaml:"default_values"`
	MetricsOn bool                    `yaml:"metrics_enabled"`
}

type AppConfig struct {
	Storefront StorefrontConfig `yaml:"storefront"`
	Postgres   PostgresConfig   `yaml:"postgres"`
}

func LoadConfig(filename string) (*AppConfig, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	decoder := yaml.NewDecoder(file)
	config := &AppConfig{}
	if err := decoder.Decode(config); err != nil {
		return nil, err
	}
	return config, nil
}
