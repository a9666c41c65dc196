// Package config loads the application configuration from a YAML file with
// environment-variable overrides.
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/go-yaml/yaml"
)

type Config struct {
	Server   Server   `yaml:"server"`
	Database Database `yaml:"database"`
	Logging  Logging  `yaml:"logging"`
	Seed     bool     `yaml:"seed"`
}

type Server struct {
	Port int `yaml:"port"`
}

type Database struct {
	Path string `yaml:"path"`
}

type Logging struct {
	Level string `yaml:"level"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		Server:   Server{Port: 8080},
		Database: Database{Path: "shopform.db"},
		Logging:  Logging{Level: "info"},
	}
}

// Load reads the YAML file at path (missing file falls back to defaults)
// and then applies PORT, DATABASE_PATH, and LOG_LEVEL overrides.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		file, err := os.Open(path)
		if err == nil {
			defer file.Close()
			if err := yaml.NewDecoder(file).Decode(&cfg); err != nil {
				return Config{}, fmt.Errorf("parsing config %s: %w", path, err)
			}
		} else if !os.IsNotExist(err) {
			return Config{}, fmt.Errorf("opening config %s: %w", path, err)
		}
	}

	if p := os.Getenv("PORT"); p != "" {
		if v, err := strconv.Atoi(p); err == nil {
			cfg.Server.Port = v
		}
	}
	if p := os.Getenv("DATABASE_PATH"); p != "" {
		cfg.Database.Path = p
	}
	if p := os.Getenv("LOG_LEVEL"); p != "" {
		cfg.Logging.Level = p
	}

	return cfg, nil
}
