package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	koanfjson "github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Default configuration values.
const (
	defaultBaseURL   = "https://adventofcode.com"
	defaultUserAgent = "aoc-cli/" + version
)

// appConfig holds the application configuration. Everything has a working
// default; the config file and flags only override.
type appConfig struct {
	BaseURL     string `json:"base_url"`
	UserAgent   string `json:"user_agent"`
	SessionFile string `json:"session_file,omitempty"`
	Width       int    `json:"width,omitempty"`
	Overwrite   bool   `json:"overwrite,omitempty"`
}

func defaultConfig() appConfig {
	return appConfig{
		BaseURL:   defaultBaseURL,
		UserAgent: defaultUserAgent,
	}
}

// defaultConfigPath returns the config file location in the user config
// directory.
func defaultConfigPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "aoc-cli", "config.json")
}

// loadConfig loads configuration from the specified path. A missing file
// yields the defaults.
func loadConfig(path string) (appConfig, error) {
	cfg := defaultConfig()
	if path == "" {
		return cfg, nil
	}

	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return appConfig{}, fmt.Errorf("stat config: %w", err)
	}

	k := koanf.New(".")
	if err := k.Load(file.Provider(path), koanfjson.Parser()); err != nil {
		return appConfig{}, fmt.Errorf("load config: %w", err)
	}
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "json"}); err != nil {
		return appConfig{}, fmt.Errorf("unmarshal config: %w", err)
	}

	cfg.BaseURL = strings.TrimSpace(cfg.BaseURL)
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	if strings.TrimSpace(cfg.UserAgent) == "" {
		cfg.UserAgent = defaultUserAgent
	}
	if cfg.Width < 0 {
		return appConfig{}, errors.New("width must not be negative")
	}
	return cfg, nil
}
