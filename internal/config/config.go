// Package config loads the docnorm command configuration from a .env file,
// an optional YAML file and DOCNORM_* environment variables, in that order
// of increasing precedence.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds the command configuration.
type Config struct {
	LogLevel     string `yaml:"log_level"`
	LogFormat    string `yaml:"log_format"`
	OCR          bool   `yaml:"ocr"`
	OCRLanguage  string `yaml:"ocr_language"`
	TextEncoding string `yaml:"text_fallback_encoding"`
	MaxFileSize  int64  `yaml:"max_file_size"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		LogLevel:     "info",
		LogFormat:    "text",
		OCR:          true,
		OCRLanguage:  "eng",
		TextEncoding: "latin1",
		MaxFileSize:  100 * 1024 * 1024,
	}
}

// Load builds the configuration. envFiles are loaded with godotenv
// (default ".env"); missing files are ignored and variables already set in
// the environment win. path names an optional YAML file.
func Load(path string, envFiles ...string) (*Config, error) {
	if err := godotenv.Load(envFiles...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load env file: %w", err)
	}

	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	return cfg, cfg.Validate()
}

func (c *Config) applyEnv() error {
	c.LogLevel = getEnvOrDefault("DOCNORM_LOG_LEVEL", c.LogLevel)
	c.LogFormat = getEnvOrDefault("DOCNORM_LOG_FORMAT", c.LogFormat)
	c.OCRLanguage = getEnvOrDefault("DOCNORM_OCR_LANGUAGE", c.OCRLanguage)
	c.TextEncoding = getEnvOrDefault("DOCNORM_TEXT_FALLBACK_ENCODING", c.TextEncoding)

	if v := os.Getenv("DOCNORM_OCR"); v != "" {
		on, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("DOCNORM_OCR: %w", err)
		}
		c.OCR = on
	}
	if v := os.Getenv("DOCNORM_MAX_FILE_SIZE"); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("DOCNORM_MAX_FILE_SIZE: %w", err)
		}
		c.MaxFileSize = n
	}
	return nil
}

// Validate checks that values are sane.
func (c *Config) Validate() error {
	if c.MaxFileSize <= 0 {
		return fmt.Errorf("max_file_size must be > 0")
	}
	switch strings.ToLower(c.LogFormat) {
	case "text", "json":
	default:
		return fmt.Errorf("unsupported log_format %q (use text or json)", c.LogFormat)
	}
	return nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
