package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// FileName is looked up in the user's home directory when no path is given
const FileName = ".treelox.yaml"

// Config holds the settings of the treelox binary
type Config struct {
	Prompt             string `yaml:"prompt"`
	ContinuationPrompt string `yaml:"continuation_prompt"`
	HistoryFile        string `yaml:"history_file"`
	LogLevel           string `yaml:"log_level"`
	Color              *bool  `yaml:"color"`
}

// Default returns the configuration used when no file exists
func Default() *Config {
	color := true
	cfg := &Config{
		Prompt:             "> ",
		ContinuationPrompt: "... ",
		HistoryFile:        ".treelox_history",
		LogLevel:           logrus.WarnLevel.String(),
		Color:              &color,
	}
	if home, err := os.UserHomeDir(); err == nil {
		cfg.HistoryFile = filepath.Join(home, cfg.HistoryFile)
	}
	return cfg
}

// DefaultPath is $HOME/.treelox.yaml, or empty when home is unknown
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, FileName)
}

// Load reads path over the defaults. A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, err
	}
	var file Config
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	cfg.merge(&file)
	if _, err := cfg.Level(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) merge(file *Config) {
	if file.Prompt != "" {
		c.Prompt = file.Prompt
	}
	if file.ContinuationPrompt != "" {
		c.ContinuationPrompt = file.ContinuationPrompt
	}
	if file.HistoryFile != "" {
		c.HistoryFile = file.HistoryFile
	}
	if file.LogLevel != "" {
		c.LogLevel = file.LogLevel
	}
	if file.Color != nil {
		c.Color = file.Color
	}
}

// Level parses LogLevel
func (c *Config) Level() (logrus.Level, error) {
	return logrus.ParseLevel(c.LogLevel)
}

// ColorEnabled reports whether diagnostics may be colored
func (c *Config) ColorEnabled() bool {
	return c.Color == nil || *c.Color
}
