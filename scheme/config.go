package scheme

import (
	"fmt"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"
)

// DefaultMaxDepth bounds the nesting of evaluations.
const DefaultMaxDepth = 10000

// MaxDepthLimit is the largest MaxDepth accepted. Nesting much deeper
// than this exhausts the goroutine stack before a DepthError is returned.
const MaxDepthLimit = 100000

// Config holds the settings of an interpreter and its command.
type Config struct {
	// MaxDepth is how deeply applications may nest before evaluation
	// fails with a stack overflow.
	MaxDepth int `yaml:"max_depth"`

	// LogLevel is one of debug, info, warn or error.
	LogLevel string `yaml:"log_level"`

	// Prelude expressions are run when the interpreter starts,
	// followed by the files in Load.
	Prelude []string `yaml:"prelude"`
	Load    []string `yaml:"load"`

	HistoryFile    string `yaml:"history_file"`
	Prompt         string `yaml:"prompt"`
	ContinuePrompt string `yaml:"continue_prompt"`
}

// DefaultConfig returns the settings used when none are given.
func DefaultConfig() Config {
	return Config{
		MaxDepth:       DefaultMaxDepth,
		LogLevel:       "warn",
		HistoryFile:    ".scm_history",
		Prompt:         "> ",
		ContinuePrompt: "| ",
	}
}

// ParseConfig reads YAML settings over the defaults.
func ParseConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the ranges of the settings.
func (c Config) Validate() error {
	if c.MaxDepth <= 0 || c.MaxDepth > MaxDepthLimit {
		return fmt.Errorf("config: max_depth must be between 1 and %d, got %d",
			MaxDepthLimit, c.MaxDepth)
	}
	_, err := c.Level()
	return err
}

// LoadConfig reads settings from a YAML file.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}
	return ParseConfig(data)
}

// Level returns LogLevel as a slog level.
func (c Config) Level() (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, fmt.Errorf("config: log_level: %w", err)
	}
	return l, nil
}
