package driver

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultConfigName is looked up in the working directory when no --config
// flag is given.
const DefaultConfigName = "stacklang.yml"

// PromptMode controls when the interactive prompt is printed.
type PromptMode string

const (
	PromptAuto   PromptMode = "auto"
	PromptAlways PromptMode = "always"
	PromptNever  PromptMode = "never"
)

// IsValid reports whether the prompt mode is recognised.
func (m PromptMode) IsValid() bool {
	switch m {
	case PromptAuto, PromptAlways, PromptNever:
		return true
	default:
		return false
	}
}

// Config holds the settings read from stacklang.yml.
type Config struct {
	Path           string
	Prompt         PromptMode
	Echo           bool
	MaxCallDepth   int
	Trace          bool
	ShowSignatures bool
}

type configFile struct {
	Prompt         string `yaml:"prompt"`
	Echo           bool   `yaml:"echo"`
	MaxCallDepth   *int   `yaml:"max_call_depth"`
	Trace          bool   `yaml:"trace"`
	ShowSignatures *bool  `yaml:"show_signatures"`
}

// DefaultConfig returns the settings used when no file is present.
func DefaultConfig() *Config {
	return &Config{
		Prompt:         PromptAuto,
		ShowSignatures: true,
	}
}

// ValidationError aggregates configuration validation failures.
type ValidationError struct {
	Issues []string
}

func (e *ValidationError) Error() string {
	if len(e.Issues) == 0 {
		return "config: invalid configuration"
	}
	var b strings.Builder
	b.WriteString("config validation failed:")
	for _, issue := range e.Issues {
		b.WriteString("\n- ")
		b.WriteString(issue)
	}
	return b.String()
}

// LoadConfig parses a configuration file from disk.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config: empty path")
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("config: resolve %s: %w", path, err)
	}
	file, err := os.Open(absPath)
	if err != nil {
		return nil, fmt.Errorf("config: open %s: %w", absPath, err)
	}
	defer file.Close()

	cfg, err := DecodeConfig(file)
	if err != nil {
		return nil, fmt.Errorf("config: %s: %w", absPath, err)
	}
	cfg.Path = absPath
	return cfg, nil
}

// LoadDefaultConfig reads DefaultConfigName from dir when it exists and falls
// back to DefaultConfig otherwise.
func LoadDefaultConfig(dir string) (*Config, error) {
	path := filepath.Join(dir, DefaultConfigName)
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return DefaultConfig(), nil
		}
		return nil, fmt.Errorf("config: stat %s: %w", path, err)
	}
	return LoadConfig(path)
}

// DecodeConfig reads YAML from r. Unknown keys are rejected; an empty document
// yields the defaults.
func DecodeConfig(r io.Reader) (*Config, error) {
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)

	var raw configFile
	if err := decoder.Decode(&raw); err != nil {
		if errors.Is(err, io.EOF) {
			return DefaultConfig(), nil
		}
		return nil, fmt.Errorf("parse: %w", err)
	}

	cfg := raw.toConfig()
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (raw configFile) toConfig() *Config {
	cfg := DefaultConfig()
	if prompt := strings.TrimSpace(raw.Prompt); prompt != "" {
		cfg.Prompt = PromptMode(strings.ToLower(prompt))
	}
	cfg.Echo = raw.Echo
	cfg.Trace = raw.Trace
	if raw.MaxCallDepth != nil {
		cfg.MaxCallDepth = *raw.MaxCallDepth
	}
	if raw.ShowSignatures != nil {
		cfg.ShowSignatures = *raw.ShowSignatures
	}
	return cfg
}

func (c *Config) validate() error {
	var errs ValidationError
	if !c.Prompt.IsValid() {
		errs.Issues = append(errs.Issues, fmt.Sprintf("prompt must be one of auto, always, never (got %q)", c.Prompt))
	}
	if c.MaxCallDepth < 0 {
		errs.Issues = append(errs.Issues, fmt.Sprintf("max_call_depth must not be negative (got %d)", c.MaxCallDepth))
	}
	if len(errs.Issues) > 0 {
		return &errs
	}
	return nil
}
