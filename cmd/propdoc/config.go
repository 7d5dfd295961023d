package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/alnah/go-propdoc/internal/fileutil"
	"github.com/alnah/go-propdoc/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
)

// configDirName is the subdirectory of the user config dir searched for
// named configs.
const configDirName = "propdoc"

// Config holds all file-based configuration for a generation run.
// Command-line flags override config values.
type Config struct {
	Output       OutputConfig      `yaml:"output"`
	Formats      []string          `yaml:"formats"`
	Document     DocumentConfig    `yaml:"document"`
	Placeholders PlaceholderConfig `yaml:"placeholders"`
	Layout       LayoutConfig      `yaml:"layout"`
	Styling      StylingConfig     `yaml:"styling"`
	Enforce      bool              `yaml:"enforceValidation"`
}

// OutputConfig defines output destination options.
type OutputConfig struct {
	Dir string `yaml:"dir"` // empty = current directory
}

// DocumentConfig defines document metadata options.
type DocumentConfig struct {
	Agency string `yaml:"agency"`
	Client string `yaml:"client"`
}

// PlaceholderConfig defines placeholder substitutions.
type PlaceholderConfig struct {
	ProjectOverview string `yaml:"projectOverview"`
	Duration        string `yaml:"duration"`
	Pricing         string `yaml:"pricing"`
}

// LayoutConfig defines generated page options. Pointer booleans
// distinguish "unset" (use default true) from explicit false.
type LayoutConfig struct {
	IncludeTOC               *bool  `yaml:"includeTOC"`
	IncludeTitlePage         *bool  `yaml:"includeTitlePage"`
	IncludeInvestmentSummary *bool  `yaml:"includeInvestmentSummary"`
	PageSize                 string `yaml:"pageSize"`
}

// StylingConfig defines colors and fonts.
type StylingConfig struct {
	Colors ColorsConfig `yaml:"colors"`
	Fonts  FontsConfig  `yaml:"fonts"`
}

// ColorsConfig defines the rendered palette.
type ColorsConfig struct {
	Primary   string `yaml:"primary"`
	Secondary string `yaml:"secondary"`
	Accent    string `yaml:"accent"`
	Text      string `yaml:"text"`
}

// FontsConfig defines the rendered font stacks.
type FontsConfig struct {
	Heading string `yaml:"heading"`
	Body    string `yaml:"body"`
}

// DefaultConfig returns a neutral configuration.
func DefaultConfig() *Config {
	return &Config{}
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise it's searched in standard locations. Returns an error if the
// file is not found (no silent fallback).
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	var configPath string
	var err error

	if fileutil.IsFilePath(nameOrPath) {
		configPath = nameOrPath
	} else {
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var cfg Config
	if err := yamlutil.UnmarshalStrict(data, &cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}

	return &cfg, nil
}

// resolveConfigPath searches for a config file by name: current directory
// first, then the user config directory, trying .yaml then .yml.
func resolveConfigPath(name string) (string, error) {
	extensions := []string{".yaml", ".yml"}
	triedPaths := make([]string, 0, len(extensions)*2)

	for _, ext := range extensions {
		localPath := name + ext
		if fileutil.FileExists(localPath) {
			return localPath, nil
		}
		triedPaths = append(triedPaths, localPath)
	}

	userConfigDir, err := os.UserConfigDir()
	if err == nil {
		for _, ext := range extensions {
			userPath := filepath.Join(userConfigDir, configDirName, name+ext)
			if fileutil.FileExists(userPath) {
				return userPath, nil
			}
			triedPaths = append(triedPaths, userPath)
		}
	}

	return "", fmt.Errorf("%w: tried %v", ErrConfigNotFound, triedPaths)
}
