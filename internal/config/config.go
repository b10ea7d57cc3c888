package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/arcanaland/cardconv/internal/table"
)

// ErrNoConfigDir is returned when neither XDG_CONFIG_HOME nor a home
// directory is available for the config file
var ErrNoConfigDir = errors.New("no config directory: set XDG_CONFIG_HOME or HOME")

// Config represents the application configuration
type Config struct {
	OutputFile  string   `toml:"output_file"`
	Format      string   `toml:"format"`
	TextColumns []string `toml:"text_columns"`
	NAValues    []string `toml:"na_values"`
	LogLevel    string   `toml:"log_level"`
	ImageDir    string   `toml:"image_dir"`
}

// Default returns the built-in settings
func Default() *Config {
	return &Config{
		OutputFile:  "output.json",
		Format:      "json",
		TextColumns: []string{"ID"},
		NAValues:    []string{},
		LogLevel:    "info",
	}
}

// TableOptions returns the reader options derived from the config
func (c *Config) TableOptions() table.Options {
	return table.Options{
		TextColumns: c.TextColumns,
		NAValues:    c.NAValues,
	}
}

// GetXDGConfigHome returns XDG_CONFIG_HOME or default path
func GetXDGConfigHome() string {
	if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
		return xdgConfig
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(homeDir, ".config")
}

// GetConfigFilePath returns the path to the config file, or "" when no
// config home can be determined
func GetConfigFilePath() string {
	configHome := GetXDGConfigHome()
	if configHome == "" {
		return ""
	}
	return filepath.Join(configHome, "cardconv", "config.toml")
}

// LoadConfig loads the config file. A missing file gives the defaults and
// is not created.
func LoadConfig() (*Config, error) {
	configPath := GetConfigFilePath()
	if configPath == "" {
		return Default(), nil
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return Default(), nil
	} else if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	config := Default()
	if _, err := toml.DecodeFile(configPath, config); err != nil {
		return nil, fmt.Errorf("error decoding config file: %w", err)
	}

	return config, nil
}

// InitConfig loads the config file, writing the defaults first if it does
// not exist yet
func InitConfig() (*Config, error) {
	configPath := GetConfigFilePath()
	if configPath == "" {
		return nil, ErrNoConfigDir
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		config := Default()
		if err := save(config); err != nil {
			return nil, err
		}
		return config, nil
	}

	return LoadConfig()
}

// SetValue updates one key in the config file. List keys take a
// comma-separated value.
func SetValue(key, value string) error {
	config, err := LoadConfig()
	if err != nil {
		return err
	}

	switch key {
	case "output_file":
		config.OutputFile = value
	case "format":
		config.Format = value
	case "log_level":
		config.LogLevel = value
	case "image_dir":
		config.ImageDir = value
	case "text_columns":
		config.TextColumns = splitList(value)
	case "na_values":
		config.NAValues = splitList(value)
	default:
		return fmt.Errorf("unknown config key: %s", key)
	}

	return save(config)
}

// Encode renders the config as TOML
func (c *Config) Encode() (string, error) {
	var sb strings.Builder
	if err := toml.NewEncoder(&sb).Encode(c); err != nil {
		return "", fmt.Errorf("error encoding config: %w", err)
	}
	return sb.String(), nil
}

func save(config *Config) error {
	configPath := GetConfigFilePath()
	if configPath == "" {
		return ErrNoConfigDir
	}

	// Ensure the config directory exists
	if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
		return fmt.Errorf("error creating config directory: %w", err)
	}

	file, err := os.Create(configPath)
	if err != nil {
		return fmt.Errorf("error creating config file: %w", err)
	}
	defer file.Close()

	encoder := toml.NewEncoder(file)
	if err := encoder.Encode(config); err != nil {
		return fmt.Errorf("error encoding config: %w", err)
	}

	return nil
}

func splitList(value string) []string {
	if value == "" {
		return []string{}
	}
	return strings.Split(value, ",")
}
