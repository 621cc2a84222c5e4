package adapter

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	Catalog CatalogConfig `mapstructure:"catalog"`
	Storage StorageConfig `mapstructure:"storage"`
	UI      UIConfig      `mapstructure:"ui"`
	Trailer TrailerConfig `mapstructure:"trailer"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// CatalogConfig holds TMDB API configuration
type CatalogConfig struct {
	BaseURL      string `mapstructure:"base_url"`
	APIKey       string `mapstructure:"api_key"`
	ImageBaseURL string `mapstructure:"image_base_url"`
	Language     string `mapstructure:"language"` // e.g. "en-US"; empty for the API default
}

// StorageConfig holds the preferences database location
type StorageConfig struct {
	Path string `mapstructure:"path"`
}

// UIConfig holds UI configuration
type UIConfig struct {
	DefaultTheme string `mapstructure:"default_theme"` // "light" or "dark"
}

// TrailerConfig holds the program used to open trailer and homepage URLs
type TrailerConfig struct {
	Command string   `mapstructure:"command"` // empty for a detected player or the system opener
	Args    []string `mapstructure:"args"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	File  string `mapstructure:"file"`
	Level string `mapstructure:"level"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Catalog: CatalogConfig{
			BaseURL:      "https://api.themoviedb.org/3",
			ImageBaseURL: "https://image.tmdb.org/t/p",
		},
		Storage: StorageConfig{
			Path: filepath.Join(defaultDataPath(), "reel.db"),
		},
		UI: UIConfig{
			DefaultTheme: "dark",
		},
		Trailer: TrailerConfig{
			Args: []string{},
		},
		Logging: LoggingConfig{
			File:  filepath.Join(defaultDataPath(), "reel.log"),
			Level: "INFO",
		},
	}
}

// defaultDataPath returns the default data directory for the current OS
func defaultDataPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "reel")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".local", "share", "reel")
	}
}

// defaultConfigPath returns the default config directory for the current OS
func defaultConfigPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "reel")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", "reel")
	}
}

// ConfigFilePath returns where SaveConfig writes.
func ConfigFilePath() string {
	return filepath.Join(defaultConfigPath(), "config.yaml")
}

// setDefaults registers every key so environment overrides reach Unmarshal
func setDefaults(cfg *Config) {
	viper.SetDefault("catalog.base_url", cfg.Catalog.BaseURL)
	viper.SetDefault("catalog.api_key", cfg.Catalog.APIKey)
	viper.SetDefault("catalog.image_base_url", cfg.Catalog.ImageBaseURL)
	viper.SetDefault("catalog.language", cfg.Catalog.Language)
	viper.SetDefault("storage.path", cfg.Storage.Path)
	viper.SetDefault("ui.default_theme", cfg.UI.DefaultTheme)
	viper.SetDefault("trailer.command", cfg.Trailer.Command)
	viper.SetDefault("trailer.args", cfg.Trailer.Args)
	viper.SetDefault("logging.file", cfg.Logging.File)
	viper.SetDefault("logging.level", cfg.Logging.Level)
}

// LoadConfig loads configuration from .env, the config file and environment.
// REEL_CATALOG_API_KEY overrides catalog.api_key, and so on.
func LoadConfig() (*Config, error) {
	// .env only fills variables that are not already set
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("error reading .env file: %w", err)
	}

	cfg := DefaultConfig()
	setDefaults(cfg)

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(defaultConfigPath())
	viper.AddConfigPath(".")

	// Environment variable overrides
	viper.SetEnvPrefix("REEL")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// Read config file if it exists
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found is OK, use defaults
	}

	if err := viper.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("error parsing config: %w", err)
	}

	cfg.Storage.Path = ExpandPath(cfg.Storage.Path)
	cfg.Logging.File = ExpandPath(cfg.Logging.File)
	return cfg, nil
}

// SaveConfig saves the configuration to the default config file
func SaveConfig(cfg *Config) error {
	// Set fields individually to ensure correct key names (snake_case)
	viper.Set("catalog.base_url", cfg.Catalog.BaseURL)
	viper.Set("catalog.api_key", cfg.Catalog.APIKey)
	viper.Set("catalog.image_base_url", cfg.Catalog.ImageBaseURL)
	viper.Set("catalog.language", cfg.Catalog.Language)

	viper.Set("storage.path", cfg.Storage.Path)

	viper.Set("ui.default_theme", cfg.UI.DefaultTheme)

	viper.Set("trailer.command", cfg.Trailer.Command)
	viper.Set("trailer.args", cfg.Trailer.Args)

	viper.Set("logging.file", cfg.Logging.File)
	viper.Set("logging.level", cfg.Logging.Level)

	return writeConfig()
}

// SaveAPIKey updates just the catalog API key in the configuration
func SaveAPIKey(apiKey string) error {
	viper.Set("catalog.api_key", strings.TrimSpace(apiKey))
	return writeConfig()
}

func writeConfig() error {
	configPath := defaultConfigPath()

	// Ensure config directory exists
	if err := os.MkdirAll(configPath, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if err := viper.WriteConfigAs(ConfigFilePath()); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// IsConfigured returns true if a catalog API key is set
func (c *Config) IsConfigured() bool {
	return strings.TrimSpace(c.Catalog.APIKey) != ""
}

// ExpandPath replaces a leading ~ with the user's home directory.
func ExpandPath(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[1:])
}
