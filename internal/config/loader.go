package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Environment variables that override file configuration.
const (
	EnvDBPath   = "SWEEPER_DB"
	EnvSSHAddr  = "SWEEPER_SSH_ADDR"
	EnvHTTPAddr = "SWEEPER_HTTP_ADDR"
	EnvTheme    = "SWEEPER_THEME"
)

// Load loads the sweeper configuration and applies environment overrides.
// Search order: customPath -> ~/.sweeper/configs/sweeper.yaml -> ./configs/sweeper.yaml -> embedded default
// Fields missing from a file keep their default values.
func Load(customPath string) (SweeperConfig, error) {
	cfg, err := loadFile(customPath)
	if err != nil {
		return cfg, err
	}

	ApplyEnv(&cfg)

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func loadFile(customPath string) (SweeperConfig, error) {
	// Try custom path first
	if customPath != "" {
		cfg := DefaultSweeperConfig()
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("config: failed to read %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("config: failed to parse %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory, then the local configs directory
	for _, path := range []string{userConfigPath("sweeper.yaml"), filepath.Join("configs", "sweeper.yaml")} {
		if path == "" {
			continue
		}
		if data, err := os.ReadFile(path); err == nil {
			cfg := DefaultSweeperConfig()
			if err := yaml.Unmarshal(data, &cfg); err == nil {
				return cfg, nil
			}
		}
	}

	// Use embedded default YAML
	cfg := DefaultSweeperConfig()
	if err := yaml.Unmarshal(defaultSweeperYAML, &cfg); err != nil {
		return DefaultSweeperConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".sweeper", "configs", filename)
}

// LoadDotEnv loads variables from .env files into the process environment.
// Variables that are already set win. Missing files are not an error.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("config: failed to load %s: %w", f, err)
		}
	}
	return nil
}

// ApplyEnv overrides server and display settings from the environment.
func ApplyEnv(cfg *SweeperConfig) {
	cfg.Server.DBPath = getEnvWithDefault(EnvDBPath, cfg.Server.DBPath)
	cfg.Server.SSHAddr = getEnvWithDefault(EnvSSHAddr, cfg.Server.SSHAddr)
	cfg.Server.HTTPAddr = getEnvWithDefault(EnvHTTPAddr, cfg.Server.HTTPAddr)
	cfg.Display.Theme = getEnvWithDefault(EnvTheme, cfg.Display.Theme)
}

// getEnvWithDefault retrieves a non-empty environment variable or returns a default value.
func getEnvWithDefault(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists && strings.TrimSpace(value) != "" {
		return value
	}
	return defaultValue
}
