package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// LoadPortal loads the portal configuration.
// Search order: customPath -> ~/.arcade/configs/portal.yaml -> ./configs/portal.yaml -> embedded default.
// Environment overrides (ARCADE_*) are applied on top, then the result is validated.
func LoadPortal(customPath string) (PortalConfig, error) {
	cfg := DefaultPortalConfig()

	switch {
	case customPath != "":
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
	case loadFile(userConfigPath("portal.yaml"), &cfg):
	case loadFile(filepath.Join("configs", "portal.yaml"), &cfg):
	default:
		if err := yaml.Unmarshal(defaultPortalYAML, &cfg); err != nil {
			cfg = DefaultPortalConfig() // Fallback to hardcoded if embed fails
		}
	}

	if err := ApplyEnv(&cfg); err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// loadFile decodes path into cfg, reporting whether it was used.
// Unreadable or malformed files are skipped so the next source can apply.
func loadFile(path string, cfg *PortalConfig) bool {
	if path == "" {
		return false
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return false
	}
	candidate := *cfg
	if err := yaml.Unmarshal(data, &candidate); err != nil {
		return false
	}
	*cfg = candidate
	return true
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".arcade", "configs", filename)
}

// LoadDotEnv loads environment files (".env" when none are given).
// Missing files are not an error.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("failed to load env file %s: %w", f, err)
		}
	}
	return nil
}

// ApplyEnv overrides cfg from ARCADE_* environment variables.
func ApplyEnv(cfg *PortalConfig) error {
	if v := os.Getenv("ARCADE_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("ARCADE_DB_DRIVER"); v != "" {
		cfg.Storage.Driver = v
	}
	if v := os.Getenv("ARCADE_DB_PATH"); v != "" {
		cfg.Storage.Path = v
	}
	if v := os.Getenv("ARCADE_DB_DSN"); v != "" {
		cfg.Storage.DSN = v
	}
	if v := os.Getenv("ARCADE_SSH_ADDR"); v != "" {
		cfg.Server.SSHAddr = v
	}
	if v := os.Getenv("ARCADE_HTTP_ADDR"); v != "" {
		cfg.Server.HTTPAddr = v
	}
	if v := os.Getenv("ARCADE_TOP_N"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("config: invalid ARCADE_TOP_N %q: %w", v, err)
		}
		cfg.Leaderboard.TopN = n
	}
	if v := os.Getenv("ARCADE_ADMINS"); v != "" {
		var admins []string
		for _, name := range strings.Split(v, ",") {
			if name = strings.TrimSpace(name); name != "" {
				admins = append(admins, name)
			}
		}
		cfg.Admins = admins
	}
	return nil
}
