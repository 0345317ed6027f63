package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// Config holds everything meetsync needs to find the recording cache
// and the memory root, plus the timing knobs for the daemon drivers.
type Config struct {
	CachePath        string
	MemoryRoot       string
	UserEmail        string
	OrgDomain        string
	SyncDelayMinutes int // wait this long after a meeting ends before syncing
	CooldownSeconds  int // minimum gap between watcher-triggered syncs
	SettleSeconds    int // wait after a cache change before re-reading
}

type fileConfig struct {
	CachePath        string `toml:"cache_path"`
	MemoryRoot       string `toml:"memory_root"`
	UserEmail        string `toml:"user_email"`
	OrgDomain        string `toml:"org_domain"`
	SyncDelayMinutes int    `toml:"sync_delay_minutes"`
	CooldownSeconds  int    `toml:"cooldown_seconds"`
	SettleSeconds    int    `toml:"settle_seconds"`
}

// Load reads the TOML config file if present, applies environment
// overrides, and fills in defaults for anything unset.
func Load() (*Config, error) {
	cfg := &Config{
		CachePath:        defaultCachePath(),
		MemoryRoot:       defaultMemoryRoot(),
		SyncDelayMinutes: 3,
		CooldownSeconds:  10,
		SettleSeconds:    2,
	}

	if configPath := FilePath(); configPath != "" {
		var fc fileConfig
		if _, err := toml.DecodeFile(configPath, &fc); err == nil {
			if fc.CachePath != "" {
				cfg.CachePath = expandTilde(fc.CachePath)
			}
			if fc.MemoryRoot != "" {
				cfg.MemoryRoot = expandTilde(fc.MemoryRoot)
			}
			if fc.UserEmail != "" {
				cfg.UserEmail = fc.UserEmail
			}
			if fc.OrgDomain != "" {
				cfg.OrgDomain = fc.OrgDomain
			}
			if fc.SyncDelayMinutes > 0 {
				cfg.SyncDelayMinutes = fc.SyncDelayMinutes
			}
			if fc.CooldownSeconds > 0 {
				cfg.CooldownSeconds = fc.CooldownSeconds
			}
			if fc.SettleSeconds > 0 {
				cfg.SettleSeconds = fc.SettleSeconds
			}
		}
	}

	applyEnvOverrides(cfg)

	// Derive the org domain from the user email when not set explicitly.
	if cfg.OrgDomain == "" && strings.Contains(cfg.UserEmail, "@") {
		cfg.OrgDomain = strings.ToLower(cfg.UserEmail[strings.Index(cfg.UserEmail, "@")+1:])
	}

	if err := os.MkdirAll(cfg.MemoryRoot, 0o755); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Save writes the config to the default config file path, creating the
// directory if needed.
func Save(cfg *Config) (string, error) {
	dir := configDir()
	if dir == "" {
		return "", fmt.Errorf("could not determine config directory")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}

	path := filepath.Join(dir, "config.toml")
	f, err := os.Create(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	fc := fileConfig{
		CachePath:        cfg.CachePath,
		MemoryRoot:       cfg.MemoryRoot,
		UserEmail:        cfg.UserEmail,
		OrgDomain:        cfg.OrgDomain,
		SyncDelayMinutes: cfg.SyncDelayMinutes,
		CooldownSeconds:  cfg.CooldownSeconds,
		SettleSeconds:    cfg.SettleSeconds,
	}
	if err := toml.NewEncoder(f).Encode(fc); err != nil {
		return "", err
	}
	return path, nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("MEETSYNC_CACHE_PATH"); v != "" {
		cfg.CachePath = expandTilde(v)
	}
	if v := os.Getenv("MEETSYNC_MEMORY_ROOT"); v != "" {
		cfg.MemoryRoot = expandTilde(v)
	}
	if v := os.Getenv("MEETSYNC_USER_EMAIL"); v != "" {
		cfg.UserEmail = v
	}
	if v := os.Getenv("MEETSYNC_ORG_DOMAIN"); v != "" {
		cfg.OrgDomain = v
	}
}

// FilePath returns the config file path if the file exists, "" otherwise.
func FilePath() string {
	dir := configDir()
	if dir == "" {
		return ""
	}
	path := filepath.Join(dir, "config.toml")
	if _, err := os.Stat(path); err == nil {
		return path
	}
	return ""
}

func configDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "meetsync")
	}
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, ".config", "meetsync")
	}
	return ""
}

func defaultCachePath() string {
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, "Library", "Application Support", "Granola", "cache-v3.json")
	}
	return "cache-v3.json"
}

func defaultMemoryRoot() string {
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, "Documents", "WorkMemory")
	}
	return filepath.Join(".", "WorkMemory")
}

func expandTilde(path string) string {
	if strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[2:])
		}
	}
	return path
}
