package config

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
)

// Config holds user-configurable defaults. Flags override these at runtime.
type Config struct {
	IntervalSec int    `json:"interval_sec"` // watch/tui refresh interval
	NoColor     bool   `json:"no_color"`
	ShowArgs    bool   `json:"show_args"`
	Source      string `json:"source"`     // snapshot provider: auto, gopsutil, ps, proc
	NameWidth   int    `json:"name_width"` // name column width in the text report
}

// Default returns a config with sensible defaults.
func Default() Config {
	return Config{
		IntervalSec: 2,
		NoColor:     false,
		ShowArgs:    false,
		Source:      "auto",
		NameWidth:   40,
	}
}

// Path returns ~/.config/memtree/config.json (or XDG_CONFIG_HOME).
// Returns empty string if home directory cannot be determined.
func Path() string {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "" // refuse to fall back to /tmp (security risk)
		}
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, "memtree", "config.json")
}

// Load loads config from disk; returns defaults on error.
func Load() Config {
	cfg := Default()
	p := Path()
	if p == "" {
		return cfg
	}
	data, err := os.ReadFile(p)
	if err != nil {
		return cfg
	}
	if err := json.Unmarshal(data, &cfg); err != nil {
		log.Printf("memtree: warning: config parse error: %v", err)
	}
	return cfg
}

// Save writes the config to disk.
func Save(cfg Config) error {
	path := Path()
	if path == "" {
		return fmt.Errorf("cannot determine config directory")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return err
	}
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0600)
}
