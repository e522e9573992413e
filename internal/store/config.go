package store

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	json "github.com/goccy/go-json"
)

const (
	CommitTargetTerminal = "terminal"
	CommitTargetBrowser  = "browser"

	DefaultWebAddr    = "127.0.0.1:3340"
	DefaultItemHeight = 3
)

type GlobalConfig struct {
	// Deck is the default deck path (YAML file or directory) when --deck is not given.
	Deck string `json:"deck,omitempty"`

	// ClickThresholdMs is the press duration under which a release toggles selection.
	// Zero means the built-in default (300ms).
	ClickThresholdMs int `json:"clickThresholdMs,omitempty"`

	// ItemHeight is the row height of setup cards in the terminal (borders included).
	ItemHeight int `json:"itemHeight,omitempty"`

	// WebAddr is the bind address of the browser presenter.
	WebAddr string `json:"webAddr,omitempty"`

	// Theme is a glamour standard style name ("dark", "light", "dracula", ...). Empty means
	// detect from the terminal background.
	Theme string `json:"theme,omitempty"`

	// CommitTarget selects where the setup screen opens the presentation: terminal|browser.
	CommitTarget string `json:"commitTarget,omitempty"`
}

func (c *GlobalConfig) ClickThreshold() time.Duration {
	if c == nil || c.ClickThresholdMs <= 0 {
		return 0
	}
	return time.Duration(c.ClickThresholdMs) * time.Millisecond
}

func (c *GlobalConfig) EffectiveItemHeight() int {
	if c == nil || c.ItemHeight <= 0 {
		return DefaultItemHeight
	}
	return c.ItemHeight
}

func (c *GlobalConfig) EffectiveWebAddr() string {
	if c == nil || strings.TrimSpace(c.WebAddr) == "" {
		return DefaultWebAddr
	}
	return strings.TrimSpace(c.WebAddr)
}

func (c *GlobalConfig) EffectiveCommitTarget() string {
	if c == nil {
		return CommitTargetTerminal
	}
	switch strings.ToLower(strings.TrimSpace(c.CommitTarget)) {
	case CommitTargetBrowser:
		return CommitTargetBrowser
	default:
		return CommitTargetTerminal
	}
}

// Validate rejects values that would make the setup screen unusable.
func (c *GlobalConfig) Validate() error {
	if c.ClickThresholdMs < 0 {
		return fmt.Errorf("config: clickThresholdMs must not be negative (got %d)", c.ClickThresholdMs)
	}
	if c.ItemHeight < 0 {
		return fmt.Errorf("config: itemHeight must not be negative (got %d)", c.ItemHeight)
	}
	switch strings.ToLower(strings.TrimSpace(c.CommitTarget)) {
	case "", CommitTargetTerminal, CommitTargetBrowser:
	default:
		return fmt.Errorf("config: unknown commitTarget %q (terminal|browser)", c.CommitTarget)
	}
	return nil
}

func ConfigDir() (string, error) {
	// Test/advanced override (keeps unit tests from touching ~/.vigil).
	if v := strings.TrimSpace(os.Getenv("VIGIL_CONFIG_DIR")); v != "" {
		return v, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".vigil"), nil
}

func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

func LoadConfig() (*GlobalConfig, error) {
	path, err := ConfigPath()
	if err != nil {
		return nil, err
	}
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &GlobalConfig{}, nil
		}
		return nil, err
	}
	var cfg GlobalConfig
	if err := json.Unmarshal(b, &cfg); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func atomicWriteFile(dir, tmpPattern, path string, b []byte, perm os.FileMode) error {
	f, err := os.CreateTemp(dir, tmpPattern)
	if err != nil {
		return err
	}
	tmp := f.Name()
	defer func() { _ = os.Remove(tmp) }()
	if _, err := f.Write(b); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	_ = os.Chmod(tmp, perm)
	return os.Rename(tmp, path)
}

func SaveConfig(cfg *GlobalConfig) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	b, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}

	// Keep the previous config around as config.json.bak; failures here never block the save.
	if prev, err := os.ReadFile(path); err == nil && len(prev) > 0 {
		_ = atomicWriteFile(dir, "config.json.bak.*.tmp", path+".bak", prev, 0o644)
	}
	return atomicWriteFile(dir, "config.json.*.tmp", path, b, 0o600)
}
