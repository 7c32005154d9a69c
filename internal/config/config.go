package config

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// Config is the persistent application configuration
type Config struct {
	// Document sources
	Documents DocumentConfig `json:"documents"`

	// UI Preferences
	UI UIConfig `json:"ui"`
}

// DocumentConfig controls where the games document comes from and how
// often it is refreshed.
type DocumentConfig struct {
	// URLs of games documents. Multiple documents are fetched concurrently
	// and merged by game id; the first URL wins on conflicts.
	URLs []string `json:"urls"`

	// RefreshMinutes between automatic re-fetches. 0 disables auto-refresh.
	RefreshMinutes int `json:"refresh_minutes"`

	// TimeoutSeconds for a single document fetch
	TimeoutSeconds int `json:"timeout_seconds"`

	// CachePath is the SQLite cache location. Empty means
	// ~/.gamewatch/gamewatch.db.
	CachePath string `json:"cache_path,omitempty"`
}

// UIConfig holds UI preferences
type UIConfig struct {
	Theme        string `json:"theme"`
	TickMs       int    `json:"tick_ms"`       // countdown redraw interval
	DefaultSort  string `json:"default_sort"`  // az, soonest, latest, daily_first
	HideReleased bool   `json:"hide_released"` // drop released/cancelled from the list
}

// DefaultConfig returns sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Documents: DocumentConfig{
			URLs:           []string{"https://gamewatch.pages.dev/games.json"},
			RefreshMinutes: 30,
			TimeoutSeconds: 15,
		},
		UI: UIConfig{
			Theme:        "dark",
			TickMs:       250,
			DefaultSort:  "soonest",
			HideReleased: true,
		},
	}
}

// ConfigPath returns the path to the config file
func ConfigPath() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".gamewatch", "config.json")
}

// Load reads config from disk, or returns defaults
func Load() (*Config, error) {
	path := ConfigPath()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg := DefaultConfig()
			cfg.applyEnv()
			return cfg, nil
		}
		return nil, err
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return DefaultConfig(), nil
	}

	cfg.fillDefaults()
	cfg.applyEnv()
	return &cfg, nil
}

// Save writes config to disk
func (c *Config) Save() error {
	path := ConfigPath()

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// applyEnv lets GAMEWATCH_DOC_URL override the document source, which is
// handy for pointing at a local file server during data authoring.
func (c *Config) applyEnv() {
	if url := os.Getenv("GAMEWATCH_DOC_URL"); url != "" {
		c.Documents.URLs = []string{url}
	}
}

// fillDefaults repairs zero values in hand-edited config files.
func (c *Config) fillDefaults() {
	def := DefaultConfig()
	if len(c.Documents.URLs) == 0 {
		c.Documents.URLs = def.Documents.URLs
	}
	if c.Documents.TimeoutSeconds <= 0 {
		c.Documents.TimeoutSeconds = def.Documents.TimeoutSeconds
	}
	if c.UI.TickMs <= 0 {
		c.UI.TickMs = def.UI.TickMs
	}
	if c.UI.DefaultSort == "" {
		c.UI.DefaultSort = def.UI.DefaultSort
	}
	if c.UI.Theme == "" {
		c.UI.Theme = def.UI.Theme
	}
}

// CachePath resolves the SQLite cache location.
func (c *Config) CachePath() (string, error) {
	if c.Documents.CachePath != "" {
		return c.Documents.CachePath, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".gamewatch", "gamewatch.db"), nil
}
