// Package config loads hnbar's configuration.
//
// The file is YAML, read from --config, $HNBAR_CONFIG or
// ~/.hnbar/config.yaml in that order. A missing default file means defaults;
// a missing file that was asked for explicitly is an error. Command-line
// flags override the file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/abelbrown/hnbar/internal/state"
	"github.com/charmbracelet/log"
	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"
)

// Config is the application configuration.
type Config struct {
	// DataDir holds the database, logs and the event journal.
	DataDir string `yaml:"data_dir"`

	// ScoreLimit is the starting score filter when none has been saved.
	ScoreLimit int `yaml:"score_limit"`

	// PageSize is how many stories one scroll to the end loads.
	PageSize int `yaml:"page_size"`

	// RefreshInterval is how often the ranking and scores are refreshed.
	// Zero disables background refresh.
	RefreshInterval time.Duration `yaml:"refresh_interval"`

	// ReadRetention is how long read markers are kept.
	ReadRetention time.Duration `yaml:"read_retention"`

	LogLevel string `yaml:"log_level"`

	// Browser overrides the platform browser command. The URL is appended.
	Browser []string `yaml:"browser,omitempty"`

	AltScreen bool `yaml:"alt_screen"`

	API APIConfig `yaml:"api"`
}

// APIConfig configures the Hacker News client.
type APIConfig struct {
	BaseURL           string        `yaml:"base_url"`
	Timeout           time.Duration `yaml:"timeout"`
	RequestsPerSecond float64       `yaml:"requests_per_second"`
	MaxConcurrent     int           `yaml:"max_concurrent"`
}

// Default returns the built-in configuration.
func Default() *Config {
	home, _ := os.UserHomeDir()
	return &Config{
		DataDir:         filepath.Join(home, ".hnbar"),
		ScoreLimit:      state.DefaultFilter().ScoreLimit,
		PageSize:        30,
		RefreshInterval: 5 * time.Minute,
		ReadRetention:   30 * 24 * time.Hour,
		LogLevel:        "info",
		AltScreen:       true,
		API: APIConfig{
			BaseURL:           "https://hacker-news.firebaseio.com/v0",
			Timeout:           15 * time.Second,
			RequestsPerSecond: 10,
			MaxConcurrent:     8,
		},
	}
}

// DefaultPath is ~/.hnbar/config.yaml.
func DefaultPath() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".hnbar", "config.yaml")
}

// Load reads the config at path. An empty path means $HNBAR_CONFIG, then
// DefaultPath. $HNBAR_DATA_DIR overrides data_dir.
func Load(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		if env := os.Getenv("HNBAR_CONFIG"); env != "" {
			path, explicit = env, true
		} else {
			path = DefaultPath()
		}
	}

	cfg, err := LoadFile(path)
	if errors.Is(err, os.ErrNotExist) && !explicit {
		cfg, err = Default(), nil
	}
	if err != nil {
		return nil, err
	}

	if dir := os.Getenv("HNBAR_DATA_DIR"); dir != "" {
		cfg.DataDir = dir
	}
	return cfg, nil
}

// LoadFile reads a single YAML file on top of the defaults.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	cfg.DataDir = expandHome(cfg.DataDir)
	return cfg, nil
}

// Flags holds the command-line overrides.
type Flags struct {
	ConfigPath  string
	DataDir     string
	ScoreLimit  int
	LogLevel    string
	NoAltScreen bool
	Trace       bool
	Version     bool
}

// Register defines the hnbar flags on fs.
func (f *Flags) Register(fs *pflag.FlagSet) {
	fs.StringVarP(&f.ConfigPath, "config", "c", "", "config file (default $HNBAR_CONFIG or ~/.hnbar/config.yaml)")
	fs.StringVar(&f.DataDir, "data-dir", "", "directory for the database, logs and journal")
	fs.IntVarP(&f.ScoreLimit, "score-limit", "s", 0, "minimum score for top stories, overriding the saved one")
	fs.StringVar(&f.LogLevel, "log-level", "", "log level: debug, info, warn or error")
	fs.BoolVar(&f.NoAltScreen, "no-alt-screen", false, "draw inline instead of on the alternate screen")
	fs.BoolVar(&f.Trace, "trace", false, "journal every dispatched action")
	fs.BoolVarP(&f.Version, "version", "v", false, "print version and exit")
}

// Apply copies the flags that were set on fs into c.
func (c *Config) Apply(f Flags, fs *pflag.FlagSet) {
	if fs.Changed("data-dir") {
		c.DataDir = expandHome(f.DataDir)
	}
	if fs.Changed("score-limit") {
		c.ScoreLimit = f.ScoreLimit
	}
	if fs.Changed("log-level") {
		c.LogLevel = f.LogLevel
	}
	if f.NoAltScreen {
		c.AltScreen = false
	}
}

// Validate reports every invalid field.
func (c *Config) Validate() error {
	var errs []error

	if c.DataDir == "" {
		errs = append(errs, errors.New("data_dir is required"))
	}
	if c.ScoreLimit < state.MinScoreLimit || c.ScoreLimit > state.MaxScoreLimit {
		errs = append(errs, fmt.Errorf("score_limit must be between %d and %d, got %d",
			state.MinScoreLimit, state.MaxScoreLimit, c.ScoreLimit))
	}
	if c.PageSize < 1 || c.PageSize > 500 {
		errs = append(errs, fmt.Errorf("page_size must be between 1 and 500, got %d", c.PageSize))
	}
	if c.RefreshInterval != 0 && c.RefreshInterval < 30*time.Second {
		errs = append(errs, fmt.Errorf("refresh_interval must be 0 or at least 30s, got %s", c.RefreshInterval))
	}
	if c.ReadRetention < 0 {
		errs = append(errs, fmt.Errorf("read_retention must not be negative, got %s", c.ReadRetention))
	}
	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		errs = append(errs, fmt.Errorf("log_level: %w", err))
	}
	if len(c.Browser) > 0 && strings.TrimSpace(c.Browser[0]) == "" {
		errs = append(errs, errors.New("browser command must not be empty"))
	}
	if !strings.HasPrefix(c.API.BaseURL, "http://") && !strings.HasPrefix(c.API.BaseURL, "https://") {
		errs = append(errs, fmt.Errorf("api.base_url must be an http(s) URL, got %q", c.API.BaseURL))
	}
	if c.API.Timeout <= 0 {
		errs = append(errs, errors.New("api.timeout must be positive"))
	}
	if c.API.RequestsPerSecond <= 0 {
		errs = append(errs, errors.New("api.requests_per_second must be positive"))
	}
	if c.API.MaxConcurrent < 1 {
		errs = append(errs, errors.New("api.max_concurrent must be at least 1"))
	}

	return errors.Join(errs...)
}

// DatabasePath is the SQLite file inside DataDir.
func (c *Config) DatabasePath() string { return filepath.Join(c.DataDir, "hnbar.db") }

// LogDir is where daily log files go.
func (c *Config) LogDir() string { return filepath.Join(c.DataDir, "logs") }

// JournalPath is the JSONL event journal.
func (c *Config) JournalPath() string { return filepath.Join(c.DataDir, "events.jsonl") }

// EnsureDirs creates DataDir and LogDir.
func (c *Config) EnsureDirs() error {
	for _, dir := range []string{c.DataDir, c.LogDir()} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create %s: %w", dir, err)
		}
	}
	return nil
}

func expandHome(p string) string {
	if p == "~" || strings.HasPrefix(p, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, strings.TrimPrefix(p, "~"))
		}
	}
	return p
}
