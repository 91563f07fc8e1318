package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/justyntemme/sanpustaka-t/internal/api"
)

const (
	configDirName  = "sanpustaka-t"
	configFileName = "config.yml"
	envPrefix      = "SANPUSTAKA"

	// DefaultInitialQuery is searched once at startup
	DefaultInitialQuery = "buku terlaris 2024"
	// DefaultHomeQuery is searched by the home action
	DefaultHomeQuery = "Best seller"

	// MaxResultsLimit is the largest page the volume API serves
	MaxResultsLimit = 40
)

// DefaultCategories are the quick search chips
var DefaultCategories = []string{"Novel", "Teknologi", "Sejarah", "Bisnis", "Sains", "Manga", "Psikologi"}

// Config holds the application configuration
type Config struct {
	Endpoint       string        `mapstructure:"endpoint" yaml:"endpoint"`
	MaxResults     int           `mapstructure:"max_results" yaml:"max_results"`
	InitialQuery   string        `mapstructure:"initial_query" yaml:"initial_query"`
	HomeQuery      string        `mapstructure:"home_query" yaml:"home_query"`
	RequestTimeout time.Duration `mapstructure:"request_timeout" yaml:"request_timeout"`
	LogFile        string        `mapstructure:"log_file" yaml:"log_file,omitempty"`
	Categories     []string      `mapstructure:"categories" yaml:"categories"`

	// Path to config file (not persisted)
	path string
}

// DefaultPath returns the default config file path
func DefaultPath() string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		// Fallback to home directory
		home, _ := os.UserHomeDir()
		configDir = filepath.Join(home, ".config")
	}
	return filepath.Join(configDir, configDirName, configFileName)
}

// Default returns a configuration with every default applied
func Default() *Config {
	return &Config{
		Endpoint:     api.DefaultEndpoint,
		MaxResults:   api.DefaultMaxResults,
		InitialQuery: DefaultInitialQuery,
		HomeQuery:    DefaultHomeQuery,
		Categories:   append([]string(nil), DefaultCategories...),
		path:         DefaultPath(),
	}
}

// Load reads the config file at path, then SANPUSTAKA_* environment
// overrides. An empty path falls back to SANPUSTAKA_CONFIG and then to
// DefaultPath. A missing file yields the defaults.
func Load(path string) (*Config, error) {
	v := viper.New()

	def := Default()
	v.SetDefault("endpoint", def.Endpoint)
	v.SetDefault("max_results", def.MaxResults)
	v.SetDefault("initial_query", def.InitialQuery)
	v.SetDefault("home_query", def.HomeQuery)
	v.SetDefault("request_timeout", time.Duration(0))
	v.SetDefault("log_file", "")
	v.SetDefault("categories", def.Categories)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if strings.TrimSpace(path) == "" {
		path = os.Getenv(envPrefix + "_CONFIG")
	}
	if strings.TrimSpace(path) == "" {
		path = DefaultPath()
	}
	path = ExpandHome(path)
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.Is(err, os.ErrNotExist) && !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	cfg.path = path
	cfg.normalize()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks values that cannot be repaired silently
func (c *Config) Validate() error {
	if c.RequestTimeout < 0 {
		return fmt.Errorf("request_timeout must not be negative, got %s", c.RequestTimeout)
	}
	if c.MaxResults < 1 || c.MaxResults > MaxResultsLimit {
		return fmt.Errorf("max_results must be between 1 and %d, got %d", MaxResultsLimit, c.MaxResults)
	}
	return nil
}

// Path returns the file the config was loaded from
func (c *Config) Path() string {
	return c.path
}

// Save persists the configuration to its path
func (c *Config) Save() error {
	path := c.path
	if path == "" {
		path = DefaultPath()
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create config: %w", err)
	}
	defer func() { _ = f.Close() }()

	enc := yaml.NewEncoder(f)
	enc.SetIndent(2)
	if err := enc.Encode(c); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return enc.Close()
}

// ExpandHome expands a leading ~/ in a path.
func ExpandHome(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, _ := os.UserHomeDir()
		return filepath.Join(home, path[2:])
	}
	return path
}

func (c *Config) normalize() {
	c.Endpoint = strings.TrimSpace(c.Endpoint)
	if c.Endpoint == "" {
		c.Endpoint = api.DefaultEndpoint
	}
	if strings.TrimSpace(c.InitialQuery) == "" {
		c.InitialQuery = DefaultInitialQuery
	}
	if strings.TrimSpace(c.HomeQuery) == "" {
		c.HomeQuery = DefaultHomeQuery
	}
	if c.MaxResults == 0 {
		c.MaxResults = api.DefaultMaxResults
	}
	c.LogFile = ExpandHome(strings.TrimSpace(c.LogFile))

	cats := make([]string, 0, len(c.Categories))
	for _, name := range c.Categories {
		if name = strings.TrimSpace(name); name != "" {
			cats = append(cats, name)
		}
	}
	if len(cats) == 0 {
		cats = append(cats, DefaultCategories...)
	}
	c.Categories = cats
}
