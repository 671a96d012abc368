// Package config provides centralized configuration management using Viper.
package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Defaults shared by Load and the setup command.
const (
	DefaultAPIURL        = "http://localhost:8787"
	DefaultRegisterPath  = "/api/auth/register"
	DefaultAPITimeout    = "10s"
	DefaultLandingRoute  = "/"
	DefaultRedirectDelay = "2s"
	DefaultDataDir       = ".onboard"
	DefaultMockAPIAddr   = "127.0.0.1:8787"
	DefaultMCPAddr       = "127.0.0.1:8788"
)

// Config holds all configuration values for onboard.
type Config struct {
	APIURL        string `mapstructure:"api_url" yaml:"api_url"`
	RegisterPath  string `mapstructure:"register_path" yaml:"register_path"`
	APITimeout    string `mapstructure:"api_timeout" yaml:"api_timeout"`
	AppURL        string `mapstructure:"app_url" yaml:"app_url"`
	LandingRoute  string `mapstructure:"landing_route" yaml:"landing_route"`
	RedirectDelay string `mapstructure:"redirect_delay" yaml:"redirect_delay"`
	LogLevel      string `mapstructure:"log_level" yaml:"log_level"`
	LogFile       string `mapstructure:"log_file" yaml:"log_file"`
	DataDir       string `mapstructure:"data_dir" yaml:"data_dir"`
	InviteOutbox  bool   `mapstructure:"invite_outbox" yaml:"invite_outbox"`
	MockAPIAddr   string `mapstructure:"mock_api_addr" yaml:"mock_api_addr"`
	MCPAddr       string `mapstructure:"mcp_addr" yaml:"mcp_addr"`
}

// keys lists every config key; each is bound to ONBOARD_<KEY>.
var keys = []string{
	"api_url",
	"register_path",
	"api_timeout",
	"app_url",
	"landing_route",
	"redirect_delay",
	"log_level",
	"log_file",
	"data_dir",
	"invite_outbox",
	"mock_api_addr",
	"mcp_addr",
}

// Default returns a config populated with default values.
func Default() *Config {
	return &Config{
		APIURL:        DefaultAPIURL,
		RegisterPath:  DefaultRegisterPath,
		APITimeout:    DefaultAPITimeout,
		LandingRoute:  DefaultLandingRoute,
		RedirectDelay: DefaultRedirectDelay,
		LogLevel:      "info",
		DataDir:       DefaultDataDir,
		MockAPIAddr:   DefaultMockAPIAddr,
		MCPAddr:       DefaultMCPAddr,
	}
}

// Load loads configuration with full precedence:
// CLI flags > ENV vars > project config > XDG global config > defaults
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetConfigName("onboard")

	d := Default()
	v.SetDefault("api_url", d.APIURL)
	v.SetDefault("register_path", d.RegisterPath)
	v.SetDefault("api_timeout", d.APITimeout)
	v.SetDefault("app_url", "")
	v.SetDefault("landing_route", d.LandingRoute)
	v.SetDefault("redirect_delay", d.RedirectDelay)
	v.SetDefault("log_level", d.LogLevel)
	v.SetDefault("log_file", "")
	v.SetDefault("data_dir", d.DataDir)
	v.SetDefault("invite_outbox", false)
	v.SetDefault("mock_api_addr", d.MockAPIAddr)
	v.SetDefault("mcp_addr", d.MCPAddr)

	// Setup ENV binding with ONBOARD_ prefix
	v.SetEnvPrefix("ONBOARD")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	for _, key := range keys {
		if err := v.BindEnv(key, "ONBOARD_"+strings.ToUpper(key)); err != nil {
			return nil, fmt.Errorf("binding %s env: %w", key, err)
		}
	}

	// Load global config first (if exists)
	globalPath := GlobalPath()
	if fileExists(globalPath) {
		v.SetConfigFile(globalPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading global config: %w", err)
		}
	}

	// Merge project config on top (if exists)
	projectPath := ProjectPath()
	if fileExists(projectPath) {
		v.SetConfigFile(projectPath)
		if err := v.MergeInConfig(); err != nil {
			return nil, fmt.Errorf("merging project config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks values that would otherwise fail at first use.
func (c *Config) Validate() error {
	u, err := url.Parse(c.APIURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("invalid api_url %q", c.APIURL)
	}
	if !strings.HasPrefix(c.RegisterPath, "/") {
		return fmt.Errorf("register_path must start with /: %q", c.RegisterPath)
	}
	if _, err := c.Timeout(); err != nil {
		return err
	}
	if _, err := c.Delay(); err != nil {
		return err
	}
	return nil
}

// Timeout parses api_timeout.
func (c *Config) Timeout() (time.Duration, error) {
	d, err := time.ParseDuration(c.APITimeout)
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("invalid api_timeout %q", c.APITimeout)
	}
	return d, nil
}

// Delay parses redirect_delay. Zero is allowed and means "use the default".
func (c *Config) Delay() (time.Duration, error) {
	if c.RedirectDelay == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(c.RedirectDelay)
	if err != nil || d < 0 {
		return 0, fmt.Errorf("invalid redirect_delay %q", c.RedirectDelay)
	}
	return d, nil
}

// RegisterURL joins api_url and register_path.
func (c *Config) RegisterURL() string {
	return strings.TrimRight(c.APIURL, "/") + c.RegisterPath
}

// LandingURL is where a browser would be sent after signup: app_url plus the
// landing route, or just the route when no app_url is set.
func (c *Config) LandingURL() string {
	if c.AppURL == "" {
		return c.LandingRoute
	}
	return strings.TrimRight(c.AppURL, "/") + c.LandingRoute
}

// Exists returns true if any config file exists (global or project).
func Exists() bool {
	return fileExists(GlobalPath()) || fileExists(ProjectPath())
}

// GlobalPath returns the XDG global config path.
// Returns ~/.config/onboard/onboard.yml or $XDG_CONFIG_HOME/onboard/onboard.yml.
func GlobalPath() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "onboard", "onboard.yml")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "onboard", "onboard.yml")
}

// ProjectPath returns the project-local config path.
func ProjectPath() string {
	return "onboard.yml"
}

// WriteGlobal writes the config to the XDG global location.
func WriteGlobal(cfg *Config) error {
	path := GlobalPath()

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	return write(path, cfg)
}

// WriteProject writes the config to the project-local location.
func WriteProject(cfg *Config) error {
	return write(ProjectPath(), cfg)
}

func write(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}

// fileExists checks if a file exists.
func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
