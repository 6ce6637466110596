package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"github.com/tanq16/workshopdl/internal/utils"
	"gopkg.in/yaml.v3"
)

// Config holds the settings for the Steam backend. Values come from the
// YAML file, then the environment, then command-line flags.
type Config struct {
	AppID        uint32        `yaml:"app_id"`
	SteamCMDPath string        `yaml:"steamcmd_path"`
	Username     string        `yaml:"username"`
	InstallDir   string        `yaml:"install_dir"`
	APIKey       string        `yaml:"api_key"`
	PollInterval time.Duration `yaml:"poll_interval"`
	HTTPTimeout  time.Duration `yaml:"http_timeout"`
	MaxRetries   int           `yaml:"retries"`
	UserAgent    string        `yaml:"user_agent"`
	ProxyURL     string        `yaml:"proxy"`
}

func Default() *Config {
	installDir := ""
	if cacheDir, err := os.UserCacheDir(); err == nil {
		installDir = filepath.Join(cacheDir, "workshopdl", "steam")
	}
	return &Config{
		AppID:        utils.DefaultAppID,
		SteamCMDPath: "steamcmd",
		InstallDir:   installDir,
		PollInterval: utils.DefaultPollInterval,
		HTTPTimeout:  utils.DefaultHTTPTimeout,
		UserAgent:    utils.ToolUserAgent,
	}
}

// DefaultPath is where the config file is looked up when --config is not given.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "workshopdl", "config.yaml")
}

// Load reads the config file at path. An empty path falls back to
// DefaultPath, which is allowed to be missing; an explicit path is not.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Debug().Str("op", "config/load").Err(err).Msg("could not load .env file")
	}
	cfg := Default()
	explicit := path != ""
	if !explicit {
		path = DefaultPath()
	}
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("error parsing config file %s: %w", path, err)
			}
			log.Debug().Str("op", "config/load").Msgf("loaded config from %s", path)
		case errors.Is(err, fs.ErrNotExist) && !explicit:
			log.Debug().Str("op", "config/load").Msgf("no config file at %s, using defaults", path)
		default:
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}
	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	if v := os.Getenv("WORKSHOPDL_APP_ID"); v != "" {
		id, err := strconv.ParseUint(v, 10, 32)
		if err != nil {
			return fmt.Errorf("invalid WORKSHOPDL_APP_ID %q: %w", v, err)
		}
		c.AppID = uint32(id)
	}
	if v := os.Getenv("WORKSHOPDL_STEAMCMD"); v != "" {
		c.SteamCMDPath = v
	}
	if v := os.Getenv("WORKSHOPDL_USERNAME"); v != "" {
		c.Username = v
	}
	if v := os.Getenv("WORKSHOPDL_INSTALL_DIR"); v != "" {
		c.InstallDir = v
	}
	if v := os.Getenv("STEAM_API_KEY"); v != "" {
		c.APIKey = v
	}
	return nil
}

func (c *Config) Validate() error {
	if c.AppID == 0 {
		return fmt.Errorf("app ID must be non-zero")
	}
	if c.PollInterval <= 0 {
		return fmt.Errorf("poll interval must be positive, got %s", c.PollInterval)
	}
	if c.MaxRetries < 0 {
		return fmt.Errorf("retries must not be negative, got %d", c.MaxRetries)
	}
	if c.InstallDir == "" {
		return fmt.Errorf("install directory is not set and no user cache directory is available")
	}
	return nil
}

func (c *Config) HTTPClientConfig() utils.HTTPClientConfig {
	return utils.HTTPClientConfig{
		Timeout:    c.HTTPTimeout,
		UserAgent:  c.UserAgent,
		ProxyURL:   c.ProxyURL,
		MaxRetries: c.MaxRetries,
	}
}
