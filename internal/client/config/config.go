package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/dmitrijs2005/lapsctl/internal/common"
)

// Config holds runtime settings for the lapsctl CLI.
type Config struct {
	ServerURL      string        `yaml:"server" validate:"required"`
	User           string        `yaml:"user" validate:"required_without=ClientID,excluded_with=ClientID"`
	ClientID       string        `yaml:"client_id"`
	LocalAdmin     string        `yaml:"local_admin"`
	PageSize       int           `yaml:"page_size" validate:"min=1,max=2000"`
	NoCache        bool          `yaml:"no_cache"`
	Verbose        bool          `yaml:"verbose"`
	VaultPath      string        `yaml:"vault" validate:"required_unless=NoCache true"`
	Timeout        time.Duration `yaml:"timeout" validate:"gt=0"`
	MaxConcurrency int           `yaml:"workers" validate:"min=1,max=64"`
}

// LoadDefaults populates c with defaults.
func (c *Config) LoadDefaults() {
	c.PageSize = common.DefaultPageSize
	c.Timeout = 2 * time.Minute
	c.MaxConcurrency = common.DefaultMaxConcurrency
	c.VaultPath = filepath.Join(configDir(), "vault.db")
}

// AuthUser is the principal that authenticates: the user or the API client.
func (c *Config) AuthUser() string {
	if c.ClientID != "" {
		return c.ClientID
	}
	return c.User
}

// IsAPIClient reports whether authentication uses client credentials.
func (c *Config) IsAPIClient() bool {
	return c.ClientID != ""
}

// Load applies defaults, the config file and the environment in that order.
// file may be empty. Flags are applied by the caller, followed by Validate.
func Load(file string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	if file == "" {
		file = os.Getenv(common.EnvConfig)
	}
	if file == "" {
		if p := filepath.Join(configDir(), "config.yaml"); fileExists(p) {
			file = p
		}
	}
	if file != "" {
		if err := cfg.LoadFile(file); err != nil {
			return nil, err
		}
	}

	loadDotEnv(".env")
	if err := cfg.LoadEnv(os.LookupEnv); err != nil {
		return nil, err
	}
	return cfg, nil
}

func configDir() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		dir = os.TempDir()
	}
	return filepath.Join(dir, common.AppName)
}

func fileExists(p string) bool {
	info, err := os.Stat(p)
	return err == nil && !info.IsDir()
}
