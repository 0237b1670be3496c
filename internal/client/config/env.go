package config

import (
	"fmt"
	"strconv"
	"time"

	"github.com/dmitrijs2005/lapsctl/internal/common"
	"github.com/joho/godotenv"
)

// LookupFunc has the signature of os.LookupEnv.
type LookupFunc func(key string) (string, bool)

// loadDotEnv exports variables from a .env file without overriding the
// existing environment. A missing file is not an error.
func loadDotEnv(path string) {
	if fileExists(path) {
		_ = godotenv.Load(path)
	}
}

// LoadEnv overlays c with LAPSCTL_* variables. Boolean switches are enabled
// by any value strconv.ParseBool accepts as true, and by an empty value.
func (c *Config) LoadEnv(lookup LookupFunc) error {
	if v, ok := lookup(common.EnvServer); ok {
		c.ServerURL = v
	}
	if v, ok := lookup(common.EnvUser); ok {
		c.User = v
	}
	if v, ok := lookup(common.EnvClientID); ok {
		c.ClientID = v
	}
	if v, ok := lookup(common.EnvLocalAdmin); ok {
		c.LocalAdmin = v
	}
	if v, ok := lookup(common.EnvVault); ok {
		c.VaultPath = expandHome(v)
	}
	if v, ok := lookup(common.EnvNoCache); ok {
		c.NoCache = truthy(v)
	}
	if v, ok := lookup(common.EnvVerbose); ok {
		c.Verbose = truthy(v)
	}
	if v, ok := lookup(common.EnvPageSize); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: %w", common.EnvPageSize, err)
		}
		c.PageSize = n
	}
	if v, ok := lookup(common.EnvWorkers); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: %w", common.EnvWorkers, err)
		}
		c.MaxConcurrency = n
	}
	if v, ok := lookup(common.EnvTimeout); ok {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%s: %w", common.EnvTimeout, err)
		}
		c.Timeout = d
	}
	return nil
}

func truthy(v string) bool {
	if v == "" {
		return true
	}
	b, err := strconv.ParseBool(v)
	return err == nil && b
}
