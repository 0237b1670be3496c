// Package common contains shared constants and small byte helpers used across
// lapsctl components.
package common

// AppName is used for the config directory, vault file names and the
// User-Agent header.
const AppName = "lapsctl"

// Environment variables understood by the client. Flags take precedence.
const (
	EnvConfig     = "LAPSCTL_CONFIG"
	EnvServer     = "LAPSCTL_SERVER"
	EnvUser       = "LAPSCTL_USER"
	EnvClientID   = "LAPSCTL_CLIENT_ID"
	EnvLocalAdmin = "LAPSCTL_LOCAL_ADMIN"
	EnvPageSize   = "LAPSCTL_PAGE_SIZE"
	EnvNoCache    = "LAPSCTL_NO_CACHE"
	EnvVerbose    = "LAPSCTL_VERBOSE"
	EnvVault      = "LAPSCTL_VAULT"
	EnvTimeout    = "LAPSCTL_TIMEOUT"
	EnvWorkers    = "LAPSCTL_WORKERS"
)

// DefaultPageSize is the server page size used when chunking bulk lookups.
const DefaultPageSize = 25

// DefaultMaxConcurrency bounds the requests a batch keeps in flight.
const DefaultMaxConcurrency = 8
