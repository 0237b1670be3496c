// Package config loads runtime configuration for lapsctl.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional YAML file, given by --config or LAPSCTL_CONFIG, falling back
//     to <user config dir>/lapsctl/config.yaml when it exists. JSON files
//     are accepted too since JSON is valid YAML.
//  3. A .env file in the working directory (never overriding variables
//     already set) and LAPSCTL_* environment variables.
//  4. Command-line flags, applied by the cli package, which override
//     everything else.
//
// # File schema
//
//	server: example.jamfcloud.com
//	user: admin                # or client_id, never both
//	local_admin: jamfadmin
//	page_size: 25
//	no_cache: false
//	verbose: false
//	vault: ~/.config/lapsctl/vault.db
//	timeout: 2m
//	workers: 8
//
// Validate must be called once every source has been applied.
package config
