// Package cli is the lapsctl command line: a cobra command tree over the
// services pipeline, an interactive terminal prompter and table output.
//
// Every command runs inside a context bounded by the configured timeout.
// Identifiers may be computer names, serial numbers, asset tags, bar codes,
// Jamf IDs or management IDs; get, set and rotate accept several at once.
package cli
