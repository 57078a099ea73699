// Package config loads, merges and validates the service configuration.
//
// Sources, in priority order (later sources override earlier non-zero fields):
//  1. Environment variables
//  2. Command-line flags
//  3. JSON config file
//
// Fields left zero by every source receive the Default* values.
package config
