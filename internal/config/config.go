// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"os"
	"time"
)

// StructuredConfig is the top-level configuration of the page builder service.
// It is populated by merging environment variables, command-line flags and an
// optional JSON file, then completed with defaults and validated.
//
// Struct tags:
//   - envPrefix - prefix applied to all nested env tag lookups (caarlos0/env).
//   - env       - direct environment variable name for scalar fields.
type StructuredConfig struct {
	// App holds the builder integration settings.
	App App `envPrefix:"APP_"`

	// Storage holds the host content store settings.
	Storage Storage `envPrefix:"STORAGE_"`

	// Server holds the HTTP facade settings.
	Server Server `envPrefix:"SERVER_"`

	// Adapter holds the settings used by the command line client.
	Adapter Adapter `envPrefix:"ADAPTER_"`

	// Log holds logging settings.
	Log Log `envPrefix:"LOG_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// Env: CONFIG, flags: -c / -config.
	JSONFilePath string `env:"CONFIG"`
}

// App holds the settings that shape synchronization and rendering.
type App struct {
	// BuilderOptionKey is the option key under which the builder state is stored.
	// Env: APP_BUILDER_OPTION_KEY
	BuilderOptionKey string `env:"BUILDER_OPTION_KEY"`

	// FeatureName is the capability flag an entity type must declare.
	// Env: APP_FEATURE_NAME
	FeatureName string `env:"FEATURE_NAME"`

	// WrapperClass is the class of the container the display wrapper renders.
	// Env: APP_WRAPPER_CLASS
	WrapperClass string `env:"WRAPPER_CLASS"`

	// NoWrapperClass renders the container without a class attribute.
	// Env: APP_NO_WRAPPER_CLASS
	NoWrapperClass bool `env:"NO_WRAPPER_CLASS"`

	// EscapeFactor is how many backslashes one backslash of the notation
	// becomes when it is materialized into the body.
	// Env: APP_ESCAPE_FACTOR
	EscapeFactor int `env:"ESCAPE_FACTOR"`

	// DedupWindow is how many recent snapshots the deduplicator inspects.
	// Env: APP_DEDUP_WINDOW
	DedupWindow int `env:"DEDUP_WINDOW"`

	// ImportOptionsKey is the option bundle key importers write builder state under.
	// Env: APP_IMPORT_OPTIONS_KEY
	ImportOptionsKey string `env:"IMPORT_OPTIONS_KEY"`

	// Version is exposed via /api/version.
	// Env: APP_VERSION
	Version string `env:"VERSION"`
}

// Storage groups host store settings.
type Storage struct {
	DB DB `envPrefix:"DB_"`
}

// DB holds the host database settings.
type DB struct {
	// Driver is one of "sqlite3", "pgx" or "memory".
	// Env: STORAGE_DB_DRIVER
	Driver string `env:"DRIVER"`

	// DSN is the data source name. A file path for sqlite3, a postgres URL for pgx.
	// Env: STORAGE_DB_DATABASE_URI
	DSN string `env:"DATABASE_URI"`

	// UnslashRounds is how many rounds of slash stripping the host applies to
	// every body it stores. Zero stores bodies verbatim.
	// Env: STORAGE_DB_UNSLASH_ROUNDS
	UnslashRounds int `env:"UNSLASH_ROUNDS"`
}

// Server holds the HTTP facade settings.
type Server struct {
	// HTTPAddress is the listen address in "host:port" form.
	// Env: SERVER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// RequestTimeout bounds a single inbound request.
	// Env: SERVER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// Adapter holds the settings of the HTTP client used by the command line tool.
type Adapter struct {
	// HTTPAddress is the server base address.
	// Env: ADAPTER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// RequestTimeout bounds a single outbound request.
	// Env: ADAPTER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// Log holds logging settings.
type Log struct {
	// Level is a zerolog level name.
	// Env: LOG_LEVEL
	Level string `env:"LEVEL"`
}

// Default values applied to fields left zero by every source.
const (
	DefaultBuilderOptionKey = "page-builder"
	DefaultFeatureName      = "fw-page-builder"
	DefaultWrapperClass     = "fw-page-builder-content"
	DefaultEscapeFactor     = 5
	DefaultDedupWindow      = 3
	DefaultImportOptionsKey = "page_options"
	DefaultDriver           = DriverSQLite
	DefaultDSN              = "page-builder.db"
	DefaultHTTPAddress      = "localhost:8080"
	DefaultRequestTimeout   = 30 * time.Second
	DefaultLogLevel         = "info"
)

// Supported storage drivers.
const (
	DriverSQLite   = "sqlite3"
	DriverPostgres = "pgx"
	DriverMemory   = "memory"
)

// GetStructuredConfig loads, merges, completes and validates the configuration
// from all sources (later sources override earlier non-zero fields):
//  1. Environment variables
//  2. Command-line flags (os.Args)
//  3. JSON file (path resolved from sources 1 and 2)
func GetStructuredConfig() (*StructuredConfig, error) {
	return newConfigBuilder().
		withEnv().
		withFlags(os.Args[1:]).
		withJSON().
		build()
}

// GetAdapterConfig loads the client adapter settings from the environment and
// fills defaults. Command line tools override them with their own flags.
func GetAdapterConfig() (Adapter, error) {
	cfg := &StructuredConfig{}
	if err := parseEnv(cfg); err != nil {
		return Adapter{}, err
	}
	cfg.applyDefaults()

	return cfg.Adapter, nil
}

// EffectiveWrapperClass is the class the display wrapper should use; empty
// means the container carries no class attribute.
func (a App) EffectiveWrapperClass() string {
	if a.NoWrapperClass {
		return ""
	}
	return a.WrapperClass
}

func (cfg *StructuredConfig) applyDefaults() {
	if cfg.App.BuilderOptionKey == "" {
		cfg.App.BuilderOptionKey = DefaultBuilderOptionKey
	}
	if cfg.App.FeatureName == "" {
		cfg.App.FeatureName = DefaultFeatureName
	}
	if cfg.App.WrapperClass == "" {
		cfg.App.WrapperClass = DefaultWrapperClass
	}
	if cfg.App.EscapeFactor == 0 {
		cfg.App.EscapeFactor = DefaultEscapeFactor
	}
	if cfg.App.DedupWindow == 0 {
		cfg.App.DedupWindow = DefaultDedupWindow
	}
	if cfg.App.ImportOptionsKey == "" {
		cfg.App.ImportOptionsKey = DefaultImportOptionsKey
	}
	if cfg.Storage.DB.Driver == "" {
		cfg.Storage.DB.Driver = DefaultDriver
	}
	if cfg.Storage.DB.DSN == "" && cfg.Storage.DB.Driver == DriverSQLite {
		cfg.Storage.DB.DSN = DefaultDSN
	}
	if cfg.Server.HTTPAddress == "" {
		cfg.Server.HTTPAddress = DefaultHTTPAddress
	}
	if cfg.Server.RequestTimeout == 0 {
		cfg.Server.RequestTimeout = DefaultRequestTimeout
	}
	if cfg.Adapter.HTTPAddress == "" {
		cfg.Adapter.HTTPAddress = cfg.Server.HTTPAddress
	}
	if cfg.Adapter.RequestTimeout == 0 {
		cfg.Adapter.RequestTimeout = cfg.Server.RequestTimeout
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = DefaultLogLevel
	}
}
