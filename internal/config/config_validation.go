// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import "fmt"

// validate checks the merged and defaulted configuration.
func (cfg *StructuredConfig) validate() error {
	if cfg.App.BuilderOptionKey == "" || cfg.App.FeatureName == "" {
		return fmt.Errorf("%w: option key and feature name are required", ErrInvalidAppConfigs)
	}

	if cfg.App.EscapeFactor < 1 {
		return fmt.Errorf("%w: escape factor must be positive, got %d", ErrInvalidAppConfigs, cfg.App.EscapeFactor)
	}

	if cfg.App.DedupWindow < 2 {
		return fmt.Errorf("%w: dedup window must be at least 2, got %d", ErrInvalidAppConfigs, cfg.App.DedupWindow)
	}

	switch cfg.Storage.DB.Driver {
	case DriverSQLite, DriverPostgres:
		if cfg.Storage.DB.DSN == "" {
			return fmt.Errorf("%w: dsn is required for driver %q", ErrInvalidStorageConfigs, cfg.Storage.DB.Driver)
		}
	case DriverMemory:
	default:
		return fmt.Errorf("%w: unknown driver %q", ErrInvalidStorageConfigs, cfg.Storage.DB.Driver)
	}

	if cfg.Storage.DB.UnslashRounds < 0 {
		return fmt.Errorf("%w: unslash rounds must not be negative", ErrInvalidStorageConfigs)
	}

	if cfg.Server.HTTPAddress == "" || cfg.Server.RequestTimeout <= 0 {
		return ErrInvalidServerConfigs
	}

	return nil
}
