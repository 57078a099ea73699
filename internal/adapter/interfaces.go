// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter is the client side of the page builder HTTP facade.
//
// [BuilderAdapter] hides the transport from the command line tool. HTTP
// status codes are mapped by mapHTTPError to the sentinel errors of this
// package so callers can use [errors.Is].
package adapter

import (
	"context"

	"github.com/MKhiriev/go-page-builder/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/builder_adapter_mock.go -package=mock

// BuilderAdapter talks to the page builder facade.
type BuilderAdapter interface {
	// Version returns the version of the running server.
	Version(ctx context.Context) (models.VersionResponse, error)

	// CreateEntity creates a canonical entity, or an autosave when ParentID is set.
	CreateEntity(ctx context.Context, request models.CreateEntityRequest) (models.Entity, error)

	// GetEntity fetches one entity.
	GetEntity(ctx context.Context, id int64) (models.Entity, error)

	// UpdateBody performs a host-side body save.
	UpdateBody(ctx context.Context, id int64, body string) error

	// IsBuilder reports whether the builder governs the entity.
	IsBuilder(ctx context.Context, id int64) (bool, error)

	// SaveBuilderOption stores the builder option, which triggers synchronization.
	SaveBuilderOption(ctx context.Context, id int64, option models.BuilderOption) error

	// NotifyOptionUpdated delivers a raw option-updated event.
	NotifyOptionUpdated(ctx context.Context, id int64, request models.OptionUpdatedRequest) (models.SyncResponse, error)

	// Render returns content as it is displayed for the entity.
	Render(ctx context.Context, id int64, content string) (string, error)

	// Import hands an importer's option bundle to the import shim.
	Import(ctx context.Context, request models.ImportRequest) (bool, error)

	// DeclareSupport enables the builder for an entity type.
	DeclareSupport(ctx context.Context, entityType string) error

	// OptionsDescriptor returns the editor option box of a type, nil when unsupported.
	OptionsDescriptor(ctx context.Context, entityType string) (*models.OptionsDescriptor, error)

	// DecodeAtts decodes shortcode attributes.
	DecodeAtts(ctx context.Context, atts map[string]string) (map[string]any, error)

	// Resync replays synchronization for every supported entity.
	Resync(ctx context.Context) (models.ResyncResponse, error)
}
