// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package codec encodes structured values into shortcode attributes and reads
// them back from a document body.
//
// It also owns the two text transforms that surround a body write: Escape,
// applied before the body is handed to the host, and Unslash, the slash
// stripping a host applies to what it stores.
package codec
