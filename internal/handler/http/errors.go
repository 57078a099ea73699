// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import "errors"

var (
	// ErrInvalidEntityIDParam is returned when the {id} path segment is not a number.
	ErrInvalidEntityIDParam = errors.New("entity id must be a positive integer")

	// ErrInvalidJSON is returned when a request body cannot be decoded.
	ErrInvalidJSON = errors.New("invalid JSON was passed")
)
