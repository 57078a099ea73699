package service

import "errors"

var (
	ErrVersionIsNotSpecified = errors.New("app version is not specified")

	ErrInvalidRequest = errors.New("invalid request")

	ErrLoadingHostState = errors.New("failed to load host state")
	ErrMaterializing    = errors.New("failed to materialize builder notation")
	ErrDeletingSnapshot = errors.New("failed to delete duplicate snapshot")
	ErrEncodingOption   = errors.New("failed to encode builder option")
)
