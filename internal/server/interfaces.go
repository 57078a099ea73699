package server

import "context"

// Server is the lifecycle contract of the facade.
type Server interface {
	// RunServer serves until ctx is cancelled or a stop signal arrives,
	// then shuts down gracefully.
	RunServer(ctx context.Context) error

	// Shutdown stops accepting requests and waits for in-flight ones.
	Shutdown(ctx context.Context) error
}
