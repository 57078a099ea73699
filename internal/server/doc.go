// Package server runs the HTTP facade with signal handling and graceful
// shutdown.
package server
