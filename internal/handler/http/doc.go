// Package http implements the HTTP facade of the page builder host.
//
// It exposes the host events (option saves, body saves, raw option-updated
// notifications), the render surface and the maintenance endpoints. Request
// tracing, access logging and response compression are handled here before
// requests reach the service layer.
package http
