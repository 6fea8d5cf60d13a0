// Package ports defines the interfaces that connect the layers of the
// service: inbound service ports implemented by the app layer and called by
// HTTP handlers, and outbound ports (repositories, password hashing, token
// management, health checks) implemented by adapters.
package ports
