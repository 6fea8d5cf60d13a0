// Package domain contains the core business entities (User, Task), their
// validation rules, and the sentinel errors shared across all layers.
//
// The domain layer has no dependencies on transport, persistence, or
// framework packages. Entities validate themselves; services in the app
// layer enforce cross-entity rules such as ownership.
package domain
