// Package openapi holds the wrappers the contract check works on: document
// sources, raw documents and the operations extracted from them. The
// kin-openapi backed implementations live under internal/openapi.
package openapi
