// Package alarm implements the gRPC control API for the alarm service.
//
// Messages are plain Go structs carried by a JSON codec registered under the
// "json" content subtype, so no generated stubs are needed. The package holds
// the service descriptor, a server that maps domain errors to status codes,
// and a client used by the CLI. Callers identify themselves with actor
// metadata that the server attaches to its log context.
package alarm
