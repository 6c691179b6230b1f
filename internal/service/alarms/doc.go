// Package alarms owns the in-memory alarm snapshot of a process.
//
// The Service serialises every mutation and every evaluation pass, persists
// the whole snapshot after each change and hands out copies only, so the
// gRPC API, the HTTP status surface and the monitor can share it safely.
package alarms
