// Package logger wraps zap with a process-wide sugared logger and context
// helpers (ToContext, FromContext, WithName, WithKV, WithFields).
//
// Logs are written to stderr as colored console text or as JSON lines.
// Services take a context and log through it, so names and fields added by
// callers travel with the call. GRPCLogger routes the gRPC package's own
// messages through the same logger.
package logger
