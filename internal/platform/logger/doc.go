// Package logger provides structured logging functionality for the application.
//
// It builds a log/slog JSON logger whose records carry the active OpenTelemetry
// trace and span IDs, and carries request-scoped loggers through context.Context.
package logger
