// Package logging builds the structured slog loggers shared by the kit.
// Records are JSON by default; a text handler is available for terminals.
// The root package supplies the logger and its LoggerConfig to Fx.
package logging
