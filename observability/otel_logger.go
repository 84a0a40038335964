package observability

import (
	"go.opentelemetry.io/contrib/bridges/otelslog"
)

// NewSlogBridgeLogger creates a logger on the OpenTelemetry slog bridge,
// providing automatic trace correlation through the global OpenTelemetry
// LoggerProvider. It satisfies the same Logger shapes as SlogLogger.
func NewSlogBridgeLogger(name string) *SlogLogger {
	return &SlogLogger{logger: otelslog.NewLogger(name)}
}
