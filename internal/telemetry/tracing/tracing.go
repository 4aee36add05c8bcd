package tracing

import (
	"go.opentelemetry.io/otel"
)

// GlobalTracer is a noop until HoneycombSetup installs a provider, so
// handlers can start spans unconditionally.
var GlobalTracer = otel.Tracer("healthmetrics")
