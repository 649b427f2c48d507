// Package observability provides structured logging and distributed tracing
// for the plotforge service.
//
// # Logging
//
// Logging is built on Go's slog package with:
//   - Configurable log levels (DEBUG, INFO, WARN, ERROR)
//   - JSON output for production, text for development
//   - Redaction of credentials in messages and string attributes, so DSNs
//     and secrets can appear in log calls without leaking
//
// Example usage:
//
//	logger := observability.NewLogger(observability.LogConfig{
//	    Level:  "info",
//	    Format: "json",
//	})
//	logger.Info("payload stored", "payload_id", id, "backend", "postgres")
//
// # Tracing
//
// Distributed tracing uses OpenTelemetry with an OTLP/gRPC exporter. With no
// collector endpoint configured, the tracer is a no-op and spans cost almost
// nothing.
//
// Example usage:
//
//	tracer, shutdown := observability.NewTracer(observability.TraceConfig{
//	    ServiceName:    "plotforge",
//	    ServiceVersion: version,
//	    Endpoint:       os.Getenv("OTEL_ENDPOINT"),
//	    SamplingRate:   0.1,
//	})
//	defer shutdown(context.Background())
//
//	ctx, span := tracer.TraceSkillExecution(ctx, "customize_chart")
//	defer span.End()
//	if err != nil {
//	    tracer.RecordError(span, err)
//	}
//
// Payload throughput metrics live next to the store implementations in
// internal/payloads and are registered with Prometheus on first use.
package observability
