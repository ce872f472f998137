// Package telemetry provides logging, tracing and metrics for the Prevet
// engine.
//
// # Components
//
//  1. Logger - Structured logging built on zerolog
//  2. Tracer - OpenTelemetry tracing with stdout export for debugging
//  3. Metrics - Prometheus metrics for runs, operations and feedback
//
// # Usage
//
// Initializing the full stack from a configuration:
//
//	tel, err := telemetry.NewTelemetry(telemetry.DefaultConfig())
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer tel.Shutdown(context.Background())
//
// The bundle travels through the context so the runner can pick it up
// without threading three extra arguments everywhere:
//
//	ctx = tel.WithContext(ctx)
//
// Metrics and tracing are disabled by default; BatchConfig enables both
// for unattended validation runs on the farm.
package telemetry
