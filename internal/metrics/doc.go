// Package metrics provides build observability for docconf.
//
// Components receive a Recorder through dependency injection and default to
// NoopRecorder, so metrics collection never needs nil checks at call sites:
//
//	builder := engine.NewBuilder(runner, metrics.NoopRecorder{})
//
// The watch command swaps in a PrometheusRecorder and serves its registry
// through HTTPHandler.
package metrics
