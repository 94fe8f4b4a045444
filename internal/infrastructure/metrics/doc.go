// Package metrics exposes Prometheus instrumentation for the device timeline.
//
// A Metrics value owns its own registry, so several instances (one per test)
// can coexist. It satisfies the observer interfaces of the export renderer,
// the lookup client and the device registry, and main wires it into each.
//
//	m := metrics.New()
//	renderer.SetRecorder(m)
//	lookupClient.SetObserver(m)
//	router.Handle("/metrics", m.Handler())
package metrics
