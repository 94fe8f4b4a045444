// Package api implements the HTTP REST API and WebSocket server for the
// device timeline.
//
// This package provides:
//   - REST endpoints for device CRUD, the projected timeline, and lookup
//   - Import and export endpoints for every artifact format
//   - WebSocket hub broadcasting collection changes and export progress
//   - Middleware stack (request ID, logging, metrics, recovery, CORS)
//
// # Architecture
//
// The server is a thin layer over the device Registry. Mutations go through
// the registry, which persists the snapshot and notifies the hub; exports
// take a snapshot with Registry.List and hand it to the export Renderer.
//
//	client ── HTTP ──► api.Server ──► device.Registry ──► SQLite
//	   ▲                   │                 │
//	   └──── WebSocket ◄── Hub ◄─────────────┘ (timeline.changed)
//
// # Graceful Degradation
//
// MQTT, InfluxDB and Prometheus are optional. With none of them configured
// every endpoint still works; /metrics reports the integrations as absent.
package api
