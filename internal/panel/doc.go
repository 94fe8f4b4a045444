// Package panel serves the browser timeline screen as embedded assets.
//
// The page is a single HTML file plus a script and a stylesheet. It renders
// GET /api/v1/timeline, searches via /api/v1/lookup, links the export
// downloads and re-fetches whenever the WebSocket channel timeline.changed
// fires. Unknown non-API paths serve index.html.
package panel
