// Package export renders a device collection into shareable formats.
//
// Formats:
//   - Share text (FormatShareText): plain text grouped by year
//   - Image (Renderer.RenderImage): a PNG grid of cards joined by cables
//   - Document (Renderer.RenderDocument): a PDF with one card page per device
//   - Spreadsheet (Renderer.RenderSpreadsheet): an XLSX workbook
//
// JSON export lives in the device package (device.ExportJSON), since it is
// also the import format.
//
// Image and document exports share one card painter (card.go). Device
// images are fetched through an ImageLoader; a failed fetch yields a blank
// slot rather than an error. Only encoder, PDF and cancellation failures
// abort an export.
//
// A Renderer is safe for concurrent use. Each call works on its own snapshot.
package export
