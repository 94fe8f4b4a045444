// Package audit records the device collection's change history in the
// audit_logs table.
//
// Recorder implements device.Notifier, so wiring it into the registry's
// notifier fan-out appends one row per committed mutation: the action, the
// affected device (empty for bulk actions) and the collection size after
// the change. Repository.List serves the history newest first with optional
// action and device filters.
//
// Writes are best-effort. A failed insert is logged and the mutation that
// caused it still stands.
package audit
