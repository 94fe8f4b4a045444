// Package timeline projects a device collection into year groups.
//
// The collection itself is unordered. Project partitions it by start year,
// orders the groups in the requested direction and assigns each device a
// side of the timeline by its position in the flattened sequence. The
// screen uses Descending; exports use Ascending by default.
//
// All functions are pure and safe for concurrent use.
package timeline
