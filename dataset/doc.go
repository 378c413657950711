// Package dataset turns persisted sensor recordings into fixed-size,
// fixed-stride windows and partitions them into training and testing sets.
//
// The flow is LoadRecording → Segment → Partition. Every stage returns new
// values; nothing is shared or mutated between stages, and the same input
// always produces the same windows in the same order.
//
// A recording shorter than one window is not an error: it segments into no
// windows and partitions into two empty sets. Malformed tables are rejected
// whole by LoadRecording; no row is ever repaired or skipped.
package dataset
