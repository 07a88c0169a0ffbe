// Package pipeline wires the motion-capture layers into the full rebuild:
// read the device and hand captures, merge the hand timeline, resample the
// head stream onto it, and reconstruct one skeleton record per hand
// instant.
//
// Per-frame reconstruction is independent, so records fan out across a
// bounded worker pool. The output order is fixed by the merged timeline,
// never by worker scheduling: a single-worker run and a parallel run
// produce identical records.
package pipeline
