// Package posturedb persists rebuild runs and their per-frame posture
// angles in SQLite, so recordings can be compared across sessions without
// re-parsing capture CSVs.
//
// The schema is managed by embedded golang-migrate migrations. Stores
// follow a one-struct-per-table layout: RunStore owns posture_runs and
// FrameStore owns posture_frames.
package posturedb
