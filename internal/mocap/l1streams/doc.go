// Package l1streams owns Layer 1 of the motion-capture pipeline: reading
// raw capture CSV files into typed samples.
//
// The device stream carries one head pose per row; the hand stream carries
// one row per (timestamp, chirality) with a column group per landmark.
// Columns are resolved by header name, so extra columns and column
// reordering in capture files are tolerated.
//
// Dependency rule: l1streams may import the parent mocap package only.
// No SQL/database code is allowed in this package.
package l1streams
