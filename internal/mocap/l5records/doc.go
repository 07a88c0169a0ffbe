// Package l5records owns Layer 5 of the motion-capture pipeline: the
// per-frame output records and their CSV encodings.
//
// Two encodings exist. The calculated file carries the reconstructed
// skeleton, posture angles, interpolated head orientation and the raw
// finger landmarks. The joined file repeats the calculated columns and
// left-joins the raw device and hand captures back in, so a single file
// holds everything a downstream viewer needs. Both use a fixed header:
// every column always exists and absent values are empty cells.
//
// Dependency rule: l5records may import the parent mocap package and
// lower layers (l4skeleton). No SQL/database code is allowed in this
// package.
package l5records
