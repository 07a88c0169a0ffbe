// Package mocap holds the shared data model for the motion-capture
// reconstruction pipeline: timestamped 6-DoF pose samples, per-hand
// landmark frames, the named landmark tables reported by the headset,
// and the quaternion/vector helpers used by every layer.
//
// The pipeline is layered; each layer lives in its own subpackage and
// may depend on lower layers and on this package, never the reverse:
//
//	l1streams  — CSV stream readers (device pose, hand landmarks)
//	l2timeline — hand-stream alignment (union of timestamps)
//	l3fusion   — head-pose resampling onto the hand timestamp grid
//	l4skeleton — body model, joint reconstruction, joint angles
//	l5records  — flat per-frame output records and writers
//
// No SQL/database code is allowed in this package or the layer
// packages; persistence lives in internal/posturedb.
package mocap
