// Package l4skeleton owns Layer 4 of the motion-capture pipeline: deriving
// an upper-body skeleton and its posture angles from a head pose and the
// hand landmarks observed at the same instant.
//
// The head pose anchors everything. Spine joints cascade down the head's
// local down axis using segment lengths from an anthropometric body model;
// shoulders sit on the head's local right axis. Elbows are estimated by
// aiming from the shoulder toward the observed forearm landmark, and
// wrists pass through from the capture. Joints on a side without hand data
// are simply absent.
//
// Dependency rule: l4skeleton may import the parent mocap package and
// internal/config only. No SQL/database code is allowed in this package.
package l4skeleton
