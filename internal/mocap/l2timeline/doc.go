// Package l2timeline owns Layer 2 of the motion-capture pipeline: merging
// left- and right-hand frames onto one ordered timeline.
//
// Frames are joined on exact timestamp equality. The capture device stamps
// both chiralities from the same monotonic clock, so equal instants really
// are equal bit patterns; there is no tolerance window. A slot may carry
// one side only, and when a capture file repeats a (timestamp, side) pair
// the last row wins.
//
// Dependency rule: l2timeline may import the parent mocap package only.
// No SQL/database code is allowed in this package.
package l2timeline
