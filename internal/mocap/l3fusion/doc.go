// Package l3fusion owns Layer 3 of the motion-capture pipeline: resampling
// a pose stream onto arbitrary query instants.
//
// The head tracker and the hand tracker free-run at different rates, so
// head poses must be evaluated at hand timestamps before the two streams
// can be fused. Positions interpolate per axis with a natural cubic
// spline, which degenerates to linear interpolation when only two samples
// exist. Orientations interpolate spherically between the two samples
// bracketing the query. Queries outside the sampled range clamp to the
// nearest endpoint rather than extrapolating.
//
// Dependency rule: l3fusion may import the parent mocap package only.
// No SQL/database code is allowed in this package.
package l3fusion
