package ecc

import "errors"

// ErrPointNotOnCurve reports a coordinate that does not satisfy the curve
// equation, such as an x with no matching y during point decompression.
var ErrPointNotOnCurve = errors.New("point is not on the curve")
