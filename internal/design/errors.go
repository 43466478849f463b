// Package design holds the geometry core of a solar layout: the captured
// region, the local tangent frame built on it, and the panel grid that
// tiles it.
package design

import "errors"

var (
	// ErrDegenerateRegion is returned when a region has a zero-length or
	// collinear edge. It wraps math.ErrDegenerateVector when a normalize
	// failed underneath.
	ErrDegenerateRegion = errors.New("degenerate region")

	// ErrInvalidConfig is returned by ArrayConfig.Validate. The interactive
	// path clamps instead.
	ErrInvalidConfig = errors.New("invalid array config")
)
