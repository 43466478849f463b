package design

import (
	"fmt"

	"github.com/Faultbox/solar-roi/pkg/math"
)

// MinEdgeLength is the shortest region edge, in meters, that is not
// treated as degenerate. Clicks on the same pixel, or a third click on the
// width line, land below it.
const MinEdgeLength = 1e-3

// Region is a captured rectangle in earth-centered coordinates.
// C1-C0 is the width edge, C3-C0 the length edge, and C2 = C1 + (C3-C0).
type Region struct {
	C0, C1, C2, C3 math.Vec3
}

// RegionFromClicks builds a region from the three capture clicks. The third
// click only sets the length: its component along the width edge is dropped
// so the two edges are perpendicular by construction.
func RegionFromClicks(origin, widthPoint, third math.Vec3) (Region, error) {
	vWidth := widthPoint.Sub(origin)
	if vWidth.Length() < MinEdgeLength {
		return Region{}, fmt.Errorf("%w: width edge too short", ErrDegenerateRegion)
	}
	wHat, err := vWidth.Normalize()
	if err != nil {
		return Region{}, fmt.Errorf("%w: width edge: %w", ErrDegenerateRegion, err)
	}

	vMouse := third.Sub(origin)
	vPerp := vMouse.Sub(wHat.Scale(vMouse.Dot(wHat)))
	if vPerp.Length() < MinEdgeLength {
		return Region{}, fmt.Errorf("%w: third point lies on the width edge", ErrDegenerateRegion)
	}

	return Region{
		C0: origin,
		C1: widthPoint,
		C2: widthPoint.Add(vPerp),
		C3: origin.Add(vPerp),
	}, nil
}

// PreviewRing returns the closed outline (first corner repeated) of the
// region the third click would produce at mouse.
func PreviewRing(origin, widthPoint, mouse math.Vec3) ([]math.Vec3, error) {
	r, err := RegionFromClicks(origin, widthPoint, mouse)
	if err != nil {
		return nil, err
	}
	return r.Ring(), nil
}

// Corners returns the corners in capture order.
func (r Region) Corners() [4]math.Vec3 {
	return [4]math.Vec3{r.C0, r.C1, r.C2, r.C3}
}

// Ring returns the corners followed by C0 again.
func (r Region) Ring() []math.Vec3 {
	return []math.Vec3{r.C0, r.C1, r.C2, r.C3, r.C0}
}

// Width returns |C1-C0| in meters.
func (r Region) Width() float64 {
	return r.C0.Distance(r.C1)
}

// Length returns |C3-C0| in meters.
func (r Region) Length() float64 {
	return r.C0.Distance(r.C3)
}

// Area returns Width*Length in square meters.
func (r Region) Area() float64 {
	return r.Width() * r.Length()
}

// IsZero reports whether r is the zero value.
func (r Region) IsZero() bool {
	return r == Region{}
}

// Validate checks that both edges are long enough and not parallel.
func (r Region) Validate() error {
	if r.Width() < MinEdgeLength {
		return fmt.Errorf("%w: width %.6f m", ErrDegenerateRegion, r.Width())
	}
	if r.Length() < MinEdgeLength {
		return fmt.Errorf("%w: length %.6f m", ErrDegenerateRegion, r.Length())
	}
	if _, err := r.C3.Sub(r.C0).Cross(r.C1.Sub(r.C0)).Normalize(); err != nil {
		return fmt.Errorf("%w: parallel edges: %w", ErrDegenerateRegion, err)
	}
	return nil
}
