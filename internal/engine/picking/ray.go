// Package picking resolves screen positions to positions on the globe.
package picking

import (
	gomath "math"

	"github.com/Faultbox/solar-roi/pkg/math"
)

// Ray represents a ray in 3D space with origin and direction.
type Ray struct {
	Origin    math.Vec3
	Direction math.Vec3 // Normalized direction
}

// At returns the point at distance t along the ray.
func (r Ray) At(t float64) math.Vec3 {
	return r.Origin.Add(r.Direction.Scale(t))
}

// ScreenToRay converts screen coordinates to a world-space ray.
// screenX, screenY are pixel coordinates, viewportW/H are viewport dimensions.
// invViewProj is the inverse of the view-projection matrix.
func ScreenToRay(screenX, screenY, viewportW, viewportH float64, invViewProj math.Mat4) Ray {
	ndcX := 2.0*screenX/viewportW - 1.0
	ndcY := 1.0 - 2.0*screenY/viewportH // Flip Y

	nearWorld := unproject(invViewProj, ndcX, ndcY, -1)
	farWorld := unproject(invViewProj, ndcX, ndcY, 1)

	dir, err := farWorld.Sub(nearWorld).Normalize()
	if err != nil {
		dir = math.Vec3{}
	}
	return Ray{Origin: nearWorld, Direction: dir}
}

func unproject(invViewProj math.Mat4, x, y, z float64) math.Vec3 {
	p := invViewProj.MulVec4(math.Vec4{x, y, z, 1})
	if p[3] != 0 {
		return math.Vec3{X: p[0] / p[3], Y: p[1] / p[3], Z: p[2] / p[3]}
	}
	return math.Vec3{X: p[0], Y: p[1], Z: p[2]}
}

// IntersectPlane intersects the ray with the plane through point with the
// given normal. Returns the distance along the ray.
func (r Ray) IntersectPlane(point, normal math.Vec3) (float64, bool) {
	denom := r.Direction.Dot(normal)
	if gomath.Abs(denom) < 1e-9 {
		return 0, false // Ray parallel to plane
	}

	t := point.Sub(r.Origin).Dot(normal) / denom
	if t < 0 {
		return 0, false // Intersection behind ray origin
	}
	return t, true
}

// Project maps a world position to screen pixels. ok is false for points
// behind the camera.
func Project(p math.Vec3, viewProj math.Mat4, viewportW, viewportH float64) (x, y float64, ok bool) {
	clip := viewProj.MulVec4(math.Vec4{p.X, p.Y, p.Z, 1})
	if clip[3] <= 0 {
		return 0, 0, false
	}
	ndcX := clip[0] / clip[3]
	ndcY := clip[1] / clip[3]
	x = (ndcX + 1) / 2 * viewportW
	y = (1 - ndcY) / 2 * viewportH
	return x, y, true
}
