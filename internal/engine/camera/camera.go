// Package camera provides the site camera the design viewers look through.
package camera

import (
	gomath "math"

	"github.com/Faultbox/solar-roi/internal/engine/picking"
	"github.com/Faultbox/solar-roi/pkg/geodesy"
	"github.com/Faultbox/solar-roi/pkg/math"
)

// SiteCamera orbits a target point on the globe. Heading and pitch are
// measured in the target's east-north-up frame: heading 0 faces north,
// pitch -pi/2 looks straight down.
type SiteCamera struct {
	Ellipsoid geodesy.Ellipsoid
	Site      geodesy.Cartographic // target on the ground

	Distance float64 // meters from target to eye
	Heading  float64 // radians, clockwise from north
	Pitch    float64 // radians, negative looks down
	FovY     float64 // radians

	// Constraints
	MinDistance float64
	MaxDistance float64

	// Sensitivity
	ZoomSensitivity    float64
	RotateSensitivity  float64
	PanPixelsPerRadian float64

	width, height float64
}

// NewSiteCamera creates a camera looking straight down on site from
// distance meters.
func NewSiteCamera(site geodesy.Cartographic, distance, headingDeg, pitchDeg, fovDeg float64) *SiteCamera {
	return &SiteCamera{
		Ellipsoid:         geodesy.WGS84,
		Site:              site,
		Distance:          distance,
		Heading:           headingDeg * gomath.Pi / 180,
		Pitch:             pitchDeg * gomath.Pi / 180,
		FovY:              fovDeg * gomath.Pi / 180,
		MinDistance:       10,
		MaxDistance:       50000,
		ZoomSensitivity:   0.1,
		RotateSensitivity: 0.005,
		width:             1280,
		height:            720,
	}
}

// SetViewport sets the viewport size in pixels.
func (c *SiteCamera) SetViewport(width, height float64) {
	c.width, c.height = width, height
}

// Viewport returns the viewport size in pixels.
func (c *SiteCamera) Viewport() (float64, float64) {
	return c.width, c.height
}

// FlyTo retargets the camera on a new site, keeping distance and angles.
func (c *SiteCamera) FlyTo(site geodesy.Cartographic) {
	c.Site = site
}

// Target returns the ECEF target position.
func (c *SiteCamera) Target() math.Vec3 {
	return c.Ellipsoid.ToCartesian(c.Site)
}

// basis returns the view direction and the camera up vector.
func (c *SiteCamera) basis() (dir, up math.Vec3) {
	enu := c.Ellipsoid.EastNorthUp(c.Target())
	east, north, zenith := enu.Col(0), enu.Col(1), enu.Col(2)

	forward := east.Scale(gomath.Sin(c.Heading)).Add(north.Scale(gomath.Cos(c.Heading)))
	cp, sp := gomath.Cos(c.Pitch), gomath.Sin(c.Pitch)

	dir = forward.Scale(cp).Add(zenith.Scale(sp))
	up = forward.Scale(-sp).Add(zenith.Scale(cp))
	return dir, up
}

// Eye returns the ECEF camera position.
func (c *SiteCamera) Eye() math.Vec3 {
	dir, _ := c.basis()
	return c.Target().Sub(dir.Scale(c.Distance))
}

// ViewMatrix returns the view matrix in ECEF coordinates.
func (c *SiteCamera) ViewMatrix() math.Mat4 {
	return c.ViewMatrixFrom(math.Vec3{})
}

// ViewMatrixFrom returns the view matrix for geometry expressed relative to
// origin. Renderers pass a nearby origin so vertex data fits in float32.
func (c *SiteCamera) ViewMatrixFrom(origin math.Vec3) math.Mat4 {
	dir, up := c.basis()
	target := c.Target().Sub(origin)
	eye := target.Sub(dir.Scale(c.Distance))
	return math.LookAt(eye, target, up)
}

func (c *SiteCamera) nearFar() (float64, float64) {
	near := gomath.Max(0.5, c.Distance*0.001)
	far := c.Distance*100 + 1e5
	return near, far
}

// ProjectionMatrix returns the perspective projection.
func (c *SiteCamera) ProjectionMatrix() math.Mat4 {
	aspect := 1.0
	if c.height > 0 {
		aspect = c.width / c.height
	}
	near, far := c.nearFar()
	return math.Perspective(c.FovY, aspect, near, far)
}

// ViewProjection returns projection * view in ECEF coordinates.
func (c *SiteCamera) ViewProjection() math.Mat4 {
	return c.ProjectionMatrix().Mul(c.ViewMatrix())
}

// InverseViewProjection returns the inverse of ViewProjection. The view
// and projection are inverted separately so the ECEF translation never
// enters the projection inverse.
func (c *SiteCamera) InverseViewProjection() math.Mat4 {
	return c.ViewMatrix().Inverse().Mul(c.ProjectionMatrix().Inverse())
}

// Project returns the window position of a global point. ok is false for
// points behind the camera.
func (c *SiteCamera) Project(p math.Vec3) (x, y float64, ok bool) {
	// Project relative to the target so the matrix holds no ECEF offsets.
	target := c.Target()
	vp := c.ProjectionMatrix().Mul(c.ViewMatrixFrom(target))
	return picking.Project(p.Sub(target), vp, c.width, c.height)
}

// HandleZoom updates distance based on scroll wheel delta.
func (c *SiteCamera) HandleZoom(delta float64) {
	c.Distance -= delta * c.Distance * c.ZoomSensitivity
	if c.Distance < c.MinDistance {
		c.Distance = c.MinDistance
	}
	if c.Distance > c.MaxDistance {
		c.Distance = c.MaxDistance
	}
}

// HandleRotate turns the heading based on a horizontal drag delta.
func (c *SiteCamera) HandleRotate(deltaX float64) {
	c.Heading -= deltaX * c.RotateSensitivity
}

// HandlePan moves the target so the ground follows a drag of dx, dy pixels.
func (c *SiteCamera) HandlePan(dx, dy float64) {
	if c.height <= 0 {
		return
	}
	// Ground meters covered by one pixel at the target.
	mpp := 2 * c.Distance * gomath.Tan(c.FovY/2) / c.height

	east := -dx * mpp
	north := dy * mpp
	sh, ch := gomath.Sin(c.Heading), gomath.Cos(c.Heading)
	de := east*ch + north*sh
	dn := -east*sh + north*ch

	enu := c.Ellipsoid.EastNorthUp(c.Target())
	moved := c.Target().Add(enu.Col(0).Scale(de)).Add(enu.Col(1).Scale(dn))
	if site, ok := c.Ellipsoid.ToCartographic(moved); ok {
		site.Height = c.Site.Height
		c.Site = site
	}
}
