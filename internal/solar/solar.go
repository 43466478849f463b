// Package solar reports how a panel array is oriented relative to the sun.
// It is informational: no irradiance or yield is modelled.
package solar

import (
	"fmt"
	gomath "math"
	"time"

	"github.com/sixdouglas/suncalc"

	"github.com/Faultbox/solar-roi/internal/design"
	"github.com/Faultbox/solar-roi/pkg/geodesy"
	"github.com/Faultbox/solar-roi/pkg/math"
)

const (
	rad2deg = 180 / gomath.Pi
	deg2rad = gomath.Pi / 180

	// flatTilt is the tilt in degrees below which a plane has no facing.
	flatTilt = 0.01
)

// SunPosition is the sun in horizontal coordinates.
type SunPosition struct {
	Time time.Time

	// Altitude in degrees: 0 is the horizon, 90 is overhead.
	Altitude float64

	// Azimuth in degrees clockwise from north: 0 is north, 90 is east.
	Azimuth float64
}

// SunAt returns the sun position at t for a site given in degrees.
func SunAt(t time.Time, latitude, longitude float64) SunPosition {
	p := suncalc.GetPosition(t, latitude, longitude)
	// suncalc returns radians, and its azimuth is measured from south
	// with west positive.
	return SunPosition{
		Time:     t,
		Altitude: p.Altitude * rad2deg,
		Azimuth:  normalizeDegrees(p.Azimuth*rad2deg + 180),
	}
}

// Direction returns the unit vector towards the sun in the frame whose
// columns are east, north and up.
func (p SunPosition) Direction(enu math.Mat3) math.Vec3 {
	al, az := p.Altitude*deg2rad, p.Azimuth*deg2rad
	return enu.MulVec3(math.Vec3{
		X: gomath.Sin(az) * gomath.Cos(al),
		Y: gomath.Cos(az) * gomath.Cos(al),
		Z: gomath.Sin(al),
	})
}

// ArrayOrientation describes a panel plane in the site's horizon frame.
type ArrayOrientation struct {
	// WidthBearing is the compass bearing of the width axis in degrees.
	WidthBearing float64
	// Tilt is the angle between the panel plane and the horizontal, in degrees.
	Tilt float64
	// Facing is the bearing the tilted plane faces. It is 0 for a flat plane.
	Facing float64
	// Normal is the plane normal that points to the sky.
	Normal math.Vec3
}

// Orient measures the frame at its origin.
func Orient(f design.LocalFrame) ArrayOrientation {
	enu := geodesy.WGS84.EastNorthUp(f.Origin)
	east, north, up := enu.Col(0), enu.Col(1), enu.Col(2)

	normal := f.Outward()

	o := ArrayOrientation{
		WidthBearing: bearing(f.WidthAxis, east, north),
		Tilt:         gomath.Acos(clamp(normal.Dot(up), -1, 1)) * rad2deg,
		Normal:       normal,
	}
	if o.Tilt > flatTilt {
		o.Facing = bearing(normal, east, north)
	}
	return o
}

// Report combines the array orientation with the sun position.
type Report struct {
	Array ArrayOrientation
	Sun   SunPosition
	// Incidence is the angle between the sun and the panel normal in degrees.
	Incidence float64
	// Lit is true when the sun is above the horizon and in front of the panels.
	Lit bool
}

// At builds the report for the frame origin at time t.
func At(f design.LocalFrame, t time.Time) (Report, error) {
	site, ok := geodesy.WGS84.ToCartographic(f.Origin)
	if !ok {
		return Report{}, fmt.Errorf("solar report: frame origin %v has no geodetic position", f.Origin)
	}
	lon, lat := site.Degrees()

	r := Report{
		Array: Orient(f),
		Sun:   SunAt(t, lat, lon),
	}
	sun := r.Sun.Direction(geodesy.WGS84.EastNorthUp(f.Origin))
	cos := clamp(sun.Dot(r.Array.Normal), -1, 1)
	r.Incidence = gomath.Acos(cos) * rad2deg
	r.Lit = r.Sun.Altitude > 0 && cos > 0
	return r, nil
}

// String formats the report for display.
func (r Report) String() string {
	return fmt.Sprintf("Tilt %.1f°, width bearing %.1f°, sun alt %.1f° az %.1f°, incidence %.1f°",
		r.Array.Tilt, r.Array.WidthBearing, r.Sun.Altitude, r.Sun.Azimuth, r.Incidence)
}

func bearing(v, east, north math.Vec3) float64 {
	return normalizeDegrees(gomath.Atan2(v.Dot(east), v.Dot(north)) * rad2deg)
}

func normalizeDegrees(d float64) float64 {
	d = gomath.Mod(d, 360)
	if d < 0 {
		d += 360
	}
	return d
}

func clamp(v, lo, hi float64) float64 {
	return gomath.Max(lo, gomath.Min(hi, v))
}
