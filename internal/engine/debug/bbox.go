// Package debug provides debug visualization utilities.
package debug

import "github.com/Faultbox/solar-roi/pkg/math"

// BoxEdges indexes the 12 edges of a box given as 8 corners: bottom ring
// 0-3 then top ring 4-7, corner i+4 above corner i.
var BoxEdges = [12][2]int{
	{0, 1}, {1, 2}, {2, 3}, {3, 0},
	{4, 5}, {5, 6}, {6, 7}, {7, 4},
	{0, 4}, {1, 5}, {2, 6}, {3, 7},
}

// BoxWireframeVertexCount is the number of line vertices of a box wireframe (12 edges × 2).
const BoxWireframeVertexCount = 24

// BoxWireframe returns the 24 line endpoints of a box's edges.
func BoxWireframe(corners [8]math.Vec3) []math.Vec3 {
	out := make([]math.Vec3, 0, BoxWireframeVertexCount)
	for _, e := range BoxEdges {
		out = append(out, corners[e[0]], corners[e[1]])
	}
	return out
}

// OrientedBox returns the corners of a box of the given size centered
// on center and rotated by q. Size is measured along the rotated x, y and
// z axes.
func OrientedBox(center math.Vec3, q math.Quat, size math.Vec3) [8]math.Vec3 {
	hx, hy, hz := size.X/2, size.Y/2, size.Z/2
	local := [8]math.Vec3{
		{X: -hx, Y: -hy, Z: -hz}, {X: hx, Y: -hy, Z: -hz}, {X: hx, Y: hy, Z: -hz}, {X: -hx, Y: hy, Z: -hz},
		{X: -hx, Y: -hy, Z: hz}, {X: hx, Y: -hy, Z: hz}, {X: hx, Y: hy, Z: hz}, {X: -hx, Y: hy, Z: hz},
	}
	var out [8]math.Vec3
	for i, p := range local {
		out[i] = center.Add(q.Rotate(p))
	}
	return out
}

// DefaultPanelThickness is the height of the box drawn for a panel model.
const DefaultPanelThickness = 0.05
