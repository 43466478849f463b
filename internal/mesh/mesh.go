// Package mesh builds closed box meshes for a layout and writes them as
// Wavefront OBJ.
package mesh

import (
	"errors"
	"fmt"

	"github.com/Faultbox/solar-roi/internal/design"
	"github.com/Faultbox/solar-roi/pkg/math"
)

// VerticesPerBox and FacesPerBox describe the fixed box topology.
const (
	VerticesPerBox = 8
	FacesPerBox    = 6
)

var (
	// ErrNoCells is returned when an array mesh is requested for no cells.
	ErrNoCells = errors.New("no panel cells")
	// ErrNotClosed is returned by CheckClosed.
	ErrNotClosed = errors.New("mesh is not closed")
)

// boxFaces lists the faces of one box with 1-based vertex numbers.
// v1..v4 is the top face, v5..v8 lies below v1..v4.
var boxFaces = [FacesPerBox][4]int{
	{1, 2, 3, 4}, // top
	{5, 6, 7, 8}, // bottom
	{1, 2, 6, 5},
	{2, 3, 7, 6},
	{3, 4, 8, 7},
	{4, 1, 5, 8},
}

// Mesh is a list of boxes in local frame coordinates. Face indices are
// 1-based and global across the mesh.
type Mesh struct {
	Vertices []math.Vec3
	Faces    [][4]int
}

// Boxes returns the number of boxes in the mesh.
func (m *Mesh) Boxes() int {
	return len(m.Vertices) / VerticesPerBox
}

// AppendBox adds a box whose top face is top and whose bottom face lies
// height below it along local z. A negative height puts the bottom face
// above, for frames whose z axis points into the ground.
func (m *Mesh) AppendBox(top [4]math.Vec3, height float64) {
	offset := len(m.Vertices)
	down := math.Vec3{Z: -height}

	m.Vertices = append(m.Vertices, top[:]...)
	for _, v := range top {
		m.Vertices = append(m.Vertices, v.Add(down))
	}
	for _, f := range boxFaces {
		m.Faces = append(m.Faces, [4]int{f[0] + offset, f[1] + offset, f[2] + offset, f[3] + offset})
	}
}

// RegionMesh returns the region as a single box of the given height, in
// frame coordinates. The bottom face lies below the region towards the
// ellipsoid, and the top ring winds counter-clockwise around the outward
// normal.
func RegionMesh(r design.Region, f design.LocalFrame, height float64) (*Mesh, error) {
	if err := r.Validate(); err != nil {
		return nil, fmt.Errorf("region mesh: %w", err)
	}

	var top [4]math.Vec3
	for i, c := range r.Corners() {
		top[i] = f.ToLocal(c)
	}
	sign := f.OutwardSign()
	if newell(top[:]).Z*sign < 0 {
		top[1], top[3] = top[3], top[1]
	}

	m := &Mesh{}
	m.AppendBox(top, height*sign)
	return m, nil
}

// ArrayMesh returns one box per cell. Each top face is the cell's panel
// footprint and the box extends height from it back towards the region
// plane.
func ArrayMesh(f design.LocalFrame, cells []design.PanelCell, panelWidth, panelLength, height float64) (*Mesh, error) {
	if len(cells) == 0 {
		return nil, ErrNoCells
	}

	down := height * f.OutwardSign()
	m := &Mesh{
		Vertices: make([]math.Vec3, 0, len(cells)*VerticesPerBox),
		Faces:    make([][4]int, 0, len(cells)*FacesPerBox),
	}
	for _, cell := range cells {
		m.AppendBox(f.PanelFootprint(cell, panelWidth, panelLength), down)
	}
	return m, nil
}

// CheckClosed verifies the box topology: every face references four
// distinct in-range vertices of its own box and every box edge is shared by
// exactly two faces.
func CheckClosed(m *Mesh) error {
	if len(m.Vertices)%VerticesPerBox != 0 {
		return fmt.Errorf("%w: %d vertices is not a whole number of boxes", ErrNotClosed, len(m.Vertices))
	}
	boxes := m.Boxes()
	if len(m.Faces) != boxes*FacesPerBox {
		return fmt.Errorf("%w: %d faces for %d boxes", ErrNotClosed, len(m.Faces), boxes)
	}

	for b := 0; b < boxes; b++ {
		lo, hi := b*VerticesPerBox+1, (b+1)*VerticesPerBox
		edges := make(map[[2]int]int)

		for fi := b * FacesPerBox; fi < (b+1)*FacesPerBox; fi++ {
			face := m.Faces[fi]
			seen := make(map[int]bool, 4)
			for k, idx := range face {
				if idx < lo || idx > hi {
					return fmt.Errorf("%w: face %d index %d outside box %d", ErrNotClosed, fi+1, idx, b)
				}
				if seen[idx] {
					return fmt.Errorf("%w: face %d repeats index %d", ErrNotClosed, fi+1, idx)
				}
				seen[idx] = true

				a, c := idx, face[(k+1)%4]
				if a > c {
					a, c = c, a
				}
				edges[[2]int{a, c}]++
			}
		}

		if len(edges) != 12 {
			return fmt.Errorf("%w: box %d has %d edges", ErrNotClosed, b, len(edges))
		}
		for e, n := range edges {
			if n != 2 {
				return fmt.Errorf("%w: box %d edge %v used by %d faces", ErrNotClosed, b, e, n)
			}
		}
	}
	return nil
}

// TopNormal returns the unnormalized normal of the top face of box b.
func TopNormal(m *Mesh, b int) math.Vec3 {
	face := m.Faces[b*FacesPerBox]
	ring := make([]math.Vec3, 4)
	for i, idx := range face {
		ring[i] = m.Vertices[idx-1]
	}
	return newell(ring)
}

// newell computes a polygon normal that tolerates slightly non-planar rings.
func newell(ring []math.Vec3) math.Vec3 {
	var n math.Vec3
	for i, cur := range ring {
		next := ring[(i+1)%len(ring)]
		n.X += (cur.Y - next.Y) * (cur.Z + next.Z)
		n.Y += (cur.Z - next.Z) * (cur.X + next.X)
		n.Z += (cur.X - next.X) * (cur.Y + next.Y)
	}
	return n
}
