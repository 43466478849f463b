package math

// Mat3 is a 3x3 matrix in column-major order.
// Column i occupies indices 3i..3i+2.
type Mat3 [9]float64

// Identity3 returns the 3x3 identity matrix.
func Identity3() Mat3 {
	return Mat3{
		1, 0, 0,
		0, 1, 0,
		0, 0, 1,
	}
}

// FromBasis builds the matrix whose columns are x, y and z.
func FromBasis(x, y, z Vec3) Mat3 {
	return Mat3{
		x.X, x.Y, x.Z,
		y.X, y.Y, y.Z,
		z.X, z.Y, z.Z,
	}
}

// Col returns column i (0, 1 or 2).
func (m Mat3) Col(i int) Vec3 {
	return Vec3{m[3*i], m[3*i+1], m[3*i+2]}
}

// At returns the element at row r, column c.
func (m Mat3) At(r, c int) float64 {
	return m[3*c+r]
}

// MulVec3 returns m * v.
func (m Mat3) MulVec3(v Vec3) Vec3 {
	return m.Col(0).Scale(v.X).Add(m.Col(1).Scale(v.Y)).Add(m.Col(2).Scale(v.Z))
}

// Transpose returns the transposed matrix. For a rotation this is its inverse.
func (m Mat3) Transpose() Mat3 {
	return Mat3{
		m[0], m[3], m[6],
		m[1], m[4], m[7],
		m[2], m[5], m[8],
	}
}

// Det returns the determinant.
func (m Mat3) Det() float64 {
	return m.Col(0).Dot(m.Col(1).Cross(m.Col(2)))
}

// ToMat4 embeds m into the upper-left corner of a Mat4.
func (m Mat3) ToMat4() Mat4 {
	return Mat4{
		m[0], m[1], m[2], 0,
		m[3], m[4], m[5], 0,
		m[6], m[7], m[8], 0,
		0, 0, 0, 1,
	}
}
