package core

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNotInvertible is returned when inverting a matrix whose determinant is approximately zero
var ErrNotInvertible = errors.New("matrix is not invertible")

// Matrix is a square matrix of size 2, 3 or 4.
// Only 4x4 matrices are used as transforms; the smaller sizes exist for
// minors and cofactors during determinant expansion.
type Matrix struct {
	size int
	data [4][4]float64
}

// Identity returns the 4x4 identity matrix
func Identity() Matrix {
	m := Matrix{size: 4}
	for i := 0; i < 4; i++ {
		m.data[i][i] = 1
	}
	return m
}

// NewMatrix creates a matrix from rows. The rows must form a square matrix of size 2, 3 or 4.
func NewMatrix(rows [][]float64) (Matrix, error) {
	size := len(rows)
	if size < 2 || size > 4 {
		return Matrix{}, fmt.Errorf("unsupported matrix size %d", size)
	}

	m := Matrix{size: size}
	for r, row := range rows {
		if len(row) != size {
			return Matrix{}, fmt.Errorf("row %d has %d columns, expected %d", r, len(row), size)
		}
		copy(m.data[r][:size], row)
	}
	return m, nil
}

// newMatrix4 builds a 4x4 matrix from a literal grid
func newMatrix4(data [4][4]float64) Matrix {
	return Matrix{size: 4, data: data}
}

// Size returns the number of rows (and columns)
func (m Matrix) Size() int {
	return m.size
}

// At returns the element at row r and column c
func (m Matrix) At(r, c int) float64 {
	return m.data[r][c]
}

func (m Matrix) mustBe4x4(op string) {
	if m.size != 4 {
		panic(fmt.Sprintf("core: %s requires a 4x4 matrix, got %dx%d", op, m.size, m.size))
	}
}

// Multiply returns the product m * other. Both matrices must be 4x4.
func (m Matrix) Multiply(other Matrix) Matrix {
	m.mustBe4x4("Multiply")
	other.mustBe4x4("Multiply")

	result := Matrix{size: 4}
	for r := 0; r < 4; r++ {
		for c := 0; c < 4; c++ {
			result.data[r][c] = m.data[r][0]*other.data[0][c] +
				m.data[r][1]*other.data[1][c] +
				m.data[r][2]*other.data[2][c] +
				m.data[r][3]*other.data[3][c]
		}
	}
	return result
}

// MultiplyPoint transforms p as a point (w = 1), so translation applies
func (m Matrix) MultiplyPoint(p Vec3) Vec3 {
	m.mustBe4x4("MultiplyPoint")
	return m.multiplyHomogeneous(p, 1)
}

// MultiplyVector transforms v as a direction (w = 0), so translation is ignored
func (m Matrix) MultiplyVector(v Vec3) Vec3 {
	m.mustBe4x4("MultiplyVector")
	return m.multiplyHomogeneous(v, 0)
}

func (m Matrix) multiplyHomogeneous(v Vec3, w float64) Vec3 {
	return Vec3{
		X: m.data[0][0]*v.X + m.data[0][1]*v.Y + m.data[0][2]*v.Z + m.data[0][3]*w,
		Y: m.data[1][0]*v.X + m.data[1][1]*v.Y + m.data[1][2]*v.Z + m.data[1][3]*w,
		Z: m.data[2][0]*v.X + m.data[2][1]*v.Y + m.data[2][2]*v.Z + m.data[2][3]*w,
	}
}

// Transpose returns the matrix with rows and columns swapped
func (m Matrix) Transpose() Matrix {
	result := Matrix{size: m.size}
	for r := 0; r < m.size; r++ {
		for c := 0; c < m.size; c++ {
			result.data[r][c] = m.data[c][r]
		}
	}
	return result
}

// Submatrix returns a copy of m with row and column removed
func (m Matrix) Submatrix(row, col int) Matrix {
	if m.size < 3 {
		panic(fmt.Sprintf("core: Submatrix requires a 3x3 or 4x4 matrix, got %dx%d", m.size, m.size))
	}

	result := Matrix{size: m.size - 1}
	for r := 0; r < result.size; r++ {
		srcRow := r
		if srcRow >= row {
			srcRow++
		}
		for c := 0; c < result.size; c++ {
			srcCol := c
			if srcCol >= col {
				srcCol++
			}
			result.data[r][c] = m.data[srcRow][srcCol]
		}
	}
	return result
}

// Minor returns the determinant of the submatrix at (row, col)
func (m Matrix) Minor(row, col int) float64 {
	return m.Submatrix(row, col).Determinant()
}

// Cofactor returns the minor at (row, col), negated when row+col is odd
func (m Matrix) Cofactor(row, col int) float64 {
	minor := m.Minor(row, col)
	if (row+col)%2 == 1 {
		return -minor
	}
	return minor
}

// Determinant computes the determinant by cofactor expansion along the first row
func (m Matrix) Determinant() float64 {
	if m.size == 2 {
		return m.data[0][0]*m.data[1][1] - m.data[0][1]*m.data[1][0]
	}

	det := 0.0
	for c := 0; c < m.size; c++ {
		det += m.data[0][c] * m.Cofactor(0, c)
	}
	return det
}

// IsInvertible reports whether the determinant is not approximately zero
func (m Matrix) IsInvertible() bool {
	return !ApproxEqual(m.Determinant(), 0)
}

// Inverse returns the inverse of a 4x4 matrix
func (m Matrix) Inverse() (Matrix, error) {
	m.mustBe4x4("Inverse")

	det := m.Determinant()
	if ApproxEqual(det, 0) {
		return Matrix{}, fmt.Errorf("%w: determinant %g", ErrNotInvertible, det)
	}

	result := Matrix{size: 4}
	for r := 0; r < 4; r++ {
		for c := 0; c < 4; c++ {
			// [c][r] writes the transpose of the cofactor matrix
			result.data[c][r] = m.Cofactor(r, c) / det
		}
	}
	return result, nil
}

// Equals compares two matrices element-wise within Epsilon
func (m Matrix) Equals(other Matrix) bool {
	if m.size != other.size {
		return false
	}
	for r := 0; r < m.size; r++ {
		for c := 0; c < m.size; c++ {
			if !ApproxEqual(m.data[r][c], other.data[r][c]) {
				return false
			}
		}
	}
	return true
}

func (m Matrix) String() string {
	var sb strings.Builder
	for r := 0; r < m.size; r++ {
		sb.WriteString("|")
		for c := 0; c < m.size; c++ {
			fmt.Fprintf(&sb, " %9.5f", m.data[r][c])
		}
		sb.WriteString(" |\n")
	}
	return sb.String()
}
