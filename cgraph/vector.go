package cgraph

import "fmt"

// Vector is the native numeric vector passed across the library boundary.
// Like Graph it is manually released; callers destroy what they allocate.
type Vector struct {
	data     []float64
	released bool
}

// NewVector allocates a zeroed vector of length n.
func NewVector(n int) *Vector {
	trackAlloc(kindVector)
	return &Vector{data: make([]float64, n)}
}

// VectorOf allocates a vector holding the given values.
func VectorOf(values ...float64) *Vector {
	trackAlloc(kindVector)
	return &Vector{data: append([]float64(nil), values...)}
}

// Len returns the vector length.
func (v *Vector) Len() int { return len(v.data) }

// At returns element i.
func (v *Vector) At(i int) float64 { return v.data[i] }

// Set stores x at element i.
func (v *Vector) Set(i int, x float64) { v.data[i] = x }

// Values returns a copy of the vector contents.
func (v *Vector) Values() []float64 { return append([]float64(nil), v.data...) }

// Destroy releases the vector storage. A second release is recorded by the
// allocation tracker.
func (v *Vector) Destroy() {
	if v.released {
		trackFault(kindVector)
		return
	}
	v.released = true
	v.data = nil
	trackFree(kindVector)
}

// Matrix is the native rectangular matrix, stored row-major.
type Matrix struct {
	rows, cols int
	data       []float64
	released   bool
}

// NewMatrix allocates a zeroed rows-by-cols matrix.
func NewMatrix(rows, cols int) *Matrix {
	trackAlloc(kindMatrix)
	return &Matrix{rows: rows, cols: cols, data: make([]float64, rows*cols)}
}

// Rows returns the row count.
func (m *Matrix) Rows() int { return m.rows }

// Cols returns the column count.
func (m *Matrix) Cols() int { return m.cols }

// At returns the element at row r, column c.
func (m *Matrix) At(r, c int) float64 { return m.data[r*m.cols+c] }

// Set stores x at row r, column c.
func (m *Matrix) Set(r, c int, x float64) { m.data[r*m.cols+c] = x }

// Destroy releases the matrix storage.
func (m *Matrix) Destroy() {
	if m.released {
		trackFault(kindMatrix)
		return
	}
	m.released = true
	m.data = nil
	trackFree(kindMatrix)
}

func (m *Matrix) String() string {
	return fmt.Sprintf("Matrix(%dx%d)", m.rows, m.cols)
}
