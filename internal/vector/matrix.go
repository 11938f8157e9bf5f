// Package vector implements the row-major float64 matrix backing series
// values. The first dimension is aligned 1:1 with the date axis of the owning
// series; element-wise operations assume the caller has already reconciled
// row counts.
package vector

import "math"

// Matrix is a dense rows x cols float64 matrix in row-major order.
// A single-column matrix represents a scalar value series.
type Matrix struct {
	rows int
	cols int
	data []float64
}

// New creates a zero-filled matrix of the given shape. Shapes with cols < 1
// or rows < 0 are normalized to an empty single-column matrix.
func New(rows, cols int) *Matrix {
	if cols < 1 {
		cols = 1
	}
	if rows < 0 {
		rows = 0
	}

	return &Matrix{rows: rows, cols: cols, data: make([]float64, rows*cols)}
}

// FromSlice creates a single-column matrix sharing no memory with values.
func FromSlice(values []float64) *Matrix {
	m := New(len(values), 1)
	copy(m.data, values)

	return m
}

// FromRows creates a matrix from per-row value slices. All rows must have the
// same length; ragged input is truncated or zero-padded to the width of the
// first row.
func FromRows(rows [][]float64) *Matrix {
	if len(rows) == 0 {
		return New(0, 1)
	}

	m := New(len(rows), len(rows[0]))
	for i, row := range rows {
		copy(m.Row(i), row)
	}

	return m
}

// Rows returns the number of rows.
func (m *Matrix) Rows() int { return m.rows }

// Cols returns the number of columns.
func (m *Matrix) Cols() int { return m.cols }

// At returns the element at row i, column j.
func (m *Matrix) At(i, j int) float64 { return m.data[i*m.cols+j] }

// Set assigns the element at row i, column j.
func (m *Matrix) Set(i, j int, v float64) { m.data[i*m.cols+j] = v }

// Row returns the i-th row as a slice view into the matrix. Writes through
// the returned slice mutate the matrix.
func (m *Matrix) Row(i int) []float64 {
	return m.data[i*m.cols : (i+1)*m.cols]
}

// Col returns a copy of the j-th column.
func (m *Matrix) Col(j int) []float64 {
	out := make([]float64, m.rows)
	for i := range out {
		out[i] = m.data[i*m.cols+j]
	}

	return out
}

// Clone returns a deep copy of the matrix.
func (m *Matrix) Clone() *Matrix {
	c := &Matrix{rows: m.rows, cols: m.cols, data: make([]float64, len(m.data))}
	copy(c.data, m.data)

	return c
}

// Slice returns a new matrix holding rows [start, finish).
func (m *Matrix) Slice(start, finish int) *Matrix {
	out := New(finish-start, m.cols)
	copy(out.data, m.data[start*m.cols:finish*m.cols])

	return out
}

// AppendRow appends one row, zero-padding or truncating to the matrix width.
func (m *Matrix) AppendRow(row []float64) {
	padded := make([]float64, m.cols)
	copy(padded, row)
	m.data = append(m.data, padded...)
	m.rows++
}

// ReverseRows flips the row order in place.
func (m *Matrix) ReverseRows() {
	tmp := make([]float64, m.cols)
	for i, j := 0, m.rows-1; i < j; i, j = i+1, j-1 {
		copy(tmp, m.Row(i))
		copy(m.Row(i), m.Row(j))
		copy(m.Row(j), tmp)
	}
}

// Permute returns a new matrix whose i-th row is the perm[i]-th row of m.
func (m *Matrix) Permute(perm []int) *Matrix {
	out := New(len(perm), m.cols)
	for i, p := range perm {
		copy(out.Row(i), m.Row(p))
	}

	return out
}

// HStack concatenates matrices column-wise. All inputs must have the same
// number of rows.
func HStack(ms ...*Matrix) *Matrix {
	if len(ms) == 0 {
		return New(0, 1)
	}

	rows := ms[0].rows
	cols := 0
	for _, m := range ms {
		cols += m.cols
	}

	out := New(rows, cols)
	for i := 0; i < rows; i++ {
		dst := out.Row(i)
		off := 0
		for _, m := range ms {
			copy(dst[off:off+m.cols], m.Row(i))
			off += m.cols
		}
	}

	return out
}

// Fill sets every element to v.
func (m *Matrix) Fill(v float64) {
	for i := range m.data {
		m.data[i] = v
	}
}

// Equal reports whether both matrices have the same shape and elements.
// NaN elements are treated as unequal, matching float64 semantics.
func (m *Matrix) Equal(other *Matrix) bool {
	if m.rows != other.rows || m.cols != other.cols {
		return false
	}
	for i, v := range m.data {
		if v != other.data[i] {
			return false
		}
	}

	return true
}

type binOp func(a, b float64) float64

func (m *Matrix) zip(other *Matrix, op binOp) *Matrix {
	out := m.Clone()
	for i := range out.data {
		out.data[i] = op(m.data[i], other.data[i])
	}

	return out
}

func (m *Matrix) mapScalar(v float64, op binOp) *Matrix {
	out := m.Clone()
	for i := range out.data {
		out.data[i] = op(m.data[i], v)
	}

	return out
}

func add(a, b float64) float64 { return a + b }
func sub(a, b float64) float64 { return a - b }
func mul(a, b float64) float64 { return a * b }
func div(a, b float64) float64 { return a / b }

// Add returns m + other element-wise.
func (m *Matrix) Add(other *Matrix) *Matrix { return m.zip(other, add) }

// Sub returns m - other element-wise.
func (m *Matrix) Sub(other *Matrix) *Matrix { return m.zip(other, sub) }

// Mul returns m * other element-wise.
func (m *Matrix) Mul(other *Matrix) *Matrix { return m.zip(other, mul) }

// Div returns m / other element-wise. Division by zero propagates the
// IEEE-754 result, it is not guarded.
func (m *Matrix) Div(other *Matrix) *Matrix { return m.zip(other, div) }

// Pow returns m ** other element-wise.
func (m *Matrix) Pow(other *Matrix) *Matrix { return m.zip(other, math.Pow) }

// AddScalar returns m + v element-wise.
func (m *Matrix) AddScalar(v float64) *Matrix { return m.mapScalar(v, add) }

// SubScalar returns m - v element-wise.
func (m *Matrix) SubScalar(v float64) *Matrix { return m.mapScalar(v, sub) }

// MulScalar returns m * v element-wise.
func (m *Matrix) MulScalar(v float64) *Matrix { return m.mapScalar(v, mul) }

// DivScalar returns m / v element-wise, unguarded for v == 0.
func (m *Matrix) DivScalar(v float64) *Matrix { return m.mapScalar(v, div) }

// PowScalar returns m ** v element-wise.
func (m *Matrix) PowScalar(v float64) *Matrix { return m.mapScalar(v, math.Pow) }
