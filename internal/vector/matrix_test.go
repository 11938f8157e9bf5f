package vector

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewShapeNormalization(t *testing.T) {
	m := New(3, 2)
	require.Equal(t, 3, m.Rows())
	require.Equal(t, 2, m.Cols())

	m = New(-1, 0)
	require.Equal(t, 0, m.Rows())
	require.Equal(t, 1, m.Cols())
}

func TestFromSliceCopies(t *testing.T) {
	src := []float64{1, 2, 3}
	m := FromSlice(src)

	require.Equal(t, 3, m.Rows())
	require.Equal(t, 1, m.Cols())

	src[0] = 99
	require.Equal(t, 1.0, m.At(0, 0))
}

func TestFromRows(t *testing.T) {
	m := FromRows([][]float64{{1, 2}, {3, 4}, {5, 6}})

	require.Equal(t, 3, m.Rows())
	require.Equal(t, 2, m.Cols())
	require.Equal(t, 4.0, m.At(1, 1))

	empty := FromRows(nil)
	require.Equal(t, 0, empty.Rows())
	require.Equal(t, 1, empty.Cols())
}

func TestRowIsLiveView(t *testing.T) {
	m := FromRows([][]float64{{1, 2}, {3, 4}})

	row := m.Row(0)
	row[1] = 99
	require.Equal(t, 99.0, m.At(0, 1))
}

func TestColIsCopy(t *testing.T) {
	m := FromRows([][]float64{{1, 2}, {3, 4}})

	col := m.Col(1)
	require.Equal(t, []float64{2, 4}, col)

	col[0] = 99
	require.Equal(t, 2.0, m.At(0, 1))
}

func TestCloneIndependence(t *testing.T) {
	m := FromSlice([]float64{1, 2})
	c := m.Clone()

	c.Set(0, 0, 99)
	require.Equal(t, 1.0, m.At(0, 0))
	require.Equal(t, 99.0, c.At(0, 0))
}

func TestSlice(t *testing.T) {
	m := FromSlice([]float64{1, 2, 3, 4, 5})

	s := m.Slice(1, 4)
	require.Equal(t, 3, s.Rows())
	require.Equal(t, []float64{2}, s.Row(0))
	require.Equal(t, []float64{4}, s.Row(2))

	s.Set(0, 0, 99)
	require.Equal(t, 2.0, m.At(1, 0))
}

func TestAppendRow(t *testing.T) {
	m := FromRows([][]float64{{1, 2}})

	m.AppendRow([]float64{3, 4})
	require.Equal(t, 2, m.Rows())
	require.Equal(t, []float64{3, 4}, m.Row(1))

	// Short rows are zero-padded, long rows truncated.
	m.AppendRow([]float64{5})
	require.Equal(t, []float64{5, 0}, m.Row(2))

	m.AppendRow([]float64{6, 7, 8})
	require.Equal(t, []float64{6, 7}, m.Row(3))
}

func TestReverseRows(t *testing.T) {
	m := FromRows([][]float64{{1, 10}, {2, 20}, {3, 30}})

	m.ReverseRows()
	require.Equal(t, []float64{3, 30}, m.Row(0))
	require.Equal(t, []float64{2, 20}, m.Row(1))
	require.Equal(t, []float64{1, 10}, m.Row(2))

	// Reversing twice restores the original.
	m.ReverseRows()
	require.Equal(t, []float64{1, 10}, m.Row(0))
}

func TestPermute(t *testing.T) {
	m := FromSlice([]float64{10, 20, 30})

	p := m.Permute([]int{2, 0, 1})
	require.Equal(t, []float64{30}, p.Row(0))
	require.Equal(t, []float64{10}, p.Row(1))
	require.Equal(t, []float64{20}, p.Row(2))
}

func TestHStack(t *testing.T) {
	a := FromSlice([]float64{1, 2})
	b := FromRows([][]float64{{10, 100}, {20, 200}})

	out := HStack(a, b)
	require.Equal(t, 2, out.Rows())
	require.Equal(t, 3, out.Cols())
	require.Equal(t, []float64{1, 10, 100}, out.Row(0))
	require.Equal(t, []float64{2, 20, 200}, out.Row(1))
}

func TestEqual(t *testing.T) {
	a := FromSlice([]float64{1, 2})
	b := FromSlice([]float64{1, 2})
	require.True(t, a.Equal(b))

	b.Set(1, 0, 3)
	require.False(t, a.Equal(b))

	require.False(t, a.Equal(FromSlice([]float64{1})))

	nan := FromSlice([]float64{math.NaN()})
	require.False(t, nan.Equal(nan.Clone()))
}

func TestElementWiseOps(t *testing.T) {
	a := FromSlice([]float64{6, 8})
	b := FromSlice([]float64{2, 4})

	require.Equal(t, []float64{8, 12}, a.Add(b).Col(0))
	require.Equal(t, []float64{4, 4}, a.Sub(b).Col(0))
	require.Equal(t, []float64{12, 32}, a.Mul(b).Col(0))
	require.Equal(t, []float64{3, 2}, a.Div(b).Col(0))
	require.Equal(t, []float64{36, 4096}, a.Pow(b).Col(0))

	// Inputs are untouched.
	require.Equal(t, []float64{6, 8}, a.Col(0))
}

func TestScalarOps(t *testing.T) {
	a := FromSlice([]float64{6, 8})

	require.Equal(t, []float64{8, 10}, a.AddScalar(2).Col(0))
	require.Equal(t, []float64{4, 6}, a.SubScalar(2).Col(0))
	require.Equal(t, []float64{12, 16}, a.MulScalar(2).Col(0))
	require.Equal(t, []float64{3, 4}, a.DivScalar(2).Col(0))
	require.Equal(t, []float64{36, 64}, a.PowScalar(2).Col(0))
}

func TestDivisionByZeroUnguarded(t *testing.T) {
	a := FromSlice([]float64{1, 0})
	b := FromSlice([]float64{0, 0})

	out := a.Div(b)
	require.True(t, math.IsInf(out.At(0, 0), 1))
	require.True(t, math.IsNaN(out.At(1, 0)))
}

func TestFill(t *testing.T) {
	m := New(2, 2)
	m.Fill(7)

	require.Equal(t, []float64{7, 7}, m.Row(0))
	require.Equal(t, []float64{7, 7}, m.Row(1))
}
