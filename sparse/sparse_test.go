package sparse

import (
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
	"testing"
)

func TestVectorAdditiveStaging(t *testing.T) {
	v := NewVector(4)
	require.NoError(t, v.SetValues([]int{0, 1, 0}, []float64{1, 2, 3}, AddValues))
	assert.Equal(t, AddValues, v.Mode())
	// staged writes are invisible until assembly
	assert.Zero(t, v.Get(0))

	v.Assemble()
	assert.Equal(t, NotSetValues, v.Mode())
	assert.Equal(t, 4.0, v.Get(0))
	assert.Equal(t, 2.0, v.Get(1))

	require.NoError(t, v.SetValue(1, 5, AddValues))
	v.Assemble()
	assert.Equal(t, 7.0, v.Get(1))
	assert.Equal(t, []int{0, 1}, v.Indices())
}

func TestVectorInsertOverwrites(t *testing.T) {
	v := NewVector(3)
	require.NoError(t, v.SetValue(2, 1, AddValues))
	v.Assemble()
	require.NoError(t, v.SetValues([]int{2, 2}, []float64{8, 9}, InsertValues))
	v.Assemble()
	assert.Equal(t, 9.0, v.Get(2))
}

func TestVectorRejectsMixedModes(t *testing.T) {
	v := NewVector(3)
	require.NoError(t, v.SetValue(0, 1, InsertValues))
	err := v.SetValue(0, 1, AddValues)
	assert.ErrorIs(t, err, ErrMixedInsertMode)

	v.Assemble()
	assert.NoError(t, v.SetValue(0, 1, AddValues))
	// an empty write never conflicts
	assert.NoError(t, v.SetValues(nil, nil, InsertValues))
}

func TestVectorErrors(t *testing.T) {
	v := NewVector(2)
	assert.Error(t, v.SetValues([]int{0}, []float64{1, 2}, AddValues))
	assert.Error(t, v.SetValue(2, 1, AddValues))
	assert.Error(t, v.SetValue(-1, 1, AddValues))
	assert.Error(t, v.SetValue(0, 1, NotSetValues))
	assert.Error(t, v.AddVector(NewVector(3)))

	require.NoError(t, v.SetValue(0, 1, AddValues))
	assert.Error(t, v.AddVector(NewVector(2)))
}

func TestVectorAddAndDense(t *testing.T) {
	a, b := NewVector(3), NewVector(3)
	require.NoError(t, a.SetValues([]int{0, 1}, []float64{1, 2}, AddValues))
	require.NoError(t, b.SetValues([]int{1, 2}, []float64{3, 4}, AddValues))
	a.Assemble()
	b.Assemble()
	require.NoError(t, a.AddVector(b))

	d := a.Dense()
	assert.Equal(t, []float64{1, 5, 4}, d.RawVector().Data)

	a.Zero()
	assert.Empty(t, a.Indices())
}

func TestInsertModeString(t *testing.T) {
	assert.Equal(t, "ADD_VALUES", AddValues.String())
	assert.Equal(t, "INSERT_VALUES", InsertValues.String())
	assert.Equal(t, "NOT_SET_VALUES", NotSetValues.String())
	assert.Equal(t, "InsertMode(7)", InsertMode(7).String())
}

func TestMatrixAccumulates(t *testing.T) {
	m := NewMatrix(3)
	m.AddRow(0, []int{0, 1}, []float64{-1, 1})
	m.AddRow(0, []int{0, 2}, []float64{-2, 2})
	m.Add(1, 1, 4)

	cols, vals := m.Row(0)
	assert.Equal(t, []int{0, 1, 2}, cols)
	assert.Equal(t, []float64{-3, 1, 2}, vals)
	assert.Equal(t, 4, m.NonZeroCount())
	assert.Equal(t, []int{0, 1}, m.NonZeroRows())

	m.ZeroRow(0)
	m.Set(0, 0, 1)
	assert.Equal(t, 1.0, m.At(0, 0))
	assert.Zero(t, m.At(0, 1))

	assert.Panics(t, func() { m.Add(3, 0, 1) })
	assert.Panics(t, func() { m.AddRow(0, []int{0}, nil) })
}

func TestMatrixAddAndDense(t *testing.T) {
	a, b := NewMatrix(2), NewMatrix(2)
	a.Add(0, 0, 1)
	b.Add(0, 0, 2)
	b.Add(1, 0, 3)
	require.NoError(t, a.AddMatrix(b))
	assert.Error(t, a.AddMatrix(NewMatrix(3)))

	d := a.Dense()
	assert.Equal(t, 3.0, d.At(0, 0))
	assert.Equal(t, 3.0, d.At(1, 0))
	assert.Zero(t, d.At(1, 1))

	a.Zero()
	assert.Zero(t, a.NonZeroCount())
}

func TestMatrixCSR(t *testing.T) {
	m := NewMatrix(3)
	m.AddRow(0, []int{0, 1}, []float64{2, -1})
	m.AddRow(2, []int{2, 1}, []float64{4, -1})

	c := m.CSR()
	assert.Equal(t, 4, c.NNZ())
	assert.True(t, mat.Equal(m.Dense(), c))

	// CSR satisfies mat.Matrix, so gonum products work directly
	var y mat.VecDense
	y.MulVec(c, mat.NewVecDense(3, []float64{1, 1, 1}))
	assert.Equal(t, []float64{1, 0, 3}, y.RawVector().Data)

	m.ScaleRows([]float64{0.5, 1, 2})
	assert.Equal(t, -0.5, m.At(0, 1))
	assert.Equal(t, 8.0, m.At(2, 2))
	assert.Panics(t, func() { m.ScaleRows([]float64{1}) })
}

func TestMatrixRepeatedAddsMerge(t *testing.T) {
	m := NewMatrix(3)
	// the first column of a row is hit by every assembler
	for i := 0; i < 3; i++ {
		m.AddRow(1, []int{1, 0}, []float64{2, -1})
	}
	m.Add(2, 2, 0)
	assert.Equal(t, 3, m.NonZeroCount(), "explicit zeros are kept")

	c := m.CSR()
	assert.Equal(t, 3, c.NNZ())
	assert.Equal(t, 6.0, c.At(1, 1))
	assert.Equal(t, -3.0, c.At(1, 0))
	assert.True(t, mat.Equal(m.Dense(), c))

	m.Set(1, 1, 1)
	assert.Equal(t, 1.0, m.At(1, 1))
	assert.Equal(t, 6.0, c.At(1, 1), "CSR does not share storage")

	m.ScaleRows([]float64{1, 2, 1})
	cols, vals := m.Row(1)
	assert.Equal(t, []int{0, 1}, cols)
	assert.Equal(t, []float64{-6, 2}, vals)

	m.ZeroRow(1)
	assert.Equal(t, []int{2}, m.NonZeroRows())
	assert.Equal(t, 1, m.NonZeroCount())
	assert.Panics(t, func() { m.At(3, 0) })
}
