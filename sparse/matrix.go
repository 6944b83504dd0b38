package sparse

import (
	"fmt"
	csr "github.com/james-bowman/sparse"
	"gonum.org/v1/gonum/mat"
	"sort"
)

// Matrix is a Jacobian accumulator keyed by (global row, global col), stored
// as a dictionary of keys. Add and AddRow sum into existing entries; a row may
// collect entries from several assemblers during one pass. Row oriented
// queries go through a compressed sparse row copy.
type Matrix struct {
	n   int
	dok *csr.DOK
}

// NewMatrix creates an empty n x n matrix
func NewMatrix(n int) *Matrix {
	return &Matrix{n: n, dok: csr.NewDOK(n, n)}
}

// Dims returns the global dimension
func (m *Matrix) Dims() int { return m.n }

func (m *Matrix) check(r, c int) {
	if r < 0 || r >= m.n || c < 0 || c >= m.n {
		panic(fmt.Sprintf("sparse: matrix index out of range: row=%d, col=%d (n=%d)", r, c, m.n))
	}
}

// Add sums v into entry (r, c)
func (m *Matrix) Add(r, c int, v float64) {
	m.check(r, c)
	m.dok.Set(r, c, m.dok.At(r, c)+v)
}

// AddRow sums vals[i] into entries (r, cols[i])
func (m *Matrix) AddRow(r int, cols []int, vals []float64) {
	if len(cols) != len(vals) {
		panic(fmt.Sprintf("sparse: AddRow with %d cols and %d values", len(cols), len(vals)))
	}
	for i, c := range cols {
		m.Add(r, c, vals[i])
	}
}

// Set overwrites entry (r, c)
func (m *Matrix) Set(r, c int, v float64) {
	m.check(r, c)
	m.dok.Set(r, c, v)
}

// ZeroRow removes every entry of row r, as boundary processing does before
// writing its own equation into that row
func (m *Matrix) ZeroRow(r int) {
	m.check(r, r)
	dok := csr.NewDOK(m.n, m.n)
	m.dok.DoNonZero(func(i, j int, v float64) {
		if i != r {
			dok.Set(i, j, v)
		}
	})
	m.dok = dok
}

// At returns entry (r, c)
func (m *Matrix) At(r, c int) float64 {
	m.check(r, c)
	return m.dok.At(r, c)
}

// Row returns the sorted column indices and values of row r
func (m *Matrix) Row(r int) ([]int, []float64) {
	m.check(r, r)
	c := m.dok.ToCSR()
	cols := make([]int, 0, c.RowNNZ(r))
	byCol := make(map[int]float64, c.RowNNZ(r))
	c.DoRowNonZero(r, func(_, j int, v float64) {
		cols = append(cols, j)
		byCol[j] = v
	})
	sort.Ints(cols)
	vals := make([]float64, len(cols))
	for i, j := range cols {
		vals[i] = byCol[j]
	}
	return cols, vals
}

// NonZeroRows returns the ascending indices of rows holding at least one
// entry
func (m *Matrix) NonZeroRows() []int {
	c := m.dok.ToCSR()
	rows := make([]int, 0)
	for r := 0; r < m.n; r++ {
		if c.RowNNZ(r) > 0 {
			rows = append(rows, r)
		}
	}
	return rows
}

// NonZeroCount returns the number of stored entries
func (m *Matrix) NonZeroCount() int { return m.dok.NNZ() }

// Zero removes all entries
func (m *Matrix) Zero() { m.dok = csr.NewDOK(m.n, m.n) }

// AddMatrix sums o into m
func (m *Matrix) AddMatrix(o *Matrix) error {
	if o.n != m.n {
		return fmt.Errorf("sparse: dimension mismatch %d != %d", m.n, o.n)
	}
	o.dok.DoNonZero(m.Add)
	return nil
}

// Dense returns the matrix as a gonum dense matrix
func (m *Matrix) Dense() *mat.Dense { return m.dok.ToDense() }

// ScaleRows multiplies every entry of row r by s[r]
func (m *Matrix) ScaleRows(s []float64) {
	if len(s) != m.n {
		panic(fmt.Sprintf("sparse: %d row scales for %d rows", len(s), m.n))
	}
	m.dok.DoNonZero(func(i, j int, v float64) {
		m.dok.Set(i, j, v*s[i])
	})
}

// CSR returns the matrix in compressed sparse row form. The result does not
// share storage with m.
func (m *Matrix) CSR() *csr.CSR { return m.dok.ToCSR() }
