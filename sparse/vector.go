package sparse

import (
	"errors"
	"fmt"
	"gonum.org/v1/gonum/mat"
	"sort"
)

// InsertMode records how pending writes combine with stored values
type InsertMode uint8

const (
	NotSetValues InsertMode = iota // no write since the last assembly
	InsertValues                   // writes overwrite the stored value
	AddValues                      // writes are summed into the stored value
)

func (m InsertMode) String() string {
	switch m {
	case NotSetValues:
		return "NOT_SET_VALUES"
	case InsertValues:
		return "INSERT_VALUES"
	case AddValues:
		return "ADD_VALUES"
	}
	return fmt.Sprintf("InsertMode(%d)", uint8(m))
}

// ErrMixedInsertMode is returned when a write uses a different insert mode
// than the writes still pending on the vector. Call Assemble in between.
var ErrMixedInsertMode = errors.New("sparse: mixed insert modes without assembly")

// Vector is a residual accumulator keyed by global row index. Writes are
// staged and become visible to Get only after Assemble, so overwrite and
// additive writes can not be interleaved silently.
type Vector struct {
	n       int
	values  map[int]float64
	pending map[int]float64
	mode    InsertMode
}

// NewVector creates an empty vector of global length n
func NewVector(n int) *Vector {
	return &Vector{
		n:       n,
		values:  make(map[int]float64),
		pending: make(map[int]float64),
	}
}

// Len returns the global length
func (v *Vector) Len() int { return v.n }

// Mode returns the insert mode of the pending writes
func (v *Vector) Mode() InsertMode { return v.mode }

// SetValues stages y[i] at global index ix[i] using mode
func (v *Vector) SetValues(ix []int, y []float64, mode InsertMode) error {
	if len(ix) != len(y) {
		return fmt.Errorf("sparse: %d indices for %d values", len(ix), len(y))
	}
	if mode == NotSetValues {
		return fmt.Errorf("sparse: write with %s", mode)
	}
	if len(ix) == 0 {
		return nil
	}
	if v.mode != NotSetValues && v.mode != mode {
		return fmt.Errorf("%w: pending %s, requested %s", ErrMixedInsertMode, v.mode, mode)
	}
	for _, row := range ix {
		if row < 0 || row >= v.n {
			return fmt.Errorf("sparse: index %d out of range [0,%d)", row, v.n)
		}
	}
	for i, row := range ix {
		if mode == AddValues {
			v.pending[row] += y[i]
		} else {
			v.pending[row] = y[i]
		}
	}
	v.mode = mode
	return nil
}

// SetValue stages a single value
func (v *Vector) SetValue(row int, y float64, mode InsertMode) error {
	return v.SetValues([]int{row}, []float64{y}, mode)
}

// Assemble applies the pending writes and resets the pending mode
func (v *Vector) Assemble() {
	for row, y := range v.pending {
		if v.mode == AddValues {
			v.values[row] += y
		} else {
			v.values[row] = y
		}
	}
	clear(v.pending)
	v.mode = NotSetValues
}

// Get returns the assembled value at global index row
func (v *Vector) Get(row int) float64 { return v.values[row] }

// Zero clears assembled and pending values
func (v *Vector) Zero() {
	clear(v.values)
	clear(v.pending)
	v.mode = NotSetValues
}

// Indices returns the sorted global indices holding an assembled entry
func (v *Vector) Indices() []int {
	ix := make([]int, 0, len(v.values))
	for row := range v.values {
		ix = append(ix, row)
	}
	sort.Ints(ix)
	return ix
}

// AddVector sums the assembled values of o into v. Both must be assembled.
func (v *Vector) AddVector(o *Vector) error {
	if o.n != v.n {
		return fmt.Errorf("sparse: length mismatch %d != %d", v.n, o.n)
	}
	if len(v.pending) > 0 || len(o.pending) > 0 {
		return fmt.Errorf("sparse: AddVector on unassembled vector")
	}
	for row, y := range o.values {
		v.values[row] += y
	}
	return nil
}

// Dense returns the assembled values as a gonum vector
func (v *Vector) Dense() *mat.VecDense {
	d := mat.NewVecDense(v.n, nil)
	for row, y := range v.values {
		d.SetVec(row, y)
	}
	return d
}
