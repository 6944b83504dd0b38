package fvm

import (
	"fmt"
	"github.com/notargets/FVMetal/metrics"
	"github.com/notargets/FVMetal/sparse"
)

// FillValue writes the committed potential of every owned node into x and
// its row scaling 1/(sigma*volume) into L, both keyed by global index and
// overwriting
func (r *Region) FillValue(x, L *sparse.Vector) error {
	ix := make([]int, 0, len(r.owned))
	y := make([]float64, 0, len(r.owned))
	s := make([]float64, 0, len(r.owned))
	for _, n := range r.owned {
		ix = append(ix, n.GlobalIndex)
		y = append(y, n.Potential())
		s = append(s, 1/(r.Conductance*n.Volume))
	}
	if len(ix) == 0 {
		return nil
	}
	if err := x.SetValues(ix, y, sparse.InsertValues); err != nil {
		return fmt.Errorf("region %s: fill solution: %w", r.Name, err)
	}
	if err := L.SetValues(ix, s, sparse.InsertValues); err != nil {
		return fmt.Errorf("region %s: fill scaling: %w", r.Name, err)
	}
	r.metrics.Pass(metrics.PassFill, metrics.KindResidual, len(ix))
	return nil
}
