package fvm

import (
	"github.com/notargets/FVMetal/ad"
	"github.com/notargets/FVMetal/metrics"
	"github.com/notargets/FVMetal/sparse"
	"math"
)

// edgeResiduals appends the flux f = J(E,T)*|A| of every edge, +f to node 1
// and -f to node 2, skipping ghost rows
func (r *Region) edgeResiduals(x []float64, iy []int, y []float64) ([]int, []float64) {
	T := r.Temperature
	for _, e := range r.edges {
		V1, V2 := x[e.N1.LocalIndex], x[e.N2.LocalIndex]
		E := (V2 - V1) / e.Distance
		S := math.Abs(e.Area)
		f := r.law.Current(E, T) * S

		if e.N1.Owned {
			iy = append(iy, e.N1.GlobalIndex)
			y = append(y, f)
		}
		if e.N2.Owned {
			iy = append(iy, e.N2.GlobalIndex)
			y = append(y, -f)
		}
	}
	return iy, y
}

// edgeJacobian adds [df/dV1, df/dV2] to the node 1 row and its negation to
// the node 2 row. Returns the number of entries written.
func (r *Region) edgeJacobian(x []float64, jac *sparse.Matrix) int {
	r.law.SetADWidth(ad.Edge)
	T := r.Temperature
	var entries int
	for _, e := range r.edges {
		cols := []int{e.N1.GlobalIndex, e.N2.GlobalIndex}

		V1 := ad.Variable(ad.Edge, x[e.N1.LocalIndex], 0)
		V2 := ad.Variable(ad.Edge, x[e.N2.LocalIndex], 1)
		E := ad.DivConst(ad.Sub(V2, V1), e.Distance)
		S := math.Abs(e.Area)
		f := ad.MulConst(r.law.CurrentAD(E, T), S)

		if e.N1.Owned {
			jac.AddRow(e.N1.GlobalIndex, cols, f.Gradient())
			entries += 2
		}
		if e.N2.Owned {
			jac.AddRow(e.N2.GlobalIndex, cols, ad.Neg(f).Gradient())
			entries += 2
		}
	}
	return entries
}

// EdgeFunction adds the edge flux residual of x into f
func (r *Region) EdgeFunction(x []float64, f *sparse.Vector, flag *sparse.InsertMode) error {
	barrier := SyncInsertMode(f, *flag)
	iy, y := r.edgeResiduals(x, make([]int, 0, 2*len(r.edges)), make([]float64, 0, 2*len(r.edges)))
	return r.addPass(metrics.PassEdgeFunction, f, flag, barrier, iy, y)
}

// EdgeJacobian adds the edge flux Jacobian of x into jac
func (r *Region) EdgeJacobian(x []float64, jac *sparse.Matrix, flag *sparse.InsertMode) {
	n := r.edgeJacobian(x, jac)
	r.law.SetADWidth(ad.Node)
	r.jacobianPass(metrics.PassEdgeJacobian, flag, n)
}
