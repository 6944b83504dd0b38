package fvm

import (
	"github.com/notargets/FVMetal/ad"
	"github.com/notargets/FVMetal/metrics"
	"github.com/notargets/FVMetal/sparse"
)

// Function adds the edge flux and lumped RC residuals of x into f in a
// single additive pass. Boundary conditions are applied by the caller
// afterwards.
func (r *Region) Function(x []float64, f *sparse.Vector, flag *sparse.InsertMode) error {
	barrier := SyncInsertMode(f, *flag)

	iy := make([]int, 0, 2*len(r.edges)+len(r.owned))
	y := make([]float64, 0, cap(iy))
	iy, y = r.edgeResiduals(x, iy, y)
	iy, y = r.lumpedResiduals(x, iy, y)

	return r.addPass(metrics.PassFunction, f, flag, barrier, iy, y)
}

// Jacobian adds the edge flux and lumped RC Jacobian of x into jac. The
// material binding is left at the single node width.
func (r *Region) Jacobian(x []float64, jac *sparse.Matrix, flag *sparse.InsertMode) {
	entries := r.edgeJacobian(x, jac)
	r.law.SetADWidth(ad.Node)
	entries += r.lumpedJacobian(x, jac)
	r.jacobianPass(metrics.PassJacobian, flag, entries)
}
