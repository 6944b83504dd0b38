package fvm

import (
	"github.com/notargets/FVMetal/ad"
	"github.com/notargets/FVMetal/metrics"
	"github.com/notargets/FVMetal/sparse"
)

// LumpedElement returns the per node capacitance and resistance of a lumped
// RC network shared by n nodes. The n+1 parallel branches add up to the
// network's capacitance and resistance for any n.
func LumpedElement(capacitance, resistance float64, n int) (cap, res float64) {
	return capacitance / float64(n+1), resistance * float64(n+1)
}

func (r *Region) lumped() (cap, res float64) {
	return LumpedElement(r.AuxCapacitance, r.AuxResistance, r.ConnectedNodes)
}

// lumpedResiduals appends -cap*(V-Vp)/dt - (V-Vp)/res for every owned node
func (r *Region) lumpedResiduals(x []float64, iy []int, y []float64) ([]int, []float64) {
	if r.LowResistancePad {
		return iy, y
	}
	cap, res := r.lumped()
	dt := r.cfg.TimeStep
	for _, n := range r.owned {
		V, Vp := x[n.LocalIndex], n.Potential()
		current := -cap*(V-Vp)/dt - (V-Vp)/res

		iy = append(iy, n.GlobalIndex)
		y = append(y, current)
	}
	return iy, y
}

// lumpedJacobian adds the diagonal derivative of the lumped current
func (r *Region) lumpedJacobian(x []float64, jac *sparse.Matrix) int {
	if r.LowResistancePad {
		return 0
	}
	r.law.SetADWidth(ad.Node)
	cap, res := r.lumped()
	dt := r.cfg.TimeStep
	for _, n := range r.owned {
		dV := ad.SubConst(ad.Variable(ad.Node, x[n.LocalIndex], 0), n.Potential())
		current := ad.Sub(ad.DivConst(ad.MulConst(dV, -cap), dt), ad.DivConst(dV, res))

		jac.Add(n.GlobalIndex, n.GlobalIndex, current.Tangent(0))
	}
	return len(r.owned)
}

// LumpedFunction adds the lumped RC residual of x into f
func (r *Region) LumpedFunction(x []float64, f *sparse.Vector, flag *sparse.InsertMode) error {
	barrier := SyncInsertMode(f, *flag)
	iy, y := r.lumpedResiduals(x, nil, nil)
	return r.addPass(metrics.PassLumpedFunction, f, flag, barrier, iy, y)
}

// LumpedJacobian adds the lumped RC Jacobian of x into jac
func (r *Region) LumpedJacobian(x []float64, jac *sparse.Matrix, flag *sparse.InsertMode) {
	r.jacobianPass(metrics.PassLumpedJacobian, flag, r.lumpedJacobian(x, jac))
}
