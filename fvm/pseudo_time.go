package fvm

import (
	"github.com/notargets/FVMetal/ad"
	"github.com/notargets/FVMetal/metrics"
	"github.com/notargets/FVMetal/sparse"
	"math"
)

// relChangeFloor keeps the relative change finite at zero potential
const relChangeFloor = 1e-10

// PseudoCapacitance is the pseudo time capacitance of n, C/T = sigma*L with
// L the cube root of the node volume
//
//	cap = sigma * (volume*zWidth)^(1/3) * tau / zWidth / totalNodes
func (r *Region) PseudoCapacitance(n *Node) float64 {
	return r.Conductance * math.Pow(n.Volume*n.ZWidth, 1.0/3.0) * r.cfg.PseudoTimeConstant /
		n.ZWidth / float64(r.totalNodes())
}

// PseudoTimeStepFunction adds -cap*(V-Vp)/dtau for every owned node into f.
// Regions on a low resistance pad write nothing.
func (r *Region) PseudoTimeStepFunction(x []float64, f *sparse.Vector, flag *sparse.InsertMode) error {
	barrier := SyncInsertMode(f, *flag)
	if r.LowResistancePad {
		*flag = sparse.AddValues
		return nil
	}

	dtau := r.cfg.PseudoTimeStep
	iy := make([]int, 0, len(r.owned))
	y := make([]float64, 0, len(r.owned))
	for _, n := range r.owned {
		cap := r.PseudoCapacitance(n)
		V, Vp := x[n.LocalIndex], n.Potential()
		iy = append(iy, n.GlobalIndex)
		y = append(y, -cap*(V-Vp)/dtau)
	}
	return r.addPass(metrics.PassPseudoFunction, f, flag, barrier, iy, y)
}

// PseudoTimeStepJacobian adds the diagonal derivative of the pseudo time
// term into jac
func (r *Region) PseudoTimeStepJacobian(x []float64, jac *sparse.Matrix, flag *sparse.InsertMode) {
	if r.LowResistancePad {
		*flag = sparse.AddValues
		return
	}
	r.law.SetADWidth(ad.Node)

	dtau := r.cfg.PseudoTimeStep
	for _, n := range r.owned {
		cap := r.PseudoCapacitance(n)
		V := ad.Variable(ad.Node, x[n.LocalIndex], 0)
		fV := ad.DivConst(ad.MulConst(ad.SubConst(V, n.Potential()), -cap), dtau)

		jac.Add(n.GlobalIndex, n.GlobalIndex, fV.Tangent(0))
	}
	r.jacobianPass(metrics.PassPseudoJacobian, flag, len(r.owned))
}

// PseudoTimeStepConvergenceTest counts the owned nodes whose pseudo time
// current exceeds the relaxed absolute tolerance while their relative
// change exceeds the relative tolerance. Zero means the region has settled.
func (r *Region) PseudoTimeStepConvergenceTest(x []float64) int {
	if r.LowResistancePad {
		r.metrics.Unconverged(0)
		return 0
	}

	absTol := r.cfg.AbsTolerance()
	relTol := r.cfg.RelativeTol
	dtau := r.cfg.PseudoTimeStep

	var unconverged int
	for _, n := range r.owned {
		cap := r.PseudoCapacitance(n)
		V, Vp := x[n.LocalIndex], n.Potential()

		fAbs := math.Abs(-cap * (V - Vp) / dtau)
		relChange := math.Abs(cap*(V-Vp)) / (math.Abs(V) + math.Abs(Vp) + relChangeFloor)
		if fAbs > absTol && relChange > relTol {
			unconverged++
		}
	}
	r.log.Debug("pseudo time convergence", "region", r.Name, "unconverged", unconverged,
		"owned", len(r.owned))
	r.metrics.Unconverged(unconverged)
	return unconverged
}
