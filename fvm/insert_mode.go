package fvm

import (
	"fmt"
	"github.com/notargets/FVMetal/metrics"
	"github.com/notargets/FVMetal/sparse"
)

// SyncInsertMode completes the pending writes of f when the last writer used
// a mode other than AddValues, so an additive pass can start. It reports
// whether the barrier ran.
func SyncInsertMode(f *sparse.Vector, flag sparse.InsertMode) bool {
	if flag != sparse.AddValues && flag != sparse.NotSetValues {
		f.Assemble()
		return true
	}
	return false
}

// addPass writes one buffered additive residual pass and leaves the flag in
// AddValues
func (r *Region) addPass(pass string, f *sparse.Vector, flag *sparse.InsertMode, barrier bool,
	iy []int, y []float64) error {
	if err := f.SetValues(iy, y, sparse.AddValues); err != nil {
		return fmt.Errorf("region %s: %s: %w", r.Name, pass, err)
	}
	*flag = sparse.AddValues
	r.log.Debug("residual pass", "region", r.Name, "pass", pass, "entries", len(iy), "barrier", barrier)
	r.metrics.Pass(pass, metrics.KindResidual, len(iy))
	return nil
}

func (r *Region) jacobianPass(pass string, flag *sparse.InsertMode, entries int) {
	*flag = sparse.AddValues
	r.log.Debug("jacobian pass", "region", r.Name, "pass", pass, "entries", entries)
	r.metrics.Pass(pass, metrics.KindJacobian, entries)
}
