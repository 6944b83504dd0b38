package fvm

import (
	"fmt"
	"github.com/notargets/FVMetal/metrics"
)

// UpdateSolution commits the accepted iterate lxx, indexed by local index,
// into every owned node: previous takes the committed value, current takes
// lxx. Call once per accepted iterate, after the solve and before the next
// assembly. lxx must cover every owned local index, as it does for the
// assembly passes; a shorter vector panics.
func (r *Region) UpdateSolution(lxx []float64) {
	for _, n := range r.owned {
		n.commit(lxx[n.LocalIndex])
	}
	r.metrics.Count(metrics.PassUpdate)
}

// SyncGhost commits a value received from the owning worker into a ghost
// node
func (r *Region) SyncGhost(n *Node, v float64) error {
	if !r.contains(n) {
		return fmt.Errorf("region %s: sync node %d: %w", r.Name, n.GlobalIndex, ErrNodeNotInRegion)
	}
	if n.Owned {
		return fmt.Errorf("region %s: sync node %d: %w", r.Name, n.GlobalIndex, ErrOwnedNode)
	}
	n.commit(v)
	return nil
}

// SyncGhosts commits lxx into every ghost node after a ghost exchange and
// returns the number of ghosts updated. Nothing is committed when lxx does
// not cover every ghost.
func (r *Region) SyncGhosts(lxx []float64) (int, error) {
	var ghosts []*Node
	for _, n := range r.nodes {
		if n.Owned {
			continue
		}
		if n.LocalIndex < 0 || n.LocalIndex >= len(lxx) {
			return 0, fmt.Errorf("region %s: sync node %d at local index %d of %d: %w",
				r.Name, n.GlobalIndex, n.LocalIndex, len(lxx), ErrShortIterate)
		}
		ghosts = append(ghosts, n)
	}
	for _, n := range ghosts {
		n.commit(lxx[n.LocalIndex])
	}
	r.metrics.Count(metrics.PassSyncGhosts)
	return len(ghosts), nil
}
