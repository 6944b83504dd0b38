// Package fvm assembles the residual and Jacobian of a metal (resistive)
// region of a finite-volume device mesh solving div(J) = 0.
//
// A Region holds the nodes a worker sees, owned and ghost, and the edges
// between them. Every assembly pass reads the trial iterate x, indexed by
// node local index, and writes additive entries keyed by node global index.
// Only owned nodes receive rows. Committed potentials live in each node's
// NodeState and are changed only by UpdateSolution and SyncGhosts.
package fvm
