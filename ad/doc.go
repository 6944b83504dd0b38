// Package ad implements forward mode automatic differentiation with a small
// fixed width tangent vector. Assembly code builds the residual expression of
// a node or an edge out of Scalar values, marks the unknowns with
// SetTangent(dir, 1.0) and reads the exact Jacobian entries back with
// Tangent(dir).
package ad
