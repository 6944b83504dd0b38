package fvm

import (
	"github.com/notargets/FVMetal/config"
	"github.com/notargets/FVMetal/material"
	"github.com/notargets/FVMetal/sparse"
	"github.com/stretchr/testify/require"
	"math"
	"testing"
)

func bind(t *testing.T, law material.CurrentLaw) *material.Binding {
	t.Helper()
	b, err := material.NewDatabase(map[string]material.CurrentLaw{"metal": law}).Bind("metal")
	require.NoError(t, err)
	return b
}

func testConfig() config.Solver {
	cfg := config.Default()
	cfg.TimeStep = 1e-3
	cfg.PseudoTimeStep = 1e-2
	cfg.PseudoTimeConstant = 0.5
	return cfg
}

func saturating() material.CurrentLaw {
	return material.Saturating{Ohmic: material.Ohmic{Sigma: 2, Alpha: 0.01, T0: 300}, Jsat: 1.5}
}

// newBar returns a region with lumped terms active
func newBar(t *testing.T, law material.CurrentLaw) *Region {
	r := NewRegion("bar", bind(t, law), testConfig())
	r.Conductance = 2
	r.Temperature = 350
	r.AuxCapacitance = 1e-3
	r.AuxResistance = 20
	r.ConnectedNodes = 3
	return r
}

// chain adds the nodes with the given global indices, local indices in
// order, and an edge between each consecutive pair. Geometry and initial
// potential depend on the global index only.
func chain(t *testing.T, r *Region, globals []int, owned func(g int) bool) []*Node {
	t.Helper()
	nodes := make([]*Node, len(globals))
	for i, g := range globals {
		nodes[i] = NewNode(g, i, owned(g), 0.5+0.1*float64(g), 2, 0.05*float64(g))
		require.NoError(t, r.AddNode(nodes[i]))
	}
	for i := 1; i < len(nodes); i++ {
		g := float64(nodes[i-1].GlobalIndex)
		require.NoError(t, r.Connect(nodes[i-1], nodes[i], 0.4+0.05*g, -(1 + 0.1*g)))
	}
	return nodes
}

func allOwned(int) bool { return true }

func trial(g int) float64 { return 0.3*math.Sin(float64(g)) + 0.1*float64(g) }

func localIterate(nodes []*Node) []float64 {
	x := make([]float64, len(nodes))
	for _, n := range nodes {
		x[n.LocalIndex] = trial(n.GlobalIndex)
	}
	return x
}

type residualPass func(x []float64, f *sparse.Vector, flag *sparse.InsertMode) error

type jacobianPass func(x []float64, jac *sparse.Matrix, flag *sparse.InsertMode)

func assembleResidual(t *testing.T, pass residualPass, x []float64, n int) *sparse.Vector {
	t.Helper()
	f := sparse.NewVector(n)
	flag := sparse.NotSetValues
	require.NoError(t, pass(x, f, &flag))
	require.Equal(t, sparse.AddValues, flag)
	f.Assemble()
	return f
}

func assembleJacobian(t *testing.T, pass jacobianPass, x []float64, n int) *sparse.Matrix {
	t.Helper()
	jac := sparse.NewMatrix(n)
	flag := sparse.NotSetValues
	pass(x, jac, &flag)
	require.Equal(t, sparse.AddValues, flag)
	return jac
}
