package config

import (
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultIsValid(t *testing.T) {
	s := Default()
	require.NoError(t, s.Validate())
	assert.Equal(t, 1e4*0.5*(5e-18+5e-18), s.AbsTolerance())
}

func TestParse(t *testing.T) {
	s, err := Parse([]byte(`
time_step: 2.0e-9
pseudo_time_step: 5.0e-12
relative_tol: 1.0e-6
pseudo_time_steps: 10
`))
	require.NoError(t, err)
	assert.Equal(t, 2e-9, s.TimeStep)
	assert.Equal(t, 5e-12, s.PseudoTimeStep)
	assert.Equal(t, 1e-6, s.RelativeTol)
	assert.Equal(t, 10, s.PseudoTimeSteps)
	// untouched keys keep their defaults
	assert.Equal(t, Default().PseudoTimeConstant, s.PseudoTimeConstant)

	_, err = Parse([]byte("time_step: [1"))
	assert.Error(t, err)

	_, err = Parse([]byte("pseudo_time_step: 0"))
	assert.ErrorIs(t, err, ErrInvalid)
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "solver.yaml")
	require.NoError(t, os.WriteFile(path, []byte("max_newton_iterations: 7\n"), 0o644))
	s, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 7, s.MaxNewtonIterations)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestFromMap(t *testing.T) {
	s, err := FromMap(Default(), map[string]any{
		"pseudo_time_tol_relax": 100,
		"relative_tol":          "1e-3",
	})
	require.NoError(t, err)
	assert.Equal(t, 100.0, s.PseudoTimeTolRelax)
	assert.Equal(t, 1e-3, s.RelativeTol)

	_, err = FromMap(Default(), map[string]any{"no_such_key": 1})
	assert.Error(t, err)

	_, err = FromMap(Default(), map[string]any{"time_step": -1})
	assert.ErrorIs(t, err, ErrInvalid)
}

func TestValidate(t *testing.T) {
	s := Default()
	s.ElecContinuityAbsTol = -1
	assert.ErrorIs(t, s.Validate(), ErrInvalid)

	s = Default()
	s.MaxNewtonIterations = -1
	assert.ErrorIs(t, s.Validate(), ErrInvalid)
}
