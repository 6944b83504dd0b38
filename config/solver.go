package config

import (
	"errors"
	"fmt"
	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
	"os"
)

// ErrInvalid is wrapped by every validation failure
var ErrInvalid = errors.New("invalid solver configuration")

// Solver holds the solver quantities read by the metal region assembly.
// Times are in seconds, tolerances in A (absolute) or dimensionless
// (relative). All fields are read-only to the assembly code.
type Solver struct {
	// Physical time step used by the lumped RC term
	TimeStep float64 `yaml:"time_step" mapstructure:"time_step"`

	// Pseudo time step of the metal pseudo-transient smoother
	PseudoTimeStep float64 `yaml:"pseudo_time_step" mapstructure:"pseudo_time_step"`
	// Time constant used to size the pseudo capacitance, C/T = sigma*L
	PseudoTimeConstant float64 `yaml:"pseudo_time_constant" mapstructure:"pseudo_time_constant"`
	// Relaxation factor applied to the absolute continuity tolerances
	PseudoTimeTolRelax float64 `yaml:"pseudo_time_tol_relax" mapstructure:"pseudo_time_tol_relax"`
	// Number of pseudo time steps the driver may take
	PseudoTimeSteps int `yaml:"pseudo_time_steps" mapstructure:"pseudo_time_steps"`

	ElecContinuityAbsTol float64 `yaml:"elec_continuity_abs_tol" mapstructure:"elec_continuity_abs_tol"`
	HoleContinuityAbsTol float64 `yaml:"hole_continuity_abs_tol" mapstructure:"hole_continuity_abs_tol"`
	RelativeTol          float64 `yaml:"relative_tol" mapstructure:"relative_tol"`

	// Newton iteration cap of the driver
	MaxNewtonIterations int `yaml:"max_newton_iterations" mapstructure:"max_newton_iterations"`
}

// Default returns the settings used when nothing is configured
func Default() Solver {
	return Solver{
		TimeStep:             1e-9,
		PseudoTimeStep:       1e-12,
		PseudoTimeConstant:   1e-10,
		PseudoTimeTolRelax:   1e4,
		PseudoTimeSteps:      50,
		ElecContinuityAbsTol: 5e-18,
		HoleContinuityAbsTol: 5e-18,
		RelativeTol:          1e-5,
		MaxNewtonIterations:  30,
	}
}

// AbsTolerance is the relaxed absolute tolerance of the pseudo time
// convergence test
func (s Solver) AbsTolerance() float64 {
	return s.PseudoTimeTolRelax * 0.5 * (s.ElecContinuityAbsTol + s.HoleContinuityAbsTol)
}

// Validate checks that every step and tolerance is usable
func (s Solver) Validate() error {
	positive := []struct {
		name  string
		value float64
	}{
		{"time_step", s.TimeStep},
		{"pseudo_time_step", s.PseudoTimeStep},
		{"pseudo_time_constant", s.PseudoTimeConstant},
		{"pseudo_time_tol_relax", s.PseudoTimeTolRelax},
		{"relative_tol", s.RelativeTol},
	}
	for _, p := range positive {
		if !(p.value > 0) {
			return fmt.Errorf("%w: %s must be > 0, got %g", ErrInvalid, p.name, p.value)
		}
	}
	if s.ElecContinuityAbsTol < 0 || s.HoleContinuityAbsTol < 0 {
		return fmt.Errorf("%w: continuity tolerances must be >= 0", ErrInvalid)
	}
	if s.PseudoTimeSteps < 0 || s.MaxNewtonIterations < 0 {
		return fmt.Errorf("%w: iteration counts must be >= 0", ErrInvalid)
	}
	return nil
}

// Parse decodes YAML on top of the defaults and validates the result
func Parse(data []byte) (Solver, error) {
	s := Default()
	if err := yaml.Unmarshal(data, &s); err != nil {
		return Solver{}, fmt.Errorf("parse solver config: %w", err)
	}
	if err := s.Validate(); err != nil {
		return Solver{}, err
	}
	return s, nil
}

// Load reads and parses a YAML file
func Load(path string) (Solver, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Solver{}, fmt.Errorf("read solver config: %w", err)
	}
	return Parse(data)
}

// FromMap applies overrides, e.g. from command line or another config
// layer, on top of base. Unknown keys are rejected.
func FromMap(base Solver, overrides map[string]any) (Solver, error) {
	s := base
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &s,
		ErrorUnused:      true,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return Solver{}, err
	}
	if err := dec.Decode(overrides); err != nil {
		return Solver{}, fmt.Errorf("decode solver overrides: %w", err)
	}
	if err := s.Validate(); err != nil {
		return Solver{}, err
	}
	return s, nil
}
