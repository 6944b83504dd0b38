package material

import (
	"github.com/notargets/FVMetal/ad"
	"math"
)

// CurrentLaw is a metal current density law J(E, T). Implementations must be
// total and smooth over the field and temperature range they are used on.
// Current returns the plain value, CurrentAD the same expression evaluated on
// AD values so the caller can read dJ/dE through the field tangents.
type CurrentLaw interface {
	Name() string
	Conductance(T float64) float64
	Current(E, T float64) float64
	CurrentAD(E ad.Scalar, T float64) ad.Scalar
}

// Ohmic is J = sigma(T) * E with a linear temperature coefficient
//
//	sigma(T) = Sigma / (1 + Alpha*(T - T0))
type Ohmic struct {
	Sigma float64 // conductance at T0 [A/V/m]
	Alpha float64 // temperature coefficient of resistance [1/K]
	T0    float64 // reference temperature [K]
}

func (o Ohmic) Name() string { return "ohmic" }

func (o Ohmic) Conductance(T float64) float64 {
	return o.Sigma / (1 + o.Alpha*(T-o.T0))
}

func (o Ohmic) Current(E, T float64) float64 { return o.Conductance(T) * E }

func (o Ohmic) CurrentAD(E ad.Scalar, T float64) ad.Scalar {
	return ad.MulConst(E, o.Conductance(T))
}

// Saturating is an ohmic law whose current density saturates at high field
//
//	J = Jsat * tanh(sigma(T) * E / Jsat)
//
// It behaves as Ohmic for |sigma*E| << Jsat and is used to exercise the
// Jacobian of a genuinely nonlinear law.
type Saturating struct {
	Ohmic
	Jsat float64 // saturation current density [A/m^2]
}

func (s Saturating) Name() string { return "saturating" }

func (s Saturating) Current(E, T float64) float64 {
	return s.Jsat * math.Tanh(s.Conductance(T)*E/s.Jsat)
}

func (s Saturating) CurrentAD(E ad.Scalar, T float64) ad.Scalar {
	return ad.MulConst(ad.Tanh(ad.MulConst(E, s.Conductance(T)/s.Jsat)), s.Jsat)
}
