package ad

import (
	"fmt"
	"gonum.org/v1/gonum/floats"
	"math"
)

// Width is the number of independent directions carried by a Scalar
type Width int

const (
	// Node is the width used for single node terms (one unknown, V)
	Node Width = 1
	// Edge is the width used for edge terms (two unknowns, V1 and V2)
	Edge Width = 2
)

// Scalar is a forward mode dual number: a value plus a fixed width tangent
// vector holding the partial derivatives with respect to each active
// direction. The tangent width is fixed when the Scalar is created and all
// operands of a binary operation must share it.
type Scalar struct {
	val float64
	tan []float64
}

// New returns a constant Scalar of the given width (all tangents zero)
func New(width Width, value float64) Scalar {
	if width < 1 {
		panic(fmt.Sprintf("ad: invalid tangent width %d", width))
	}
	return Scalar{val: value, tan: make([]float64, width)}
}

// Variable returns a Scalar marked as the independent variable along dir
func Variable(width Width, value float64, dir int) Scalar {
	return New(width, value).SetTangent(dir, 1.0)
}

// Value returns the real part
func (s Scalar) Value() float64 { return s.val }

// Width returns the number of tangent directions
func (s Scalar) Width() Width { return Width(len(s.tan)) }

// Tangent returns the partial derivative along dir
func (s Scalar) Tangent(dir int) float64 {
	s.checkDir(dir)
	return s.tan[dir]
}

// SetTangent returns a copy of s with the tangent component along dir set to
// v. Setting 1.0 marks the value as an independent variable in that
// direction. s itself is left unchanged.
func (s Scalar) SetTangent(dir int, v float64) Scalar {
	s.checkDir(dir)
	r := Scalar{val: s.val, tan: s.Gradient()}
	r.tan[dir] = v
	return r
}

// Gradient returns a copy of the tangent vector
func (s Scalar) Gradient() []float64 {
	g := make([]float64, len(s.tan))
	copy(g, s.tan)
	return g
}

func (s Scalar) String() string {
	return fmt.Sprintf("%g%v", s.val, s.tan)
}

func (s Scalar) checkDir(dir int) {
	if dir < 0 || dir >= len(s.tan) {
		panic(fmt.Sprintf("ad: direction %d out of range for width %d", dir, len(s.tan)))
	}
}

func sameWidth(a, b Scalar) {
	if len(a.tan) != len(b.tan) {
		panic(fmt.Sprintf("ad: tangent width mismatch %d != %d", len(a.tan), len(b.tan)))
	}
}

// chain returns f(s) given f(s.val) and f'(s.val)
func (s Scalar) chain(fv, dfv float64) Scalar {
	r := Scalar{val: fv, tan: make([]float64, len(s.tan))}
	floats.ScaleTo(r.tan, dfv, s.tan)
	return r
}

// Add returns a+b
func Add(a, b Scalar) Scalar {
	sameWidth(a, b)
	r := Scalar{val: a.val + b.val, tan: make([]float64, len(a.tan))}
	floats.AddTo(r.tan, a.tan, b.tan)
	return r
}

// Sub returns a-b
func Sub(a, b Scalar) Scalar {
	sameWidth(a, b)
	r := Scalar{val: a.val - b.val, tan: make([]float64, len(a.tan))}
	floats.SubTo(r.tan, a.tan, b.tan)
	return r
}

// Mul returns a*b
func Mul(a, b Scalar) Scalar {
	sameWidth(a, b)
	// d(ab) = b da + a db
	r := Scalar{val: a.val * b.val, tan: make([]float64, len(a.tan))}
	floats.ScaleTo(r.tan, b.val, a.tan)
	floats.AddScaled(r.tan, a.val, b.tan)
	return r
}

// Div returns a/b
func Div(a, b Scalar) Scalar {
	sameWidth(a, b)
	// d(a/b) = (da - (a/b) db) / b
	q := a.val / b.val
	r := Scalar{val: q, tan: make([]float64, len(a.tan))}
	floats.AddScaledTo(r.tan, a.tan, -q, b.tan)
	floats.Scale(1/b.val, r.tan)
	return r
}

// Neg returns -a
func Neg(a Scalar) Scalar { return a.chain(-a.val, -1) }

// AddConst returns a+c
func AddConst(a Scalar, c float64) Scalar { return a.chain(a.val+c, 1) }

// SubConst returns a-c
func SubConst(a Scalar, c float64) Scalar { return a.chain(a.val-c, 1) }

// MulConst returns c*a
func MulConst(a Scalar, c float64) Scalar { return a.chain(c*a.val, c) }

// DivConst returns a/c
func DivConst(a Scalar, c float64) Scalar { return a.chain(a.val/c, 1/c) }

// Exp returns e^a
func Exp(a Scalar) Scalar {
	e := math.Exp(a.val)
	return a.chain(e, e)
}

// Log returns ln(a)
func Log(a Scalar) Scalar { return a.chain(math.Log(a.val), 1/a.val) }

// Sqrt returns the square root of a
func Sqrt(a Scalar) Scalar {
	s := math.Sqrt(a.val)
	return a.chain(s, 0.5/s)
}

// Pow returns a^p for a constant exponent p
func Pow(a Scalar, p float64) Scalar {
	return a.chain(math.Pow(a.val, p), p*math.Pow(a.val, p-1))
}

// Abs returns |a|. The derivative at zero is taken as zero.
func Abs(a Scalar) Scalar {
	switch {
	case a.val > 0:
		return a.chain(a.val, 1)
	case a.val < 0:
		return a.chain(-a.val, -1)
	}
	return a.chain(0, 0)
}

// Tanh returns the hyperbolic tangent of a
func Tanh(a Scalar) Scalar {
	t := math.Tanh(a.val)
	return a.chain(t, 1-t*t)
}

// Apply evaluates a user supplied scalar function f with derivative df at a
func Apply(a Scalar, f, df func(float64) float64) Scalar {
	return a.chain(f(a.val), df(a.val))
}
