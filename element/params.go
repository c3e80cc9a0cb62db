package element

import (
	"errors"
	"fmt"
)

// ErrInvalidParams is returned by Params.Validate
var ErrInvalidParams = errors.New("invalid element parameters")

// Params holds the geometry and material shared by every element of a
// uniform plate mesh. It is a value: each analysis owns its own copy and
// passes it to the element operators.
type Params struct {
	Width     float64 // element width a, mm
	Height    float64 // element height b, mm
	Thickness float64 // plate thickness t, mm
	Pressure  float64 // uniform pressure p
	Young     float64 // Young's modulus E
	Poisson   float64 // Poisson ratio ν
}

func NewParams(width, height, thickness, pressure, young, poisson float64) Params {
	return Params{
		Width:     width,
		Height:    height,
		Thickness: thickness,
		Pressure:  pressure,
		Young:     young,
		Poisson:   poisson,
	}
}

// Validate checks the physical ranges of the parameters
func (p Params) Validate() error {
	switch {
	case !(p.Width > 0) || !(p.Height > 0):
		return fmt.Errorf("%w: element size %gx%g must be positive", ErrInvalidParams, p.Width, p.Height)
	case !(p.Thickness > 0):
		return fmt.Errorf("%w: thickness %g must be positive", ErrInvalidParams, p.Thickness)
	case !(p.Pressure >= 0):
		return fmt.Errorf("%w: pressure %g must not be negative", ErrInvalidParams, p.Pressure)
	case !(p.Young > 0):
		return fmt.Errorf("%w: Young's modulus %g must be positive", ErrInvalidParams, p.Young)
	case !(p.Poisson >= 0 && p.Poisson < 0.5):
		return fmt.Errorf("%w: Poisson ratio %g outside [0, 0.5)", ErrInvalidParams, p.Poisson)
	}
	return nil
}

// FlexuralCoefficient is E t³ / (48 (1-ν²) a b), the scale of the local
// stiffness matrix.
func (p Params) FlexuralCoefficient() float64 {
	t3 := p.Thickness * p.Thickness * p.Thickness
	return p.Young * t3 / (48 * (1 - p.Poisson*p.Poisson) * p.Width * p.Height)
}
