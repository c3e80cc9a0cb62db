package fem

import (
	"fmt"
	"math"

	"github.com/notargets/PlateFEM/element"
)

// PlateConfig is the input of one analysis
type PlateConfig struct {
	Width     float64 `json:"width"`     // mm
	Height    float64 `json:"height"`    // mm
	Thickness float64 `json:"thickness"` // mm
	Pressure  float64 `json:"pressure"`
	Young     float64 `json:"young"`
	Poisson   float64 `json:"poisson"`

	HElementCount int `json:"h_element_count"`
	VElementCount int `json:"v_element_count"`
}

// Validate rejects configurations that cannot produce a mesh or a physical
// element
func (c PlateConfig) Validate() error {
	for _, v := range []float64{c.Width, c.Height, c.Thickness, c.Pressure, c.Young, c.Poisson} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: non-finite parameter in %+v", ErrInvalidConfig, c)
		}
	}
	if c.HElementCount <= 0 || c.VElementCount <= 0 {
		return fmt.Errorf("%w: element counts %dx%d must be positive",
			ErrInvalidConfig, c.HElementCount, c.VElementCount)
	}
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("%w: plate size %gx%g must be positive", ErrInvalidConfig, c.Width, c.Height)
	}
	p := element.NewParams(c.Width/float64(c.HElementCount), c.Height/float64(c.VElementCount),
		c.Thickness, c.Pressure, c.Young, c.Poisson)
	if err := p.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return nil
}
