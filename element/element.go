package element

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

type Dimensionality uint8

const (
	D1 Dimensionality = iota + 1
	D2
)

func (d Dimensionality) String() string {
	switch d {
	case D1:
		return "1D"
	case D2:
		return "2D"
	}
	return "unknown"
}

type ElementGeometry uint8

const (
	Rectangle ElementGeometry = iota
)

func (g ElementGeometry) String() string {
	if g == Rectangle {
		return "Rectangle"
	}
	return "unknown"
}

// Element is a finite element whose local operators depend only on the
// analysis-wide Params and whose vertices are indices into a node arena.
type Element interface {
	Name() string
	ShortName() string
	GeometryType() ElementGeometry
	Dimensions() Dimensionality
	NVp() int  // Number of vertex nodes
	NDOF() int // Degrees of freedom per vertex

	// Connectivity returns the node arena indices of the vertices in local order
	Connectivity() []int

	// DOFs maps local degree of freedom k to its global equation number
	DOFs() []int

	// LocalStiffness returns the [NVp*NDOF × NVp*NDOF] element stiffness matrix
	LocalStiffness(p Params) *mat.Dense

	// LocalNodalForces returns the [NVp*NDOF] element load vector
	LocalNodalForces(p Params) *mat.VecDense
}

// Properties contains metadata describing an element type
type Properties struct {
	Name       string          // Full descriptive name
	ShortName  string          // Abbreviated name
	Type       ElementGeometry // Element shape
	NVp        int             // Number of vertex nodes
	NDOF       int             // Degrees of freedom per node
	Dimensions Dimensionality  // Spatial dimension
}

// String is the one line summary used in mesh reports
func (p Properties) String() string {
	return fmt.Sprintf("%s, %s %s, %d nodes × %d DOF", p.ShortName, p.Dimensions, p.Type, p.NVp, p.NDOF)
}

// GetProperties collects the metadata of any Element
func GetProperties(el Element) Properties {
	return Properties{
		Name:       el.Name(),
		ShortName:  el.ShortName(),
		Type:       el.GeometryType(),
		NVp:        el.NVp(),
		NDOF:       el.NDOF(),
		Dimensions: el.Dimensions(),
	}
}
