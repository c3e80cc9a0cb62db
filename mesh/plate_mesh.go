package mesh

import (
	"fmt"
	"strings"

	"github.com/notargets/PlateFEM/element"
	"gonum.org/v1/gonum/floats"
)

// PlateMesh is a uniform rectangular grid over a W × H plate. Nodes are
// numbered column-major: node (i,j) has index i*VNodeCount + j, where i runs
// over the x samples and j over the y samples.
type PlateMesh struct {
	Width, Height float64

	HElementCount, VElementCount int
	HNodeCount, VNodeCount       int

	ElementWidth, ElementHeight float64

	// Evenly spaced sample coordinates, length HNodeCount and VNodeCount
	VectorX, VectorY []float64

	Nodes    []element.Node
	Elements []element.Rect4

	Rule FixedNodeRule
}

// NewPlateMesh builds the node arena and element list. Counts and sizes must
// already be validated: zero element counts are rejected by the caller.
func NewPlateMesh(width, height float64, hElementCount, vElementCount int,
	rule FixedNodeRule) (m *PlateMesh) {
	if rule == nil {
		rule = DefaultFixedNodeRule
	}
	m = &PlateMesh{
		Width:         width,
		Height:        height,
		HElementCount: hElementCount,
		VElementCount: vElementCount,
		HNodeCount:    hElementCount + 1,
		VNodeCount:    vElementCount + 1,
		ElementWidth:  width / float64(hElementCount),
		ElementHeight: height / float64(vElementCount),
		Rule:          rule,
	}
	m.VectorX = span(m.HNodeCount, width)
	m.VectorY = span(m.VNodeCount, height)
	m.createNodes()
	m.createElements()
	return
}

// span returns n evenly spaced samples on [0, upper] with exact end points
func span(n int, upper float64) []float64 {
	v := floats.Span(make([]float64, n), 0, upper)
	v[0], v[n-1] = 0, upper
	return v
}

func (m *PlateMesh) createNodes() {
	m.Nodes = make([]element.Node, 0, m.HNodeCount*m.VNodeCount)
	for i, x := range m.VectorX {
		for j, y := range m.VectorY {
			m.Nodes = append(m.Nodes, element.Node{
				Index: m.NodeIndex(i, j),
				X:     x,
				Y:     y,
				Fixed: m.Rule.Fixed(i, j, m.HNodeCount, m.VNodeCount),
			})
		}
	}
}

func (m *PlateMesh) createElements() {
	m.Elements = make([]element.Rect4, 0, m.HElementCount*m.VElementCount)
	for i := 0; i < m.HElementCount; i++ {
		for j := 0; j < m.VElementCount; j++ {
			m.Elements = append(m.Elements, element.NewRect4(
				m.NodeIndex(i, j),
				m.NodeIndex(i, j+1),
				m.NodeIndex(i+1, j+1),
				m.NodeIndex(i+1, j),
			))
		}
	}
}

// NodeIndex returns the global index of grid node (i,j)
func (m *PlateMesh) NodeIndex(i, j int) int {
	return i*m.VNodeCount + j
}

func (m *PlateMesh) NumNodes() int { return len(m.Nodes) }
func (m *PlateMesh) NumElements() int { return len(m.Elements) }

// NumDOF is the size of the global system
func (m *PlateMesh) NumDOF() int {
	return element.DOFCount * len(m.Nodes)
}

// Params derives the shared element parameters for this mesh
func (m *PlateMesh) Params(thickness, pressure, young, poisson float64) element.Params {
	return element.NewParams(m.ElementWidth, m.ElementHeight, thickness, pressure, young, poisson)
}

func (m *PlateMesh) FixedNodes() (nodes []element.Node) {
	for _, n := range m.Nodes {
		if n.Fixed {
			nodes = append(nodes, n)
		}
	}
	return
}

// Outline returns the closed polygon through the corners of element k, the
// first corner repeated at the end.
func (m *PlateMesh) Outline(k int) (xs, ys []float64) {
	el := m.Elements[k]
	xs = make([]float64, 0, element.NVertices+1)
	ys = make([]float64, 0, element.NVertices+1)
	for _, n := range el.Nodes {
		xs = append(xs, m.Nodes[n].X)
		ys = append(ys, m.Nodes[n].Y)
	}
	xs = append(xs, xs[0])
	ys = append(ys, ys[0])
	return
}

// String returns a summary of the mesh
func (m *PlateMesh) String() string {
	var sb strings.Builder

	sb.WriteString("=== PlateMesh Summary ===\n")
	sb.WriteString(fmt.Sprintf("  Plate: %g × %g mm\n", m.Width, m.Height))
	sb.WriteString(fmt.Sprintf("  Elements: %d × %d = %d (%s)\n",
		m.HElementCount, m.VElementCount, m.NumElements(), element.GetProperties(element.Rect4{})))
	sb.WriteString(fmt.Sprintf("  Element size: %.4g × %.4g mm\n", m.ElementWidth, m.ElementHeight))
	sb.WriteString(fmt.Sprintf("  Nodes: %d × %d = %d\n", m.HNodeCount, m.VNodeCount, m.NumNodes()))
	sb.WriteString(fmt.Sprintf("  Degrees of freedom: %d\n", m.NumDOF()))
	sb.WriteString(fmt.Sprintf("  Fixed node rule: %s\n", m.Rule.Name()))
	for _, n := range m.FixedNodes() {
		sb.WriteString(fmt.Sprintf("    %s\n", n))
	}
	sb.WriteString("=========================\n")

	return sb.String()
}
