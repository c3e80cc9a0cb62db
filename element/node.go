package element

import "fmt"

// DOFCount is the number of degrees of freedom carried by every plate node:
// deflection w, rotation θx and rotation θy, in that order.
const DOFCount = 3

// Node is a mesh point. Index equals the node's position in the mesh node
// slice and fixes its global DOF offset at DOFCount*Index.
type Node struct {
	Index int     `json:"index"`
	X     float64 `json:"x"` // mm
	Y     float64 `json:"y"` // mm
	Fixed bool    `json:"fixed"`
}

// DOFOffset returns the global equation number of the node's deflection DOF
func (n Node) DOFOffset() int {
	return DOFCount * n.Index
}

func (n Node) String() string {
	if n.Fixed {
		return fmt.Sprintf("Node %d (%.4g, %.4g) fixed", n.Index, n.X, n.Y)
	}
	return fmt.Sprintf("Node %d (%.4g, %.4g)", n.Index, n.X, n.Y)
}
